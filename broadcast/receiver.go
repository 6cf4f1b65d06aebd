/*
 *
 * Copyright 2025 aeron-go authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package broadcast

import (
	"sync/atomic"

	"github.com/alexcwyu/aeron/atomicbuffer"
	"github.com/alexcwyu/aeron/util"
)

// Receiver is a passive observer of a broadcast buffer. It only ever loads
// from the shared memory; its cursors are local. A record surfaced by
// ReceiveNext is valid only while Validate keeps returning true: the
// transmitter may overwrite it at any time, so consumers must copy the
// payload out and then call Validate before trusting the copy.
//
// A Receiver is not safe for concurrent use; give each observing goroutine
// its own.
type Receiver struct {
	buffer                 *atomicbuffer.Buffer
	capacity               int
	mask                   int64
	tailIntentCounterIndex int
	tailCounterIndex       int
	latestCounterIndex     int

	recordOffset int
	cursor       int64
	nextRecord   int64
	lappedCount  atomic.Int64
}

// NewReceiver wraps an initialized broadcast buffer. The buffer length must
// be the data region capacity plus TrailerLength, with the capacity a power
// of two.
func NewReceiver(buffer *atomicbuffer.Buffer) (*Receiver, error) {
	capacity := buffer.Capacity() - TrailerLength
	if err := CheckCapacity(capacity); err != nil {
		return nil, err
	}

	return &Receiver{
		buffer:                 buffer,
		capacity:               capacity,
		mask:                   int64(capacity) - 1,
		tailIntentCounterIndex: capacity + TailIntentCounterOffset,
		tailCounterIndex:       capacity + TailCounterOffset,
		latestCounterIndex:     capacity + LatestCounterOffset,
	}, nil
}

// Capacity returns the data region capacity in bytes.
func (r *Receiver) Capacity() int {
	return r.capacity
}

// LappedCount returns how many times this receiver has been overrun by the
// transmitter and forced to resynchronise from the latest record.
func (r *Receiver) LappedCount() int64 {
	return r.lappedCount.Load()
}

// TypeID returns the message type id of the record surfaced by the last
// successful ReceiveNext.
func (r *Receiver) TypeID() int32 {
	return r.buffer.GetInt32(TypeOffset(r.recordOffset))
}

// Offset returns the data region offset of the payload of the current record.
func (r *Receiver) Offset() int {
	return MsgOffset(r.recordOffset)
}

// Length returns the payload length of the current record in bytes.
func (r *Receiver) Length() int {
	return int(r.buffer.GetInt32(LengthOffset(r.recordOffset))) - HeaderLength
}

// Buffer returns the underlying buffer so payload bytes can be copied out.
func (r *Receiver) Buffer() *atomicbuffer.Buffer {
	return r.buffer
}

// ReceiveNext advances to the next record if one has been committed,
// returning true when a record is available. Padding records are skipped
// transparently. If the receiver has been lapped it counts the loss and
// resynchronises at the latest committed record.
func (r *Receiver) ReceiveNext() bool {
	isAvailable := false
	tail := r.buffer.GetInt64Volatile(r.tailCounterIndex)
	cursor := r.nextRecord

	if tail > cursor {
		recordOffset := int(cursor & r.mask)

		if !r.validateAt(cursor) {
			r.lappedCount.Add(1)
			cursor = r.buffer.GetInt64(r.latestCounterIndex)
			recordOffset = int(cursor & r.mask)
		}

		r.cursor = cursor
		r.nextRecord = cursor + int64(util.Align(int(r.buffer.GetInt32(LengthOffset(recordOffset))), RecordAlignment))

		if r.buffer.GetInt32(TypeOffset(recordOffset)) == PaddingMsgTypeID {
			recordOffset = 0
			r.cursor = r.nextRecord
			r.nextRecord += int64(util.Align(int(r.buffer.GetInt32(LengthOffset(recordOffset))), RecordAlignment))
		}

		r.recordOffset = recordOffset
		isAvailable = true
	}
	return isAvailable
}

// Validate reports whether the record surfaced by the last ReceiveNext is
// still intact, i.e. the transmitter has not advanced far enough to have
// overwritten it. Call it after copying the payload out.
func (r *Receiver) Validate() bool {
	atomicbuffer.AcquireFence()
	return r.validateAt(r.cursor)
}

func (r *Receiver) validateAt(cursor int64) bool {
	return cursor+int64(r.capacity) >= r.buffer.GetInt64Volatile(r.tailIntentCounterIndex)
}
