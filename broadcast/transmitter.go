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
	"fmt"

	"github.com/alexcwyu/aeron/atomicbuffer"
	"github.com/alexcwyu/aeron/util"
)

// Transmitter publishes records to a broadcast buffer. Exactly one goroutine
// may call Transmit on a given buffer at a time; observers in this or other
// processes read the same memory concurrently through Receiver. A Transmitter
// holds no state of its own beyond precomputed offsets, so it never blocks
// and never allocates on the transmit path.
type Transmitter struct {
	buffer                 *atomicbuffer.Buffer
	capacity               int
	mask                   int64
	maxMsgLength           int
	tailIntentCounterIndex int
	tailCounterIndex       int
	latestCounterIndex     int
}

// NewTransmitter wraps an initialized broadcast buffer. The buffer length
// must be the data region capacity plus TrailerLength, with the capacity a
// power of two.
func NewTransmitter(buffer *atomicbuffer.Buffer) (*Transmitter, error) {
	capacity := buffer.Capacity() - TrailerLength
	if err := CheckCapacity(capacity); err != nil {
		return nil, err
	}

	return &Transmitter{
		buffer:                 buffer,
		capacity:               capacity,
		mask:                   int64(capacity) - 1,
		maxMsgLength:           CalculateMaxMessageLength(capacity),
		tailIntentCounterIndex: capacity + TailIntentCounterOffset,
		tailCounterIndex:       capacity + TailCounterOffset,
		latestCounterIndex:     capacity + LatestCounterOffset,
	}, nil
}

// Capacity returns the data region capacity in bytes.
func (t *Transmitter) Capacity() int {
	return t.capacity
}

// MaxMsgLength returns the largest message payload Transmit accepts.
func (t *Transmitter) MaxMsgLength() int {
	return t.maxMsgLength
}

// Transmit publishes one record containing srcBuffer[srcIndex:srcIndex+length]
// with the given type id. On return the record is visible to any observer
// that acquire-loads the tail counter. Validation failures leave the buffer
// untouched; there are no partial writes.
func (t *Transmitter) Transmit(msgTypeID int32, srcBuffer []byte, srcIndex, length int) error {
	if err := CheckMsgTypeID(msgTypeID); err != nil {
		return err
	}
	if err := t.checkMessageLength(length); err != nil {
		return err
	}

	// The single writer owns the tail, so a plain load is authoritative.
	currentTail := t.buffer.GetInt64(t.tailCounterIndex)
	recordOffset := int(currentTail & t.mask)
	recordLength := length + HeaderLength
	alignedRecordLength := util.Align(recordLength, RecordAlignment)
	newTail := currentTail + int64(alignedRecordLength)
	toEndOfBuffer := t.capacity - recordOffset

	if toEndOfBuffer < alignedRecordLength {
		// The record would straddle the end of the data region. Announce
		// intent through the wrap, pad out the current cycle, and start the
		// record at offset 0 of the next one.
		t.signalTailIntent(currentTail + int64(toEndOfBuffer) + int64(alignedRecordLength))
		insertPaddingRecord(t.buffer, recordOffset, toEndOfBuffer)

		currentTail += int64(toEndOfBuffer)
		recordOffset = 0
	} else {
		t.signalTailIntent(newTail)
	}

	t.buffer.PutInt32(LengthOffset(recordOffset), int32(recordLength))
	t.buffer.PutInt32(TypeOffset(recordOffset), msgTypeID)

	t.buffer.PutBytes(MsgOffset(recordOffset), srcBuffer[srcIndex:srcIndex+length])

	// Latest must be observable before the commit so an observer that sees
	// the new tail cannot read a stale latest.
	t.buffer.PutInt64Ordered(t.latestCounterIndex, currentTail)
	t.buffer.PutInt64Ordered(t.tailCounterIndex, currentTail+int64(alignedRecordLength))

	return nil
}

func (t *Transmitter) checkMessageLength(length int) error {
	if length < 0 || length > t.maxMsgLength {
		return fmt.Errorf("%w: encoded message exceeds maxMsgLength of %d, length=%d",
			ErrMessageTooLong, t.maxMsgLength, length)
	}
	return nil
}

// signalTailIntent publishes the position the tail will reach once the
// in-flight record commits. The release fence keeps the intent ordered ahead
// of the plain header and payload stores that follow for observers that
// acquire-load tail first and inspect earlier bytes.
func (t *Transmitter) signalTailIntent(newTail int64) {
	t.buffer.PutInt64Ordered(t.tailIntentCounterIndex, newTail)
	atomicbuffer.ReleaseFence()
}

func insertPaddingRecord(buffer *atomicbuffer.Buffer, recordOffset, length int) {
	buffer.PutInt32(LengthOffset(recordOffset), int32(length))
	buffer.PutInt32(TypeOffset(recordOffset), PaddingMsgTypeID)
}
