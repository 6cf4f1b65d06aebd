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

import "fmt"

// Handler consumes one message copied out of the broadcast buffer. The data
// slice is only valid for the duration of the call.
type Handler func(msgTypeID int32, data []byte)

// CopyReceiver drains a Receiver, copying each validated message into a
// scratch buffer before handing it to a handler. The copy decouples the
// handler from the shared memory: by the time the handler runs, the bytes are
// known to be an intact snapshot of the record.
type CopyReceiver struct {
	receiver *Receiver
	scratch  []byte
}

// NewCopyReceiver returns a CopyReceiver over receiver with a scratch buffer
// sized to the ring's maximum message length.
func NewCopyReceiver(receiver *Receiver) *CopyReceiver {
	c := &CopyReceiver{
		receiver: receiver,
		scratch:  make([]byte, CalculateMaxMessageLength(receiver.Capacity())),
	}

	// Park the cursor at the current tail so only records published from now
	// on are delivered.
	for c.receiver.ReceiveNext() {
	}
	return c
}

// Receive delivers at most one pending message to handler, returning the
// number of messages delivered. ErrLapped is returned, with nothing
// delivered, when the transmitter has overrun the receiver, either before the
// next record was reached or while it was being copied. In the first case the
// receiver has already resynchronised at the latest record, which is not
// delivered; the next call continues with the record after it. In the second
// case the next call detects the lap, resynchronises and returns ErrLapped
// again.
func (c *CopyReceiver) Receive(handler Handler) (int, error) {
	lastSeenLappedCount := c.receiver.LappedCount()

	if !c.receiver.ReceiveNext() {
		return 0, nil
	}
	if lastSeenLappedCount != c.receiver.LappedCount() {
		return 0, ErrLapped
	}

	length := c.receiver.Length()
	if length > len(c.scratch) {
		return 0, fmt.Errorf("buffer required size %d but only has %d", length, len(c.scratch))
	}

	msgTypeID := c.receiver.TypeID()
	c.receiver.Buffer().GetBytesInto(c.scratch, c.receiver.Offset(), length)

	if !c.receiver.Validate() {
		return 0, ErrLapped
	}

	handler(msgTypeID, c.scratch[:length])
	return 1, nil
}
