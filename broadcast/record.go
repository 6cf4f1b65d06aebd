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

// Record header layout (8 bytes, native byte order, aligned 8):
//
//	int32 length  // total record length including this header; for a
//	              // padding record it spans the rest of the data region
//	int32 type    // positive message type id, or PaddingMsgTypeID
const (
	// HeaderLength is the size of the record header in bytes.
	HeaderLength = 8

	// RecordAlignment is the boundary records begin on. Tail positions are
	// always multiples of this.
	RecordAlignment = 8

	// PaddingMsgTypeID marks a record that carries no message and only
	// consumes the remainder of the data region. Observers skip it. The
	// negative sentinel keeps a sign test sufficient to filter padding.
	PaddingMsgTypeID int32 = -1
)

// LengthOffset returns the offset of the length field of the record beginning
// at recordOffset.
func LengthOffset(recordOffset int) int {
	return recordOffset
}

// TypeOffset returns the offset of the type field of the record beginning at
// recordOffset.
func TypeOffset(recordOffset int) int {
	return recordOffset + 4
}

// MsgOffset returns the offset of the message payload of the record beginning
// at recordOffset.
func MsgOffset(recordOffset int) int {
	return recordOffset + HeaderLength
}

// CalculateMaxMessageLength returns the largest message payload a ring of the
// given capacity accepts. Bounding messages to an eighth of the data region
// bounds worst-case padding waste to a single padding record per transmit.
func CalculateMaxMessageLength(capacity int) int {
	return capacity / 8
}

// CheckMsgTypeID validates a user message type id; ids must be positive.
func CheckMsgTypeID(msgTypeID int32) error {
	if msgTypeID < 1 {
		return fmt.Errorf("%w: message type id must be > 0, msgTypeId=%d", ErrInvalidMsgTypeID, msgTypeID)
	}
	return nil
}
