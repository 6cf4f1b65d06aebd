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

import "errors"

// ErrInvalidCapacity indicates the data region is not a power of two or is
// too small. Reported at construction only.
var ErrInvalidCapacity = errors.New("broadcast: invalid capacity")

// ErrInvalidMsgTypeID indicates a non-positive message type id was passed to
// Transmit.
var ErrInvalidMsgTypeID = errors.New("broadcast: invalid message type id")

// ErrMessageTooLong indicates the message exceeds the maximum length for the
// ring (capacity / 8). A negative length is reported with the same error.
var ErrMessageTooLong = errors.New("broadcast: message too long")

// ErrLapped indicates a copying observer was overrun by the transmitter while
// consuming a record.
var ErrLapped = errors.New("broadcast: unable to keep up with transmitter")
