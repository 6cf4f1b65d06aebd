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

// Package broadcast implements a lock-free, single-writer broadcast ring over
// a shared buffer.
//
// A Transmitter publishes typed, variable-length records into the data region
// of the buffer; any number of Receivers observe the same memory without ever
// writing to it. There is no back-pressure: the transmitter never blocks, and
// an observer that falls more than one capacity behind is lapped and must
// resynchronise from the latest record.
//
// # Buffer layout
//
// The buffer is a data region of power-of-two capacity followed by a trailer
// of three 64-bit counters, one per cache line:
//
//	[0, capacity)            data region, wrap via position & (capacity-1)
//	capacity + 0             tail intent counter
//	capacity + 64            tail counter (commit point)
//	capacity + 128           latest counter
//
// Counters are absolute, monotonically non-decreasing byte positions. Records
// begin on 8-byte boundaries with a 4-byte signed length (including the
// 8-byte header) followed by a 4-byte signed message type id. A record with
// type id PaddingMsgTypeID carries no payload and only consumes the remainder
// of the data region so that the next record starts a new cycle at offset 0.
//
// Counters and header fields are stored in native byte order; producer and
// observers must share endianness.
package broadcast
