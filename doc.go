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

// Package aeron provides lock-free broadcast messaging primitives over
// shared, memory-mapped buffers for local inter-process communication.
//
// The core component is a single-writer broadcast ring (package broadcast)
// that publishes typed, variable-length records to any number of passive
// observers reading the same underlying memory. Observers may live in other
// processes; the backing buffer is typically a memory-mapped file created
// with package shm. The implementation relies on release/acquire ordering of
// three trailer counters rather than locks, so a transmitter never blocks
// and a slow observer is lapped rather than exerting back-pressure.
package aeron
