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

	"github.com/alexcwyu/aeron/util"
)

// Trailer layout. The trailer follows the data region; each counter occupies
// its own cache line. These offsets are part of the contract with observers
// in other processes and must not change without a coordinated upgrade.
const (
	// TailIntentCounterOffset is the offset within the trailer of the
	// producer's intended next tail position. It is published before the
	// record is written so observers can detect being lapped.
	TailIntentCounterOffset = 0

	// TailCounterOffset is the offset within the trailer of the committed
	// next tail position. Publishing it is the commit point of a record.
	TailCounterOffset = util.CacheLineLength

	// LatestCounterOffset is the offset within the trailer of the start
	// position of the most recently committed record.
	LatestCounterOffset = 2 * util.CacheLineLength

	// TrailerLength is the total trailer size in bytes.
	TrailerLength = 3 * util.CacheLineLength
)

// CheckCapacity validates a data region capacity: it must be a power of two
// no smaller than two record alignment units.
func CheckCapacity(capacity int) error {
	if !util.IsPowerOfTwo(int64(capacity)) || capacity < 2*RecordAlignment {
		return fmt.Errorf("%w: capacity must be a power of 2 and >= %d, capacity=%d",
			ErrInvalidCapacity, 2*RecordAlignment, capacity)
	}
	return nil
}
