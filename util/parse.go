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

package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Upper bounds on the numeric part for each size suffix; any value at or
// below its bound scales to a result that fits in an int64.
const (
	maxGValue = 8589934591
	maxMValue = 8796093022207
	maxKValue = 9007199254739968
)

// ParseSize parses a byte size with an optional k/m/g suffix (powers of 1024).
// The numeric part must be a non-negative decimal integer.
func ParseSize(str string) (uint64, error) {
	digits := len(str)
	for i, c := range str {
		if c < '0' || c > '9' {
			digits = i
			break
		}
	}
	if digits == 0 {
		return 0, fmt.Errorf("invalid size: %q", str)
	}

	value, err := strconv.ParseUint(str[:digits], 10, 63)
	if err != nil {
		return 0, fmt.Errorf("invalid size: %q: %w", str, err)
	}

	switch str[digits:] {
	case "":
		return value, nil
	case "k", "K":
		if value > maxKValue {
			return 0, fmt.Errorf("size overflows: %q", str)
		}
		return value * 1024, nil
	case "m", "M":
		if value > maxMValue {
			return 0, fmt.Errorf("size overflows: %q", str)
		}
		return value * 1024 * 1024, nil
	case "g", "G":
		if value > maxGValue {
			return 0, fmt.Errorf("size overflows: %q", str)
		}
		return value * 1024 * 1024 * 1024, nil
	}
	return 0, fmt.Errorf("invalid size suffix: %q", str)
}

// ParseDuration parses a duration in nanoseconds with an optional s/ms/us/ns
// suffix (case-insensitive). A bare number is nanoseconds. A value whose
// scaling by its suffix would overflow an int64 saturates to math.MaxInt64; a
// numeric part that does not itself fit in an int64 is an error.
func ParseDuration(str string) (int64, error) {
	digits := len(str)
	for i, c := range str {
		if c < '0' || c > '9' {
			digits = i
			break
		}
	}
	if digits == 0 {
		return 0, fmt.Errorf("invalid duration: %q", str)
	}

	value, err := strconv.ParseInt(str[:digits], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %q: %w", str, err)
	}

	var scale int64
	switch strings.ToLower(str[digits:]) {
	case "", "ns":
		return value, nil
	case "us":
		scale = 1000
	case "ms":
		scale = 1000 * 1000
	case "s":
		scale = 1000 * 1000 * 1000
	default:
		return 0, fmt.Errorf("invalid duration suffix: %q", str)
	}

	if value > math.MaxInt64/scale {
		return math.MaxInt64, nil
	}
	return value * scale, nil
}

// ParseBool interprets str as a boolean property value. Values beginning with
// "1", "on" or "true" are true; values beginning with "0", "off" or "false"
// are false; anything else yields def.
func ParseBool(str string, def bool) bool {
	switch {
	case strings.HasPrefix(str, "1"), strings.HasPrefix(str, "on"), strings.HasPrefix(str, "true"):
		return true
	case strings.HasPrefix(str, "0"), strings.HasPrefix(str, "off"), strings.HasPrefix(str, "false"):
		return false
	}
	return def
}
