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

// Package config reads tuning properties from the environment. The typed
// property getters never fail: an invalid value produces a warning on stderr
// and falls back to the default, and a parsed numeric value is clamped to the
// caller's [min, max]. Load, which fills Settings, returns an error for a
// value it cannot parse and does not clamp.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/alexcwyu/aeron/util"
)

// Environment variable names.
const (
	SegmentPathEnv = "AERON_BROADCAST_FILE"
	CapacityEnv    = "AERON_BROADCAST_CAPACITY"
)

// Defaults.
const (
	DefaultSegmentPath = "/dev/shm/aeron-broadcast"
	DefaultCapacity    = 64 * 1024
	MinCapacity        = 1024
	MaxCapacity        = 1024 * 1024 * 1024
)

func warn(name, str string) {
	fmt.Fprintf(os.Stderr, "WARNING: %s=%s is invalid, using default\n", name, str)
}

func clampUint64(v, min, max uint64) uint64 {
	if v > max {
		return max
	}
	if v < min {
		return min
	}
	return v
}

// SizeProperty reads a byte size (with optional k/m/g suffix) from the
// environment, falling back to def on absence or parse failure and clamping
// to [min, max].
func SizeProperty(name string, def, min, max uint64) uint64 {
	str, ok := os.LookupEnv(name)
	if !ok {
		return def
	}

	value, err := util.ParseSize(str)
	if err != nil {
		warn(name, str)
		return def
	}
	return clampUint64(value, min, max)
}

// DurationProperty reads a duration in nanoseconds (with optional s/ms/us/ns
// suffix) from the environment, falling back to def on absence or parse
// failure and clamping to [min, max].
func DurationProperty(name string, def, min, max time.Duration) time.Duration {
	str, ok := os.LookupEnv(name)
	if !ok {
		return def
	}

	ns, err := util.ParseDuration(str)
	if err != nil {
		warn(name, str)
		return def
	}

	value := time.Duration(ns)
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// Uint64Property reads an unsigned integer from the environment, falling back
// to def on absence or parse failure and clamping to [min, max].
func Uint64Property(name string, def, min, max uint64) uint64 {
	str, ok := os.LookupEnv(name)
	if !ok {
		return def
	}

	value, err := strconv.ParseUint(str, 0, 64)
	if err != nil {
		warn(name, str)
		return def
	}
	return clampUint64(value, min, max)
}

// Int32Property reads a signed 32-bit integer from the environment, falling
// back to def on absence or parse failure and clamping to [min, max].
func Int32Property(name string, def, min, max int32) int32 {
	str, ok := os.LookupEnv(name)
	if !ok {
		return def
	}

	value, err := strconv.ParseInt(str, 0, 32)
	if err != nil {
		warn(name, str)
		return def
	}

	v := int32(value)
	if v > max {
		return max
	}
	if v < min {
		return min
	}
	return v
}

// BoolProperty reads a boolean from the environment: values beginning with
// 1/on/true are true, 0/off/false are false, anything else yields def.
func BoolProperty(name string, def bool) bool {
	str, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	return util.ParseBool(str, def)
}

// Size is a byte count parsed with util.ParseSize, so "64k" and "4m" work as
// env values.
type Size uint64

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Size) UnmarshalText(text []byte) error {
	v, err := util.ParseSize(string(text))
	if err != nil {
		return err
	}
	*s = Size(v)
	return nil
}

// Settings are the environment-driven settings of the inspection tooling.
type Settings struct {
	SegmentPath string `env:"AERON_BROADCAST_FILE" envDefault:"/dev/shm/aeron-broadcast"`
	Capacity    Size   `env:"AERON_BROADCAST_CAPACITY" envDefault:"64k"`
}

// Load parses Settings from the environment.
func Load() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("config: parse environment: %w", err)
	}
	return s, nil
}
