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

package shm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexcwyu/aeron/broadcast"
)

func TestCreateAndOpenSegment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broadcast.dat")
	const capacity = 4096

	seg, err := Create(path, capacity)
	require.NoError(t, err)

	buf, err := seg.Buffer()
	require.NoError(t, err)
	assert.Equal(t, capacity+broadcast.TrailerLength, buf.Capacity())

	// Fresh segments start with zeroed counters.
	assert.Zero(t, buf.GetInt64(capacity+broadcast.TailCounterOffset))
	assert.Zero(t, buf.GetInt64(capacity+broadcast.TailIntentCounterOffset))
	assert.Zero(t, buf.GetInt64(capacity+broadcast.LatestCounterOffset))

	require.NoError(t, seg.Close())

	// A second process opens the same file and sees the same layout.
	seg2, err := Open(path)
	require.NoError(t, err)
	defer seg2.Close()

	buf2, err := seg2.Buffer()
	require.NoError(t, err)
	assert.Equal(t, capacity+broadcast.TrailerLength, buf2.Capacity())
}

func TestTransmitAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broadcast.dat")
	const capacity = 4096

	seg, err := Create(path, capacity)
	require.NoError(t, err)

	buf, err := seg.Buffer()
	require.NoError(t, err)
	tx, err := broadcast.NewTransmitter(buf)
	require.NoError(t, err)

	msg := []byte("hello observers")
	require.NoError(t, tx.Transmit(5, msg, 0, len(msg)))
	require.NoError(t, seg.Close())

	seg2, err := Open(path)
	require.NoError(t, err)
	defer seg2.Close()

	buf2, err := seg2.Buffer()
	require.NoError(t, err)
	rx, err := broadcast.NewReceiver(buf2)
	require.NoError(t, err)

	require.True(t, rx.ReceiveNext())
	assert.Equal(t, int32(5), rx.TypeID())
	assert.Equal(t, msg, rx.Buffer().GetBytes(rx.Offset(), rx.Length()))
	assert.True(t, rx.Validate())
}

func TestCreateRejectsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broadcast.dat")

	seg, err := Create(path, 4096)
	require.NoError(t, err)
	require.NoError(t, seg.Close())

	_, err = Create(path, 4096)
	require.Error(t, err)
}

func TestCreateRejectsInvalidCapacity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broadcast.dat")

	_, err := Create(path, 768)
	require.ErrorIs(t, err, broadcast.ErrInvalidCapacity)
	assert.False(t, Exists(path))
}

func TestOpenRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-segment.dat")
	require.NoError(t, os.WriteFile(path, make([]byte, 8192), 0o600))

	_, err := Open(path)
	require.ErrorIs(t, err, ErrInvalidSegment)
}

func TestOpenRejectsTruncatedSegment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broadcast.dat")

	seg, err := Create(path, 4096)
	require.NoError(t, err)
	require.NoError(t, seg.Close())

	require.NoError(t, os.Truncate(path, 1024))

	_, err = Open(path)
	require.ErrorIs(t, err, ErrInvalidSegment)
}

func TestRemoveSegment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broadcast.dat")

	seg, err := Create(path, 4096)
	require.NoError(t, err)
	require.NoError(t, seg.Close())

	require.True(t, Exists(path))
	require.NoError(t, Remove(path))
	require.False(t, Exists(path))
}
