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

// Package shm maps broadcast buffers onto files so that observers can live in
// other processes. A segment file is a fixed header followed by the broadcast
// buffer (data region plus trailer); the header carries enough layout
// information for an observer to validate the file before wrapping it.
package shm

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"github.com/alexcwyu/aeron/atomicbuffer"
	"github.com/alexcwyu/aeron/broadcast"
)

// ErrInvalidSegment indicates a file is not a valid broadcast segment.
var ErrInvalidSegment = errors.New("shm: invalid segment")

// Segment file layout constants.
const (
	// SegmentMagic identifies a broadcast segment file.
	SegmentMagic = "AERONBC\x00"

	// SegmentVersion is the current layout version.
	SegmentVersion = uint32(1)

	// SegmentHeaderSize is the fixed header size; the broadcast buffer
	// begins at this offset. Page-aligned mappings keep the buffer 8-byte
	// aligned as the atomic counter accesses require.
	SegmentHeaderSize = 64
)

// SegmentHeader is the on-file header of a broadcast segment.
type SegmentHeader struct {
	magic        [8]byte  // 0x00: "AERONBC\0"
	version      uint32   // 0x08: layout version
	flags        uint32   // 0x0C: reserved
	totalSize    uint64   // 0x10: total file size
	bufferOffset uint64   // 0x18: offset of the broadcast buffer
	bufferLength uint64   // 0x20: buffer length (data region + trailer)
	reserved     [24]byte // 0x28-0x3F: reserved to 64B
}

// Magic returns the magic bytes.
func (h *SegmentHeader) Magic() [8]byte {
	return h.magic
}

// SetMagic sets the magic bytes.
func (h *SegmentHeader) SetMagic(magic [8]byte) {
	h.magic = magic
}

// Version returns the layout version.
func (h *SegmentHeader) Version() uint32 {
	return atomic.LoadUint32(&h.version)
}

// SetVersion sets the layout version.
func (h *SegmentHeader) SetVersion(version uint32) {
	atomic.StoreUint32(&h.version, version)
}

// TotalSize returns the total file size recorded in the header.
func (h *SegmentHeader) TotalSize() uint64 {
	return atomic.LoadUint64(&h.totalSize)
}

// SetTotalSize records the total file size.
func (h *SegmentHeader) SetTotalSize(size uint64) {
	atomic.StoreUint64(&h.totalSize, size)
}

// BufferOffset returns the offset of the broadcast buffer within the file.
func (h *SegmentHeader) BufferOffset() uint64 {
	return atomic.LoadUint64(&h.bufferOffset)
}

// SetBufferOffset records the offset of the broadcast buffer.
func (h *SegmentHeader) SetBufferOffset(offset uint64) {
	atomic.StoreUint64(&h.bufferOffset, offset)
}

// BufferLength returns the broadcast buffer length (data region + trailer).
func (h *SegmentHeader) BufferLength() uint64 {
	return atomic.LoadUint64(&h.bufferLength)
}

// SetBufferLength records the broadcast buffer length.
func (h *SegmentHeader) SetBufferLength(length uint64) {
	atomic.StoreUint64(&h.bufferLength, length)
}

// Segment is a mapped broadcast segment file.
type Segment struct {
	File *os.File // backing file
	Mem  []byte   // mapped region
	Path string   // file path
}

func (s *Segment) header() *SegmentHeader {
	return (*SegmentHeader)(unsafe.Pointer(&s.Mem[0]))
}

// Buffer wraps the broadcast buffer portion of the mapped segment.
func (s *Segment) Buffer() (*atomicbuffer.Buffer, error) {
	h := s.header()
	begin := h.BufferOffset()
	end := begin + h.BufferLength()
	return atomicbuffer.Wrap(s.Mem[begin:end])
}

// Close unmaps the segment and closes the backing file. The file itself is
// left in place for other processes; use Remove to delete it.
func (s *Segment) Close() error {
	var firstErr error

	if s.Mem != nil {
		if err := unmapMemory(s.Mem); err != nil && firstErr == nil {
			firstErr = err
		}
		s.Mem = nil
	}

	if s.File != nil {
		if err := s.File.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.File = nil
	}

	return firstErr
}

// Create creates and maps a new segment file at path whose broadcast buffer
// has the given data region capacity. The counters start at zero. It fails if
// the file already exists.
func Create(path string, capacity int) (*Segment, error) {
	if err := broadcast.CheckCapacity(capacity); err != nil {
		return nil, err
	}

	totalSize := SegmentHeaderSize + capacity + broadcast.TrailerLength

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("shm: create segment %s: %w", path, err)
	}

	cleanup := func() {
		file.Close()
		os.Remove(path)
	}

	if err := file.Truncate(int64(totalSize)); err != nil {
		cleanup()
		return nil, fmt.Errorf("shm: truncate segment %s: %w", path, err)
	}

	mem, err := mapMemory(file, totalSize)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("shm: map segment %s: %w", path, err)
	}

	s := &Segment{File: file, Mem: mem, Path: path}
	h := s.header()
	h.SetMagic([8]byte{'A', 'E', 'R', 'O', 'N', 'B', 'C', 0})
	h.SetVersion(SegmentVersion)
	h.SetTotalSize(uint64(totalSize))
	h.SetBufferOffset(SegmentHeaderSize)
	h.SetBufferLength(uint64(capacity + broadcast.TrailerLength))

	return s, nil
}

// Open maps an existing segment file and validates its header.
func Open(path string) (*Segment, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("shm: open segment %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("shm: stat segment %s: %w", path, err)
	}

	mem, err := mapMemory(file, int(info.Size()))
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("shm: map segment %s: %w", path, err)
	}

	s := &Segment{File: file, Mem: mem, Path: path}
	if err := validateHeader(s.header(), uint64(info.Size())); err != nil {
		s.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

func validateHeader(h *SegmentHeader, fileSize uint64) error {
	if string(h.magic[:]) != SegmentMagic {
		return fmt.Errorf("%w: bad magic", ErrInvalidSegment)
	}
	if v := h.Version(); v != SegmentVersion {
		return fmt.Errorf("%w: unsupported version %d, expected %d", ErrInvalidSegment, v, SegmentVersion)
	}
	if h.TotalSize() != fileSize {
		return fmt.Errorf("%w: total size %d does not match file size %d", ErrInvalidSegment, h.TotalSize(), fileSize)
	}
	if h.BufferOffset() != SegmentHeaderSize {
		return fmt.Errorf("%w: buffer offset %d, expected %d", ErrInvalidSegment, h.BufferOffset(), SegmentHeaderSize)
	}
	if h.BufferOffset()+h.BufferLength() != fileSize {
		return fmt.Errorf("%w: buffer length %d inconsistent with file size %d", ErrInvalidSegment, h.BufferLength(), fileSize)
	}

	capacity := int(h.BufferLength()) - broadcast.TrailerLength
	if err := broadcast.CheckCapacity(capacity); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSegment, err)
	}
	return nil
}

// Remove deletes a segment file.
func Remove(path string) error {
	return os.Remove(path)
}

// Exists reports whether a segment file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
