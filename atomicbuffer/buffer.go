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

// Package atomicbuffer provides a flat byte buffer with plain and
// release/acquire-ordered 32/64-bit accessors. It is the access layer for
// structures kept in shared memory; the backing slice is typically a
// memory-mapped region visible to multiple processes.
//
// Plain accessors compile to ordinary loads and stores; Volatile loads and
// Ordered stores go through sync/atomic, which on Go's memory model gives
// them sequentially consistent (and therefore acquire/release) semantics.
package atomicbuffer

import (
	"errors"
	"fmt"
	"sync/atomic"
	"unsafe"
)

// ErrUnaligned indicates the backing slice does not start on an 8-byte
// boundary, which the 64-bit atomic accessors require.
var ErrUnaligned = errors.New("atomicbuffer: backing slice not 8-byte aligned")

// Buffer wraps a byte slice for word-level access. The zero value is not
// usable; construct with Wrap or Make.
type Buffer struct {
	data []byte
}

// Wrap returns a Buffer over data. The slice must begin on an 8-byte boundary
// so that the atomic accessors are legal on all supported architectures;
// mmapped regions are page-aligned and always satisfy this.
func Wrap(data []byte) (*Buffer, error) {
	if len(data) > 0 && uintptr(unsafe.Pointer(&data[0]))&7 != 0 {
		return nil, ErrUnaligned
	}
	return &Buffer{data: data}, nil
}

// Make allocates a zeroed, 8-byte aligned buffer of the given length.
// Intended for tests and in-process use; cross-process buffers come from
// mapped files.
func Make(length int) *Buffer {
	if length == 0 {
		return &Buffer{}
	}
	words := make([]uint64, (length+7)/8)
	data := unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), length)
	return &Buffer{data: data}
}

// Capacity returns the length of the underlying slice in bytes.
func (b *Buffer) Capacity() int {
	return len(b.data)
}

func (b *Buffer) int32Ptr(offset int) *int32 {
	_ = b.data[offset : offset+4]
	return (*int32)(unsafe.Pointer(&b.data[offset]))
}

func (b *Buffer) int64Ptr(offset int) *int64 {
	_ = b.data[offset : offset+8]
	if offset&7 != 0 {
		panic(fmt.Sprintf("atomicbuffer: misaligned 64-bit access at offset %d", offset))
	}
	return (*int64)(unsafe.Pointer(&b.data[offset]))
}

// GetInt32 performs a plain 32-bit load at offset.
func (b *Buffer) GetInt32(offset int) int32 {
	return *b.int32Ptr(offset)
}

// PutInt32 performs a plain 32-bit store at offset.
func (b *Buffer) PutInt32(offset int, value int32) {
	*b.int32Ptr(offset) = value
}

// GetInt64 performs a plain 64-bit load at offset.
func (b *Buffer) GetInt64(offset int) int64 {
	return *b.int64Ptr(offset)
}

// PutInt64 performs a plain 64-bit store at offset.
func (b *Buffer) PutInt64(offset int, value int64) {
	*b.int64Ptr(offset) = value
}

// GetInt32Volatile performs an acquire 32-bit load at offset.
func (b *Buffer) GetInt32Volatile(offset int) int32 {
	return atomic.LoadInt32(b.int32Ptr(offset))
}

// PutInt32Ordered performs a release 32-bit store at offset.
func (b *Buffer) PutInt32Ordered(offset int, value int32) {
	atomic.StoreInt32(b.int32Ptr(offset), value)
}

// GetInt64Volatile performs an acquire 64-bit load at offset.
func (b *Buffer) GetInt64Volatile(offset int) int64 {
	return atomic.LoadInt64(b.int64Ptr(offset))
}

// PutInt64Ordered performs a release 64-bit store at offset.
func (b *Buffer) PutInt64Ordered(offset int, value int64) {
	atomic.StoreInt64(b.int64Ptr(offset), value)
}

// PutBytes copies src into the buffer starting at offset.
func (b *Buffer) PutBytes(offset int, src []byte) {
	copy(b.data[offset:offset+len(src)], src)
}

// GetBytes copies length bytes starting at offset into a new slice.
func (b *Buffer) GetBytes(offset, length int) []byte {
	dst := make([]byte, length)
	copy(dst, b.data[offset:offset+length])
	return dst
}

// GetBytesInto copies length bytes starting at offset into dst.
func (b *Buffer) GetBytesInto(dst []byte, offset, length int) {
	copy(dst[:length], b.data[offset:offset+length])
}

// fenceWord is the target of the standalone fences below. It sits alone so
// the read-modify-write never contends with application data.
var fenceWord struct {
	_ [56]byte
	w int64
	_ [56]byte
}

// ReleaseFence orders all prior writes in program order before any subsequent
// write, as observed by other threads or processes mapping the same memory.
func ReleaseFence() {
	atomic.AddInt64(&fenceWord.w, 1)
}

// AcquireFence orders all subsequent reads in program order after any prior
// read.
func AcquireFence() {
	atomic.LoadInt64(&fenceWord.w)
}
