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
	"bytes"
	"errors"
	"testing"
)

func newTestPair(t *testing.T, capacity int) (*Transmitter, *Receiver) {
	t.Helper()
	buf := newTestBuffer(t, capacity)
	tx, err := NewTransmitter(buf)
	if err != nil {
		t.Fatalf("NewTransmitter failed: %v", err)
	}
	rx, err := NewReceiver(buf)
	if err != nil {
		t.Fatalf("NewReceiver failed: %v", err)
	}
	return tx, rx
}

func TestReceiverRejectsInvalidCapacity(t *testing.T) {
	buf := newTestBuffer(t, 768)
	if _, err := NewReceiver(buf); !errors.Is(err, ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
}

func TestReceiverSeesNothingOnEmptyRing(t *testing.T) {
	_, rx := newTestPair(t, testCapacity)

	if rx.ReceiveNext() {
		t.Fatal("ReceiveNext returned true on empty ring")
	}
}

func TestReceiverReadsTransmittedRecords(t *testing.T) {
	tx, rx := newTestPair(t, testCapacity)

	messages := [][]byte{
		repeat(0x11, 8),
		repeat(0x22, 3),
		repeat(0x33, 100),
	}
	typeIDs := []int32{7, 9, 42}

	for i, msg := range messages {
		if err := tx.Transmit(typeIDs[i], msg, 0, len(msg)); err != nil {
			t.Fatalf("Transmit %d failed: %v", i, err)
		}
	}

	for i, expected := range messages {
		if !rx.ReceiveNext() {
			t.Fatalf("ReceiveNext returned false before message %d", i)
		}
		if rx.TypeID() != typeIDs[i] {
			t.Fatalf("message %d: expected type id %d, got %d", i, typeIDs[i], rx.TypeID())
		}
		if rx.Length() != len(expected) {
			t.Fatalf("message %d: expected length %d, got %d", i, len(expected), rx.Length())
		}
		got := rx.Buffer().GetBytes(rx.Offset(), rx.Length())
		if !rx.Validate() {
			t.Fatalf("message %d: validate failed", i)
		}
		if !bytes.Equal(got, expected) {
			t.Fatalf("message %d: payload mismatch: expected %x, got %x", i, expected, got)
		}
	}

	if rx.ReceiveNext() {
		t.Fatal("ReceiveNext returned true after all messages consumed")
	}
	if rx.LappedCount() != 0 {
		t.Fatalf("expected lapped count 0, got %d", rx.LappedCount())
	}
}

func TestReceiverSkipsPaddingAcrossWrap(t *testing.T) {
	tx, rx := newTestPair(t, testCapacity)

	// Maximum-size payloads give 136-byte aligned records; the eighth does
	// not fit in the 72 bytes left before end-of-buffer, forcing a padding
	// record that the receiver must skip transparently.
	const count = 10
	for i := 0; i < count; i++ {
		msg := repeat(byte(i+1), testCapacity/8)
		if err := tx.Transmit(int32(i+1), msg, 0, len(msg)); err != nil {
			t.Fatalf("Transmit %d failed: %v", i, err)
		}

		if !rx.ReceiveNext() {
			t.Fatalf("ReceiveNext returned false for message %d", i)
		}
		if rx.TypeID() != int32(i+1) {
			t.Fatalf("message %d: expected type id %d, got %d", i, i+1, rx.TypeID())
		}
		got := rx.Buffer().GetBytes(rx.Offset(), rx.Length())
		if !rx.Validate() {
			t.Fatalf("message %d: validate failed", i)
		}
		if !bytes.Equal(got, repeat(byte(i+1), testCapacity/8)) {
			t.Fatalf("message %d: payload mismatch", i)
		}
	}

	if rx.LappedCount() != 0 {
		t.Fatalf("expected lapped count 0, got %d", rx.LappedCount())
	}
}

func TestReceiverDetectsLap(t *testing.T) {
	tx, rx := newTestPair(t, testCapacity)

	// Fill well past one full capacity without consuming.
	var lastMsg []byte
	var lastTypeID int32
	for i := 0; i < 40; i++ {
		lastMsg = repeat(byte(i), 64)
		lastTypeID = int32(i + 1)
		if err := tx.Transmit(lastTypeID, lastMsg, 0, len(lastMsg)); err != nil {
			t.Fatalf("Transmit %d failed: %v", i, err)
		}
	}

	if !rx.ReceiveNext() {
		t.Fatal("ReceiveNext returned false on full ring")
	}
	if rx.LappedCount() != 1 {
		t.Fatalf("expected lapped count 1, got %d", rx.LappedCount())
	}

	// After resynchronising, the receiver is on the latest record.
	if rx.TypeID() != lastTypeID {
		t.Fatalf("expected latest type id %d, got %d", lastTypeID, rx.TypeID())
	}
	got := rx.Buffer().GetBytes(rx.Offset(), rx.Length())
	if !rx.Validate() {
		t.Fatal("validate failed on latest record")
	}
	if !bytes.Equal(got, lastMsg) {
		t.Fatal("latest record payload mismatch after lap")
	}
}

func TestCopyReceiverDeliversMessages(t *testing.T) {
	buf := newTestBuffer(t, testCapacity)
	tx, err := NewTransmitter(buf)
	if err != nil {
		t.Fatalf("NewTransmitter failed: %v", err)
	}
	rx, err := NewReceiver(buf)
	if err != nil {
		t.Fatalf("NewReceiver failed: %v", err)
	}
	copyRx := NewCopyReceiver(rx)

	messages := [][]byte{
		repeat(0x5A, 16),
		repeat(0xA5, 1),
		{},
	}
	for i, msg := range messages {
		if err := tx.Transmit(int32(i+1), msg, 0, len(msg)); err != nil {
			t.Fatalf("Transmit %d failed: %v", i, err)
		}
	}

	var received [][]byte
	var receivedTypes []int32
	for {
		n, err := copyRx.Receive(func(msgTypeID int32, data []byte) {
			received = append(received, append([]byte(nil), data...))
			receivedTypes = append(receivedTypes, msgTypeID)
		})
		if err != nil {
			t.Fatalf("Receive failed: %v", err)
		}
		if n == 0 {
			break
		}
	}

	if len(received) != len(messages) {
		t.Fatalf("expected %d messages, got %d", len(messages), len(received))
	}
	for i := range messages {
		if receivedTypes[i] != int32(i+1) {
			t.Fatalf("message %d: expected type id %d, got %d", i, i+1, receivedTypes[i])
		}
		if !bytes.Equal(received[i], messages[i]) {
			t.Fatalf("message %d: payload mismatch", i)
		}
	}
}

func TestCopyReceiverStartsAtCurrentTail(t *testing.T) {
	buf := newTestBuffer(t, testCapacity)
	tx, err := NewTransmitter(buf)
	if err != nil {
		t.Fatalf("NewTransmitter failed: %v", err)
	}

	// Records published before the copy receiver is constructed are not
	// delivered.
	if err := tx.Transmit(1, repeat(0x01, 8), 0, 8); err != nil {
		t.Fatalf("Transmit failed: %v", err)
	}

	rx, err := NewReceiver(buf)
	if err != nil {
		t.Fatalf("NewReceiver failed: %v", err)
	}
	copyRx := NewCopyReceiver(rx)

	n, err := copyRx.Receive(func(int32, []byte) {})
	if err != nil {
		t.Fatalf("Receive failed: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no messages, got %d", n)
	}
}

func TestCopyReceiverReportsLap(t *testing.T) {
	buf := newTestBuffer(t, testCapacity)
	tx, err := NewTransmitter(buf)
	if err != nil {
		t.Fatalf("NewTransmitter failed: %v", err)
	}
	rx, err := NewReceiver(buf)
	if err != nil {
		t.Fatalf("NewReceiver failed: %v", err)
	}
	copyRx := NewCopyReceiver(rx)

	for i := 0; i < 40; i++ {
		if err := tx.Transmit(1, repeat(byte(i), 64), 0, 64); err != nil {
			t.Fatalf("Transmit %d failed: %v", i, err)
		}
	}

	if _, err := copyRx.Receive(func(int32, []byte) {}); !errors.Is(err, ErrLapped) {
		t.Fatalf("expected ErrLapped, got %v", err)
	}

	// The receiver resynchronised at the latest record; deliveries resume
	// with the next publication.
	expected := repeat(0xF0, 8)
	if err := tx.Transmit(2, expected, 0, len(expected)); err != nil {
		t.Fatalf("Transmit after lap failed: %v", err)
	}

	var got []byte
	n, err := copyRx.Receive(func(msgTypeID int32, data []byte) {
		got = append([]byte(nil), data...)
	})
	if err != nil {
		t.Fatalf("Receive after lap failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 message after lap, got %d", n)
	}
	if !bytes.Equal(got, expected) {
		t.Fatal("payload mismatch after lap")
	}
}
