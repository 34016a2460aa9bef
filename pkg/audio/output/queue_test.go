// ABOUTME: Tests for the slot queue
// ABOUTME: Verifies in-order draining, completion flags and underrun counting
package output

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestSlotQueueSubmitRequiresPrepare(t *testing.T) {
	q := newSlotQueue(2)

	err := q.submit(0, []int16{1, 2})
	if !errors.Is(err, ErrSubmitFailed) {
		t.Fatalf("expected ErrSubmitFailed, got %v", err)
	}

	if err := q.prepare(0); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if err := q.submit(0, []int16{1, 2}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if q.isComplete(0) {
		t.Error("slot should be pending after submit")
	}

	if err := q.submit(0, []int16{1, 2}); !errors.Is(err, ErrSubmitFailed) {
		t.Errorf("resubmitting a queued slot should fail, got %v", err)
	}
}

func TestSlotQueueInvalidSlot(t *testing.T) {
	q := newSlotQueue(2)

	if err := q.prepare(2); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("prepare(2) = %v, want ErrInvalidSlot", err)
	}
	if err := q.submit(-1, nil); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("submit(-1) = %v, want ErrInvalidSlot", err)
	}
	if q.isComplete(5) {
		t.Error("out of range slot should not report complete")
	}
}

func TestSlotQueueDrainsInOrder(t *testing.T) {
	q := newSlotQueue(2)
	q.prepare(0)
	q.prepare(1)
	q.submit(1, []int16{1, 2, 3, 4})
	q.submit(0, []int16{5, 6, 7, 8})

	dst := make([]int16, 2)
	q.readSamples(dst)
	if dst[0] != 1 || dst[1] != 2 {
		t.Fatalf("first read = %v, want [1 2]", dst)
	}
	if q.isComplete(1) {
		t.Error("slot 1 complete before all samples read")
	}

	// Read spans the end of slot 1 and the start of slot 0
	dst = make([]int16, 4)
	q.readSamples(dst)
	want := []int16{3, 4, 5, 6}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("second read = %v, want %v", dst, want)
		}
	}
	if !q.isComplete(1) {
		t.Error("slot 1 should be complete")
	}
	if q.isComplete(0) {
		t.Error("slot 0 should still be pending")
	}
	if q.Underruns() != 0 {
		t.Errorf("unexpected underruns: %d", q.Underruns())
	}
}

func TestSlotQueueUnderrunZeroFills(t *testing.T) {
	q := newSlotQueue(1)
	q.prepare(0)
	q.submit(0, []int16{9, 9})

	dst := []int16{-1, -1, -1, -1}
	n := q.readSamples(dst)
	if n != 2 {
		t.Fatalf("read %d samples, want 2", n)
	}
	if dst[2] != 0 || dst[3] != 0 {
		t.Errorf("shortfall not zero filled: %v", dst)
	}
	if q.Underruns() != 1 {
		t.Errorf("underruns = %d, want 1", q.Underruns())
	}
}

func TestSlotQueueReadBytes(t *testing.T) {
	q := newSlotQueue(1)
	q.prepare(0)
	q.submit(0, []int16{0x0102, -2})

	p := make([]byte, 6)
	if n := q.readBytes(p); n != len(p) {
		t.Fatalf("readBytes returned %d, want %d", n, len(p))
	}
	if got := int16(binary.LittleEndian.Uint16(p[0:])); got != 0x0102 {
		t.Errorf("sample 0 = %#x", got)
	}
	if got := int16(binary.LittleEndian.Uint16(p[2:])); got != -2 {
		t.Errorf("sample 1 = %d", got)
	}
	if p[4] != 0 || p[5] != 0 {
		t.Error("tail not silent")
	}
}

func TestSlotQueueResetCompletesAll(t *testing.T) {
	q := newSlotQueue(3)
	for i := 0; i < 3; i++ {
		q.prepare(i)
		q.submit(i, []int16{1, 1})
	}
	for i := 0; i < 3; i++ {
		if q.isComplete(i) {
			t.Fatalf("slot %d complete before playing", i)
		}
	}

	if err := q.unprepare(0); err == nil {
		t.Error("unprepare of a playing slot should fail")
	}

	q.reset()
	for i := 0; i < 3; i++ {
		if !q.isComplete(i) {
			t.Errorf("slot %d not complete after reset", i)
		}
		if err := q.unprepare(i); err != nil {
			t.Errorf("unprepare(%d) after reset: %v", i, err)
		}
	}
	if n := q.readSamples(make([]int16, 2)); n != 0 {
		t.Errorf("read %d samples after reset, want 0", n)
	}
}
