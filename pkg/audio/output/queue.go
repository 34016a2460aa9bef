// ABOUTME: Slot queue shared by callback-driven backends
// ABOUTME: Device threads drain submitted slots in order and flag them complete
package output

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/harperreed/noisegen-go/pkg/audio"
)

// slotQueue turns a pull-style device callback into per-slot completion
// flags. Submit appends a slot to the play order; the device thread reads
// samples from the head slot and sets its done flag once every sample has
// been handed to the device.
type slotQueue struct {
	mu       sync.Mutex
	pcm      [][]int16
	prepared []bool
	done     []atomic.Bool
	order    []int // submitted slots in play order
	readPos  int   // next sample in the head slot

	scratch []int16

	underruns atomic.Uint64
}

func newSlotQueue(slots int) *slotQueue {
	q := &slotQueue{
		pcm:      make([][]int16, slots),
		prepared: make([]bool, slots),
		done:     make([]atomic.Bool, slots),
		order:    make([]int, 0, slots),
	}
	for i := range q.done {
		q.done[i].Store(true)
	}
	return q
}

func (q *slotQueue) valid(slot int) bool {
	return slot >= 0 && slot < len(q.pcm)
}

func (q *slotQueue) prepare(slot int) error {
	if !q.valid(slot) {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	q.mu.Lock()
	q.prepared[slot] = true
	q.mu.Unlock()
	return nil
}

func (q *slotQueue) unprepare(slot int) error {
	if !q.valid(slot) {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.done[slot].Load() {
		return fmt.Errorf("slot %d still playing", slot)
	}
	q.prepared[slot] = false
	q.pcm[slot] = nil
	return nil
}

func (q *slotQueue) submit(slot int, pcm []int16) error {
	if !q.valid(slot) {
		return fmt.Errorf("%w: %w: %d", ErrSubmitFailed, ErrInvalidSlot, slot)
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.prepared[slot] {
		return fmt.Errorf("%w: slot %d not prepared", ErrSubmitFailed, slot)
	}
	if !q.done[slot].Load() {
		return fmt.Errorf("%w: slot %d already queued", ErrSubmitFailed, slot)
	}
	q.pcm[slot] = pcm
	q.done[slot].Store(false)
	q.order = append(q.order, slot)
	return nil
}

func (q *slotQueue) isComplete(slot int) bool {
	if !q.valid(slot) {
		return false
	}
	return q.done[slot].Load()
}

// readSamples fills dst from the queued slots in order. Any shortfall is
// zero-filled and counted as an underrun. Called from the device thread.
func (q *slotQueue) readSamples(dst []int16) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for n < len(dst) && len(q.order) > 0 {
		head := q.order[0]
		src := q.pcm[head][q.readPos:]
		c := copy(dst[n:], src)
		n += c
		q.readPos += c

		if q.readPos >= len(q.pcm[head]) {
			q.order = q.order[1:]
			q.readPos = 0
			q.done[head].Store(true)
		}
	}

	if n < len(dst) {
		clear(dst[n:])
		q.underruns.Add(1)
	}
	return n
}

// readBytes fills p with little-endian s16 data; always fills all of p
func (q *slotQueue) readBytes(p []byte) int {
	samples := len(p) / 2
	if cap(q.scratch) < samples {
		q.scratch = make([]int16, samples)
	}
	buf := q.scratch[:samples]
	q.readSamples(buf)
	audio.PutInt16LE(p, buf)
	clear(p[samples*2:])
	return len(p)
}

// reset drops everything queued and marks all slots complete
func (q *slotQueue) reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, slot := range q.order {
		q.done[slot].Store(true)
	}
	q.order = q.order[:0]
	q.readPos = 0
}

// Underruns returns how many device reads found the queue short
func (q *slotQueue) Underruns() uint64 {
	return q.underruns.Load()
}

