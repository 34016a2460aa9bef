// ABOUTME: Simulated audio sink driven by a virtual clock
// ABOUTME: Records submissions and injects failures for engine tests
package output

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/harperreed/noisegen-go/pkg/audio"
)

// Clock reports elapsed playback time for a Simulated sink
type Clock interface {
	Now() time.Duration
}

// ManualClock is a Clock that only moves when Advance is called
type ManualClock struct {
	mu  sync.Mutex
	now time.Duration
}

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}

// Now returns the total time advanced so far
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// wallClock follows real time from its creation
type wallClock struct {
	start time.Time
}

func (c wallClock) Now() time.Duration {
	return time.Since(c.start)
}

// Submission is one recorded Submit call
type Submission struct {
	Slot int
	At   time.Duration
	PCM  []int16
}

type simSlot struct {
	prepared bool
	pending  bool
	stuck    bool // submit failed; never completes until Reset
	end      time.Duration
	pcm      []int16 // caller's buffer
	snapshot []int16 // contents at submit time
}

// Simulated is an in-memory sink. Each submitted slot starts playing when
// the previous one ends (or immediately if the device has run dry) and
// completes once its duration has elapsed on the clock.
type Simulated struct {
	mu     sync.Mutex
	clock  Clock
	record bool

	format  audio.Format
	slots   []simSlot
	open    bool
	lastEnd time.Duration
	started bool

	openErr  error
	failNext int

	submissions []Submission
	underruns   int
	violations  int

	opens, resets, unprepares, closes int
}

// NewSimulated creates a sink that records every submission
func NewSimulated(clock Clock) *Simulated {
	return &Simulated{clock: clock, record: true}
}

// NewNull creates a sink that discards audio at real-time pace
func NewNull() Sink {
	return &Simulated{clock: wallClock{start: time.Now()}}
}

// FailOpen makes the next Open return err
func (s *Simulated) FailOpen(err error) {
	s.mu.Lock()
	s.openErr = err
	s.mu.Unlock()
}

// FailNext makes the next n submits fail. A failed slot never completes.
func (s *Simulated) FailNext(n int) {
	s.mu.Lock()
	s.failNext = n
	s.mu.Unlock()
}

func (s *Simulated) Open(format audio.Format, slots, slotSamples int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.opens++
	if s.openErr != nil {
		err := s.openErr
		s.openErr = nil
		return err
	}
	if err := checkFormat(format, slots, slotSamples); err != nil {
		return err
	}

	s.format = format
	s.slots = make([]simSlot, slots)
	s.open = true
	s.lastEnd = s.clock.Now()
	s.started = false
	return nil
}

func (s *Simulated) slot(i int) (*simSlot, error) {
	if !s.open {
		return nil, ErrNotOpen
	}
	if i < 0 || i >= len(s.slots) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, i)
	}
	return &s.slots[i], nil
}

func (s *Simulated) Prepare(slot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, err := s.slot(slot)
	if err != nil {
		return err
	}
	sl.prepared = true
	return nil
}

func (s *Simulated) Submit(slot int, pcm []int16) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, err := s.slot(slot)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	if !sl.prepared {
		return fmt.Errorf("%w: slot %d not prepared", ErrSubmitFailed, slot)
	}

	now := s.clock.Now()
	s.settle(sl, now)
	if sl.pending || sl.stuck {
		s.violations++
		return fmt.Errorf("%w: slot %d already queued", ErrSubmitFailed, slot)
	}

	if s.failNext > 0 {
		s.failNext--
		sl.stuck = true
		return fmt.Errorf("%w: injected failure on slot %d", ErrSubmitFailed, slot)
	}

	start := s.lastEnd
	if now > start {
		if s.started {
			s.underruns++
		}
		start = now
	}
	s.started = true
	s.lastEnd = start + s.format.Duration(len(pcm))

	sl.pending = true
	sl.end = s.lastEnd
	sl.pcm = pcm
	sl.snapshot = append(sl.snapshot[:0], pcm...)

	if s.record {
		s.submissions = append(s.submissions, Submission{
			Slot: slot,
			At:   now,
			PCM:  slices.Clone(pcm),
		})
	}
	return nil
}

// settle completes sl if its playback has ended, checking that the caller
// left the buffer alone while it was queued
func (s *Simulated) settle(sl *simSlot, now time.Duration) {
	if !sl.pending {
		return
	}
	if !slices.Equal(sl.pcm, sl.snapshot) {
		s.violations++
		sl.snapshot = append(sl.snapshot[:0], sl.pcm...)
	}
	if now >= sl.end {
		sl.pending = false
		sl.pcm = nil
	}
}

func (s *Simulated) IsComplete(slot int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, err := s.slot(slot)
	if err != nil {
		return false
	}
	s.settle(sl, s.clock.Now())
	return !sl.pending && !sl.stuck
}

func (s *Simulated) Unprepare(slot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unprepares++
	sl, err := s.slot(slot)
	if err != nil {
		return err
	}
	s.settle(sl, s.clock.Now())
	if sl.pending || sl.stuck {
		s.violations++
		return fmt.Errorf("slot %d still playing", slot)
	}
	sl.prepared = false
	return nil
}

// Reset completes every queued or failed slot
func (s *Simulated) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resets++
	for i := range s.slots {
		s.slots[i].pending = false
		s.slots[i].stuck = false
		s.slots[i].pcm = nil
	}
	s.lastEnd = s.clock.Now()
	s.started = false
	return nil
}

func (s *Simulated) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closes++
	s.open = false
	return nil
}

// Submissions returns every recorded submit in order
func (s *Simulated) Submissions() []Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.submissions)
}

// Underruns counts submits that arrived after the device ran dry
func (s *Simulated) Underruns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.underruns
}

// Violations counts slot protocol misuse: writes to a queued buffer,
// resubmitting a queued slot or unpreparing one that is still playing
func (s *Simulated) Violations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.violations
}

// Pending returns how many slots are queued or stuck
func (s *Simulated) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	n := 0
	for i := range s.slots {
		s.settle(&s.slots[i], now)
		if s.slots[i].pending || s.slots[i].stuck {
			n++
		}
	}
	return n
}

// Calls reports how many times Open, Reset, Unprepare and Close ran
func (s *Simulated) Calls() (opens, resets, unprepares, closes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opens, s.resets, s.unprepares, s.closes
}
