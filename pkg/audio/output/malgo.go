// ABOUTME: Malgo-based audio output implementation
// ABOUTME: Uses miniaudio via malgo; the device callback drains the slot queue
package output

import (
	"fmt"
	"log"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/harperreed/noisegen-go/pkg/audio"
)

// Malgo output implementation using malgo/miniaudio library
type Malgo struct {
	mu       sync.Mutex
	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device
	queue    *slotQueue
	format   audio.Format
	ready    bool
}

// NewMalgo creates a new Malgo output
func NewMalgo() Sink {
	return &Malgo{}
}

// Open initializes the output device with specified format
func (m *Malgo) Open(format audio.Format, slots, slotSamples int) error {
	if err := checkFormat(format, slots, slotSamples); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ready {
		return fmt.Errorf("malgo output already open")
	}

	if m.malgoCtx == nil {
		ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
		if err != nil {
			return fmt.Errorf("%w: failed to initialize malgo context: %v", ErrDeviceUnavailable, err)
		}
		m.malgoCtx = ctx
	}

	queue := newSlotQueue(slots)

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatS16
	deviceConfig.Playback.Channels = uint32(format.Channels)
	deviceConfig.SampleRate = uint32(format.SampleRate)
	deviceConfig.PeriodSizeInFrames = uint32(slotSamples / format.Channels)
	deviceConfig.Alsa.NoMMap = 1

	onSamples := func(pOutputSample, pInputSamples []byte, frameCount uint32) {
		queue.readBytes(pOutputSample[:int(frameCount)*format.BytesPerFrame()])
	}

	device, err := malgo.InitDevice(m.malgoCtx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onSamples,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to initialize playback device: %v", ErrDeviceUnavailable, err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		return fmt.Errorf("%w: failed to start device: %v", ErrDeviceUnavailable, err)
	}

	m.device = device
	m.queue = queue
	m.format = format
	m.ready = true

	log.Printf("Audio output initialized: %s (malgo, %d x %v)",
		format, slots, format.Duration(slotSamples))

	return nil
}

func (m *Malgo) Prepare(slot int) error {
	if q := m.activeQueue(); q != nil {
		return q.prepare(slot)
	}
	return ErrNotOpen
}

func (m *Malgo) Submit(slot int, pcm []int16) error {
	if q := m.activeQueue(); q != nil {
		return q.submit(slot, pcm)
	}
	return fmt.Errorf("%w: %w", ErrSubmitFailed, ErrNotOpen)
}

func (m *Malgo) IsComplete(slot int) bool {
	if q := m.activeQueue(); q != nil {
		return q.isComplete(slot)
	}
	return true
}

func (m *Malgo) Unprepare(slot int) error {
	if q := m.activeQueue(); q != nil {
		return q.unprepare(slot)
	}
	return ErrNotOpen
}

// Reset stops the device and drops queued slots
func (m *Malgo) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.ready {
		return nil
	}
	if err := m.device.Stop(); err != nil {
		log.Printf("Warning: device stop error: %v", err)
	}
	m.queue.reset()
	return nil
}

// Close releases output resources
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil {
		if err := m.device.Stop(); err != nil {
			log.Printf("Warning: device stop error: %v", err)
		}
		m.device.Uninit()
		m.device = nil
	}

	if m.malgoCtx != nil {
		if err := m.malgoCtx.Uninit(); err != nil {
			log.Printf("Warning: malgo context uninit error: %v", err)
		}
		m.malgoCtx.Free()
		m.malgoCtx = nil
	}

	m.ready = false
	return nil
}

// Underruns returns how many device callbacks found no queued audio
func (m *Malgo) Underruns() uint64 {
	if q := m.activeQueue(); q != nil {
		return q.Underruns()
	}
	return 0
}

func (m *Malgo) activeQueue() *slotQueue {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ready {
		return nil
	}
	return m.queue
}
