// ABOUTME: Looping file generator
// ABOUTME: Plays a decoded recording (rain, fan, surf) on repeat
package generator

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/harperreed/noisegen-go/pkg/audio/decode"
	"github.com/harperreed/noisegen-go/pkg/audio/resample"
)

// Loop repeats a decoded clip, converted once to the engine's sample rate
type Loop struct {
	controls
	clip *decode.Clip

	mu       sync.Mutex // guards the rendered cache against concurrent fills
	rate     int
	rendered []float32
	pos      int // sample index into rendered, always even
}

// NewLoop creates a generator that plays clip on repeat
func NewLoop(clip *decode.Clip, opts ...Option) *Loop {
	o := applyOptions(opts)
	g := &Loop{clip: clip}
	g.setup(nameOr(o, "Loop"), o)
	return g
}

// LoadLoop decodes the file at path and wraps it in a Loop named after the file
func LoadLoop(path string, opts ...Option) (*Loop, error) {
	clip, err := decode.File(path)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return NewLoop(clip, append([]Option{WithName(name)}, opts...)...), nil
}

// Clip returns the source recording
func (g *Loop) Clip() *decode.Clip {
	return g.clip
}

func (g *Loop) FillBuffer(buf []float32, offset, count, sampleRate int) {
	if count <= 0 || sampleRate <= 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.rate != sampleRate {
		g.render(sampleRate)
	}
	if len(g.rendered) < 2 {
		return
	}

	vol := g.Volume()
	for i := 0; i+1 < count; i += 2 {
		buf[offset+i] += g.rendered[g.pos] * vol
		buf[offset+i+1] += g.rendered[g.pos+1] * vol

		g.pos += 2
		if g.pos >= len(g.rendered) {
			g.pos = 0
		}
	}
}

// render converts the clip to rate, keeping the relative play position
func (g *Loop) render(rate int) {
	var progress float64
	if len(g.rendered) > 0 {
		progress = float64(g.pos) / float64(len(g.rendered))
	}

	g.rendered = resample.All(g.clip.Samples, g.clip.SampleRate, rate, 2)
	g.rate = rate

	g.pos = int(progress*float64(len(g.rendered))) &^ 1
	if g.pos >= len(g.rendered) {
		g.pos = 0
	}
}
