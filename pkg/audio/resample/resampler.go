// ABOUTME: Simple linear resampler for converting audio sample rates
// ABOUTME: Used to convert between different sample rates using linear interpolation
package resample

// Resampler performs linear interpolation to convert between sample rates
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	ratio      float64
	position   float64
}

// New creates a new resampler
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		ratio:      float64(inputRate) / float64(outputRate),
		position:   0.0,
	}
}

// Resample converts input samples to output sample rate using linear interpolation
// input: interleaved samples at inputRate
// output: interleaved samples at outputRate
func (r *Resampler) Resample(input []float32, output []float32) int {
	if len(input) == 0 {
		return 0
	}

	inputFrames := len(input) / r.channels
	outputFrames := len(output) / r.channels

	outIdx := 0

	for outIdx < outputFrames {
		inputIdx := int(r.position)

		// Interpolation needs the frame after inputIdx
		if inputIdx >= inputFrames-1 {
			break
		}

		frac := float32(r.position - float64(inputIdx))

		for ch := 0; ch < r.channels; ch++ {
			s1 := input[inputIdx*r.channels+ch]
			s2 := input[(inputIdx+1)*r.channels+ch]
			output[outIdx*r.channels+ch] = s1*(1-frac) + s2*frac
		}

		outIdx++
		r.position += r.ratio
	}

	// Reset position for next chunk, keeping fractional part
	r.position -= float64(int(r.position))

	return outIdx * r.channels
}

// Reset resets the resampler state
func (r *Resampler) Reset() {
	r.position = 0.0
}

// OutputSamplesNeeded calculates how many output samples will be produced from input samples
func (r *Resampler) OutputSamplesNeeded(inputSamples int) int {
	inputFrames := inputSamples / r.channels
	outputFrames := int(float64(inputFrames) / r.ratio)
	return outputFrames * r.channels
}

// InputSamplesNeeded calculates how many input samples are needed to produce output samples
func (r *Resampler) InputSamplesNeeded(outputSamples int) int {
	outputFrames := outputSamples / r.channels
	inputFrames := int(float64(outputFrames) * r.ratio)
	return inputFrames * r.channels
}

// All converts a complete interleaved clip in one call
func All(input []float32, inputRate, outputRate, channels int) []float32 {
	if inputRate == outputRate {
		out := make([]float32, len(input))
		copy(out, input)
		return out
	}
	r := New(inputRate, outputRate, channels)
	out := make([]float32, r.OutputSamplesNeeded(len(input))+channels)
	n := r.Resample(input, out)
	return out[:n]
}
