// Package gain provides scalar gain operations.
package gain

// MaxPercent is the plain value of unity gain.
const MaxPercent = 100.0

// PercentToLinear converts a 0-100 % gain to a linear factor. Values
// outside the range are clamped.
func PercentToLinear(percent float64) float32 {
	switch {
	case percent <= 0:
		return 0
	case percent >= MaxPercent:
		return 1
	}
	return float32(percent / MaxPercent)
}

// Apply applies a gain factor to a sample.
func Apply(sample, gain float32) float32 {
	return sample * gain
}

// ApplyBuffer applies gain to an entire buffer in-place.
func ApplyBuffer(buffer []float32, gain float32) {
	if gain == 1 {
		return
	}
	for i := range buffer {
		buffer[i] = Apply(buffer[i], gain)
	}
}
