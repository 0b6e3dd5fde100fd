// SPDX-License-Identifier: EPL-2.0

package utils

// PCMScale returns the full-scale magnitude of a signed PCM sample of the
// given bit depth. Unknown depths fall back to 16-bit.
func PCMScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}

// FromPCM converts a signed PCM sample to a float32 in [-1, 1).
func FromPCM(v int, bitDepth int) float32 {
	return float32(v) / PCMScale(bitDepth)
}

// ToPCM clamps x to [-1, 1] and converts it to a signed PCM sample.
// The positive peak maps to max-1 so 1.0 never overflows.
func ToPCM(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	scale := PCMScale(bitDepth)
	if x >= 0 {
		return int(x * (scale - 1))
	}

	return int(x * scale)
}
