package color

import "github.com/chewxy/math32"

// linearToSRGBLUT maps linear values quantized to 12 bits onto sRGB bytes.
var linearToSRGBLUT [4096]uint8

func init() {
	for i := range linearToSRGBLUT {
		s := LinearToSRGB(float32(i) / 4095)
		linearToSRGBLUT[i] = uint8(math32.Max(0, math32.Min(255, s*255+0.5)))
	}
}

// LinearToSRGB8 converts a linear component to an sRGB byte using a lookup
// table. Input outside [0, 1] is clamped.
func LinearToSRGB8(l float32) uint8 {
	if !(l > 0) {
		return 0
	}
	if l >= 1 {
		return 255
	}
	return linearToSRGBLUT[int(l*4095+0.5)]
}
