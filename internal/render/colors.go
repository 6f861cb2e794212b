// Package render turns computed spans into text or HTML. Writers consume
// the sweep-line classification through a span delegate, so the span
// algebra never knows about markup.
package render

import (
	"fmt"
	"math"
	"strconv"
)

// mixGamma is the gamma used for perceptual color averaging.
const mixGamma = 2.2

// MixHexColors averages a set of "#rrggbb" colors in gamma-corrected
// space. A single color is returned unchanged.
func MixHexColors(colors []string) string {
	if len(colors) == 1 {
		return colors[0]
	}
	var acc [3]float64
	for _, c := range colors {
		rgb := hexToFloat(c)
		for i := 0; i < 3; i++ {
			acc[i] += math.Pow(rgb[i], mixGamma) / float64(len(colors))
		}
	}
	for i := 0; i < 3; i++ {
		acc[i] = math.Pow(acc[i], 1/mixGamma)
	}
	return floatToHex(acc)
}

// BlendHexColors mixes two colors with weight t toward b.
func BlendHexColors(a, b string, t float64) string {
	fa, fb := hexToFloat(a), hexToFloat(b)
	var rgb [3]float64
	for i := 0; i < 3; i++ {
		rgb[i] = math.Pow((1-t)*math.Pow(fa[i], mixGamma)+t*math.Pow(fb[i], mixGamma), 1/mixGamma)
	}
	return floatToHex(rgb)
}

func hexToFloat(h string) [3]float64 {
	var rgb [3]float64
	if len(h) != 7 {
		return rgb
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(h[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return [3]float64{}
		}
		rgb[i] = float64(v) / 255.0
	}
	return rgb
}

func floatToHex(rgb [3]float64) string {
	return fmt.Sprintf("#%02x%02x%02x",
		int(rgb[0]*255), int(rgb[1]*255), int(rgb[2]*255))
}
