package snapshot

import "math"

// QuantRange is the physical value range a product's quantized bytes map
// onto. Byte 0 decodes to Min, byte 255 to Max.
type QuantRange struct {
	Min float64
	Max float64
}

// quantRanges is the fixed per-product range table. Read-only after init;
// products not listed here (including the default "reflectivity") use
// defaultRange.
var quantRanges = map[string]QuantRange{
	"velocity":                  {Min: -100, Max: 100},
	"spectrum_width":            {Min: 0, Max: 64},
	"differential_reflectivity": {Min: -8, Max: 8},
	"differential_phase":        {Min: 0, Max: 360},
	"cross_correlation_ratio":   {Min: 0, Max: 1.1},
}

var defaultRange = QuantRange{Min: -32, Max: 95}

// RangeFor returns the quantization range for a product type. Unknown
// products fall back to the reflectivity range.
func RangeFor(product string) QuantRange {
	if r, ok := quantRanges[product]; ok {
		return r
	}

	return defaultRange
}

// Dequantize maps one quantized byte back to a physical value:
//
//	value = min + (b/255) * (max-min)
//
// The mapping is monotonic non-decreasing in b, with Dequantize(p, 0) == min
// and Dequantize(p, 255) == max exactly.
func Dequantize(product string, b byte) float64 {
	r := RangeFor(product)

	return r.Min + (float64(b)/255.0)*(r.Max-r.Min)
}

// Quantize is the inverse mapping used by the encoder: the physical value is
// clamped to the product's range and rounded to the nearest quantization
// step. Quantize(p, Dequantize(p, b)) == b for every byte b.
func Quantize(product string, value float64) byte {
	r := RangeFor(product)
	if value <= r.Min {
		return 0
	}
	if value >= r.Max {
		return 255
	}

	return byte(math.Round((value - r.Min) / (r.Max - r.Min) * 255.0))
}
