package toolpath

// FeedRate modulates base by luminance. White (1) prints at base, black (0)
// at base*embossFactor, linear in between. Slower feed deposits more
// plastic per millimetre, so darker pixels stand proud of the wall.
//
// The evaluation order is fixed so F values round the same way as existing
// programs; the conversion keeps the product from being fused into an FMA.
func FeedRate(base, luminance, embossFactor float64) float64 {
	return base - float64(base*((1-luminance)*(1-embossFactor)))
}
