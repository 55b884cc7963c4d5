package npu

// Oracle answers capability queries against fully normalized descriptors.
// Implementations must be safe for concurrent use; queries are pure reads.
//
// The production implementation wraps the vendor support library. Builds
// without it use ReferenceOracle.
type Oracle interface {
	IsConvolutionSupported(bias, weights TensorInfo, conv ConvolutionInfo, activation TensorInfo) bool
	IsDepthwiseConvolutionSupported(bias, weights TensorInfo, conv ConvolutionInfo, activation TensorInfo) bool
	IsConcatenationSupported(inputs []TensorInfo, concat ConcatenationInfo) bool
	IsSplitSupported(input TensorInfo, split SplitInfo) bool
}

// ReferenceOracle is a software stand-in for the vendor capability library.
// It accepts any structurally well-formed descriptor bundle: callers get
// consistent verdicts for testing and for builds where the driver is not
// linked, without claiming knowledge of per-generation hardware limits.
type ReferenceOracle struct{}

func (ReferenceOracle) IsConvolutionSupported(bias, weights TensorInfo, conv ConvolutionInfo, activation TensorInfo) bool {
	return validTensor(activation, true) && validTensor(weights, false) && validTensor(bias, true) &&
		conv.Stride.X > 0 && conv.Stride.Y > 0
}

func (o ReferenceOracle) IsDepthwiseConvolutionSupported(bias, weights TensorInfo, conv ConvolutionInfo, activation TensorInfo) bool {
	return o.IsConvolutionSupported(bias, weights, conv, activation)
}

func (ReferenceOracle) IsConcatenationSupported(inputs []TensorInfo, concat ConcatenationInfo) bool {
	if len(inputs) < 2 || concat.Axis >= 4 {
		return false
	}
	for _, in := range inputs {
		if !validTensor(in, true) {
			return false
		}
	}
	return true
}

func (ReferenceOracle) IsSplitSupported(input TensorInfo, split SplitInfo) bool {
	if !validTensor(input, true) || split.Axis >= 4 || len(split.Sizes) == 0 {
		return false
	}
	for _, s := range split.Sizes {
		if s == 0 {
			return false
		}
	}
	return true
}

func validTensor(t TensorInfo, batched bool) bool {
	if batched && t.Shape[0] != 1 {
		return false
	}
	for _, d := range t.Shape {
		if d == 0 {
			return false
		}
	}
	switch t.DataType {
	case Uint8Quantized, Int32Quantized:
	default:
		return false
	}
	switch t.Format {
	case NCHW, NHWC, HWIO, HWIM:
	default:
		return false
	}
	return true
}
