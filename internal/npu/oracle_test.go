package npu

import "testing"

func validInfo() TensorInfo {
	return TensorInfo{
		Shape:        TensorShape{1, 16, 16, 4},
		DataType:     Uint8Quantized,
		Format:       NHWC,
		Quantization: QuantizationInfo{ZeroPoint: 0, Scale: 0.5},
	}
}

func TestReferenceOracleConvolution(t *testing.T) {
	o := ReferenceOracle{}
	bias := validInfo()
	bias.DataType = Int32Quantized
	weights := TensorInfo{Shape: TensorShape{3, 3, 4, 8}, DataType: Uint8Quantized, Format: HWIO}
	conv := ConvolutionInfo{Stride: Stride{X: 1, Y: 1}}

	if !o.IsConvolutionSupported(bias, weights, conv, validInfo()) {
		t.Fatal("expected well-formed bundle to be supported")
	}
	if !o.IsDepthwiseConvolutionSupported(bias, weights, conv, validInfo()) {
		t.Fatal("expected depthwise variant to be supported")
	}

	batched := validInfo()
	batched.Shape[0] = 2
	if o.IsConvolutionSupported(bias, weights, conv, batched) {
		t.Fatal("batched activation must be rejected")
	}
	if o.IsConvolutionSupported(bias, weights, ConvolutionInfo{}, validInfo()) {
		t.Fatal("zero stride must be rejected")
	}
}

func TestReferenceOracleConcatenation(t *testing.T) {
	o := ReferenceOracle{}
	inputs := []TensorInfo{validInfo(), validInfo()}
	if !o.IsConcatenationSupported(inputs, ConcatenationInfo{Axis: 1}) {
		t.Fatal("expected supported")
	}
	if o.IsConcatenationSupported(inputs[:1], ConcatenationInfo{Axis: 1}) {
		t.Fatal("single input must be rejected")
	}
	if o.IsConcatenationSupported(inputs, ConcatenationInfo{Axis: 4}) {
		t.Fatal("axis out of range must be rejected")
	}
}

func TestReferenceOracleSplit(t *testing.T) {
	o := ReferenceOracle{}
	if !o.IsSplitSupported(validInfo(), SplitInfo{Axis: 1, Sizes: []uint32{8, 8}}) {
		t.Fatal("expected supported")
	}
	if o.IsSplitSupported(validInfo(), SplitInfo{Axis: 1}) {
		t.Fatal("empty sizes must be rejected")
	}
	if o.IsSplitSupported(validInfo(), SplitInfo{Axis: 1, Sizes: []uint32{8, 0}}) {
		t.Fatal("zero-sized segment must be rejected")
	}
}
