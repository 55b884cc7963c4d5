package bridge

import (
	"github.com/mbaret/npubridge/internal/ir"
	"github.com/mbaret/npubridge/internal/npu"
)

// ConvolutionParams is the descriptor bundle of one fused quantized
// convolution: requantize(bias_add(conv2d(activation[, pad]), weights),
// bias). RawWeights and RawBias borrow the constant backing buffers; the
// oracle inspects raw values for some checks.
type ConvolutionParams struct {
	Activation  npu.TensorInfo
	Weights     npu.TensorInfo
	Bias        npu.TensorInfo
	Conv        npu.ConvolutionInfo
	IsDepthwise bool
	RawWeights  []byte
	RawBias     []byte
}

// conv2dParts is the destructured convolution pattern. pad is nil when no
// standalone padding operator feeds the convolution.
type conv2dParts struct {
	requantize *ir.Call
	biasAdd    *ir.Call
	conv       *ir.Call
	pad        *ir.Call
	attrs      *ir.Conv2DAttrs
	padAttrs   *ir.PadAttrs
}

// matchConv2D verifies the expression conforms to the fused convolution
// shape before any semantic checks run. Upstream pattern matching should
// guarantee this; verifying here keeps a malformed tree a reported
// violation rather than undefined behavior.
func matchConv2D(expr ir.Expr) (conv2dParts, Violations) {
	var p conv2dParts
	requantize, ok := asCall(expr, ir.OpRequantize, 5)
	if !ok {
		return p, Violationf("expression does not match the quantized convolution pattern")
	}
	biasAdd, ok := asCall(requantize.Args[0], ir.OpBiasAdd, 2)
	if !ok {
		return p, Violationf("expression does not match the quantized convolution pattern")
	}
	conv, ok := asCall(biasAdd.Args[0], ir.OpQuantConv2D, 6)
	if !ok {
		return p, Violationf("expression does not match the quantized convolution pattern")
	}
	attrs, ok := conv.Attrs.(*ir.Conv2DAttrs)
	if !ok {
		return p, Violationf("expression does not match the quantized convolution pattern")
	}
	p.requantize, p.biasAdd, p.conv, p.attrs = requantize, biasAdd, conv, attrs

	if pad, ok := asCall(conv.Args[0], ir.OpPad, 1); ok {
		padAttrs, ok := pad.Attrs.(*ir.PadAttrs)
		if !ok {
			return p, Violationf("expression does not match the quantized convolution pattern")
		}
		p.pad, p.padAttrs = pad, padAttrs
	}

	var v Violations
	if _, ok := conv.Args[1].(*ir.Constant); !ok {
		v.Addf("expected constant weights")
	}
	if _, ok := biasAdd.Args[1].(*ir.Constant); !ok {
		v.Addf("expected constant bias")
	}
	return p, v
}

// QuantizedConv2D extracts the descriptor bundle of a fused quantized
// convolution. All independent checks are attempted and their violations
// merged, so a single call reports every problem at once.
func QuantizedConv2D(expr ir.Expr) (ConvolutionParams, Violations) {
	var params ConvolutionParams
	parts, err := matchConv2D(expr)
	if parts.conv == nil {
		return params, err
	}
	conv, attrs := parts.conv, parts.attrs

	// Quantization scalars come from the convolution's own arguments, the
	// output pair from the requantize operator.
	inputZP, v := constInt32(conv.Args[2])
	err.Merge(v)
	kernelZP, v := constInt32(conv.Args[3])
	err.Merge(v)
	outputZP, v := constInt32(parts.requantize.Args[4])
	err.Merge(v)
	inputScale, v := constFloat32(conv.Args[4])
	err.Merge(v)
	kernelScale, v := constFloat32(conv.Args[5])
	err.Merge(v)
	outputScale, v := constFloat32(parts.requantize.Args[3])
	err.Merge(v)

	dataQ := npu.QuantizationInfo{ZeroPoint: inputZP, Scale: inputScale}
	weightsQ := npu.QuantizationInfo{ZeroPoint: kernelZP, Scale: kernelScale}
	// Affine requantization identity for a bias added before requantize.
	biasQ := npu.QuantizationInfo{ZeroPoint: 0, Scale: dataQ.Scale * weightsQ.Scale}
	outputQ := npu.QuantizationInfo{ZeroPoint: outputZP, Scale: outputScale}

	var padding npu.Padding
	if parts.pad != nil {
		// Attribute padding must be all-zero when a standalone pad operator
		// is present; both at once is an ambiguous specification.
		attrPad, _ := ToPadding(attrs.Padding)
		if attrPad != (npu.Padding{}) {
			err.Addf("both op and attr padding exist, must be either op/attr only or no padding")
		}
		padding, v = ToPadWidth(parts.padAttrs.PadWidth)
		err.Merge(v)
	} else {
		padding, v = ToPadding(attrs.Padding)
		err.Merge(v)
	}
	stride, v := ToStride(attrs.Strides)
	err.Merge(v)
	err.Merge(CheckDilation(attrs.Dilation))
	params.Conv = npu.ConvolutionInfo{Padding: padding, Stride: stride, OutputQuantization: outputQ}

	dataInput := conv.Args[0]
	if parts.pad != nil {
		dataInput = parts.pad.Args[0]
	}
	dataType, v := tensorTypeOf(dataInput)
	err.Merge(v)
	if dataType != nil {
		shape, v := ToActivationShape(dataType.Shape)
		err.Merge(v)
		dt, v := ToDataType(dataType.DType)
		err.Merge(v)
		params.Activation = npu.TensorInfo{Shape: shape, DataType: dt, Format: npu.NHWC, Quantization: dataQ}
	}

	// One group per declared output channel, excluding the single-group
	// degenerate case.
	params.IsDepthwise = attrs.Channels != nil && *attrs.Channels == attrs.Groups && attrs.Groups != 1

	weightsType, v := tensorTypeOf(conv.Args[1])
	err.Merge(v)
	var weightsShape npu.TensorShape
	if weightsType != nil {
		// Weights carry no batch axis, so the batch check does not apply.
		weightsShape, _ = ToShape(weightsType.Shape)
		dt, v := ToDataType(weightsType.DType)
		err.Merge(v)
		layout := "HWIO"
		if params.IsDepthwise {
			layout = "HWIM"
		}
		format, v := ToDataFormat(layout)
		err.Merge(v)
		params.Weights = npu.TensorInfo{Shape: weightsShape, DataType: dt, Format: format, Quantization: weightsQ}
	}
	// matchConv2D already reported non-constant weights or bias; the raw
	// buffers stay empty in that case.
	if raw, cv := constData(conv.Args[1]); !cv.Failed() {
		params.RawWeights = raw
	}

	outChannels := weightsShape[3]
	if params.IsDepthwise {
		outChannels = weightsShape[2]
	}
	params.Bias = npu.TensorInfo{
		Shape:        npu.TensorShape{1, 1, 1, outChannels},
		DataType:     npu.Int32Quantized,
		Format:       npu.NHWC,
		Quantization: biasQ,
	}
	if raw, cv := constData(parts.biasAdd.Args[1]); !cv.Failed() {
		params.RawBias = raw
	}
	return params, err
}

// asCall destructures an expression as a call to op with at least arity
// arguments.
func asCall(e ir.Expr, op string, arity int) (*ir.Call, bool) {
	c, ok := e.(*ir.Call)
	if !ok || c.Op != op || len(c.Args) < arity {
		return nil, false
	}
	return c, true
}

func tensorTypeOf(e ir.Expr) (*ir.TensorType, Violations) {
	t, ok := e.Type().(*ir.TensorType)
	if !ok || t == nil {
		return nil, Violationf("expected a tensor-typed operand")
	}
	return t, Violations{}
}
