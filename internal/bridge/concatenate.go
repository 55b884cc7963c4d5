package bridge

import (
	"github.com/mbaret/npubridge/internal/ir"
	"github.com/mbaret/npubridge/internal/npu"
)

// ConcatenateParams is the descriptor bundle of a quantized concatenation:
// one tensor descriptor per input in input order, plus the axis and output
// quantization.
type ConcatenateParams struct {
	Inputs []npu.TensorInfo
	Concat npu.ConcatenationInfo
}

type concatenateParts struct {
	call       *ir.Call
	attrs      *ir.ConcatenateAttrs
	inputTypes []*ir.TensorType
	scales     []ir.Expr
	zeroPoints []ir.Expr
}

func matchConcatenate(expr ir.Expr) (concatenateParts, Violations) {
	var p concatenateParts
	call, ok := asCall(expr, ir.OpQuantConcatenate, 5)
	if !ok {
		return p, Violationf("expression does not match the quantized concatenation pattern")
	}
	attrs, ok := call.Attrs.(*ir.ConcatenateAttrs)
	if !ok {
		return p, Violationf("expression does not match the quantized concatenation pattern")
	}
	inputs, ok := call.Args[0].Type().(*ir.TupleType)
	if !ok {
		return p, Violationf("expression does not match the quantized concatenation pattern")
	}
	scales, ok := call.Args[1].(*ir.Tuple)
	if !ok {
		return p, Violationf("expression does not match the quantized concatenation pattern")
	}
	zeroPoints, ok := call.Args[2].(*ir.Tuple)
	if !ok {
		return p, Violationf("expression does not match the quantized concatenation pattern")
	}
	if len(scales.Fields) != len(inputs.Fields) || len(zeroPoints.Fields) != len(inputs.Fields) {
		return p, Violationf("%d inputs with %d scales and %d zero points, all three must match",
			len(inputs.Fields), len(scales.Fields), len(zeroPoints.Fields))
	}
	p.call, p.attrs = call, attrs
	p.inputTypes = inputs.Fields
	p.scales = scales.Fields
	p.zeroPoints = zeroPoints.Fields
	return p, Violations{}
}

// QuantizedConcatenate extracts the descriptor bundle of a quantized
// concatenation. Per-input resolution failures all merge into the one
// returned Violations.
func QuantizedConcatenate(expr ir.Expr) (ConcatenateParams, Violations) {
	var params ConcatenateParams
	parts, err := matchConcatenate(expr)
	if parts.call == nil {
		return params, err
	}

	outputScale, v := constFloat32(parts.call.Args[3])
	err.Merge(v)
	outputZP, v := constInt32(parts.call.Args[4])
	err.Merge(v)
	params.Concat = npu.ConcatenationInfo{
		Axis:               uint32(parts.attrs.Axis),
		OutputQuantization: npu.QuantizationInfo{ZeroPoint: outputZP, Scale: outputScale},
	}

	for i, inputType := range parts.inputTypes {
		scale, v := constFloat32(parts.scales[i])
		err.Merge(v)
		zp, v := constInt32(parts.zeroPoints[i])
		err.Merge(v)

		info := npu.TensorInfo{
			Shape:        npu.TensorShape{1, 1, 1, 1},
			Format:       npu.NHWC,
			Quantization: npu.QuantizationInfo{ZeroPoint: zp, Scale: scale},
		}
		if inputType == nil {
			err.Addf("concatenation input %d is not tensor typed", i)
		} else {
			shape, v := ToActivationShape(inputType.Shape)
			err.Merge(v)
			dt, v := ToDataType(inputType.DType)
			err.Merge(v)
			info.Shape, info.DataType = shape, dt
		}
		params.Inputs = append(params.Inputs, info)
	}
	return params, err
}
