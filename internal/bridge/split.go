package bridge

import (
	"github.com/mbaret/npubridge/internal/ir"
	"github.com/mbaret/npubridge/internal/npu"
)

// SplitParams is the descriptor bundle of a split: the input tensor and
// the per-segment sizes along the split axis.
type SplitParams struct {
	Input npu.TensorInfo
	Split npu.SplitInfo
}

// Split extracts the descriptor bundle of a split. A section count divides
// the axis truncatingly into equal segments; explicit cut indices must be
// strictly increasing within the axis and become consecutive differences
// plus a trailing segment covering the remainder of the axis.
func Split(expr ir.Expr) (SplitParams, Violations) {
	var params SplitParams
	call, ok := asCall(expr, ir.OpSplit, 1)
	if !ok {
		return params, Violationf("expression does not match the split pattern")
	}
	attrs, ok := call.Attrs.(*ir.SplitAttrs)
	if !ok {
		return params, Violationf("expression does not match the split pattern")
	}

	inputType, err := tensorTypeOf(call.Args[0])
	if inputType == nil {
		return params, err
	}
	shape, v := ToActivationShape(inputType.Shape)
	err.Merge(v)
	dt, v := ToDataType(inputType.DType)
	err.Merge(v)
	params.Input = npu.TensorInfo{Shape: shape, DataType: dt, Format: npu.NHWC}

	if attrs.Axis < 0 || attrs.Axis >= 4 {
		err.Addf("split axis=%d, split axis must be in [0, 3]", attrs.Axis)
		return params, err
	}
	params.Split.Axis = uint32(attrs.Axis)
	axisSize := shape[attrs.Axis]

	switch {
	case attrs.Sections != nil:
		sections := *attrs.Sections
		if sections <= 0 {
			err.Addf("sections=%d, sections must be > 0", sections)
			return params, err
		}
		size := axisSize / uint32(sections)
		for i := int64(0); i < sections; i++ {
			params.Split.Sizes = append(params.Split.Sizes, size)
		}
	case attrs.Indices != nil:
		last := int64(0)
		for _, idx := range attrs.Indices {
			if idx <= last || idx >= int64(axisSize) {
				err.Addf("split indices=%v, split indices must be strictly increasing and < %d", attrs.Indices, axisSize)
				return params, err
			}
			params.Split.Sizes = append(params.Split.Sizes, uint32(idx-last))
			last = idx
		}
		params.Split.Sizes = append(params.Split.Sizes, uint32(int64(axisSize)-last))
	default:
		err.Addf("split needs either a section count or explicit indices")
	}
	return params, err
}
