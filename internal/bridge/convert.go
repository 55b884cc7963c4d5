package bridge

import (
	"math"

	"github.com/mbaret/npubridge/internal/ir"
	"github.com/mbaret/npubridge/internal/npu"
)

// Conversion rules from generic IR shapes, types and attributes into the
// accelerator's normalized forms. Each rule is total over the accelerator's
// restricted domain and reports a violation outside it.

// ToShape converts a generic shape into the fixed four-slot accelerator
// shape, padding unused trailing slots with 1. Weight shapes go through
// this directly; activation shapes additionally need ToActivationShape's
// batch check.
func ToShape(dims []int64) (npu.TensorShape, Violations) {
	shape := npu.TensorShape{1, 1, 1, 1}
	if len(dims) > 4 {
		return shape, Violationf("dimensions=%d, dimensions must be <= 4", len(dims))
	}
	var v Violations
	for i, d := range dims {
		if d < 0 || d > math.MaxUint32 {
			v.Addf("axis size=%d, axis size must be in [0, %d]", d, uint32(math.MaxUint32))
			continue
		}
		shape[i] = uint32(d)
	}
	return shape, v
}

// ToActivationShape converts an activation tensor shape, enforcing the
// accelerator's batch-size-one constraint on the leading dimension.
func ToActivationShape(dims []int64) (npu.TensorShape, Violations) {
	shape, v := ToShape(dims)
	if shape[0] != 1 {
		v.Addf("batch size=%d, batch size must = 1", shape[0])
	}
	return shape, v
}

// ToDataType converts a generic element type into one of the two
// accelerator element kinds.
func ToDataType(dt ir.DType) (npu.DataType, Violations) {
	if dt.Scalar() {
		if dt.Kind == ir.KindUint && dt.Bits == 8 {
			return npu.Uint8Quantized, Violations{}
		}
		if dt.Kind == ir.KindInt && dt.Bits == 32 {
			return npu.Int32Quantized, Violations{}
		}
	}
	return 0, Violationf("dtype='%s', dtype must be either uint8 or int32", dt)
}

// ToDataFormat converts a layout tag into the accelerator layout enum.
func ToDataFormat(layout string) (npu.DataFormat, Violations) {
	switch layout {
	case "NCHW":
		return npu.NCHW, Violations{}
	case "NHWC":
		return npu.NHWC, Violations{}
	case "HWIO":
		return npu.HWIO, Violations{}
	case "HWIM":
		return npu.HWIM, Violations{}
	}
	return 0, Violationf("format=%s, format must be {NCHW, NHWC, HWIO, HWIM}", layout)
}

// ToPadding converts a flat attribute padding list. One element pads all
// four edges uniformly; (height, width) broadcasts to (top=bottom, left=
// right); (top, left, bottom, right) reorders to (top, bottom, left,
// right).
func ToPadding(pad []int64) (npu.Padding, Violations) {
	dim, v := asEdges(pad)
	if v.Failed() {
		return npu.Padding{}, v
	}
	switch len(pad) {
	case 1:
		return npu.Padding{Top: dim[0], Bottom: dim[0], Left: dim[0], Right: dim[0]}, Violations{}
	case 2:
		return npu.Padding{Top: dim[0], Bottom: dim[0], Left: dim[1], Right: dim[1]}, Violations{}
	case 4:
		return npu.Padding{Top: dim[0], Bottom: dim[2], Left: dim[1], Right: dim[3]}, Violations{}
	}
	return npu.Padding{}, Violationf("padding tuple size=%d, padding tuple size must be {1, 2, 4}", len(pad))
}

// ToPadWidth converts the per-axis [low, high] pad width of a standalone
// padding operator, taking the height (1) and width (2) axis pairs.
func ToPadWidth(width [][2]int64) (npu.Padding, Violations) {
	if len(width) != 4 {
		return npu.Padding{}, Violationf("padding tuple size=%d, padding tuple size must = 4", len(width))
	}
	dim, v := asEdges([]int64{width[1][0], width[1][1], width[2][0], width[2][1]})
	if v.Failed() {
		return npu.Padding{}, v
	}
	return npu.Padding{Top: dim[0], Bottom: dim[1], Left: dim[2], Right: dim[3]}, Violations{}
}

// ToStride converts a (height, width) stride list into the accelerator's
// (width, height) stride order.
func ToStride(strides []int64) (npu.Stride, Violations) {
	if len(strides) != 2 {
		return npu.Stride{}, Violationf("stride size=%d, stride size must = 2", len(strides))
	}
	dim, v := asEdges(strides)
	if v.Failed() {
		return npu.Stride{}, v
	}
	return npu.Stride{X: dim[1], Y: dim[0]}, Violations{}
}

// CheckDilation reports a violation unless dilation is exactly [1, 1]; the
// accelerator has no dilation support.
func CheckDilation(dilation []int64) Violations {
	if len(dilation) != 2 || dilation[0] != 1 || dilation[1] != 1 {
		return Violationf("dilation=%v, dilation must = [1, 1]", dilation)
	}
	return Violations{}
}

// asEdges narrows up to four attribute values into uint32.
func asEdges(values []int64) ([4]uint32, Violations) {
	var out [4]uint32
	if len(values) > 4 {
		return out, Violationf("dimensions=%d, dimensions must be <= 4", len(values))
	}
	for i, val := range values {
		if val < 0 || val > math.MaxUint32 {
			return out, Violationf("axis size=%d, axis size must be in [0, %d]", val, uint32(math.MaxUint32))
		}
		out[i] = uint32(val)
	}
	return out, Violations{}
}
