package bridge

import (
	"math"
	"strings"
	"testing"

	"github.com/mbaret/npubridge/internal/ir"
	"github.com/mbaret/npubridge/internal/npu"
)

func TestToPadding(t *testing.T) {
	tests := []struct {
		name string
		pad  []int64
		want npu.Padding
		fail bool
	}{
		{name: "uniform", pad: []int64{2}, want: npu.Padding{Top: 2, Bottom: 2, Left: 2, Right: 2}},
		{name: "height width", pad: []int64{1, 3}, want: npu.Padding{Top: 1, Bottom: 1, Left: 3, Right: 3}},
		{name: "four edges reordered", pad: []int64{1, 2, 3, 4}, want: npu.Padding{Top: 1, Bottom: 3, Left: 2, Right: 4}},
		{name: "empty", pad: nil, fail: true},
		{name: "three", pad: []int64{1, 2, 3}, fail: true},
		{name: "negative", pad: []int64{-1}, fail: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, v := ToPadding(tt.pad)
			if v.Failed() != tt.fail {
				t.Fatalf("Failed() = %v, want %v (%s)", v.Failed(), tt.fail, v)
			}
			if !tt.fail && got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestToPadWidth(t *testing.T) {
	pad, v := ToPadWidth([][2]int64{{0, 0}, {1, 2}, {3, 4}, {0, 0}})
	if v.Failed() {
		t.Fatalf("unexpected violations: %s", v)
	}
	want := npu.Padding{Top: 1, Bottom: 2, Left: 3, Right: 4}
	if pad != want {
		t.Fatalf("got %+v, want %+v", pad, want)
	}

	if _, v := ToPadWidth([][2]int64{{0, 0}, {1, 2}}); !v.Failed() {
		t.Fatal("expected failure for 2 axis entries")
	}
}

func TestToStrideSwapsAxes(t *testing.T) {
	stride, v := ToStride([]int64{2, 3})
	if v.Failed() {
		t.Fatalf("unexpected violations: %s", v)
	}
	if stride != (npu.Stride{X: 3, Y: 2}) {
		t.Fatalf("got %+v, want X=3 Y=2", stride)
	}

	for _, bad := range [][]int64{nil, {1}, {1, 2, 3}} {
		if _, v := ToStride(bad); !v.Failed() {
			t.Fatalf("expected failure for stride %v", bad)
		}
	}
}

func TestCheckDilation(t *testing.T) {
	if v := CheckDilation([]int64{1, 1}); v.Failed() {
		t.Fatalf("unexpected violations: %s", v)
	}
	for _, bad := range [][]int64{{2, 2}, {1, 2}, {1}, nil} {
		v := CheckDilation(bad)
		if !v.Failed() {
			t.Fatalf("expected failure for dilation %v", bad)
		}
		if !strings.Contains(v.String(), "dilation must = [1, 1]") {
			t.Fatalf("message should name the constraint: %q", v.String())
		}
	}
}

func TestToDataType(t *testing.T) {
	if dt, v := ToDataType(ir.Uint8); v.Failed() || dt != npu.Uint8Quantized {
		t.Fatalf("uint8: got %v / %s", dt, v)
	}
	if dt, v := ToDataType(ir.Int32); v.Failed() || dt != npu.Int32Quantized {
		t.Fatalf("int32: got %v / %s", dt, v)
	}
	bad := []ir.DType{
		ir.Float32,
		{Kind: ir.KindInt, Bits: 8, Lanes: 1},
		{Kind: ir.KindUint, Bits: 32, Lanes: 1},
		{Kind: ir.KindUint, Bits: 8, Lanes: 4},
	}
	for _, dt := range bad {
		if _, v := ToDataType(dt); !v.Failed() {
			t.Fatalf("expected failure for dtype %s", dt)
		}
	}
}

func TestToDataFormat(t *testing.T) {
	valid := map[string]npu.DataFormat{
		"NCHW": npu.NCHW, "NHWC": npu.NHWC, "HWIO": npu.HWIO, "HWIM": npu.HWIM,
	}
	for tag, want := range valid {
		got, v := ToDataFormat(tag)
		if v.Failed() || got != want {
			t.Fatalf("%s: got %v / %s", tag, got, v)
		}
	}
	_, v := ToDataFormat("NWHC")
	if !v.Failed() {
		t.Fatal("expected failure for unknown format")
	}
	if !strings.Contains(v.String(), "{NCHW, NHWC, HWIO, HWIM}") {
		t.Fatalf("message should enumerate accepted formats: %q", v.String())
	}
}

func TestToShape(t *testing.T) {
	shape, v := ToShape([]int64{3, 3, 4, 8})
	if v.Failed() {
		t.Fatalf("unexpected violations: %s", v)
	}
	if shape != (npu.TensorShape{3, 3, 4, 8}) {
		t.Fatalf("got %v", shape)
	}

	// Short shapes pad trailing slots with 1.
	shape, v = ToShape([]int64{5, 7})
	if v.Failed() || shape != (npu.TensorShape{5, 7, 1, 1}) {
		t.Fatalf("got %v / %s", shape, v)
	}

	if _, v := ToShape([]int64{1, 2, 3, 4, 5}); !v.Failed() {
		t.Fatal("expected failure for 5 dims")
	}
	if _, v := ToShape([]int64{1, math.MaxUint32 + 1}); !v.Failed() {
		t.Fatal("expected failure for oversized dim")
	}
	// No batch constraint here: weight shapes use ToShape directly.
	if _, v := ToShape([]int64{4, 4}); v.Failed() {
		t.Fatalf("unexpected batch check: %s", v)
	}
}

func TestToActivationShapeBatchConstraint(t *testing.T) {
	if _, v := ToActivationShape([]int64{1, 16, 16, 4}); v.Failed() {
		t.Fatalf("unexpected violations: %s", v)
	}
	_, v := ToActivationShape([]int64{2, 16, 16, 4})
	if !v.Failed() {
		t.Fatal("expected failure for batch size 2")
	}
	if !strings.Contains(v.String(), "batch size must = 1") {
		t.Fatalf("message should name the batch constraint: %q", v.String())
	}
}
