package bridge

import (
	"reflect"
	"strings"
	"testing"

	"github.com/mbaret/npubridge/internal/ir"
	"github.com/mbaret/npubridge/internal/npu"
)

func buildSplit(shape []int64, attrs *ir.SplitAttrs) ir.Expr {
	return &ir.Call{
		Op:    ir.OpSplit,
		Args:  []ir.Expr{&ir.Var{Name: "x", Of: &ir.TensorType{Shape: shape, DType: ir.Uint8}}},
		Attrs: attrs,
		Out:   &ir.TensorType{Shape: shape, DType: ir.Uint8},
	}
}

func TestSplitBySections(t *testing.T) {
	expr := buildSplit([]int64{1, 9, 4, 2}, &ir.SplitAttrs{Axis: 1, Sections: int64p(3)})
	params, v := Split(expr)
	if v.Failed() {
		t.Fatalf("unexpected violations: %s", v)
	}
	if params.Split.Axis != 1 {
		t.Fatalf("axis: got %d", params.Split.Axis)
	}
	if !reflect.DeepEqual(params.Split.Sizes, []uint32{3, 3, 3}) {
		t.Fatalf("sizes: got %v", params.Split.Sizes)
	}
	if params.Input.DataType != npu.Uint8Quantized || params.Input.Shape != (npu.TensorShape{1, 9, 4, 2}) {
		t.Fatalf("input descriptor: got %+v", params.Input)
	}
}

func TestSplitBySectionsTruncates(t *testing.T) {
	// 10 / 3 divides truncatingly; the remainder element is dropped.
	expr := buildSplit([]int64{1, 10, 4, 2}, &ir.SplitAttrs{Axis: 1, Sections: int64p(3)})
	params, v := Split(expr)
	if v.Failed() {
		t.Fatalf("unexpected violations: %s", v)
	}
	if !reflect.DeepEqual(params.Split.Sizes, []uint32{3, 3, 3}) {
		t.Fatalf("sizes: got %v", params.Split.Sizes)
	}
}

func TestSplitByIndices(t *testing.T) {
	expr := buildSplit([]int64{1, 12, 4, 2}, &ir.SplitAttrs{Axis: 1, Indices: []int64{3, 7}})
	params, v := Split(expr)
	if v.Failed() {
		t.Fatalf("unexpected violations: %s", v)
	}
	// Segments are consecutive differences plus the trailing remainder.
	if !reflect.DeepEqual(params.Split.Sizes, []uint32{3, 4, 5}) {
		t.Fatalf("sizes: got %v", params.Split.Sizes)
	}
}

func TestSplitAxisOutOfRange(t *testing.T) {
	expr := buildSplit([]int64{1, 12, 4, 2}, &ir.SplitAttrs{Axis: 4, Sections: int64p(2)})
	_, v := Split(expr)
	if !v.Failed() || !strings.Contains(v.String(), "split axis") {
		t.Fatalf("unexpected result: %s", v)
	}
}

func TestSplitRejectsBadIndices(t *testing.T) {
	cases := map[string][]int64{
		"decreasing":      {7, 3},
		"repeated":        {3, 3},
		"beyond the axis": {3, 20},
		"at the axis end": {3, 12},
		"zero first cut":  {0, 4},
	}
	for name, indices := range cases {
		expr := buildSplit([]int64{1, 12, 4, 2}, &ir.SplitAttrs{Axis: 1, Indices: indices})
		_, v := Split(expr)
		if !v.Failed() || !strings.Contains(v.String(), "strictly increasing") {
			t.Errorf("%s: unexpected result: %s", name, v)
		}
	}
}

func TestSplitNeedsSpec(t *testing.T) {
	expr := buildSplit([]int64{1, 12, 4, 2}, &ir.SplitAttrs{Axis: 1})
	_, v := Split(expr)
	if !v.Failed() {
		t.Fatal("expected failure without sections or indices")
	}
}

func TestSplitRejectsNonMatchingTree(t *testing.T) {
	_, v := Split(&ir.Var{Name: "x", Of: &ir.TensorType{DType: ir.Uint8}})
	if !v.Failed() || !strings.Contains(v.String(), "does not match") {
		t.Fatalf("unexpected result: %s", v)
	}
}
