package bridge

import (
	"strings"
	"testing"

	"github.com/mbaret/npubridge/internal/ir"
)

func TestConstScalars(t *testing.T) {
	if got, v := constInt32(ir.ScalarInt32(-7)); v.Failed() || got != -7 {
		t.Fatalf("int32: got %d / %s", got, v)
	}
	if got, v := constFloat32(ir.ScalarFloat32(0.25)); v.Failed() || got != 0.25 {
		t.Fatalf("float32: got %v / %s", got, v)
	}
}

func TestConstScalarFailsClosed(t *testing.T) {
	// Not a constant at all.
	if _, v := constInt32(&ir.Var{Name: "x", Of: &ir.TensorType{DType: ir.Int32}}); !v.Failed() {
		t.Fatal("expected failure for non-constant node")
	}

	// Declared dtype disagrees with the requested read: no reinterpretation.
	_, v := constInt32(ir.ScalarFloat32(1))
	if !v.Failed() {
		t.Fatal("expected failure for dtype mismatch")
	}
	if !strings.Contains(v.String(), "constant dtype") {
		t.Fatalf("message should name the dtype mismatch: %q", v.String())
	}
	if _, v := constFloat32(ir.ScalarInt32(1)); !v.Failed() {
		t.Fatal("expected failure for dtype mismatch")
	}

	// Truncated backing buffer.
	short := &ir.Constant{Of: &ir.TensorType{DType: ir.Int32}, Data: []byte{1, 2}}
	if _, v := constInt32(short); !v.Failed() {
		t.Fatal("expected failure for short buffer")
	}
}

func TestConstData(t *testing.T) {
	c := &ir.Constant{Of: &ir.TensorType{Shape: []int64{4}, DType: ir.Uint8}, Data: []byte{1, 2, 3, 4}}
	data, v := constData(c)
	if v.Failed() || len(data) != 4 {
		t.Fatalf("got %v / %s", data, v)
	}
	if _, v := constData(&ir.Var{Name: "w", Of: c.Of}); !v.Failed() {
		t.Fatal("expected failure for non-constant node")
	}
}
