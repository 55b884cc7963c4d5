package bridge

import (
	"encoding/binary"
	"math"

	"github.com/mbaret/npubridge/internal/ir"
)

// Constant resolution. Every read is checked against the constant's own
// declared element type; a mismatch is a violation, never a reinterpreted
// read of foreign bytes.

func constScalar(e ir.Expr, want ir.DType) ([]byte, Violations) {
	c, ok := e.(*ir.Constant)
	if !ok {
		return nil, Violationf("expected constant data")
	}
	if c.Of.DType != want {
		return nil, Violationf("constant dtype=%s, constant dtype must = %s", c.Of.DType, want)
	}
	if len(c.Data) < want.Size() {
		return nil, Violationf("constant buffer holds %d bytes, need %d", len(c.Data), want.Size())
	}
	return c.Data, Violations{}
}

func constInt32(e ir.Expr) (int32, Violations) {
	data, v := constScalar(e, ir.Int32)
	if v.Failed() {
		return 0, v
	}
	return int32(binary.LittleEndian.Uint32(data)), Violations{}
}

func constFloat32(e ir.Expr) (float32, Violations) {
	data, v := constScalar(e, ir.Float32)
	if v.Failed() {
		return 0, v
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(data)), Violations{}
}

// constData returns the raw backing buffer of a constant tensor, borrowed
// for the duration of the capability query.
func constData(e ir.Expr) ([]byte, Violations) {
	c, ok := e.(*ir.Constant)
	if !ok {
		return nil, Violationf("expected constant data")
	}
	return c.Data, Violations{}
}
