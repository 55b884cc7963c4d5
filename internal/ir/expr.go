package ir

import (
	"encoding/binary"
	"math"
)

// Operator names recognized by the bridge. The tree itself places no
// restriction on Op; these are the ops the supported fused patterns use.
const (
	OpQuantConv2D      = "quantized.conv2d"
	OpBiasAdd          = "nn.bias_add"
	OpRequantize       = "quantized.requantize"
	OpPad              = "nn.pad"
	OpQuantConcatenate = "quantized.concatenate"
	OpSplit            = "split"
)

// Type is the static type of an expression node: *TensorType or *TupleType.
type Type interface {
	isType()
}

// TensorType is the element type and shape of a tensor-valued expression.
// A scalar constant has an empty Shape.
type TensorType struct {
	Shape []int64
	DType DType
}

func (*TensorType) isType() {}

// TupleType is the type of a tuple-valued expression. Fields holds the
// tensor type of each element, nil for non-tensor elements.
type TupleType struct {
	Fields []*TensorType
}

func (*TupleType) isType() {}

// Expr is one node of an immutable operator expression tree. The bridge
// only ever reads trees; it never builds or rewrites them.
type Expr interface {
	Type() Type
}

// Call is an operator application with positional arguments. Attrs holds
// the operator's attribute struct (see attrs.go), or nil. Out is the
// statically known result type.
type Call struct {
	Op    string
	Args  []Expr
	Attrs any
	Out   *TensorType
}

func (c *Call) Type() Type { return c.Out }

// Constant is a compile-time constant leaf. Data is the little-endian
// backing buffer; its element type and length are pinned by Of, so typed
// reads can be checked instead of reinterpreting bytes.
type Constant struct {
	Of   *TensorType
	Data []byte
}

func (c *Constant) Type() Type { return c.Of }

// Var is a free input leaf.
type Var struct {
	Name string
	Of   *TensorType
}

func (v *Var) Type() Type { return v.Of }

// Tuple groups expressions, e.g. the input list of a concatenation.
type Tuple struct {
	Fields []Expr
}

func (t *Tuple) Type() Type {
	tt := &TupleType{Fields: make([]*TensorType, len(t.Fields))}
	for i, f := range t.Fields {
		if ft, ok := f.Type().(*TensorType); ok {
			tt.Fields[i] = ft
		}
	}
	return tt
}

// ScalarInt32 builds an int32 scalar constant.
func ScalarInt32(v int32) *Constant {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, uint32(v))
	return &Constant{Of: &TensorType{DType: Int32}, Data: data}
}

// ScalarFloat32 builds a float32 scalar constant.
func ScalarFloat32(v float32) *Constant {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, math.Float32bits(v))
	return &Constant{Of: &TensorType{DType: Float32}, Data: data}
}
