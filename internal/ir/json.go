package ir

import (
	"encoding/binary"
	"fmt"
	"math"

	json "github.com/goccy/go-json"
)

// JSON codec for expression trees. Nodes are encoded as a tagged union with
// exactly one of "call", "const", "var" or "tuple" set; call attributes are
// decoded according to the operator name. Scalar constants round-trip as
// plain numbers, tensor constants as base64 data.

type typeJSON struct {
	Shape []int64 `json:"shape"`
	DType string  `json:"dtype"`
}

type exprJSON struct {
	Call  *callJSON  `json:"call,omitempty"`
	Const *constJSON `json:"const,omitempty"`
	Var   *varJSON   `json:"var,omitempty"`
	Tuple *tupleJSON `json:"tuple,omitempty"`
}

type callJSON struct {
	Op    string          `json:"op"`
	Args  []exprJSON      `json:"args"`
	Attrs json.RawMessage `json:"attrs,omitempty"`
	Type  *typeJSON       `json:"type,omitempty"`
}

type constJSON struct {
	DType string   `json:"dtype"`
	Shape []int64  `json:"shape,omitempty"`
	Value *float64 `json:"value,omitempty"`
	Data  []byte   `json:"data,omitempty"`
}

type varJSON struct {
	Name string    `json:"name"`
	Type *typeJSON `json:"type"`
}

type tupleJSON struct {
	Fields []exprJSON `json:"fields"`
}

// MarshalExpr encodes an expression tree as JSON.
func MarshalExpr(e Expr) ([]byte, error) {
	node, err := encodeExpr(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(node)
}

// UnmarshalExpr decodes an expression tree from JSON.
func UnmarshalExpr(data []byte) (Expr, error) {
	var node exprJSON
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return decodeExpr(node)
}

func encodeType(t *TensorType) *typeJSON {
	if t == nil {
		return nil
	}
	return &typeJSON{Shape: t.Shape, DType: t.DType.String()}
}

func decodeType(t *typeJSON) (*TensorType, error) {
	if t == nil {
		return nil, nil
	}
	dt, err := ParseDType(t.DType)
	if err != nil {
		return nil, err
	}
	return &TensorType{Shape: t.Shape, DType: dt}, nil
}

func encodeExpr(e Expr) (exprJSON, error) {
	switch n := e.(type) {
	case *Call:
		out := callJSON{Op: n.Op, Type: encodeType(n.Out)}
		for _, a := range n.Args {
			arg, err := encodeExpr(a)
			if err != nil {
				return exprJSON{}, err
			}
			out.Args = append(out.Args, arg)
		}
		if n.Attrs != nil {
			raw, err := json.Marshal(n.Attrs)
			if err != nil {
				return exprJSON{}, err
			}
			out.Attrs = raw
		}
		return exprJSON{Call: &out}, nil
	case *Constant:
		out := constJSON{DType: n.Of.DType.String(), Shape: n.Of.Shape}
		if v, ok := scalarValue(n); ok {
			out.Value = &v
		} else {
			out.Data = n.Data
		}
		return exprJSON{Const: &out}, nil
	case *Var:
		return exprJSON{Var: &varJSON{Name: n.Name, Type: encodeType(n.Of)}}, nil
	case *Tuple:
		out := tupleJSON{}
		for _, f := range n.Fields {
			field, err := encodeExpr(f)
			if err != nil {
				return exprJSON{}, err
			}
			out.Fields = append(out.Fields, field)
		}
		return exprJSON{Tuple: &out}, nil
	default:
		return exprJSON{}, fmt.Errorf("unknown expression node %T", e)
	}
}

func decodeExpr(node exprJSON) (Expr, error) {
	switch {
	case node.Call != nil:
		out := &Call{Op: node.Call.Op}
		t, err := decodeType(node.Call.Type)
		if err != nil {
			return nil, err
		}
		out.Out = t
		for _, a := range node.Call.Args {
			arg, err := decodeExpr(a)
			if err != nil {
				return nil, err
			}
			out.Args = append(out.Args, arg)
		}
		if len(node.Call.Attrs) > 0 {
			attrs, err := decodeAttrs(node.Call.Op, node.Call.Attrs)
			if err != nil {
				return nil, err
			}
			out.Attrs = attrs
		}
		return out, nil
	case node.Const != nil:
		return decodeConst(node.Const)
	case node.Var != nil:
		t, err := decodeType(node.Var.Type)
		if err != nil {
			return nil, err
		}
		return &Var{Name: node.Var.Name, Of: t}, nil
	case node.Tuple != nil:
		out := &Tuple{}
		for _, f := range node.Tuple.Fields {
			field, err := decodeExpr(f)
			if err != nil {
				return nil, err
			}
			out.Fields = append(out.Fields, field)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expression node has no variant set")
	}
}

func decodeAttrs(op string, raw json.RawMessage) (any, error) {
	var attrs any
	switch op {
	case OpQuantConv2D:
		attrs = &Conv2DAttrs{}
	case OpPad:
		attrs = &PadAttrs{}
	case OpQuantConcatenate:
		attrs = &ConcatenateAttrs{}
	case OpSplit:
		attrs = &SplitAttrs{}
	default:
		return nil, fmt.Errorf("operator %q does not take attributes", op)
	}
	if err := json.Unmarshal(raw, attrs); err != nil {
		return nil, fmt.Errorf("%s attrs: %w", op, err)
	}
	return attrs, nil
}

func decodeConst(c *constJSON) (*Constant, error) {
	dt, err := ParseDType(c.DType)
	if err != nil {
		return nil, err
	}
	out := &Constant{Of: &TensorType{Shape: c.Shape, DType: dt}}
	if c.Value == nil {
		out.Data = c.Data
		return out, nil
	}
	data := make([]byte, 0, 4)
	switch dt {
	case Int32:
		data = binary.LittleEndian.AppendUint32(data, uint32(int32(*c.Value)))
	case Float32:
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(float32(*c.Value)))
	case Uint8:
		data = append(data, uint8(*c.Value))
	default:
		return nil, fmt.Errorf("scalar constant value not supported for dtype %s", dt)
	}
	out.Data = data
	return out, nil
}

func scalarValue(c *Constant) (float64, bool) {
	if len(c.Of.Shape) != 0 || len(c.Data) < c.Of.DType.Size() {
		return 0, false
	}
	switch c.Of.DType {
	case Int32:
		return float64(int32(binary.LittleEndian.Uint32(c.Data))), true
	case Float32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(c.Data))), true
	case Uint8:
		return float64(c.Data[0]), true
	default:
		return 0, false
	}
}
