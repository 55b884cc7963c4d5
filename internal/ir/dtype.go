package ir

import "fmt"

// DTypeKind is the scalar class of an element type.
type DTypeKind uint8

const (
	KindInt DTypeKind = iota
	KindUint
	KindFloat
)

// DType describes a tensor element type. Lanes > 1 means a vector type,
// which no conversion rule accepts.
type DType struct {
	Kind  DTypeKind
	Bits  uint8
	Lanes uint8
}

var (
	Int32   = DType{Kind: KindInt, Bits: 32, Lanes: 1}
	Uint8   = DType{Kind: KindUint, Bits: 8, Lanes: 1}
	Float32 = DType{Kind: KindFloat, Bits: 32, Lanes: 1}
)

// Scalar reports whether the type is a single-lane scalar.
func (d DType) Scalar() bool {
	return d.Lanes == 1
}

// Size returns the byte width of one element.
func (d DType) Size() int {
	return int(d.Bits) / 8 * int(d.Lanes)
}

func (d DType) String() string {
	var base string
	switch d.Kind {
	case KindInt:
		base = fmt.Sprintf("int%d", d.Bits)
	case KindUint:
		base = fmt.Sprintf("uint%d", d.Bits)
	case KindFloat:
		base = fmt.Sprintf("float%d", d.Bits)
	default:
		base = fmt.Sprintf("unknown%d", d.Bits)
	}
	if d.Lanes > 1 {
		return fmt.Sprintf("%sx%d", base, d.Lanes)
	}
	return base
}

// ParseDType parses the string form produced by String ("uint8", "int32",
// "float32x4", ...).
func ParseDType(s string) (DType, error) {
	var (
		kind DTypeKind
		rest string
	)
	switch {
	case len(s) > 4 && s[:4] == "uint":
		kind, rest = KindUint, s[4:]
	case len(s) > 3 && s[:3] == "int":
		kind, rest = KindInt, s[3:]
	case len(s) > 5 && s[:5] == "float":
		kind, rest = KindFloat, s[5:]
	default:
		return DType{}, fmt.Errorf("unknown dtype %q", s)
	}
	var bits, lanes int
	lanes = 1
	if n, err := fmt.Sscanf(rest, "%dx%d", &bits, &lanes); err != nil || n < 1 {
		if _, err := fmt.Sscanf(rest, "%d", &bits); err != nil {
			return DType{}, fmt.Errorf("unknown dtype %q", s)
		}
	}
	if bits <= 0 || bits > 255 || lanes <= 0 || lanes > 255 {
		return DType{}, fmt.Errorf("unknown dtype %q", s)
	}
	return DType{Kind: kind, Bits: uint8(bits), Lanes: uint8(lanes)}, nil
}
