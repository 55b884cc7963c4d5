package ir

import "testing"

func TestDTypeStringParseRoundTrip(t *testing.T) {
	cases := []DType{
		Uint8,
		Int32,
		Float32,
		{Kind: KindInt, Bits: 8, Lanes: 1},
		{Kind: KindUint, Bits: 8, Lanes: 4},
	}
	for _, dt := range cases {
		parsed, err := ParseDType(dt.String())
		if err != nil {
			t.Fatalf("parse %q: %v", dt.String(), err)
		}
		if parsed != dt {
			t.Fatalf("round trip %q: got %+v, want %+v", dt.String(), parsed, dt)
		}
	}
}

func TestParseDTypeRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "int", "uint", "float", "string8", "int0", "intx4"} {
		if _, err := ParseDType(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

func TestDTypeScalarAndSize(t *testing.T) {
	if !Uint8.Scalar() || Uint8.Size() != 1 {
		t.Fatalf("uint8: %v %d", Uint8.Scalar(), Uint8.Size())
	}
	vec := DType{Kind: KindUint, Bits: 8, Lanes: 4}
	if vec.Scalar() {
		t.Fatal("uint8x4 must not be scalar")
	}
	if Int32.Size() != 4 {
		t.Fatalf("int32 size: %d", Int32.Size())
	}
}
