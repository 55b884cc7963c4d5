package bridge

import (
	"reflect"
	"testing"
)

func TestViolationsZeroValueIsSuccess(t *testing.T) {
	var v Violations
	if v.Failed() {
		t.Fatal("zero value must not be a failure")
	}
	if len(v.Reasons()) != 0 {
		t.Fatalf("expected no reasons, got %v", v.Reasons())
	}
	if v.String() != "" {
		t.Fatalf("expected empty string, got %q", v.String())
	}
}

func TestViolationsMergeIdentity(t *testing.T) {
	v := Violationf("stride size=3, stride size must = 2")
	v.Merge(Violations{})
	if !reflect.DeepEqual(v.Reasons(), []string{"stride size=3, stride size must = 2"}) {
		t.Fatalf("merging the empty value changed reasons: %v", v.Reasons())
	}

	var empty Violations
	empty.Merge(v)
	if !reflect.DeepEqual(empty.Reasons(), v.Reasons()) {
		t.Fatalf("merging into the empty value lost reasons: %v", empty.Reasons())
	}
}

func TestViolationsMergePreservesOrder(t *testing.T) {
	var v Violations
	v.Addf("first")
	other := Violationf("second")
	other.Addf("third")
	v.Merge(other)

	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(v.Reasons(), want) {
		t.Fatalf("got %v, want %v", v.Reasons(), want)
	}
	if v.String() != "first; second; third" {
		t.Fatalf("unexpected string: %q", v.String())
	}
	if !v.Failed() {
		t.Fatal("expected failure after adding reasons")
	}
}
