package util

import (
	"reflect"
	"testing"
)

func TestNormalizeNames(t *testing.T) {
	got := NormalizeNames([]string{" Python", "SQL", "", "python", "Python ", "  "})
	want := []string{"Python", "SQL", "python"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := NormalizeNames(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestMustParseUint(t *testing.T) {
	if MustParseUint("42") != 42 || MustParseUint("x") != 0 || MustParseUint("-1") != 0 {
		t.Fatalf("unexpected MustParseUint results")
	}
}
