package toolchain

import (
	"reflect"
	"testing"
)

func TestEnvironEmpty(t *testing.T) {
	var tc Toolchain
	if env := tc.Environ(); env != nil {
		t.Fatalf("Environ() = %v, want nil", env)
	}
	if !tc.IsZero() {
		t.Fatal("IsZero() = false for zero toolchain")
	}
}

func TestEnvironOrder(t *testing.T) {
	tc := Toolchain{
		CC:      "gcc-13",
		CXX:     "g++-13",
		FC:      "gfortran-13",
		CFLAGS:  "-O3",
		LDFLAGS: "-L/opt/lib",
	}

	want := []string{
		"CC=gcc-13",
		"CFLAGS=-O3",
		"CXX=g++-13",
		"FC=gfortran-13",
		"LDFLAGS=-L/opt/lib",
	}
	if got := tc.Environ(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Environ() = %v, want %v", got, want)
	}
	if tc.IsZero() {
		t.Fatal("IsZero() = true for non-zero toolchain")
	}
}
