package imprint

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestCanon(t *testing.T) {
	for _, tc := range []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{true, "true"},
		{false, "false"},
		{"foo", "foo"},
		{"", ""},
		{"a \"quoted\"\n", "a \"quoted\"\n"},
		{0, "0"},
		{-42, "-42"},
		{int64(9007199254740993), "9007199254740993"},
		{uint64(18446744073709551615), "18446744073709551615"},
		{uint8(7), "7"},
		{1.0, "1"},
		{1.5, "1.5"},
		{-0.25, "-0.25"},
		{math.Copysign(0, -1), "0"},
		{100.0, "100"},
		{0.000001, "0.000001"},
		{1.5e-7, "1.5e-7"},
		{1e21, "1e+21"},
		{1e20, "100000000000000000000"},
		{-2.5e30, "-2.5e+30"},
		{json.Number("12"), "12"},
		{json.Number("-0"), "0"},
		{json.Number("1.0"), "1"},
		{json.Number("1E3"), "1000"},
		{json.Number("0.1"), "0.1"},
		{json.Number("9007199254740993"), "9007199254740993"},
		{json.Number("1e21"), "1e+21"},
	} {
		got, err := Canon(tc.in)
		if err != nil {
			t.Errorf("Canon(%#v): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Canon(%#v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanonRejects(t *testing.T) {
	for _, in := range []interface{}{
		math.NaN(),
		math.Inf(1),
		math.Inf(-1),
		float32(math.Inf(1)),
		json.Number("1e999"),
		json.Number("abc"),
		[]interface{}{1},
		map[string]interface{}{},
		struct{}{},
	} {
		if _, err := Canon(in); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("Canon(%#v): expect %v, got %v", in, ErrInvalidValue, err)
		}
	}
}

func TestCanonCrossTypeCollision(t *testing.T) {
	// Accepted behaviour: the number 1 and the string "1" are the same leaf.
	n, _ := Canon(1)
	s, _ := Canon("1")
	if n != s {
		t.Fatal("Expect cross-type values to canonicalize identically")
	}
	// nil and the empty string collide as well.
	e, _ := Canon(nil)
	if e != "" {
		t.Fatal("Expect nil to canonicalize to the empty string")
	}
}
