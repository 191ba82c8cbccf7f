package kv

import (
	"bytes"
	"testing"
)

func TestIncrementKey(t *testing.T) {
	for _, tc := range []struct {
		in, want []byte
	}{
		{[]byte("a"), []byte("b")},
		{[]byte{'R', 0xff}, []byte{'S'}},
		{[]byte{0xff, 0xff}, nil},
		{nil, nil},
	} {
		if got := IncrementKey(tc.in); !bytes.Equal(got, tc.want) {
			t.Errorf("IncrementKey(%x) = %x, want %x", tc.in, got, tc.want)
		}
	}
}

func TestBytesPrefix(t *testing.T) {
	rg := BytesPrefix([]byte("E"))
	if !bytes.Equal(rg.Start, []byte("E")) || !bytes.Equal(rg.Limit, []byte("F")) {
		t.Fatal("Unexpected range", rg)
	}
	if !rg.Contains([]byte("Eabc")) || rg.Contains([]byte("F")) || rg.Contains([]byte("D")) {
		t.Fatal("Unexpected range membership")
	}
}
