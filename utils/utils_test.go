package utils

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestUInt32ToBytes(t *testing.T) {
	numInt := uint32(42)
	b := UInt32ToBytes(numInt)
	if binary.LittleEndian.Uint32(b) != numInt {
		t.Fatal("Conversion to bytes looks wrong!")
	}
}

func TestLongToBytes(t *testing.T) {
	numInt := int64(42)
	b := LongToBytes(numInt)
	if int64(binary.LittleEndian.Uint64(b)) != numInt {
		t.Fatal("Conversion to bytes looks wrong!")
	}
	numInt = int64(-42)
	b = LongToBytes(numInt)
	if int64(binary.LittleEndian.Uint64(b)) != numInt {
		t.Fatal("Conversion to bytes looks wrong!")
	}
}

func TestAppendLenPrefixed(t *testing.T) {
	b := AppendLenPrefixed([]byte{0xff}, []byte("ab"))
	want := []byte{0xff, 2, 0, 0, 0, 'a', 'b'}
	if !bytes.Equal(b, want) {
		t.Fatalf("got %x, want %x", b, want)
	}
	// "a"+"bc" and "ab"+"c" must not collide
	x := AppendLenPrefixed(AppendLenPrefixed(nil, []byte("a")), []byte("bc"))
	y := AppendLenPrefixed(AppendLenPrefixed(nil, []byte("ab")), []byte("c"))
	if bytes.Equal(x, y) {
		t.Fatal("Length prefixing is ambiguous")
	}
}

func TestWriteFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out")
	if err := WriteFile(file, []byte("foo"), 0600); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "foo" {
		t.Fatalf("got %q", got)
	}
	if err := WriteFile(file, []byte("bar"), 0600); err == nil {
		t.Fatal("Expect an error when the file already exists")
	}
}

func TestResolvePath(t *testing.T) {
	if got := ResolvePath("key", "/etc/imprint/config.toml"); got != "/etc/imprint/key" {
		t.Fatalf("got %s", got)
	}
	if got := ResolvePath("/abs/key", "/etc/imprint/config.toml"); got != "/abs/key" {
		t.Fatalf("got %s", got)
	}
}
