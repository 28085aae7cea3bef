package binarycookies

import (
	"math"
	"testing"
)

func TestSpanSlice(t *testing.T) {
	s := span{b: []byte("0123456789"), start: 100}

	cases := []struct {
		off, n uint64
		ok     bool
		want   string
		start  int
	}{
		{0, 10, true, "0123456789", 100},
		{3, 4, true, "3456", 103},
		{10, 0, true, "", 110},
		{10, 1, false, "", 0},
		{11, 0, false, "", 0},
		{5, 6, false, "", 0},
		{math.MaxUint64, 2, false, "", 0},
		{2, math.MaxUint64, false, "", 0},
	}
	for _, c := range cases {
		got, ok := s.slice(c.off, c.n)
		if ok != c.ok {
			t.Fatalf("slice(%d, %d): ok=%v, want %v", c.off, c.n, ok, c.ok)
		}
		if !ok {
			continue
		}
		if string(got.b) != c.want || got.start != c.start {
			t.Fatalf("slice(%d, %d) = %q@%d, want %q@%d", c.off, c.n, got.b, got.start, c.want, c.start)
		}
	}
}

func TestSpanCString(t *testing.T) {
	s := span{b: []byte("ab\x00cd\x00")}

	cases := []struct {
		off  uint64
		ok   bool
		want string
	}{
		{0, true, "ab"},
		{1, true, "b"},
		{2, true, ""},
		{3, true, "cd"},
		{6, true, ""},
		{7, false, ""},
	}
	for _, c := range cases {
		got, ok := s.cstring(c.off)
		if ok != c.ok || string(got) != c.want {
			t.Fatalf("cstring(%d) = %q, %v; want %q, %v", c.off, got, ok, c.want, c.ok)
		}
	}

	if _, ok := (span{b: []byte("abc")}).cstring(0); ok {
		t.Fatalf("cstring without NUL should fail")
	}
}

func TestCursorEndianness(t *testing.T) {
	s := span{b: []byte{
		0x01, 0x02, 0x03, 0x04,
		0x01, 0x02, 0x03, 0x04,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF0, 0x3F,
	}, start: 8}
	c := s.cursor()

	if v, _ := c.uint32BE(); v != 0x01020304 {
		t.Fatalf("uint32BE = %#x", v)
	}
	if v, _ := c.uint32LE(); v != 0x04030201 {
		t.Fatalf("uint32LE = %#x", v)
	}
	if c.pos() != 16 {
		t.Fatalf("pos = %d, want 16", c.pos())
	}
	if v, _ := c.float64LE(); v != 1.0 {
		t.Fatalf("float64LE = %v", v)
	}
	if c.remaining() != 0 {
		t.Fatalf("remaining = %d", c.remaining())
	}
	if _, ok := c.uint32LE(); ok {
		t.Fatalf("read past end should fail")
	}
}

func TestChecksumLanes(t *testing.T) {
	page := []byte{1, 9, 9, 9, 2, 9, 9, 9, 3, 9}
	if got := checksum(0, page); got != 6 {
		t.Fatalf("checksum = %d, want 6", got)
	}
	if got := checksum(math.MaxUint32, []byte{2}); got != 1 {
		t.Fatalf("checksum should wrap, got %d", got)
	}
}

func TestDecodeErrorMessage(t *testing.T) {
	err := inCookie(1, 2).withField("value").fail(KindBadParse, 40, "value offset %d outside record of %d bytes", 90, 80)
	want := "binarycookies: bad parse: value offset 90 outside record of 80 bytes at page 1/cookie 2/value (offset 40)"
	if err.Error() != want {
		t.Fatalf("Error() = %q\nwant      %q", err.Error(), want)
	}

	err = inFile.fail(KindTooShort, 0, "file header needs %d bytes, have %d", 8, 3)
	want = "binarycookies: too short: file header needs 8 bytes, have 3 (offset 0)"
	if err.Error() != want {
		t.Fatalf("Error() = %q\nwant      %q", err.Error(), want)
	}
}
