package binarycookies

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrTooShort is returned when the buffer ends before a region the
	// structure requires: the header, the page-size table, a page, a
	// record header or the trailer.
	ErrTooShort error = errors.New("binarycookies: too short")

	// ErrBadMagic is returned when a fixed tag does not match: the file
	// magic, a page tag, a page header terminator or the footer.
	ErrBadMagic error = errors.New("binarycookies: bad magic")

	// ErrBadParse is returned for structure that is internally
	// inconsistent: an offset outside its record, a record that is not
	// NUL-terminated, a plist size that disagrees with the file length.
	ErrBadParse error = errors.New("binarycookies: bad parse")

	// ErrBadChecksum is returned when the page checksum does not match
	// the one saved in the trailer.
	ErrBadChecksum error = errors.New("binarycookies: bad checksum")
)

// Kind classifies a decode failure.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindTooShort
	KindBadMagic
	KindBadParse
	KindBadChecksum
)

func (k Kind) String() string {
	switch k {
	case KindTooShort:
		return "too short"
	case KindBadMagic:
		return "bad magic"
	case KindBadParse:
		return "bad parse"
	case KindBadChecksum:
		return "bad checksum"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindTooShort:
		return ErrTooShort
	case KindBadMagic:
		return ErrBadMagic
	case KindBadParse:
		return ErrBadParse
	case KindBadChecksum:
		return ErrBadChecksum
	default:
		return nil
	}
}

// KindOf returns the Kind of err, or KindUnknown when err did not come
// from this package.
func KindOf(err error) Kind {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind
	}
	for _, k := range []Kind{KindTooShort, KindBadMagic, KindBadParse, KindBadChecksum} {
		if errors.Is(err, k.sentinel()) {
			return k
		}
	}
	return KindUnknown
}

// DecodeError is the only error type returned by the decoder. It names
// where in the file the first violation was found.
type DecodeError struct {
	Kind Kind

	// Page and Cookie are zero-based indices, -1 when the failure is
	// outside any page or record.
	Page   int
	Cookie int

	// Field is the string field whose offset was rejected, if any.
	Field string

	// Offset is the absolute file offset of the region being checked.
	Offset int

	Reason string
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	out := "binarycookies: " + e.Kind.String() + ": " + e.Reason
	if ctx := e.context(); ctx != "" {
		out += " at " + ctx
	}
	return out + " (offset " + strconv.Itoa(e.Offset) + ")"
}

// Unwrap returns the sentinel for the error's Kind, so errors.Is works
// against ErrTooShort and friends.
func (e *DecodeError) Unwrap() error { return e.Kind.sentinel() }

func (e *DecodeError) context() string {
	var ctx string
	if e.Page >= 0 {
		ctx = addCtx(ctx, "page "+strconv.Itoa(e.Page))
	}
	if e.Cookie >= 0 {
		ctx = addCtx(ctx, "cookie "+strconv.Itoa(e.Cookie))
	}
	if e.Field != "" {
		ctx = addCtx(ctx, e.Field)
	}
	return ctx
}

func addCtx(ctx, add string) string {
	if ctx != "" {
		return ctx + "/" + add
	}
	return add
}

// where carries the position the decoder is working on so every error
// can be built with the same context.
type where struct {
	page   int
	cookie int
	field  string
}

var inFile = where{page: -1, cookie: -1}

func inPage(page int) where { return where{page: page, cookie: -1} }

func inCookie(page, cookie int) where { return where{page: page, cookie: cookie} }

func (w where) withField(name string) where { w.field = name; return w }

func (w where) fail(kind Kind, offset int, format string, args ...any) error {
	return &DecodeError{
		Kind:   kind,
		Page:   w.page,
		Cookie: w.cookie,
		Field:  w.field,
		Offset: offset,
		Reason: fmt.Sprintf(format, args...),
	}
}
