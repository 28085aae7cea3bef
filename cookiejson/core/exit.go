package core

import (
	"errors"
	"fmt"

	binarycookies "github.com/synadia-labs/binarycookies.go/runtime"
)

// Exit codes. Each I/O step and each class of decode failure has its own
// code so scripts can tell them apart.
const (
	ExitOK = iota
	ExitBadInvocation
	ExitBadOpen
	ExitBadClose
	ExitBadStat
	ExitBadMap
	ExitBadUnmap
	ExitTooShort
	ExitBadMagic
	ExitBadParse
	ExitBadChecksum
	ExitBadWrite
)

// Op names the I/O step that failed.
type Op string

const (
	OpOpen  Op = "open"
	OpStat  Op = "stat"
	OpMap   Op = "map"
	OpRead  Op = "read"
	OpUnmap Op = "unmap"
	OpClose Op = "close"
	OpWrite Op = "write"
)

// IOError is a failure acquiring, releasing or writing a file. It is
// never produced by the decoder.
type IOError struct {
	Op   Op
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// InvocationError is a bad flag value or argument.
type InvocationError struct {
	Err error
}

func (e *InvocationError) Error() string { return e.Err.Error() }

func (e *InvocationError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by Run's steps to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var inv *InvocationError
	if errors.As(err, &inv) {
		return ExitBadInvocation
	}

	var ioErr *IOError
	if errors.As(err, &ioErr) {
		switch ioErr.Op {
		case OpOpen:
			return ExitBadOpen
		case OpStat:
			return ExitBadStat
		case OpMap, OpRead:
			return ExitBadMap
		case OpUnmap:
			return ExitBadUnmap
		case OpClose:
			return ExitBadClose
		case OpWrite:
			return ExitBadWrite
		}
	}

	switch binarycookies.KindOf(err) {
	case binarycookies.KindTooShort:
		return ExitTooShort
	case binarycookies.KindBadMagic:
		return ExitBadMagic
	case binarycookies.KindBadParse:
		return ExitBadParse
	case binarycookies.KindBadChecksum:
		return ExitBadChecksum
	}

	return ExitBadParse
}
