// Package core implements the cookiejson command: it acquires a cookie
// file, decodes it, renders the cookies and maps every failure to a
// distinct exit code.
package core

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"runtime/debug"

	binarycookies "github.com/synadia-labs/binarycookies.go/runtime"
)

// Options configures a run.
type Options struct {
	// Path is the binary cookie file to decode.
	Path string

	Format Format

	// Domain, if non-empty, is a regular expression; only cookies whose
	// domain matches are rendered.
	Domain string

	// Pretty indents JSON output.
	Pretty bool

	// Output, if non-empty, names a file to write instead of stdout.
	Output string

	// NoMmap reads the file instead of memory-mapping it.
	NoMmap bool
}

// Run executes one decode and returns the process exit code. Nothing is
// written to stdout unless the whole file decodes and renders; failures
// are logged to logger.
func Run(opts Options, stdout io.Writer, logger *slog.Logger) int {
	err := run(opts, stdout, logger)
	if err != nil {
		logFailure(logger, opts.Path, err)
	}
	return ExitCode(err)
}

func run(opts Options, stdout io.Writer, logger *slog.Logger) error {
	keep, err := domainFilter(opts.Domain)
	if err != nil {
		return err
	}
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	if opts.Format, err = ParseFormat(string(opts.Format)); err != nil {
		return err
	}

	in, err := Open(opts.Path, !opts.NoMmap)
	if err != nil {
		return err
	}
	logger.Debug("input acquired", "path", in.Path, "method", in.Method, "size", len(in.Bytes()))

	var out []byte
	decodeErr := guardFault(opts.Path, func() error {
		file, err := binarycookies.DecodePages(in.Bytes())
		if err != nil {
			return err
		}
		logFile(logger, file)

		cookies := file.Cookies()
		if keep != nil {
			cookies = binarycookies.Filter(cookies, keep)
			logger.Debug("filtered cookies", "pattern", opts.Domain, "kept", len(cookies))
		}
		out, err = render(opts.Format, cookies, opts.Pretty)
		return err
	})

	// A decode failure is reported in preference to a failure releasing
	// the input.
	closeErr := in.Close()
	if decodeErr != nil {
		return decodeErr
	}
	if closeErr != nil {
		return closeErr
	}

	return writeOutput(opts.Output, stdout, out)
}

func domainFilter(pattern string) (func(binarycookies.Cookie) bool, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &InvocationError{Err: fmt.Errorf("domain filter: %w", err)}
	}
	return func(c binarycookies.Cookie) bool {
		return c.Domain.Present && re.Match(c.Domain.Value)
	}, nil
}

// guardFault turns a fault reading mapped memory (the file shrinking
// underneath the mapping) into an I/O error instead of a crash. Other
// panics are re-raised.
func guardFault(path string, fn func() error) (err error) {
	old := debug.SetPanicOnFault(true)
	defer func() {
		debug.SetPanicOnFault(old)
		if r := recover(); r != nil {
			if _, ok := r.(interface{ Addr() uintptr }); !ok {
				panic(r)
			}
			err = &IOError{Op: OpRead, Path: path, Err: fmt.Errorf("fault reading mapped file: %v", r)}
		}
	}()
	return fn()
}

func writeOutput(path string, stdout io.Writer, out []byte) error {
	if path != "" {
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return &IOError{Op: OpWrite, Path: path, Err: err}
		}
		return nil
	}
	if _, err := stdout.Write(out); err != nil {
		return &IOError{Op: OpWrite, Path: "stdout", Err: err}
	}
	return nil
}

func logFile(logger *slog.Logger, file *binarycookies.File) {
	for i, p := range file.Pages {
		logger.Debug("page", "page", i, "start", p.Start, "end", p.End, "cookies", len(p.Cookies))
	}
	logger.Debug("trailer", "checksum", fmt.Sprintf("%#08x", file.Checksum), "plist_size", len(file.Plist))
}

func logFailure(logger *slog.Logger, path string, err error) {
	attrs := []any{"path", path, "exit_code", ExitCode(err), "error", err}

	var de *binarycookies.DecodeError
	var ioErr *IOError
	switch {
	case errors.As(err, &de):
		attrs = append(attrs, "kind", de.Kind.String(), "offset", de.Offset)
		if de.Page >= 0 {
			attrs = append(attrs, "page", de.Page)
		}
		if de.Cookie >= 0 {
			attrs = append(attrs, "cookie", de.Cookie)
		}
		if de.Field != "" {
			attrs = append(attrs, "field", de.Field)
		}
		logger.Error("decode failed", attrs...)
	case errors.As(err, &ioErr):
		attrs = append(attrs, "op", string(ioErr.Op))
		logger.Error("i/o failed", attrs...)
	default:
		logger.Error("invalid invocation", attrs...)
	}
}
