// Package errors provides error wrapping with slog annotations and source
// locations. It re-exports the stdlib helpers so callers only need one
// errors import.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// annotatedError carries a message, an optional cause, slog attributes for
// structured logging, and the program counter of the call site.
type annotatedError struct {
	msg         string
	cause       error
	annotations []slog.Attr
	pc          uintptr
}

func (e *annotatedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.cause
}

// NewSentinel creates an error intended for package-level sentinel values.
func NewSentinel(msg string) error {
	return &annotatedError{
		msg: msg,
		pc:  caller(2), //nolint:mnd // skip Callers and NewSentinel.
	}
}

// Wrap annotates err with a message and optional slog attributes. The call
// site is recorded so that SlogError can point at where the error was
// wrapped instead of this file.
func Wrap(err error, msg string, annotations ...slog.Attr) error {
	return &annotatedError{
		msg:         msg,
		cause:       err,
		annotations: annotations,
		pc:          caller(2), //nolint:mnd // skip Callers and Wrap.
	}
}

// DecoratePanic converts a recover() value into an error whose source
// location points at the panic site rather than the deferred handler.
func DecoratePanic(excp any) error {
	return &annotatedError{
		msg: fmt.Sprintf("panic: %v", excp),
		pc:  panicSite(),
	}
}

// SlogError renders err as a slog group attribute containing the message,
// the collected annotations from the whole error chain, and the source
// location of the deepest annotated error.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	var (
		annotations []slog.Attr
		pc          uintptr
	)
	collect(err, &annotations, &pc)

	attrs := []any{slog.String("message", err.Error())}
	if len(annotations) > 0 {
		annotationArgs := make([]any, len(annotations))
		for i, a := range annotations {
			annotationArgs[i] = a
		}
		attrs = append(attrs, slog.Group("annotations", annotationArgs...))
	}
	if pc != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
		attrs = append(attrs, slog.String("source", fmt.Sprintf("%s:%d", frame.File, frame.Line)))
	}

	return slog.Group("error", attrs...)
}

// collect walks the error tree gathering annotations and the deepest
// recorded call site.
func collect(err error, annotations *[]slog.Attr, pc *uintptr) {
	if err == nil {
		return
	}

	var annotated *annotatedError
	if errors.As(err, &annotated) {
		*annotations = append(*annotations, annotated.annotations...)
		if annotated.pc != 0 {
			*pc = annotated.pc
		}
		collect(annotated.cause, annotations, pc)
		return
	}

	switch unwrapped := err.(type) { //nolint:errorlint // walking the immediate node on purpose.
	case interface{ Unwrap() error }:
		collect(unwrapped.Unwrap(), annotations, pc)
	case interface{ Unwrap() []error }:
		for _, joined := range unwrapped.Unwrap() {
			collect(joined, annotations, pc)
		}
	}
}

// caller returns the program counter skip frames above this function.
func caller(skip int) uintptr {
	pcs := make([]uintptr, 1)
	if runtime.Callers(skip+1, pcs) == 0 {
		return 0
	}
	return pcs[0]
}

// panicSite unwinds the stack past the runtime panic machinery to find the
// frame that called panic.
func panicSite() uintptr {
	const maxDepth = 32
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(2, pcs) //nolint:mnd // skip Callers and panicSite.
	frames := runtime.CallersFrames(pcs[:n])

	seenGopanic := false
	for {
		frame, more := frames.Next()
		if strings.HasPrefix(frame.Function, "runtime.gopanic") {
			seenGopanic = true
		} else if seenGopanic && !strings.HasPrefix(frame.Function, "runtime.") {
			return frame.PC
		}
		if !more {
			return 0
		}
	}
}

// Stdlib re-exports.

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text) //nolint:err113 // intentional re-export.
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join wraps the given errors into a single error.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
