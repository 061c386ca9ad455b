// Package errors layers slog-friendly annotations and caller locations on top
// of the standard library errors. Use Wrap to add context when propagating an
// error and SlogError to log the whole chain in one structured attribute.
package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

type annotatedError struct {
	msg      string
	cause    error
	attrs    []slog.Attr
	location string
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

// New returns an error with the given message and the caller's location.
func New(msg string) error {
	return &annotatedError{msg: msg, location: callerLocation(2)} //nolint:mnd // skip New and callerLocation.
}

// NewSentinel returns an error suitable for package-level sentinel values.
// It records no location because the definition site is not interesting.
func NewSentinel(msg string) error {
	return &annotatedError{msg: msg}
}

// Wrap annotates err with a message and optional [slog.Attr]. The location of
// the Wrap call is recorded for SlogError. A nil err is allowed so that
// callers don't have to guard wrapping of optional causes.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:      msg,
		cause:    err,
		attrs:    attrs,
		location: callerLocation(2), //nolint:mnd // skip Wrap and callerLocation.
	}
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err, if any.
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join wraps the given errors into a single error.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// SlogError renders err as a single "error" group attribute containing the
// message, the annotations gathered from the wrap chain, and the location of
// the outermost annotated error. Passing nil yields an empty attribute.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	var (
		annotations []slog.Attr
		location    string
	)
	for unwrapped := err; unwrapped != nil; unwrapped = stderrors.Unwrap(unwrapped) {
		var annotated *annotatedError
		if !stderrors.As(unwrapped, &annotated) {
			break
		}
		annotations = append(annotations, annotated.attrs...)
		if location == "" {
			location = annotated.location
		}
	}

	attrs := []any{slog.String("message", err.Error())}
	if len(annotations) > 0 {
		groupArgs := make([]any, 0, len(annotations))
		for _, attr := range annotations {
			groupArgs = append(groupArgs, attr)
		}
		attrs = append(attrs, slog.Group("annotations", groupArgs...))
	}
	if location != "" {
		attrs = append(attrs, slog.String("location", location))
	}
	return slog.Group("error", attrs...)
}

// DecoratePanic converts a recovered panic value into an error pointing at the
// panic site. Returns nil when excp is nil so it can be called unconditionally
// in a deferred recover block.
func DecoratePanic(excp any) error {
	if excp == nil {
		return nil
	}
	return &annotatedError{
		msg:      fmt.Sprintf("panic: %v", excp),
		location: panicLocation(),
	}
}

// callerLocation returns "file.go:line" for the given number of frames up the
// stack.
func callerLocation(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// panicLocation walks the stack past the runtime panic machinery and returns
// the location of the frame that panicked.
func panicLocation() string {
	const maxDepth = 32
	pc := make([]uintptr, maxDepth)
	n := runtime.Callers(1, pc)
	frames := runtime.CallersFrames(pc[:n])
	seenPanic := false
	for {
		frame, more := frames.Next()
		switch {
		case strings.HasSuffix(frame.Function, "gopanic"):
			seenPanic = true
		case seenPanic && !strings.HasPrefix(frame.Function, "runtime."):
			return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
		}
		if !more {
			return ""
		}
	}
}
