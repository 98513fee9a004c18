// Package errors is the single import for error handling in the storefront core:
// stdlib matching helpers plus pkg/errors wrapping with stack traces.
package errors

import (
	stderrors "errors"
	"io"

	pkgerrors "github.com/pkg/errors"
)

// New returns an error that formats as the given text.
func New(text string) error {
	return stderrors.New(text)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// Wrap returns an error annotating err with a stack trace and the supplied message.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf returns an error annotating err with a stack trace and the format specifier.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack annotates err with a stack trace at the point WithStack was called.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

// Errorf formats according to a format specifier and returns the string as a
// value that satisfies error with stack trace.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}

// CloseAfter closes a resource whose setup failed with err and returns err
// joined with the close failure, if any. A nil err is returned unchanged
// and c is left open.
func CloseAfter(err error, c io.Closer) error {
	if err == nil {
		return nil
	}
	if closeErr := c.Close(); closeErr != nil {
		return stderrors.Join(err, Wrap(closeErr, "close after failed setup"))
	}

	return err
}
