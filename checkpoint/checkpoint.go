// Package checkpoint decorates errors with the call site that observed them,
// building a chain similar to a stack trace one call at a time. A decorated
// error matches every sentinel added along the chain with errors.Is, and
// unwraps to the original error for errors.Is and errors.As. Sentinels are
// not on the unwrap chain, so errors.As does not find them.
package checkpoint

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
)

// Wrap records the caller's file and line alongside err, optionally tagging
// the frame with one or more sentinel errors (checked later via errors.Is).
// Returns nil if err is nil. io.EOF and io.ErrUnexpectedEOF pass through
// untouched: https://github.com/golang/go/issues/39155.
func Wrap(err error, sentinels ...error) error {
	if err == nil {
		return nil
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return err
	}

	_, file, line, ok := runtime.Caller(1)

	return &frame{
		err:       err,
		sentinels: sentinels,
		callerOK:  ok,
		file:      filepath.Base(file),
		line:      line,
	}
}

// frame is one link in the chain built by repeated Wrap calls.
type frame struct {
	err       error
	sentinels []error
	callerOK  bool
	file      string
	line      int
}

func (f *frame) Error() string {
	prevString := f.err.Error()
	if _, ok := f.err.(*frame); !ok {
		prevString = "File: unknown\n\t" + strings.ReplaceAll(prevString, "\n", "\n\t")
	}

	location := "File: unknown"
	if f.callerOK {
		location = fmt.Sprintf("File: %s:%d", f.file, f.line)
	}

	if len(f.sentinels) == 0 {
		return fmt.Sprintf("%s\n%v", location, prevString)
	}
	return fmt.Sprintf("%s (%s)\n%v", location, joinErrors(f.sentinels), prevString)
}

func (f *frame) Unwrap() error {
	return f.err
}

func (f *frame) Is(target error) bool {
	for _, s := range f.sentinels {
		if errors.Is(s, target) {
			return true
		}
	}
	return false
}

func joinErrors(errs []error) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, ", ")
}
