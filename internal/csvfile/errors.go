package csvfile

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound     = errors.New("file not found")
	ErrFileNotReadable  = errors.New("file not readable")
	ErrOpen             = errors.New("error while opening file")
	ErrParse            = errors.New("error while parsing file")
	ErrInvalidDelimiter = errors.New("invalid csv delimiter")
)

// FileError reports a failure tied to one CSV file. Kind is one of the
// sentinel errors above, so callers can use errors.Is on the result.
type FileError struct {
	Path string
	Kind error
	Err  error
}

func (e *FileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%v %s", e.Kind, e.Path)
}

func (e *FileError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func fileError(path string, kind, err error) error {
	return &FileError{Path: path, Kind: kind, Err: err}
}
