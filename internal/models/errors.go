package models

import (
	"errors"
	"fmt"
)

// Error classes surfaced by the report pipeline. Callers classify with errors.Is.
var (
	ErrDataLoad         = errors.New("data load error")
	ErrMissingColumn    = errors.New("missing column")
	ErrDateParse        = errors.New("date parse error")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrTemplate         = errors.New("template error")
	ErrFileSystem       = errors.New("file system error")
)

// MissingColumnError reports a required column absent from the input
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Column)
}

// Is makes errors.Is(err, ErrMissingColumn) hold for any MissingColumnError
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// StageError names the pipeline stage a failure came from
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %q: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
