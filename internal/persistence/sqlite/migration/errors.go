package migration

import (
	"errors"
	"fmt"
)

var (
	// ErrMigrationFailed marks a migration whose statements could not be applied.
	ErrMigrationFailed = errors.New("migration execution failed")
	// ErrInvalidMigrationFile marks a badly named or empty migration file.
	ErrInvalidMigrationFile = errors.New("invalid migration file format")
	// ErrVersionConflict marks a gap in the sequence or an applied version without a file.
	ErrVersionConflict = errors.New("migration version conflict")
	// ErrDuplicateVersion marks two files sharing a version number.
	ErrDuplicateVersion = errors.New("duplicate migration version")
	// ErrChecksumMismatch marks an applied migration whose file was edited afterwards.
	ErrChecksumMismatch = errors.New("migration checksum mismatch")
)

// StepError records which migration and which step failed. Source is the
// migration file, or empty when the failure happened in the database.
type StepError struct {
	Version string
	Source  string
	Step    string
	Err     error
}

func (e *StepError) Error() string {
	switch {
	case e.Source == "" && e.Version == "":
		return fmt.Sprintf("migration: %s: %v", e.Step, e.Err)
	case e.Source == "":
		return fmt.Sprintf("migration %s: %s: %v", e.Version, e.Step, e.Err)
	case e.Version == "":
		return fmt.Sprintf("migration (%s): %s: %v", e.Source, e.Step, e.Err)
	default:
		return fmt.Sprintf("migration %s (%s): %s: %v", e.Version, e.Source, e.Step, e.Err)
	}
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func fileError(version, source, step string, err error) error {
	return &StepError{Version: version, Source: source, Step: step, Err: err}
}

func dbError(version, step string, err error) error {
	return &StepError{Version: version, Step: step, Err: err}
}
