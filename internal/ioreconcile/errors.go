package ioreconcile

import (
	"fmt"
	"runtime"

	"github.com/gnames/gbifreport/pkg/errcode"
	"github.com/gnames/gn"
)

// NoArchivesError is returned when a publisher has no archive in the
// archive directory.
func NoArchivesError(pub, dir string) error {
	msg := "No ZIP files found for <em>%s</em> in %s"
	vars := []any{pub, dir}
	return &gn.Error{
		Code: errcode.ReconcileNoArchivesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no archives for %s in %s", pub, dir),
	}
}

// ArchiveError is returned when the archive directory cannot be listed.
func ArchiveError(dir string, err error) error {
	msg := "Cannot list archives in <em>%s</em>"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReconcileArchiveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: list %s: %w", fn, dir, err),
	}
}

// ExtractError is returned when an archive cannot be extracted.
func ExtractError(archive string, err error) error {
	msg := "Cannot extract archive <em>%s</em>"
	vars := []any{archive}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReconcileExtractError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: extract %s: %w", fn, archive, err),
	}
}

// ReadTableError is returned when a data file of an archive cannot be
// read as a tab-delimited table.
func ReadTableError(path string, err error) error {
	msg := "Cannot read occurrences from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReconcileReadTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: read %s: %w", fn, path, err),
	}
}

// MissingColumnError is returned when occurrence data of an archive lack
// a column required for reconciliation.
func MissingColumnError(column, archive string) error {
	msg := "Column <em>%s</em> is missing in %s"
	vars := []any{column, archive}
	return &gn.Error{
		Code: errcode.ReconcileMissingColumnError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("missing column %q in %s", column, archive),
	}
}

// WriteError is returned when reconciled tables cannot be saved.
func WriteError(path string, err error) error {
	msg := "Cannot save reconciled data to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReconcileWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: write %s: %w", fn, path, err),
	}
}

// CancelledError is returned when reconciliation is interrupted.
func CancelledError(err error) error {
	msg := "Reconciliation was cancelled"

	return &gn.Error{
		Code: errcode.ReconcileCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("reconcile cancelled: %w", err),
	}
}

// AllPublishersFailedError is returned when no publisher was reconciled.
func AllPublishersFailedError(count int) error {
	msg := `Failed number of publishers: <em>%d</em>`

	vars := []any{count}

	plural := "s"
	if count == 1 {
		plural = ""
	}

	return &gn.Error{
		Code: errcode.ReconcileAllFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%d publisher%s failed to reconcile", count, plural),
	}
}
