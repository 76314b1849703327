package ioliterature

import (
	"fmt"
	"runtime"

	"github.com/gnames/gbifreport/pkg/errcode"
	"github.com/gnames/gn"
)

// InputError is returned when the dataset counts file cannot be used.
func InputError(path string, err error) error {
	msg := `Cannot read dataset keys from <em>%s</em>

<em>How to fix:</em>
  Run <em>gbifreport reconcile</em> first or give a path with --input`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LiteratureInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: read %s: %w", fn, path, err),
	}
}

// SearchError is returned when literature of a dataset cannot be
// collected.
func SearchError(datasetKey string, offset int, err error) error {
	msg := "Literature search failed for dataset <em>%s</em>"
	vars := []any{datasetKey}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LiteratureSearchError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: search %s at offset %d: %w",
			fn, datasetKey, offset, err),
	}
}

// WorkbookError is returned when the literature workbook cannot be
// created.
func WorkbookError(path string, err error) error {
	msg := "Cannot create workbook <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LiteratureWorkbookError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: workbook %s: %w", fn, path, err),
	}
}

// CancelledError is returned when literature search is interrupted.
func CancelledError(err error) error {
	msg := "Literature search was cancelled"

	return &gn.Error{
		Code: errcode.LiteratureCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("literature cancelled: %w", err),
	}
}

// AllDatasetsFailedError is returned when literature search failed for
// every dataset.
func AllDatasetsFailedError(count int) error {
	msg := `Failed number of datasets: <em>%d</em>`

	vars := []any{count}

	plural := "s"
	if count == 1 {
		plural = ""
	}

	return &gn.Error{
		Code: errcode.LiteratureAllFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("literature search failed for %d dataset%s", count, plural),
	}
}
