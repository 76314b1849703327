package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gbifreport/pkg/errcode"
	"github.com/gnames/gn"
)

// OpenLogFileError is returned when the log file cannot be opened for
// appending.
func OpenLogFileError(path string, err error) error {
	msg := `Cannot open log file <em>%s</em>

Set <em>log.destination</em> to stderr in config.yaml to log to terminal.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.OpenLogFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: open %s for appending: %w", fn, path, err),
	}
}
