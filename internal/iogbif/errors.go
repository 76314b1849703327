package iogbif

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gbifreport/pkg/errcode"
	"github.com/gnames/gn"
)

// RequestError is returned when a GBIF API call cannot be completed.
func RequestError(url string, err error) error {
	msg := "Cannot reach GBIF API at <em>%s</em>"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GBIFRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: request to %s failed: %w", fn, url, err),
	}
}

// StatusError is returned when GBIF API responds with unexpected
// HTTP status.
func StatusError(url string, status int, body string) error {
	msg := "GBIF API returned status <em>%d</em> for %s"
	vars := []any{status, url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GBIFStatusError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: status %d from %s: %s",
			fn, status, url, strings.TrimSpace(body)),
	}
}

// DecodeError is returned when GBIF API response cannot be parsed.
func DecodeError(url string, err error) error {
	msg := "Cannot parse GBIF API response from <em>%s</em>"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GBIFDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot decode %s: %w", fn, url, err),
	}
}
