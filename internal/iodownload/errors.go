package iodownload

import (
	"fmt"
	"runtime"
	"time"

	"github.com/gnames/gbifreport/pkg/errcode"
	"github.com/gnames/gbifreport/pkg/gbif"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// CredentialsError is returned when GBIF user or password are not set.
func CredentialsError() error {
	msg := `GBIF credentials are required for occurrence downloads

<em>How to fix:</em>
  1. Set <em>GBIF_USER</em> and <em>GBIF_PASSWORD</em> in environment or .env file
  2. Or set gbif.user and gbif.password in config.yaml`

	return &gn.Error{
		Code: errcode.DownloadSubmitError,
		Msg:  msg,
		Err:  fmt.Errorf("GBIF user or password is empty"),
	}
}

// SubmitError is returned when GBIF does not accept a download request.
func SubmitError(pub string, err error) error {
	msg := "Cannot request download for <em>%s</em>"
	vars := []any{pub}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DownloadSubmitError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: submit for %s: %w", fn, pub, err),
	}
}

// DownloadFailedError is returned when a download job ends in a state
// other than SUCCEEDED.
func DownloadFailedError(pub, key string, status gbif.Status) error {
	msg := "Download <em>%s</em> for %s ended with status <em>%s</em>"
	vars := []any{key, pub, status}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DownloadFailedError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: download %s for %s is %s",
			fn, key, pub, status),
	}
}

// DownloadTimeoutError is returned when a download job is not ready
// after the maximum wait time.
func DownloadTimeoutError(
	pub, key string,
	status gbif.Status,
	maxWait time.Duration,
) error {
	msg := `Download <em>%s</em> for %s is not ready after %s (status %s)

The job continues on GBIF side, the archive can be fetched later.`
	wait := gnfmt.TimeString(maxWait.Seconds())
	vars := []any{key, pub, wait, status}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DownloadTimeoutError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: download %s for %s timed out after %s",
			fn, key, pub, maxWait),
	}
}

// FetchError is returned when a prepared archive cannot be saved.
func FetchError(pub, key string, err error) error {
	msg := "Cannot save archive of download <em>%s</em> for %s"
	vars := []any{key, pub}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DownloadFetchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: fetch %s: %w", fn, key, err),
	}
}

// CancelledError is returned when downloads are interrupted.
func CancelledError(err error) error {
	msg := "Downloads were cancelled"

	return &gn.Error{
		Code: errcode.DownloadCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("download cancelled: %w", err),
	}
}

// AllPublishersFailedError is returned when no archive was downloaded.
func AllPublishersFailedError(count int) error {
	msg := `Failed number of publishers: <em>%d</em>`

	vars := []any{count}

	plural := "s"
	if count == 1 {
		plural = ""
	}

	return &gn.Error{
		Code: errcode.DownloadAllFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%d publisher%s failed to download", count, plural),
	}
}
