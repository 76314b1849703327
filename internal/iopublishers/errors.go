package iopublishers

import (
	"fmt"
	"runtime"

	"github.com/gnames/gbifreport/pkg/errcode"
	"github.com/gnames/gn"
)

// PublishersNotFoundError is returned when publishers.yaml does not exist.
func PublishersNotFoundError(path string, err error) error {
	msg := `Publishers file not found

<em>Publishers file:</em> %s

<em>How to fix:</em>
  1. Run any command once to generate an example file
  2. Find organization keys: <em>gbifreport suggest "museum name"</em>
  3. Or point to another file: <em>gbifreport --publishers FILE</em>`

	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PublishersNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot find %s: %w", fn, path, err),
	}
}

// PublishersConfigError is returned when publishers.yaml cannot be read
// or parsed.
func PublishersConfigError(path string, err error) error {
	msg := `Cannot load publishers configuration

<em>Publishers file:</em> %s

<em>Possible causes:</em>
  - Invalid YAML format
  - Permission denied`

	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PublishersConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: failed to load publishers: %w", fn, err),
	}
}

// PublishersInvalidError is returned when publishers.yaml does not pass
// validation.
func PublishersInvalidError(path, details string, err error) error {
	msg := `Publishers file <em>%s</em> is invalid:
%s

Every publisher needs a GBIF organization <em>uuid</em> and a <em>name</em>,
both must be unique. A name cannot start with another name followed by
a space, archives of both publishers would have the same prefix.`

	vars := []any{path, details}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PublishersInvalidError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: invalid publishers: %w", fn, err),
	}
}
