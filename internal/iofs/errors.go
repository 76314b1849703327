package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gbifreport/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateDirError is returned when an application or working directory
// cannot be created.
func CreateDirError(dir string, err error) error {
	msg := `Cannot create directory <em>%s</em>

Check that the parent directory is writable and is not a file.`
	return newError(errcode.CreateDirError, msg, []any{dir},
		fmt.Errorf("mkdir %s: %w", dir, err))
}

// TemplateFileError is returned when a default configuration file
// (config.yaml or publishers.yaml) cannot be generated.
func TemplateFileError(path string, err error) error {
	msg := "Cannot generate default <em>%s</em>"
	return newError(errcode.TemplateFileError, msg, []any{path},
		fmt.Errorf("write template %s: %w", path, err))
}

// ConfigFileError is returned when config.yaml cannot be read or its
// values do not fit configuration fields.
func ConfigFileError(path string, err error) error {
	msg := `Cannot load configuration from <em>%s</em>

<em>Possible causes:</em>
  - Invalid YAML format
  - A value of a GBIFREPORT_* variable or of its alias has a wrong type

Remove the file to regenerate the default one.`
	return newError(errcode.ConfigFileError, msg, []any{path},
		fmt.Errorf("load config %s: %w", path, err))
}

// WriteFileError is returned when a report file cannot be saved. The
// previous version of the file stays intact.
func WriteFileError(path string, err error) error {
	msg := "Cannot write <em>%s</em>, previous file is kept"
	return newError(errcode.WriteFileError, msg, []any{path},
		fmt.Errorf("write %s: %w", path, err))
}

// newError annotates err with the function that called the exported
// constructor.
func newError(code gn.ErrorCode, msg string, vars []any, err error) error {
	pc, _, _, _ := runtime.Caller(2)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}
