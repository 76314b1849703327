// Package iopublishers loads the list of publishers from publishers.yaml.
package iopublishers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/gnames/gbifreport/pkg/config"
	"github.com/gnames/gbifreport/pkg/publisher"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type iopublishers struct {
	path string
}

// New creates a publishers loader that reads the publishers file
// configured in cfg.
func New(cfg *config.Config) publisher.Publishers {
	res := iopublishers{path: cfg.PublishersPath()}
	return &res
}

// Load implements publisher.Publishers.
func (p *iopublishers) Load() ([]publisher.Publisher, error) {
	bs, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, PublishersNotFoundError(p.path, err)
	}
	if err != nil {
		return nil, PublishersConfigError(p.path, err)
	}

	res, err := parse(bs)
	if err != nil {
		var vErr validator.ValidationErrors
		if errors.As(err, &vErr) {
			return nil, PublishersInvalidError(p.path, describe(vErr), err)
		}
		return nil, PublishersConfigError(p.path, err)
	}

	if lines := overlaps(res); len(lines) > 0 {
		err = errors.New("archive names of publishers overlap")
		return nil, PublishersInvalidError(p.path, strings.Join(lines, "\n"), err)
	}
	return res, nil
}

func parse(bs []byte) ([]publisher.Publisher, error) {
	var cfg publisher.Config
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return nil, fmt.Errorf("cannot parse YAML: %w", err)
	}

	for i := range cfg.Publishers {
		p := &cfg.Publishers[i]
		p.Name = strings.TrimSpace(p.Name)
		p.UUID = strings.TrimSpace(p.UUID)
		// GBIF keys are lowercase hyphenated UUIDs
		if id, err := uuid.Parse(p.UUID); err == nil {
			p.UUID = id.String()
		}
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		return nil, err
	}
	return cfg.Publishers, nil
}

// overlaps finds publishers that would read archives of other publishers.
func overlaps(pubs []publisher.Publisher) []string {
	var res []string
	for i, p := range pubs {
		for j, q := range pubs {
			if i != j && p.Claims(q) {
				res = append(res, fmt.Sprintf(
					"  - archives of '%s' match '%s' (%s_*.zip)",
					q.Name, p.Name, p.FileName(),
				))
			}
		}
	}
	return res
}

func describe(errs validator.ValidationErrors) string {
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		line := fmt.Sprintf("  - %s fails '%s'", e.Namespace(), e.Tag())
		if e.Param() != "" {
			line = fmt.Sprintf("  - %s fails '%s=%s'", e.Namespace(), e.Tag(), e.Param())
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
