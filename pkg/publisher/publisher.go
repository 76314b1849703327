// Package publisher describes publishing organizations whose occurrence
// data and literature citations are reported.
package publisher

import (
	"strings"
)

// Publishers is the interface for loading the list of publishers
// configured by the operator.
type Publishers interface {
	Load() ([]Publisher, error)
}

// Publisher is a GBIF publishing organization.
type Publisher struct {
	// UUID is the GBIF key of the organization.
	UUID string `yaml:"uuid" validate:"required,uuid"`

	// Name is used in reports and in archive file names.
	Name string `yaml:"name" validate:"required"`
}

// Config represents the publishers.yaml file.
type Config struct {
	Publishers []Publisher `yaml:"publishers" validate:"required,min=1,unique=UUID,unique=Name,dive"`
}

// FileName returns the publisher name adapted for use in file names.
// Spaces and path separators are replaced with underscores.
func (p Publisher) FileName() string {
	return SanitizeName(p.Name)
}

// ArchiveName returns the file name of the download archive of the
// publisher.
func (p Publisher) ArchiveName() string {
	return p.FileName() + "_download.zip"
}

// IsArchive checks if a file name belongs to one of the publisher's
// archives: {FileName}_*.zip.
func (p Publisher) IsArchive(fileName string) bool {
	prefix := p.FileName() + "_"
	return strings.HasPrefix(fileName, prefix) &&
		strings.HasSuffix(fileName, ".zip")
}

// Claims checks if archives of other publisher would be taken as archives
// of p. It happens when sanitized names are equal, or when the name of
// other starts with the name of p followed by a space ("NHMD" and
// "NHMD Botany").
func (p Publisher) Claims(other Publisher) bool {
	return strings.HasPrefix(other.FileName()+"_", p.FileName()+"_")
}

// SanitizeName replaces spaces and path separators with underscores.
func SanitizeName(name string) string {
	r := strings.NewReplacer(" ", "_", "/", "_", "\\", "_")
	return r.Replace(strings.TrimSpace(name))
}
