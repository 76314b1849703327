package publisher_test

import (
	"testing"

	"github.com/gnames/gbifreport/pkg/publisher"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		msg, name, res string
	}{
		{"spaces", "Natural History Museum of Denmark", "Natural_History_Museum_of_Denmark"},
		{"punctuation kept",
			"Botanical Garden & Museum, Natural History Museum of Denmark",
			"Botanical_Garden_&_Museum,_Natural_History_Museum_of_Denmark"},
		{"separators", "A/B\\C", "A_B_C"},
		{"trimmed", "  Aarhus ", "Aarhus"},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, publisher.SanitizeName(v.name), v.msg)
	}
}

func TestArchiveName(t *testing.T) {
	p := publisher.Publisher{
		UUID: "760d5f24-4c04-40da-9646-1b2c935da502",
		Name: "Natural History Museum Aarhus",
	}
	assert.Equal(t, "Natural_History_Museum_Aarhus_download.zip", p.ArchiveName())
}

func TestIsArchive(t *testing.T) {
	p := publisher.Publisher{Name: "Natural History Museum [DK]"}

	tests := []struct {
		msg  string
		file string
		res  bool
	}{
		{"download archive", "Natural_History_Museum_[DK]_download.zip", true},
		{"other suffix", "Natural_History_Museum_[DK]_2023.zip", true},
		{"not a zip", "Natural_History_Museum_[DK]_download.txt", false},
		{"other publisher", "Natural_History_Museum_Aarhus_download.zip", false},
		{"empty wildcard", "Natural_History_Museum_[DK]_.zip", true},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, p.IsArchive(v.file), v.msg)
	}
}

func TestClaims(t *testing.T) {
	nhmd := publisher.Publisher{Name: "NHMD"}

	tests := []struct {
		msg   string
		other string
		res   bool
	}{
		{"name with suffix", "NHMD Botany", true},
		{"same file name", "NHMD ", true},
		{"longer word", "NHMDK", false},
		{"unrelated", "Natural History Museum Aarhus", false},
		{"shorter", "NHM", false},
	}

	for _, v := range tests {
		other := publisher.Publisher{Name: v.other}
		assert.Equal(t, v.res, nhmd.Claims(other), v.msg)
	}

	botany := publisher.Publisher{Name: "NHMD Botany"}
	assert.True(t, nhmd.IsArchive(botany.ArchiveName()))
	assert.False(t, botany.Claims(nhmd))
}
