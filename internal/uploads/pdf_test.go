package uploads

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean name untouched", "paper_v2.final-draft.pdf", "paper_v2.final-draft.pdf"},
		{"spaces removed", "my paper (2024).pdf", "mypaper2024.pdf"},
		{"path stripped", "../../etc/passwd", "passwd"},
		{"unicode removed", "étude_café.pdf", "tude_caf.pdf"},
		{"only junk", "<<>>", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestPDFStore_Save(t *testing.T) {
	dir := t.TempDir()
	store := NewPDFStore(dir, "https://journal.example.com/")

	url, sanitized, err := store.Save("soil study (final).pdf", strings.NewReader("%PDF-1.7 content"))
	require.NoError(t, err)
	assert.Equal(t, "soilstudyfinal.pdf", sanitized)
	assert.Equal(t, "https://journal.example.com/pdfs/soilstudyfinal.pdf", url)

	data, err := os.ReadFile(filepath.Join(dir, sanitized))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 content", string(data))
}

func TestPDFStore_SaveRejectsEmptyName(t *testing.T) {
	store := NewPDFStore(t.TempDir(), "")
	_, _, err := store.Save("<<>>", strings.NewReader("x"))
	require.Error(t, err)
}

func TestPDFStore_FallbackURL(t *testing.T) {
	store := NewPDFStore("/nonexistent", "https://journal.example.com")
	assert.Equal(t, "/pdfs/report.pdf", store.FallbackURL("rep ort.pdf"))
}
