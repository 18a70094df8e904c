package testfixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/broady/scalegen/metadata"
)

// WriteSnapshot encodes p into a temporary file called name. The format
// follows the extension.
func WriteSnapshot(t testing.TB, p *metadata.Prefixed, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	format, err := metadata.FormatFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := metadata.Encode(f, p, format); err != nil {
		t.Fatal(err)
	}
	return path
}
