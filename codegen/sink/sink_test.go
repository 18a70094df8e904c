package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"simple file", "runtime.rs", ""},
		{"nested path", "out/json/runtime.json", ""},
		{"dotted name", "runtime.tree.json", ""},
		{"empty", "", "empty"},
		{"leading slash", "/etc/passwd", "absolute paths not allowed"},
		{"drive letter", "C:/out.rs", "absolute paths not allowed"},
		{"backslash", `out\runtime.rs`, "backslash"},
		{"parent segment", "out/../runtime.rs", "path traversal not allowed"},
		{"leading parent", "../runtime.rs", "path traversal not allowed"},
		{"only parent", "..", "path traversal not allowed"},
		{"dot prefix", "./runtime.rs", "not clean"},
		{"double slash", "out//runtime.rs", "not clean"},
		{"trailing slash", "out/", "not clean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidatePath(%q) error = %v, want nil", tt.path, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidatePath(%q) error = %v, want error containing %q", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestMemorySink(t *testing.T) {
	ctx := context.Background()

	t.Run("write and read", func(t *testing.T) {
		s := NewMemorySink()
		if err := s.WriteFile(ctx, "runtime.rs", []byte("pub mod runtime {}")); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		if got := string(s.Get("runtime.rs")); got != "pub mod runtime {}" {
			t.Errorf("Get() = %q", got)
		}
		if got := s.Get("missing.rs"); got != nil {
			t.Errorf("Get(missing) = %q, want nil", got)
		}
	})

	t.Run("stored content is isolated from caller", func(t *testing.T) {
		s := NewMemorySink()
		content := []byte("abc")
		if err := s.WriteFile(ctx, "a.rs", content); err != nil {
			t.Fatal(err)
		}
		content[0] = 'X'
		got := s.Get("a.rs")
		got[1] = 'Y'
		if string(s.Get("a.rs")) != "abc" {
			t.Errorf("stored content was modified: %q", s.Get("a.rs"))
		}
	})

	t.Run("paths sorted", func(t *testing.T) {
		s := NewMemorySink()
		for _, p := range []string{"b.json", "a.rs", "c/d.rs"} {
			if err := s.WriteFile(ctx, p, nil); err != nil {
				t.Fatal(err)
			}
		}
		if got := strings.Join(s.Paths(), ","); got != "a.rs,b.json,c/d.rs" {
			t.Errorf("Paths() = %s", got)
		}
		if len(s.Files()) != 3 {
			t.Errorf("Files() len = %d, want 3", len(s.Files()))
		}
		s.Reset()
		if len(s.Paths()) != 0 {
			t.Errorf("Paths() after Reset = %v", s.Paths())
		}
	})

	t.Run("invalid path", func(t *testing.T) {
		s := NewMemorySink()
		if err := s.WriteFile(ctx, "../x.rs", nil); err == nil {
			t.Error("WriteFile(../x.rs) succeeded, want error")
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		s := NewMemorySink()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if err := s.WriteFile(cctx, "a.rs", nil); err == nil {
			t.Error("WriteFile() with canceled context succeeded")
		}
	})

	t.Run("concurrent writes", func(t *testing.T) {
		s := NewMemorySink()
		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = s.WriteFile(ctx, fmt.Sprintf("f%d.rs", i), []byte("x"))
			}()
		}
		wg.Wait()
		if n := len(s.Paths()); n != 20 {
			t.Errorf("stored %d files, want 20", n)
		}
	})
}

func TestFilesystemSink(t *testing.T) {
	ctx := context.Background()

	t.Run("creates directories", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFilesystemSink(dir)
		if err := s.WriteFile(ctx, "nested/out/runtime.rs", []byte("content")); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		got, err := os.ReadFile(filepath.Join(dir, "nested", "out", "runtime.rs"))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "content" {
			t.Errorf("file content = %q", got)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFilesystemSink(dir)
		for _, c := range []string{"first", "second"} {
			if err := s.WriteFile(ctx, "runtime.rs", []byte(c)); err != nil {
				t.Fatal(err)
			}
		}
		got, _ := os.ReadFile(filepath.Join(dir, "runtime.rs"))
		if string(got) != "second" {
			t.Errorf("file content = %q, want second", got)
		}
	})

	t.Run("no overwrite", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFilesystemSink(dir)
		s.Overwrite = false
		if err := s.WriteFile(ctx, "runtime.rs", []byte("first")); err != nil {
			t.Fatal(err)
		}
		err := s.WriteFile(ctx, "runtime.rs", []byte("second"))
		if err == nil || !strings.Contains(err.Error(), "already exists") {
			t.Errorf("second WriteFile() error = %v, want already exists", err)
		}
		got, _ := os.ReadFile(filepath.Join(dir, "runtime.rs"))
		if string(got) != "first" {
			t.Errorf("file content = %q, want first", got)
		}
	})

	t.Run("mode", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFilesystemSink(dir)
		s.Mode = 0o600
		if err := s.WriteFile(ctx, "runtime.rs", nil); err != nil {
			t.Fatal(err)
		}
		info, err := os.Stat(filepath.Join(dir, "runtime.rs"))
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Errorf("mode = %v, want 0600", info.Mode().Perm())
		}
	})

	t.Run("no temp files left", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFilesystemSink(dir)
		for i := range 5 {
			if err := s.WriteFile(ctx, fmt.Sprintf("f%d.rs", i), []byte("x")); err != nil {
				t.Fatal(err)
			}
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), ".scalegen-") {
				t.Errorf("temp file left behind: %s", e.Name())
			}
		}
	})

	t.Run("invalid path", func(t *testing.T) {
		s := NewFilesystemSink(t.TempDir())
		if err := s.WriteFile(ctx, "../escape.rs", nil); err == nil {
			t.Error("WriteFile(../escape.rs) succeeded, want error")
		}
	})
}
