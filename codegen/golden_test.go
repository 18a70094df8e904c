package codegen

import (
	"bytes"
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"

	"github.com/broady/scalegen/internal/testfixtures"
	"github.com/broady/scalegen/metadata"
)

// TestGolden renders every testdata/*.txtar archive. An archive holds an
// optional metadata.json input (the fixture runtime otherwise) and the
// expected output files. "key: value" lines in the archive comment set
// root, comments and indent.
func TestGolden(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(archives) == 0 {
		t.Fatal("no golden archives found")
	}

	for _, path := range archives {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatal(err)
			}

			var input *metadata.Prefixed
			want := make(map[string]string)
			for _, f := range ar.Files {
				if f.Name == "metadata.json" {
					input, err = metadata.Decode(bytes.NewReader(f.Data), metadata.FormatJSON)
					if err != nil {
						t.Fatalf("decode metadata.json: %v", err)
					}
					continue
				}
				want[f.Name] = string(f.Data)
			}
			if input == nil {
				input = testfixtures.Runtime()
			}

			gen := FromMetadata(input).WithFormat(FormatRust)
			applyGoldenOptions(t, gen, ar.Comment)
			res, err := gen.Generate(context.Background())
			if err != nil {
				t.Fatalf("Generate() error: %v", err)
			}

			got := make(map[string]string)
			for _, f := range res.Files {
				got[f.Path] = string(f.Content)
			}
			for name, w := range want {
				g, ok := got[name]
				if !ok {
					t.Errorf("output %s not produced; got %v", name, res.Files)
					continue
				}
				if diff := cmp.Diff(w, g); diff != "" {
					t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
				}
			}
		})
	}
}

func applyGoldenOptions(t *testing.T, gen *Generator, comment []byte) {
	t.Helper()
	for _, line := range strings.Split(string(comment), "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "root":
			gen.RootNamespace(value)
		case "comments":
			emit, err := strconv.ParseBool(value)
			if err != nil {
				t.Fatalf("bad comments option %q: %v", value, err)
			}
			gen.EmitComments(emit)
		case "indent":
			n, err := strconv.Atoi(value)
			if err != nil {
				t.Fatalf("bad indent option %q: %v", value, err)
			}
			gen.IndentSize(n)
		}
	}
}
