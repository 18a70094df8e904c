package rust

import (
	"strings"
	"testing"

	"github.com/broady/scalegen/codegen/ir"
)

// lines joins its arguments into newline-terminated source.
func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

const header = "// Code generated by scalegen. DO NOT EDIT."

func plainConfig() Config {
	cfg := DefaultConfig()
	cfg.EmitComments = false
	cfg.RootAttributes = nil
	return cfg
}

func render(t *testing.T, cfg Config, root *ir.Namespace) string {
	t.Helper()
	out, err := New(cfg).Render(root)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return string(out)
}

func TestRender_Modules(t *testing.T) {
	root := &ir.Namespace{
		Name: "runtime",
		Items: []ir.Item{
			&ir.Namespace{
				Name: "types",
				Items: []ir.Item{
					&ir.StructDecl{
						Name:   "S",
						Shape:  ir.ShapeNamed,
						Fields: []ir.Field{{Name: "a", Type: ir.Bool(), Public: true}},
					},
				},
			},
			&ir.Namespace{
				Name:    "system",
				Imports: []ir.Import{{Path: []string{"types"}}},
				Items: []ir.Item{
					&ir.Namespace{
						Name:    "calls",
						Imports: []ir.Import{{}},
						Items: []ir.Item{
							&ir.StructDecl{
								Name:   "Remark",
								Shape:  ir.ShapeNamed,
								Fields: []ir.Field{{Name: "remark", Type: ir.Seq(ir.U8()), Public: true}},
							},
						},
					},
				},
			},
		},
	}

	want := lines(
		header,
		"",
		"pub mod runtime {",
		"    pub mod types {",
		"        pub struct S {",
		"            pub a: bool,",
		"        }",
		"    }",
		"",
		"    pub mod system {",
		"        use super::types::*;",
		"",
		"        pub mod calls {",
		"            use super::*;",
		"",
		"            pub struct Remark {",
		"                pub remark: Vec<u8>,",
		"            }",
		"        }",
		"    }",
		"}",
	)
	if got := render(t, plainConfig(), root); got != want {
		t.Errorf("Render() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRender_Declarations(t *testing.T) {
	tests := []struct {
		name string
		decl ir.Item
		want string
	}{
		{
			name: "named struct",
			decl: &ir.StructDecl{
				Name:  "S",
				Shape: ir.ShapeNamed,
				Fields: []ir.Field{
					{Name: "a", Type: ir.Bool(), Public: true},
					{Name: "b", Type: ir.U32(), Public: true},
					{Name: "c", Type: ir.Char(), Public: true},
				},
			},
			want: lines(
				"pub struct S {",
				"    pub a: bool,",
				"    pub b: u32,",
				"    pub c: char,",
				"}",
			),
		},
		{
			name: "tuple struct",
			decl: &ir.StructDecl{
				Name:  "Parent",
				Shape: ir.ShapePositional,
				Fields: []ir.Field{
					{Type: ir.Bool(), Public: true},
					{Type: ir.Ref("Child"), Public: true},
				},
			},
			want: lines("pub struct Parent(pub bool, pub Child);"),
		},
		{
			name: "empty struct",
			decl: &ir.StructDecl{Name: "Marker", Shape: ir.ShapeNamed},
			want: lines("pub struct Marker {}"),
		},
		{
			name: "enum",
			decl: &ir.EnumDecl{
				Name: "E",
				Variants: []ir.Variant{
					{Name: "A", Shape: ir.ShapeUnit},
					{Name: "B", Shape: ir.ShapePositional, Fields: []ir.Field{{Type: ir.Bool()}}},
					{Name: "C", Shape: ir.ShapeNamed, Fields: []ir.Field{{Name: "a", Type: ir.U32()}}},
				},
			},
			want: lines(
				"pub enum E {",
				"    A,",
				"    B(bool),",
				"    C { a: u32 },",
				"}",
			),
		},
		{
			name: "generic struct",
			decl: &ir.StructDecl{
				Name:       "Foo",
				TypeParams: []string{"_0", "_1"},
				Shape:      ir.ShapeNamed,
				Fields: []ir.Field{
					{Name: "a", Type: ir.Param("_0"), Public: true},
					{Name: "b", Type: ir.Ref("Option", ir.Tuple(ir.Param("_0"), ir.Param("_1"))), Public: true},
				},
			},
			want: lines(
				"pub struct Foo<_0, _1> {",
				"    pub a: _0,",
				"    pub b: Option<(_0, _1)>,",
				"}",
			),
		},
		{
			name: "keyword field",
			decl: &ir.StructDecl{
				Name:   "Call",
				Shape:  ir.ShapeNamed,
				Fields: []ir.Field{{Name: "type", Type: ir.U8(), Public: true}},
			},
			want: lines(
				"pub struct Call {",
				"    pub r#type: u8,",
				"}",
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := &ir.Namespace{Name: "m", Items: []ir.Item{tt.decl}}
			got := render(t, plainConfig(), root)
			body := indentLines(tt.want, "    ")
			want := header + "\n\npub mod m {\n" + body + "}\n"
			if got != want {
				t.Errorf("Render() mismatch\ngot:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func indentLines(s, prefix string) string {
	var b strings.Builder
	for _, l := range strings.SplitAfter(s, "\n") {
		if l == "" {
			continue
		}
		if l != "\n" {
			b.WriteString(prefix)
		}
		b.WriteString(l)
	}
	return b.String()
}

func TestRender_Documentation(t *testing.T) {
	root := &ir.Namespace{
		Name: "types",
		Items: []ir.Item{
			&ir.StructDecl{
				Name:          "AccountId32",
				Shape:         ir.ShapePositional,
				Fields:        []ir.Field{{Type: ir.Array(ir.U8(), 32), Public: true}},
				Documentation: ir.Docs([]string{" An opaque identifier.", "", "Second paragraph."}),
			},
		},
	}
	cfg := plainConfig()
	cfg.EmitComments = true

	want := lines(
		header,
		"",
		"pub mod types {",
		"    /// An opaque identifier.",
		"    ///",
		"    /// Second paragraph.",
		"    pub struct AccountId32(pub [u8; 32]);",
		"}",
	)
	if got := render(t, cfg, root); got != want {
		t.Errorf("Render() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}

	cfg.EmitComments = false
	if got := render(t, cfg, root); strings.Contains(got, "///") {
		t.Errorf("Render() with comments disabled emitted docs:\n%s", got)
	}
}

func TestRender_ConfigOptions(t *testing.T) {
	root := &ir.Namespace{
		Name:  "runtime",
		Items: []ir.Item{&ir.StructDecl{Name: "S", Shape: ir.ShapeNamed, Fields: []ir.Field{{Name: "a", Type: ir.Bool(), Public: true}}}},
	}

	t.Run("default attributes", func(t *testing.T) {
		got := render(t, DefaultConfig(), root)
		if !strings.Contains(got, "#[allow(dead_code, unused_imports, non_camel_case_types)]\npub mod runtime {") {
			t.Errorf("missing root attribute:\n%s", got)
		}
	})

	t.Run("tabs", func(t *testing.T) {
		cfg := plainConfig()
		cfg.IndentStyle = "tab"
		got := render(t, cfg, root)
		if !strings.Contains(got, "\n\t\tpub a: bool,\n") {
			t.Errorf("expected tab indentation:\n%q", got)
		}
	})

	t.Run("indent size", func(t *testing.T) {
		cfg := plainConfig()
		cfg.IndentSize = 2
		got := render(t, cfg, root)
		if !strings.Contains(got, "\n    pub a: bool,\n") || strings.Contains(got, "\n        pub a") {
			t.Errorf("expected two-space indentation:\n%q", got)
		}
	})

	t.Run("crlf", func(t *testing.T) {
		cfg := plainConfig()
		cfg.LineEnding = "crlf"
		got := render(t, cfg, root)
		if strings.Count(got, "\r\n") != strings.Count(got, "\n") {
			t.Errorf("expected CRLF line endings:\n%q", got)
		}
	})

	t.Run("zero emitter uses defaults", func(t *testing.T) {
		out, err := (&Emitter{}).Render(root)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(out), "#[allow(") {
			t.Errorf("zero Emitter did not apply defaults:\n%s", out)
		}
	})
}

func TestTypeExpr(t *testing.T) {
	tests := []struct {
		name string
		expr ir.TypeExpr
		want string
	}{
		{"bool", ir.Bool(), "bool"},
		{"string", ir.String(), "String"},
		{"u128", ir.Prim(ir.PrimitiveU128), "u128"},
		{"i8", ir.Prim(ir.PrimitiveI8), "i8"},
		{"i64", ir.Prim(ir.PrimitiveI64), "i64"},
		{"array", ir.Array(ir.U8(), 32), "[u8; 32]"},
		{"vec", ir.Seq(ir.U32()), "Vec<u32>"},
		{"unit", ir.Tuple(), "()"},
		{"one tuple", ir.Tuple(ir.Bool()), "(bool,)"},
		{"pair", ir.Tuple(ir.Bool(), ir.U32()), "(bool, u32)"},
		{"option", ir.Ref("Option", ir.Bool()), "Option<bool>"},
		{"nested", ir.Ref("Foo", ir.Param("_0"), ir.Seq(ir.Array(ir.U8(), 4))), "Foo<_0, Vec<[u8; 4]>>"},
		{"keyword reference", ir.Ref("Self"), "Self_"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TypeExpr(tt.expr)
			if err != nil {
				t.Fatalf("TypeExpr() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("TypeExpr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypeExpr_Nil(t *testing.T) {
	if _, err := TypeExpr(nil); err == nil {
		t.Error("TypeExpr(nil) succeeded, want error")
	}
}

func TestRender_FieldError(t *testing.T) {
	root := &ir.Namespace{
		Name:  "types",
		Items: []ir.Item{&ir.StructDecl{Name: "S", Shape: ir.ShapeNamed, Fields: []ir.Field{{Name: "a"}}}},
	}
	_, err := New(plainConfig()).Render(root)
	if err == nil || !strings.Contains(err.Error(), "field a") {
		t.Errorf("Render() error = %v, want field context", err)
	}
}
