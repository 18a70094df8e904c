// Package rust renders a declaration tree as Rust source: nested public
// modules holding structs and enums, with glob imports between modules.
package rust

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/broady/scalegen/codegen/ir"
)

// Config controls rendering.
type Config struct {
	IndentStyle  string // "space" or "tab"
	IndentSize   int    // Spaces per indent level (when IndentStyle is "space")
	LineEnding   string // "lf" or "crlf"
	EmitComments bool   // Render documentation as /// comments

	// RootAttributes are emitted as outer attributes on the root module.
	RootAttributes []string
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		IndentStyle:    "space",
		IndentSize:     4,
		LineEnding:     "lf",
		EmitComments:   true,
		RootAttributes: []string{"allow(dead_code, unused_imports, non_camel_case_types)"},
	}
}

// Emitter renders declaration trees. The zero value renders with DefaultConfig.
type Emitter struct {
	Config *Config
}

// New returns an Emitter using cfg.
func New(cfg Config) *Emitter {
	return &Emitter{Config: &cfg}
}

// Name returns "rust".
func (e *Emitter) Name() string {
	return "rust"
}

// FileName returns the output file name for a tree rooted at root.
func (e *Emitter) FileName(root *ir.Namespace) string {
	return root.Name + ".rs"
}

// Render produces the source for root and everything below it.
func (e *Emitter) Render(root *ir.Namespace) ([]byte, error) {
	cfg := DefaultConfig()
	if e.Config != nil {
		cfg = *e.Config
	}
	p := &printer{cfg: cfg, indent: indentUnit(cfg)}

	p.line("// Code generated by scalegen. DO NOT EDIT.")
	p.line("")
	for _, attr := range cfg.RootAttributes {
		p.line("#[" + attr + "]")
	}
	if err := p.namespace(root); err != nil {
		return nil, err
	}

	out := p.buf.Bytes()
	if cfg.LineEnding == "crlf" {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}
	return out, nil
}

func indentUnit(cfg Config) string {
	if cfg.IndentStyle == "tab" {
		return "\t"
	}
	size := cfg.IndentSize
	if size <= 0 {
		size = 4
	}
	return strings.Repeat(" ", size)
}

type printer struct {
	buf    bytes.Buffer
	cfg    Config
	indent string
	depth  int
}

// line writes s at the current depth. Empty lines carry no indentation.
func (p *printer) line(s string) {
	if s != "" {
		for range p.depth {
			p.buf.WriteString(p.indent)
		}
		p.buf.WriteString(s)
	}
	p.buf.WriteByte('\n')
}

func (p *printer) docs(doc ir.Documentation) {
	if !p.cfg.EmitComments || doc.IsZero() {
		return
	}
	for _, l := range doc.Lines {
		for _, sub := range strings.Split(l, "\n") {
			sub = strings.TrimRight(sub, " \t\r")
			if sub == "" {
				p.line("///")
				continue
			}
			if !strings.HasPrefix(sub, " ") {
				sub = " " + sub
			}
			p.line("///" + sub)
		}
	}
}

func (p *printer) namespace(ns *ir.Namespace) error {
	p.docs(ns.Documentation)
	p.line("pub mod " + escapeIdent(ns.Name) + " {")
	p.depth++

	for _, imp := range ns.Imports {
		p.line("use " + importPath(imp) + ";")
	}
	for i, it := range ns.Items {
		if i > 0 || len(ns.Imports) > 0 {
			p.line("")
		}
		if err := p.item(it); err != nil {
			return fmt.Errorf("%s: %w", ns.Name, err)
		}
	}

	p.depth--
	p.line("}")
	return nil
}

func importPath(imp ir.Import) string {
	parts := []string{"super"}
	for _, seg := range imp.Path {
		parts = append(parts, escapeIdent(seg))
	}
	parts = append(parts, "*")
	return strings.Join(parts, "::")
}

func (p *printer) item(it ir.Item) error {
	switch d := it.(type) {
	case *ir.Namespace:
		return p.namespace(d)
	case *ir.StructDecl:
		return p.structDecl(d)
	case *ir.EnumDecl:
		return p.enumDecl(d)
	default:
		return fmt.Errorf("unsupported item kind: %s", it.Kind())
	}
}

func (p *printer) structDecl(s *ir.StructDecl) error {
	p.docs(s.Documentation)
	head := "pub struct " + escapeIdent(s.Name) + typeParams(s.TypeParams)

	switch s.Shape {
	case ir.ShapePositional:
		fields, err := positional(s.Fields)
		if err != nil {
			return fmt.Errorf("struct %s: %w", s.Name, err)
		}
		p.line(head + "(" + fields + ");")
	case ir.ShapeNamed:
		if len(s.Fields) == 0 {
			p.line(head + " {}")
			return nil
		}
		p.line(head + " {")
		p.depth++
		for _, f := range s.Fields {
			p.docs(f.Documentation)
			ty, err := TypeExpr(f.Type)
			if err != nil {
				return fmt.Errorf("struct %s: field %s: %w", s.Name, f.Name, err)
			}
			p.line(visibility(f) + escapeIdent(f.Name) + ": " + ty + ",")
		}
		p.depth--
		p.line("}")
	default:
		return fmt.Errorf("struct %s: unsupported shape %s", s.Name, s.Shape)
	}
	return nil
}

func (p *printer) enumDecl(e *ir.EnumDecl) error {
	p.docs(e.Documentation)
	head := "pub enum " + escapeIdent(e.Name) + typeParams(e.TypeParams)
	if len(e.Variants) == 0 {
		p.line(head + " {}")
		return nil
	}
	p.line(head + " {")
	p.depth++
	for _, v := range e.Variants {
		p.docs(v.Documentation)
		name := escapeIdent(v.Name)
		switch v.Shape {
		case ir.ShapeUnit:
			p.line(name + ",")
		case ir.ShapePositional:
			fields, err := positional(v.Fields)
			if err != nil {
				return fmt.Errorf("enum %s: variant %s: %w", e.Name, v.Name, err)
			}
			p.line(name + "(" + fields + "),")
		case ir.ShapeNamed:
			parts := make([]string, 0, len(v.Fields))
			for _, f := range v.Fields {
				ty, err := TypeExpr(f.Type)
				if err != nil {
					return fmt.Errorf("enum %s: variant %s: field %s: %w", e.Name, v.Name, f.Name, err)
				}
				parts = append(parts, escapeIdent(f.Name)+": "+ty)
			}
			if len(parts) == 0 {
				p.line(name + " {},")
			} else {
				p.line(name + " { " + strings.Join(parts, ", ") + " },")
			}
		default:
			return fmt.Errorf("enum %s: variant %s: unsupported shape %s", e.Name, v.Name, v.Shape)
		}
	}
	p.depth--
	p.line("}")
	return nil
}

func positional(fields []ir.Field) (string, error) {
	parts := make([]string, 0, len(fields))
	for i, f := range fields {
		ty, err := TypeExpr(f.Type)
		if err != nil {
			return "", fmt.Errorf("field %d: %w", i, err)
		}
		parts = append(parts, visibility(f)+ty)
	}
	return strings.Join(parts, ", "), nil
}

func visibility(f ir.Field) string {
	if f.Public {
		return "pub "
	}
	return ""
}

func typeParams(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "<" + strings.Join(params, ", ") + ">"
}

// TypeExpr renders a single type expression.
func TypeExpr(expr ir.TypeExpr) (string, error) {
	switch t := expr.(type) {
	case *ir.PrimitiveExpr:
		return primitive(t.PrimitiveKind)
	case *ir.ParamExpr:
		return t.Name, nil
	case *ir.ReferenceExpr:
		if len(t.Args) == 0 {
			return escapeIdent(t.Name), nil
		}
		args, err := typeList(t.Args)
		if err != nil {
			return "", err
		}
		return escapeIdent(t.Name) + "<" + args + ">", nil
	case *ir.SequenceExpr:
		elem, err := TypeExpr(t.Element)
		if err != nil {
			return "", err
		}
		return "Vec<" + elem + ">", nil
	case *ir.ArrayExpr:
		elem, err := TypeExpr(t.Element)
		if err != nil {
			return "", err
		}
		return "[" + elem + "; " + strconv.Itoa(t.Length) + "]", nil
	case *ir.TupleExpr:
		switch len(t.Elements) {
		case 0:
			return "()", nil
		case 1:
			elem, err := TypeExpr(t.Elements[0])
			if err != nil {
				return "", err
			}
			return "(" + elem + ",)", nil
		}
		elems, err := typeList(t.Elements)
		if err != nil {
			return "", err
		}
		return "(" + elems + ")", nil
	case nil:
		return "", fmt.Errorf("missing type expression")
	default:
		return "", fmt.Errorf("unsupported type expression kind: %s", expr.Kind())
	}
}

func typeList(exprs []ir.TypeExpr) (string, error) {
	parts := make([]string, len(exprs))
	for i, x := range exprs {
		s, err := TypeExpr(x)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

func primitive(k ir.PrimitiveKind) (string, error) {
	switch k {
	case ir.PrimitiveBool:
		return "bool", nil
	case ir.PrimitiveChar:
		return "char", nil
	case ir.PrimitiveString:
		return "String", nil
	case ir.PrimitiveU8, ir.PrimitiveU16, ir.PrimitiveU32, ir.PrimitiveU64, ir.PrimitiveU128:
		return "u" + strconv.Itoa(k.BitSize()), nil
	case ir.PrimitiveI8, ir.PrimitiveI16, ir.PrimitiveI32, ir.PrimitiveI64, ir.PrimitiveI128:
		return "i" + strconv.Itoa(k.BitSize()), nil
	default:
		return "", fmt.Errorf("unsupported primitive: %s", k)
	}
}
