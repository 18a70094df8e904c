package ir

import "encoding/json"

// JSON serialization support for the declaration tree.
// Items and expressions include a "kind" field for type discrimination.

// MarshalJSON implements json.Marshaler for Namespace.
func (n *Namespace) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string   `json:"kind"`
		Name    string   `json:"name"`
		Imports []Import `json:"imports,omitempty"`
		Items   []Item   `json:"items"`
		Doc     []string `json:"doc,omitempty"`
	}{
		Kind:    "namespace",
		Name:    n.Name,
		Imports: n.Imports,
		Items:   nonNilItems(n.Items),
		Doc:     n.Documentation.Lines,
	})
}

// MarshalJSON implements json.Marshaler for Import.
func (i Import) MarshalJSON() ([]byte, error) {
	path := i.Path
	if path == nil {
		path = []string{}
	}
	return json.Marshal(&struct {
		Path []string `json:"path"`
	}{Path: path})
}

// MarshalJSON implements json.Marshaler for StructDecl.
func (d *StructDecl) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind       string   `json:"kind"`
		Name       string   `json:"name"`
		TypeParams []string `json:"typeParams,omitempty"`
		Shape      string   `json:"shape"`
		Fields     []Field  `json:"fields"`
		Doc        []string `json:"doc,omitempty"`
	}{
		Kind:       "struct",
		Name:       d.Name,
		TypeParams: d.TypeParams,
		Shape:      d.Shape.String(),
		Fields:     nonNilFields(d.Fields),
		Doc:        d.Documentation.Lines,
	})
}

// MarshalJSON implements json.Marshaler for EnumDecl.
func (d *EnumDecl) MarshalJSON() ([]byte, error) {
	variants := d.Variants
	if variants == nil {
		variants = []Variant{}
	}
	return json.Marshal(&struct {
		Kind       string    `json:"kind"`
		Name       string    `json:"name"`
		TypeParams []string  `json:"typeParams,omitempty"`
		Variants   []Variant `json:"variants"`
		Doc        []string  `json:"doc,omitempty"`
	}{
		Kind:       "enum",
		Name:       d.Name,
		TypeParams: d.TypeParams,
		Variants:   variants,
		Doc:        d.Documentation.Lines,
	})
}

// MarshalJSON implements json.Marshaler for Variant.
func (v Variant) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Name   string   `json:"name"`
		Shape  string   `json:"shape"`
		Fields []Field  `json:"fields,omitempty"`
		Doc    []string `json:"doc,omitempty"`
	}{
		Name:   v.Name,
		Shape:  v.Shape.String(),
		Fields: v.Fields,
		Doc:    v.Documentation.Lines,
	})
}

// MarshalJSON implements json.Marshaler for Field.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Name   string   `json:"name,omitempty"`
		Type   TypeExpr `json:"type"`
		Public bool     `json:"public,omitempty"`
		Doc    []string `json:"doc,omitempty"`
	}{
		Name:   f.Name,
		Type:   f.Type,
		Public: f.Public,
		Doc:    f.Documentation.Lines,
	})
}

// MarshalJSON implements json.Marshaler for ReferenceExpr.
func (e *ReferenceExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind string     `json:"kind"`
		Name string     `json:"name"`
		Args []TypeExpr `json:"args,omitempty"`
	}{
		Kind: "reference",
		Name: e.Name,
		Args: e.Args,
	})
}

// MarshalJSON implements json.Marshaler for ParamExpr.
func (e *ParamExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
	}{
		Kind: "param",
		Name: e.Name,
	})
}

// MarshalJSON implements json.Marshaler for SequenceExpr.
func (e *SequenceExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string   `json:"kind"`
		Element TypeExpr `json:"element"`
	}{
		Kind:    "sequence",
		Element: e.Element,
	})
}

// MarshalJSON implements json.Marshaler for ArrayExpr.
func (e *ArrayExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string   `json:"kind"`
		Element TypeExpr `json:"element"`
		Length  int      `json:"length"`
	}{
		Kind:    "array",
		Element: e.Element,
		Length:  e.Length,
	})
}

// MarshalJSON implements json.Marshaler for TupleExpr.
func (e *TupleExpr) MarshalJSON() ([]byte, error) {
	elems := e.Elements
	if elems == nil {
		elems = []TypeExpr{}
	}
	return json.Marshal(&struct {
		Kind     string     `json:"kind"`
		Elements []TypeExpr `json:"elements"`
	}{
		Kind:     "tuple",
		Elements: elems,
	})
}

// MarshalJSON implements json.Marshaler for PrimitiveExpr.
func (e *PrimitiveExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind          string `json:"kind"`
		PrimitiveKind string `json:"primitiveKind"`
		BitSize       int    `json:"bitSize,omitempty"`
	}{
		Kind:          "primitive",
		PrimitiveKind: e.PrimitiveKind.String(),
		BitSize:       e.PrimitiveKind.BitSize(),
	})
}

func nonNilItems(items []Item) []Item {
	if items == nil {
		return []Item{}
	}
	return items
}

func nonNilFields(fields []Field) []Field {
	if fields == nil {
		return []Field{}
	}
	return fields
}
