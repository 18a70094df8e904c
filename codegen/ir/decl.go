// Package ir defines the declaration tree produced by the generators.
// The tree is language-agnostic: namespaces contain declarations, declarations
// contain fields or alternatives, and fields carry type expressions. Renderers
// turn the tree into target language source.
package ir

// ItemKind identifies the category of a namespace item.
type ItemKind int

const (
	KindNamespace ItemKind = iota // Nested namespace
	KindStruct                    // Record declaration
	KindEnum                      // Tagged-union declaration
)

// String returns the string representation of the item kind.
func (k ItemKind) String() string {
	switch k {
	case KindNamespace:
		return "Namespace"
	case KindStruct:
		return "Struct"
	case KindEnum:
		return "Enum"
	default:
		return "Unknown"
	}
}

// Item is anything a namespace can contain.
type Item interface {
	// Kind returns the item kind for type switching.
	Kind() ItemKind

	// ItemName returns the declared name.
	ItemName() string

	// Ensure only types in this package can implement Item.
	sealed()
}

// Documentation holds documentation lines carried over from the metadata.
type Documentation struct {
	Lines []string
}

// IsZero returns true if there is no documentation.
func (d Documentation) IsZero() bool {
	return len(d.Lines) == 0
}

// Docs builds Documentation from raw lines, dropping a fully blank set.
func Docs(lines []string) Documentation {
	for _, l := range lines {
		if l != "" {
			return Documentation{Lines: lines}
		}
	}
	return Documentation{}
}

// Import brings every name of another namespace into scope.
// Path is resolved from the parent of the importing namespace; an empty Path
// names the parent itself.
type Import struct {
	Path []string
}

// Namespace is a named, ordered container of items.
type Namespace struct {
	Name    string
	Imports []Import
	Items   []Item

	Documentation Documentation
}

// Kind returns KindNamespace.
func (n *Namespace) Kind() ItemKind { return KindNamespace }

// ItemName returns the namespace name.
func (n *Namespace) ItemName() string { return n.Name }

func (*Namespace) sealed() {}

// Add appends items to the namespace.
func (n *Namespace) Add(items ...Item) {
	n.Items = append(n.Items, items...)
}

// Namespace returns the direct child namespace with the given name, or nil.
func (n *Namespace) Namespace(name string) *Namespace {
	for _, it := range n.Items {
		if ns, ok := it.(*Namespace); ok && ns.Name == name {
			return ns
		}
	}
	return nil
}

// Lookup returns the direct child declaration with the given name, or nil.
func (n *Namespace) Lookup(name string) Item {
	for _, it := range n.Items {
		if it.Kind() != KindNamespace && it.ItemName() == name {
			return it
		}
	}
	return nil
}

// Walk calls fn for every item below n in depth-first declaration order.
// Returning false from fn stops descent into that item.
func (n *Namespace) Walk(fn func(Item) bool) {
	for _, it := range n.Items {
		if !fn(it) {
			continue
		}
		if ns, ok := it.(*Namespace); ok {
			ns.Walk(fn)
		}
	}
}

// CountDecls returns the number of struct and enum declarations below n.
func (n *Namespace) CountDecls() int {
	count := 0
	n.Walk(func(it Item) bool {
		if it.Kind() != KindNamespace {
			count++
		}
		return true
	})
	return count
}

// Shape describes how a field list is laid out.
type Shape int

const (
	ShapeNamed      Shape = iota // {a: T, b: U}
	ShapePositional              // (T, U)
	ShapeUnit                    // no payload; only valid for enum variants
)

// String returns the string representation of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeNamed:
		return "named"
	case ShapePositional:
		return "positional"
	case ShapeUnit:
		return "unit"
	default:
		return "unknown"
	}
}

// Field is one field of a struct or variant. Name is empty for positional fields.
type Field struct {
	Name string
	Type TypeExpr

	// Public marks the field as externally visible. Struct fields are public;
	// variant payload fields inherit the enum's visibility instead.
	Public bool

	Documentation Documentation
}

// StructDecl is a record declaration.
type StructDecl struct {
	Name string

	// TypeParams are the placeholder names, in position order.
	TypeParams []string

	Shape  Shape
	Fields []Field

	Documentation Documentation
}

// Kind returns KindStruct.
func (d *StructDecl) Kind() ItemKind { return KindStruct }

// ItemName returns the struct's name.
func (d *StructDecl) ItemName() string { return d.Name }

func (*StructDecl) sealed() {}

// EnumDecl is a tagged-union declaration.
type EnumDecl struct {
	Name       string
	TypeParams []string
	Variants   []Variant

	Documentation Documentation
}

// Kind returns KindEnum.
func (d *EnumDecl) Kind() ItemKind { return KindEnum }

// ItemName returns the enum's name.
func (d *EnumDecl) ItemName() string { return d.Name }

func (*EnumDecl) sealed() {}

// Variant is one alternative of an EnumDecl.
type Variant struct {
	Name   string
	Shape  Shape
	Fields []Field

	Documentation Documentation
}
