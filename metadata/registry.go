package metadata

// TypeID identifies a type in a Registry. Zero is never a valid id.
type TypeID uint32

// Registry is the id-indexed catalog of every type a descriptor knows about.
// Entries are kept in the order they were decoded.
type Registry struct {
	Types []PortableType `json:"types" msgpack:"types" validate:"unique_ids,dive"`
}

// PortableType pairs a type definition with its registry id.
type PortableType struct {
	ID   TypeID `json:"id" msgpack:"id" validate:"required"`
	Type Type   `json:"type" msgpack:"type"`
}

// Index maps every id to its entry. When an id is registered twice the first
// entry wins. The returned pointers alias r.Types.
func (r *Registry) Index() map[TypeID]*Type {
	index := make(map[TypeID]*Type, len(r.Types))
	for i := range r.Types {
		pt := &r.Types[i]
		if _, dup := index[pt.ID]; !dup {
			index[pt.ID] = &pt.Type
		}
	}
	return index
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.Types)
}

// Type is a single registry entry.
type Type struct {
	// Path locates the type. Prelude types (Option, Result, ...) have an
	// empty namespace and are referenced but never declared.
	Path Path

	// Params lists the generic parameters in declaration order.
	Params []TypeParam

	// Def is the shape of the type.
	Def TypeDef `validate:"required"`

	// Docs holds documentation lines, if the descriptor carries them.
	Docs []string
}

// Path is the ordered list of segments naming a type. The last segment is the
// type's own name; the rest form its namespace.
type Path []string

// Namespace returns every segment but the last.
func (p Path) Namespace() []string {
	if len(p) <= 1 {
		return nil
	}
	return p[:len(p)-1]
}

// Ident returns the declared name, the last segment. An empty path or an
// empty last segment has no declared name.
func (p Path) Ident() (string, bool) {
	if len(p) == 0 || p[len(p)-1] == "" {
		return "", false
	}
	return p[len(p)-1], true
}

// TypeParam is a generic parameter slot. Type is the id bound at the site that
// produced this registry entry.
type TypeParam struct {
	Name string `json:"name,omitempty" msgpack:"name,omitempty"`
	Type TypeID `json:"type" msgpack:"type" validate:"required"`
}

// Field is a single field of a composite or variant. Unnamed fields have an
// empty Name.
type Field struct {
	Name     string   `json:"name,omitempty" msgpack:"name,omitempty"`
	Type     TypeID   `json:"type" msgpack:"type" validate:"required"`
	TypeName string   `json:"typeName,omitempty" msgpack:"typeName,omitempty"`
	Docs     []string `json:"docs,omitempty" msgpack:"docs,omitempty"`
}

// Named reports whether the field has a name.
func (f Field) Named() bool {
	return f.Name != ""
}

// Shape identifies the category of a TypeDef.
type Shape int

const (
	ShapeComposite Shape = iota
	ShapeVariant
	ShapeSequence
	ShapeArray
	ShapeTuple
	ShapePrimitive
)

// String returns the wire tag of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeComposite:
		return "composite"
	case ShapeVariant:
		return "variant"
	case ShapeSequence:
		return "sequence"
	case ShapeArray:
		return "array"
	case ShapeTuple:
		return "tuple"
	case ShapePrimitive:
		return "primitive"
	default:
		return "unknown"
	}
}

// TypeDef is the closed set of type shapes. Only types in this package
// implement it.
type TypeDef interface {
	Shape() Shape
	sealed()
}

// Composite is a record with named or positional fields.
type Composite struct {
	Fields []Field `json:"fields,omitempty" msgpack:"fields,omitempty" validate:"dive"`
}

// Variant is a tagged union.
type Variant struct {
	Variants []VariantDef `json:"variants,omitempty" msgpack:"variants,omitempty" validate:"dive"`
}

// VariantDef is one alternative of a Variant.
type VariantDef struct {
	Name   string   `json:"name" msgpack:"name" validate:"required"`
	Fields []Field  `json:"fields,omitempty" msgpack:"fields,omitempty" validate:"dive"`
	Index  uint8    `json:"index" msgpack:"index"`
	Docs   []string `json:"docs,omitempty" msgpack:"docs,omitempty"`
}

// Sequence is a dynamically sized homogeneous sequence.
type Sequence struct {
	Type TypeID `json:"type" msgpack:"type" validate:"required"`
}

// Array is a fixed-length homogeneous sequence.
type Array struct {
	Len  uint32 `json:"len" msgpack:"len"`
	Type TypeID `json:"type" msgpack:"type" validate:"required"`
}

// Tuple is an ordered heterogeneous grouping. The empty tuple is the unit type.
type Tuple struct {
	Fields []TypeID `validate:"dive,required"`
}

// Primitive is a built-in scalar.
type Primitive struct {
	Kind PrimitiveKind `validate:"oneof=bool char str u8 u16 u32 u64 u128 u256 i8 i16 i32 i64 i128 i256"`
}

func (*Composite) Shape() Shape { return ShapeComposite }
func (*Variant) Shape() Shape   { return ShapeVariant }
func (*Sequence) Shape() Shape  { return ShapeSequence }
func (*Array) Shape() Shape     { return ShapeArray }
func (*Tuple) Shape() Shape     { return ShapeTuple }
func (*Primitive) Shape() Shape { return ShapePrimitive }

func (*Composite) sealed() {}
func (*Variant) sealed()   {}
func (*Sequence) sealed()  {}
func (*Array) sealed()     {}
func (*Tuple) sealed()     {}
func (*Primitive) sealed() {}

// PrimitiveKind names a primitive as it appears on the wire.
type PrimitiveKind string

const (
	PrimitiveBool PrimitiveKind = "bool"
	PrimitiveChar PrimitiveKind = "char"
	PrimitiveStr  PrimitiveKind = "str"
	PrimitiveU8   PrimitiveKind = "u8"
	PrimitiveU16  PrimitiveKind = "u16"
	PrimitiveU32  PrimitiveKind = "u32"
	PrimitiveU64  PrimitiveKind = "u64"
	PrimitiveU128 PrimitiveKind = "u128"
	PrimitiveU256 PrimitiveKind = "u256"
	PrimitiveI8   PrimitiveKind = "i8"
	PrimitiveI16  PrimitiveKind = "i16"
	PrimitiveI32  PrimitiveKind = "i32"
	PrimitiveI64  PrimitiveKind = "i64"
	PrimitiveI128 PrimitiveKind = "i128"
	PrimitiveI256 PrimitiveKind = "i256"
)
