// Package testfixtures builds type registries and metadata descriptors for
// generator, renderer and CLI tests.
package testfixtures

import (
	"fmt"
	"strings"

	"github.com/broady/scalegen/metadata"
)

// RegistryBuilder assigns sequential ids starting at 1.
type RegistryBuilder struct {
	types []metadata.PortableType
}

// NewRegistry returns an empty builder.
func NewRegistry() *RegistryBuilder {
	return &RegistryBuilder{}
}

// Add registers ty and returns its id.
func (b *RegistryBuilder) Add(ty metadata.Type) metadata.TypeID {
	id := metadata.TypeID(len(b.types) + 1)
	b.types = append(b.types, metadata.PortableType{ID: id, Type: ty})
	return id
}

// Reserve allocates an id whose definition is supplied later with Set.
// Used for forward and self references.
func (b *RegistryBuilder) Reserve() metadata.TypeID {
	return b.Add(metadata.Type{})
}

// Set replaces the definition registered under id.
func (b *RegistryBuilder) Set(id metadata.TypeID, ty metadata.Type) {
	for i := range b.types {
		if b.types[i].ID == id {
			b.types[i].Type = ty
			return
		}
	}
	panic(fmt.Sprintf("testfixtures: id %d was never allocated", id))
}

// Primitive registers a primitive and returns its id.
func (b *RegistryBuilder) Primitive(kind metadata.PrimitiveKind) metadata.TypeID {
	return b.Add(Prim(kind))
}

// Build returns the registry. Later changes to the builder do not affect it.
func (b *RegistryBuilder) Build() *metadata.Registry {
	types := make([]metadata.PortableType, len(b.types))
	copy(types, b.types)
	return &metadata.Registry{Types: types}
}

// Path splits a "::" separated path. An empty string yields an empty path.
func Path(s string) metadata.Path {
	if s == "" {
		return nil
	}
	return metadata.Path(strings.Split(s, "::"))
}

// Prim is a primitive type.
func Prim(kind metadata.PrimitiveKind) metadata.Type {
	return metadata.Type{Def: &metadata.Primitive{Kind: kind}}
}

// Struct is a composite at path.
func Struct(path string, fields ...metadata.Field) metadata.Type {
	return metadata.Type{
		Path: Path(path),
		Def:  &metadata.Composite{Fields: fields},
	}
}

// Enum is a variant at path. Alternatives are indexed by position.
func Enum(path string, alts ...metadata.VariantDef) metadata.Type {
	for i := range alts {
		alts[i].Index = uint8(i)
	}
	return metadata.Type{
		Path: Path(path),
		Def:  &metadata.Variant{Variants: alts},
	}
}

// Seq is a sequence of elem.
func Seq(elem metadata.TypeID) metadata.Type {
	return metadata.Type{Def: &metadata.Sequence{Type: elem}}
}

// Arr is a fixed-length array of elem.
func Arr(n uint32, elem metadata.TypeID) metadata.Type {
	return metadata.Type{Def: &metadata.Array{Len: n, Type: elem}}
}

// Tup is a tuple of ids.
func Tup(ids ...metadata.TypeID) metadata.Type {
	return metadata.Type{Def: &metadata.Tuple{Fields: ids}}
}

// Generic binds generic parameters on ty, named T, U, V, ... by position.
func Generic(ty metadata.Type, params ...metadata.TypeID) metadata.Type {
	const names = "TUVWXYZ"
	ty.Params = make([]metadata.TypeParam, len(params))
	for i, id := range params {
		ty.Params[i] = metadata.TypeParam{Name: string(names[i%len(names)]), Type: id}
	}
	return ty
}

// Documented attaches doc lines to ty.
func Documented(ty metadata.Type, docs ...string) metadata.Type {
	ty.Docs = docs
	return ty
}

// Named is a named field.
func Named(name string, id metadata.TypeID) metadata.Field {
	return metadata.Field{Name: name, Type: id}
}

// Unnamed is a positional field.
func Unnamed(id metadata.TypeID) metadata.Field {
	return metadata.Field{Type: id}
}

// Alt is one enum alternative.
func Alt(name string, fields ...metadata.Field) metadata.VariantDef {
	return metadata.VariantDef{Name: name, Fields: fields}
}
