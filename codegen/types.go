package codegen

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"github.com/broady/scalegen"
	"github.com/broady/scalegen/codegen/ir"
	"github.com/broady/scalegen/metadata"
)

// TypeParameter binds a registry id to the placeholder name used for it inside
// the declaration currently being emitted.
type TypeParameter struct {
	ConcreteTypeID metadata.TypeID
	Name           string
}

// TypeGenerator turns a type registry into declarations and resolves single
// type ids into type expressions. It never mutates the registry and holds no
// per-run state, so one TypeGenerator may serve concurrent callers.
type TypeGenerator struct {
	registry *metadata.Registry
	index    map[metadata.TypeID]*metadata.Type
	logger   *slog.Logger
}

// NewTypeGenerator constructs a TypeGenerator over registry. The registry is
// indexed but not validated; malformed entries are reported by Generate and
// ResolveType.
func NewTypeGenerator(registry *metadata.Registry, opts ...Option) *TypeGenerator {
	o := buildOptions(opts)
	return &TypeGenerator{
		registry: registry,
		index:    registry.Index(),
		logger:   o.logger,
	}
}

// Generate emits one declaration per named composite or variant entry, in id
// order, wrapped in a namespace called rootNamespace. Prelude entries (empty
// namespace) and structural shapes produce no declaration.
func (g *TypeGenerator) Generate(rootNamespace string) (*ir.Namespace, error) {
	ns := &ir.Namespace{Name: rootNamespace}
	for _, entry := range g.ordered() {
		ty := &entry.Type
		if len(ty.Path.Namespace()) == 0 {
			continue
		}
		decl, err := g.declare(entry.ID, ty)
		if err != nil {
			return nil, fmt.Errorf("type %d (%s): %w", entry.ID, strings.Join(ty.Path, "::"), err)
		}
		if decl != nil {
			ns.Add(decl)
		}
	}
	g.logger.Debug("generated type declarations",
		slog.String("namespace", rootNamespace),
		slog.Int("registry_size", g.registry.Len()),
		slog.Int("declarations", len(ns.Items)),
	)
	return ns, nil
}

// ordered returns the registry entries sorted by id without touching the registry.
func (g *TypeGenerator) ordered() []metadata.PortableType {
	entries := slices.Clone(g.registry.Types)
	slices.SortStableFunc(entries, func(a, b metadata.PortableType) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return entries
}

// declare builds the declaration for a single entry, or nil for shapes that
// are only ever referenced inline.
func (g *TypeGenerator) declare(id metadata.TypeID, ty *metadata.Type) (ir.Item, error) {
	params := typeParameters(ty)
	switch def := ty.Def.(type) {
	case *metadata.Composite:
		name, ok := ty.Path.Ident()
		if !ok {
			return nil, missingName(id, "structs should have a name")
		}
		shape, fields, err := g.compositeFields(def.Fields, params, true)
		if err != nil {
			return nil, err
		}
		return &ir.StructDecl{
			Name:          name,
			TypeParams:    paramNames(params),
			Shape:         shape,
			Fields:        fields,
			Documentation: ir.Docs(ty.Docs),
		}, nil

	case *metadata.Variant:
		name, ok := ty.Path.Ident()
		if !ok {
			return nil, missingName(id, "variants should have a name")
		}
		variants := make([]ir.Variant, 0, len(def.Variants))
		for _, v := range def.Variants {
			variant := ir.Variant{
				Name:          v.Name,
				Shape:         ir.ShapeUnit,
				Documentation: ir.Docs(v.Docs),
			}
			if len(v.Fields) > 0 {
				shape, fields, err := g.compositeFields(v.Fields, params, false)
				if err != nil {
					return nil, fmt.Errorf("variant %s: %w", v.Name, err)
				}
				variant.Shape = shape
				variant.Fields = fields
			}
			variants = append(variants, variant)
		}
		return &ir.EnumDecl{
			Name:          name,
			TypeParams:    paramNames(params),
			Variants:      variants,
			Documentation: ir.Docs(ty.Docs),
		}, nil

	case *metadata.Sequence, *metadata.Array, *metadata.Tuple, *metadata.Primitive:
		return nil, nil

	default:
		return nil, unknownShape(id, def)
	}
}

// compositeFields resolves a field list under the enclosing entry's
// placeholders. Struct fields are public; variant payload fields are not.
func (g *TypeGenerator) compositeFields(fields []metadata.Field, params []TypeParameter, isStruct bool) (ir.Shape, []ir.Field, error) {
	named := true
	unnamed := true
	for _, f := range fields {
		if f.Named() {
			unnamed = false
		} else {
			named = false
		}
	}

	var shape ir.Shape
	switch {
	case named:
		shape = ir.ShapeNamed
	case unnamed:
		shape = ir.ShapePositional
	default:
		return 0, nil, scalegen.NewError(scalegen.CodeInconsistentFieldNaming,
			"Fields must be either all named or all unnamed")
	}

	out := make([]ir.Field, 0, len(fields))
	for i, f := range fields {
		ty, err := g.ResolveType(f.Type, params)
		if err != nil {
			if f.Named() {
				return 0, nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			return 0, nil, fmt.Errorf("field %d: %w", i, err)
		}
		out = append(out, ir.Field{
			Name:          f.Name,
			Type:          ty,
			Public:        isStruct,
			Documentation: ir.Docs(f.Docs),
		})
	}
	return shape, out, nil
}

// ResolveType resolves id into a type expression. Ids bound in params resolve
// to their placeholder before the registry is consulted.
func (g *TypeGenerator) ResolveType(id metadata.TypeID, params []TypeParameter) (ir.TypeExpr, error) {
	return g.resolve(id, params, nil)
}

// resolve carries the ids currently being expanded in stack. Each recursive
// call receives its own copy so sibling expansions never observe each other.
func (g *TypeGenerator) resolve(id metadata.TypeID, params []TypeParameter, stack []metadata.TypeID) (ir.TypeExpr, error) {
	for _, p := range params {
		if p.ConcreteTypeID == id {
			return ir.Param(p.Name), nil
		}
	}

	if slices.Contains(stack, id) {
		return nil, cycleError(append(slices.Clone(stack), id))
	}

	ty, ok := g.index[id]
	if !ok {
		return nil, scalegen.Errorf(scalegen.CodeDanglingTypeReference, "No type with id %d found", id).
			WithDetail("type_id", id)
	}
	stack = append(stack[:len(stack):len(stack)], id)

	args := make([]ir.TypeExpr, 0, len(ty.Params))
	for _, tp := range ty.Params {
		arg, err := g.resolve(tp.Type, params, stack)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	switch def := ty.Def.(type) {
	case *metadata.Composite, *metadata.Variant:
		name, ok := ty.Path.Ident()
		if !ok {
			return nil, missingName(id, "custom structs/enums should have a name")
		}
		if len(args) == 0 {
			return ir.Ref(name), nil
		}
		return ir.Ref(name, args...), nil

	case *metadata.Sequence:
		elem, err := g.resolve(def.Type, params, stack)
		if err != nil {
			return nil, err
		}
		return ir.Seq(elem), nil

	case *metadata.Array:
		elem, err := g.resolve(def.Type, params, stack)
		if err != nil {
			return nil, err
		}
		length, err := safecast.Conv[int](def.Len)
		if err != nil {
			return nil, scalegen.Errorf(scalegen.CodeInvalidMetadata,
				"array length %d of type %d does not fit in int: %v", def.Len, id, err)
		}
		return ir.Array(elem, length), nil

	case *metadata.Tuple:
		if len(def.Fields) == 0 {
			return ir.Tuple(), nil
		}
		elems := make([]ir.TypeExpr, 0, len(def.Fields))
		for _, fid := range def.Fields {
			elem, err := g.resolve(fid, params, stack)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return ir.Tuple(elems...), nil

	case *metadata.Primitive:
		return primitive(id, def.Kind)

	default:
		return nil, unknownShape(id, def)
	}
}

// primitives is the fixed lookup table for representable primitive kinds.
var primitives = map[metadata.PrimitiveKind]ir.PrimitiveKind{
	metadata.PrimitiveBool: ir.PrimitiveBool,
	metadata.PrimitiveChar: ir.PrimitiveChar,
	metadata.PrimitiveStr:  ir.PrimitiveString,
	metadata.PrimitiveU8:   ir.PrimitiveU8,
	metadata.PrimitiveU16:  ir.PrimitiveU16,
	metadata.PrimitiveU32:  ir.PrimitiveU32,
	metadata.PrimitiveU64:  ir.PrimitiveU64,
	metadata.PrimitiveU128: ir.PrimitiveU128,
	metadata.PrimitiveI8:   ir.PrimitiveI8,
	metadata.PrimitiveI16:  ir.PrimitiveI16,
	metadata.PrimitiveI32:  ir.PrimitiveI32,
	metadata.PrimitiveI64:  ir.PrimitiveI64,
	metadata.PrimitiveI128: ir.PrimitiveI128,
}

func primitive(id metadata.TypeID, kind metadata.PrimitiveKind) (ir.TypeExpr, error) {
	switch kind {
	case metadata.PrimitiveU256, metadata.PrimitiveI256:
		return nil, scalegen.Errorf(scalegen.CodeUnrepresentablePrimitive,
			"%s is not implemented: no target primitive can hold it", kind).
			WithDetail("type_id", id)
	}
	p, ok := primitives[kind]
	if !ok {
		return nil, scalegen.Errorf(scalegen.CodeInvalidMetadata, "unknown primitive %q", kind).
			WithDetail("type_id", id)
	}
	return ir.Prim(p), nil
}

// typeParameters names an entry's generic parameters by position.
func typeParameters(ty *metadata.Type) []TypeParameter {
	if len(ty.Params) == 0 {
		return nil
	}
	params := make([]TypeParameter, len(ty.Params))
	for i, tp := range ty.Params {
		params[i] = TypeParameter{
			ConcreteTypeID: tp.Type,
			Name:           placeholder(i),
		}
	}
	return params
}

// placeholder returns the synthetic name of the i-th generic parameter.
func placeholder(i int) string {
	return "_" + strconv.Itoa(i)
}

func paramNames(params []TypeParameter) []string {
	if len(params) == 0 {
		return nil
	}
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

func missingName(id metadata.TypeID, msg string) error {
	return scalegen.NewError(scalegen.CodeMissingDeclaredName, msg).WithDetail("type_id", id)
}

func unknownShape(id metadata.TypeID, def metadata.TypeDef) error {
	return scalegen.Errorf(scalegen.CodeInvalidMetadata, "type %d has unsupported definition %T", id, def).
		WithDetail("type_id", id)
}

func cycleError(path []metadata.TypeID) error {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return scalegen.Errorf(scalegen.CodeCyclicTypeDefinition,
		"type %d refers to itself without indirection: %s", path[len(path)-1], strings.Join(parts, " -> ")).
		WithDetail("cycle", path)
}
