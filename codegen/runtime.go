package codegen

import (
	"fmt"
	"log/slog"

	"github.com/broady/scalegen"
	"github.com/broady/scalegen/codegen/ir"
	"github.com/broady/scalegen/internal/casing"
	"github.com/broady/scalegen/metadata"
)

// Fixed namespace names inside the generated tree.
const (
	TypesNamespace  = "types"
	CallsNamespace  = "calls"
	EventsNamespace = "events"
)

// RuntimeGenerator produces the complete declaration tree for a runtime
// interface description: the shared types namespace plus one namespace per
// module holding its calls and events.
type RuntimeGenerator struct {
	metadata *metadata.V13
	types    *TypeGenerator
	logger   *slog.Logger
}

// NewRuntimeGenerator wraps prefixed metadata. Only version 13 is accepted.
func NewRuntimeGenerator(prefixed *metadata.Prefixed, opts ...Option) (*RuntimeGenerator, error) {
	if prefixed == nil {
		return nil, scalegen.NewError(scalegen.CodeInvalidMetadata, "metadata is nil")
	}
	if prefixed.Version != metadata.SupportedVersion {
		return nil, scalegen.Errorf(scalegen.CodeUnsupportedVersion, "Unsupported metadata version %d", prefixed.Version).
			WithDetail("version", prefixed.Version)
	}
	if prefixed.V13 == nil {
		return nil, scalegen.NewError(scalegen.CodeInvalidMetadata, "missing v13 payload")
	}
	o := buildOptions(opts)
	return &RuntimeGenerator{
		metadata: prefixed.V13,
		types:    NewTypeGenerator(&prefixed.V13.Types, WithLogger(o.logger)),
		logger:   o.logger,
	}, nil
}

// Types returns the TypeGenerator built over the metadata's registry.
func (g *RuntimeGenerator) Types() *TypeGenerator {
	return g.types
}

// Generate builds the tree rooted at a namespace named rootNamespace.
// Calling it twice yields equal trees.
func (g *RuntimeGenerator) Generate(rootNamespace string) (*ir.Namespace, error) {
	types, err := g.types.Generate(TypesNamespace)
	if err != nil {
		return nil, err
	}

	root := &ir.Namespace{Name: rootNamespace}
	root.Add(types)

	for _, m := range g.metadata.Modules {
		ns, err := g.module(m)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", m.Name, err)
		}
		root.Add(ns)
	}

	g.logger.Debug("generated runtime interface",
		slog.String("root", rootNamespace),
		slog.Int("modules", len(g.metadata.Modules)),
		slog.Int("declarations", root.CountDecls()),
	)
	return root, nil
}

func (g *RuntimeGenerator) module(m metadata.Module) (*ir.Namespace, error) {
	name := casing.Snake(m.Name)
	switch name {
	case "":
		return nil, scalegen.Errorf(scalegen.CodeInvalidMetadata, "module name %q has no identifier characters", m.Name)
	case TypesNamespace:
		return nil, scalegen.Errorf(scalegen.CodeInvalidMetadata, "module name %q collides with the %s namespace", m.Name, TypesNamespace)
	}
	ns := &ir.Namespace{
		Name:          name,
		Imports:       []ir.Import{{Path: []string{TypesNamespace}}},
		Documentation: ir.Docs(m.Docs),
	}

	if len(m.Calls) > 0 {
		calls := &ir.Namespace{Name: CallsNamespace, Imports: []ir.Import{{}}}
		for _, c := range m.Calls {
			decl, err := g.call(c)
			if err != nil {
				return nil, fmt.Errorf("call %s: %w", c.Name, err)
			}
			calls.Add(decl)
		}
		ns.Add(calls)
	}

	if len(m.Events) > 0 {
		events := &ir.Namespace{Name: EventsNamespace, Imports: []ir.Import{{}}}
		for _, e := range m.Events {
			decl, err := g.event(e)
			if err != nil {
				return nil, fmt.Errorf("event %s: %w", e.Name, err)
			}
			events.Add(decl)
		}
		ns.Add(events)
	}

	g.logger.Debug("generated module",
		slog.String("module", m.Name),
		slog.String("namespace", name),
		slog.Int("calls", len(m.Calls)),
		slog.Int("events", len(m.Events)),
	)
	return ns, nil
}

// call emits a named-field struct whose fields are the call's arguments.
func (g *RuntimeGenerator) call(c metadata.Call) (*ir.StructDecl, error) {
	name := casing.UpperCamel(c.Name)
	if name == "" {
		return nil, scalegen.Errorf(scalegen.CodeInvalidMetadata, "call name %q has no identifier characters", c.Name)
	}
	fields := make([]ir.Field, 0, len(c.Args))
	for _, arg := range c.Args {
		ty, err := g.types.ResolveType(arg.Type, nil)
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", arg.Name, err)
		}
		fields = append(fields, ir.Field{Name: arg.Name, Type: ty, Public: true})
	}
	return &ir.StructDecl{
		Name:          name,
		Shape:         ir.ShapeNamed,
		Fields:        fields,
		Documentation: ir.Docs(c.Docs),
	}, nil
}

// event emits a positional struct named after the event.
func (g *RuntimeGenerator) event(e metadata.Event) (*ir.StructDecl, error) {
	fields := make([]ir.Field, 0, len(e.Args))
	for i, arg := range e.Args {
		ty, err := g.types.ResolveType(arg.Type, nil)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		fields = append(fields, ir.Field{Type: ty, Public: true})
	}
	return &ir.StructDecl{
		Name:          e.Name,
		Shape:         ir.ShapePositional,
		Fields:        fields,
		Documentation: ir.Docs(e.Docs),
	}, nil
}
