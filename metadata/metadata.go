// Package metadata defines the decoded runtime metadata descriptor consumed by
// the code generators: a versioned envelope holding a portable type registry
// and the list of remote modules with their calls and events.
//
// Decoding the raw SCALE bytes is out of scope. This package reads snapshots of
// an already decoded descriptor in JSON or msgpack form.
package metadata

const (
	// MagicNumber prefixes every descriptor ("meta" in little endian).
	MagicNumber uint32 = 0x6174656d

	// SupportedVersion is the only descriptor version the generators accept.
	SupportedVersion uint32 = 13
)

// Prefixed is the versioned envelope. Exactly one versioned payload is set;
// this package only models version 13.
type Prefixed struct {
	Magic   uint32 `json:"magic" msgpack:"magic" validate:"eq=1635018093"`
	Version uint32 `json:"version" msgpack:"version"`
	V13     *V13   `json:"v13,omitempty" msgpack:"v13,omitempty"`
}

// NewV13 wraps a version 13 payload in a correctly prefixed envelope.
func NewV13(v *V13) *Prefixed {
	return &Prefixed{
		Magic:   MagicNumber,
		Version: SupportedVersion,
		V13:     v,
	}
}

// V13 is the version 13 descriptor payload.
type V13 struct {
	Types   Registry `json:"types" msgpack:"types"`
	Modules []Module `json:"modules" msgpack:"modules" validate:"dive"`
}

// Module describes one remote module. Nil Calls or Events means the module
// exposes none.
type Module struct {
	Name   string   `json:"name" msgpack:"name" validate:"required"`
	Index  uint8    `json:"index" msgpack:"index"`
	Calls  []Call   `json:"calls,omitempty" msgpack:"calls,omitempty" validate:"dive"`
	Events []Event  `json:"events,omitempty" msgpack:"events,omitempty" validate:"dive"`
	Docs   []string `json:"docs,omitempty" msgpack:"docs,omitempty"`
}

// Call is a callable action with named arguments.
type Call struct {
	Name string    `json:"name" msgpack:"name" validate:"required"`
	Args []CallArg `json:"args,omitempty" msgpack:"args,omitempty" validate:"dive"`
	Docs []string  `json:"docs,omitempty" msgpack:"docs,omitempty"`
}

// CallArg is a named, typed call argument.
type CallArg struct {
	Name     string `json:"name" msgpack:"name" validate:"required"`
	Type     TypeID `json:"type" msgpack:"type" validate:"required"`
	TypeName string `json:"typeName,omitempty" msgpack:"typeName,omitempty"`
}

// Event is an emitted payload with positional arguments.
type Event struct {
	Name string     `json:"name" msgpack:"name" validate:"required"`
	Args []EventArg `json:"args,omitempty" msgpack:"args,omitempty" validate:"dive"`
	Docs []string   `json:"docs,omitempty" msgpack:"docs,omitempty"`
}

// EventArg is one positional event argument.
type EventArg struct {
	Type     TypeID `json:"type" msgpack:"type" validate:"required"`
	TypeName string `json:"typeName,omitempty" msgpack:"typeName,omitempty"`
}
