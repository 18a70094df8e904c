package metadata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/broady/scalegen"
)

// Format is a snapshot encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("cannot infer metadata format from %q (expected .json, .msgpack or .mpk)", path)
	}
}

// ReadFile decodes the snapshot at path, choosing the format by extension.
func ReadFile(path string) (*Prefixed, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Decode reads one descriptor snapshot from r.
func Decode(r io.Reader, format Format) (*Prefixed, error) {
	var p Prefixed
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&p); err != nil {
			return nil, decodeError(err)
		}
	case FormatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(&p); err != nil {
			return nil, decodeError(err)
		}
	default:
		return nil, fmt.Errorf("unknown metadata format %q", format)
	}
	return &p, nil
}

// Encode writes p to w in the given format.
func Encode(w io.Writer, p *Prefixed, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(p)
	default:
		return fmt.Errorf("unknown metadata format %q", format)
	}
}

func decodeError(err error) error {
	if scalegen.CodeOf(err) == scalegen.CodeInvalidMetadata {
		return err
	}
	return scalegen.Errorf(scalegen.CodeInvalidMetadata, "decode metadata: %v", err)
}

// typeWire is the serialized form of Type. The shape is externally tagged:
// {"def": {"composite": {...}}}.
type typeWire struct {
	Path   Path        `json:"path,omitempty" msgpack:"path,omitempty"`
	Params []TypeParam `json:"params,omitempty" msgpack:"params,omitempty"`
	Def    defWire     `json:"def" msgpack:"def"`
	Docs   []string    `json:"docs,omitempty" msgpack:"docs,omitempty"`
}

type defWire struct {
	Composite *Composite     `json:"composite,omitempty" msgpack:"composite,omitempty"`
	Variant   *Variant       `json:"variant,omitempty" msgpack:"variant,omitempty"`
	Sequence  *Sequence      `json:"sequence,omitempty" msgpack:"sequence,omitempty"`
	Array     *Array         `json:"array,omitempty" msgpack:"array,omitempty"`
	Tuple     *[]TypeID      `json:"tuple,omitempty" msgpack:"tuple,omitempty"`
	Primitive *PrimitiveKind `json:"primitive,omitempty" msgpack:"primitive,omitempty"`
}

func (t Type) wire() (typeWire, error) {
	w := typeWire{Path: t.Path, Params: t.Params, Docs: t.Docs}
	switch d := t.Def.(type) {
	case *Composite:
		w.Def.Composite = d
	case *Variant:
		w.Def.Variant = d
	case *Sequence:
		w.Def.Sequence = d
	case *Array:
		w.Def.Array = d
	case *Tuple:
		fields := d.Fields
		if fields == nil {
			fields = []TypeID{}
		}
		w.Def.Tuple = &fields
	case *Primitive:
		kind := d.Kind
		w.Def.Primitive = &kind
	case nil:
		return w, scalegen.NewError(scalegen.CodeInvalidMetadata, "type has no definition")
	default:
		return w, scalegen.Errorf(scalegen.CodeInvalidMetadata, "unknown type definition %T", d)
	}
	return w, nil
}

func (w typeWire) typ() (Type, error) {
	t := Type{Path: w.Path, Params: w.Params, Docs: w.Docs}
	var defs []TypeDef
	if w.Def.Composite != nil {
		defs = append(defs, w.Def.Composite)
	}
	if w.Def.Variant != nil {
		defs = append(defs, w.Def.Variant)
	}
	if w.Def.Sequence != nil {
		defs = append(defs, w.Def.Sequence)
	}
	if w.Def.Array != nil {
		defs = append(defs, w.Def.Array)
	}
	if w.Def.Tuple != nil {
		defs = append(defs, &Tuple{Fields: *w.Def.Tuple})
	}
	if w.Def.Primitive != nil {
		defs = append(defs, &Primitive{Kind: *w.Def.Primitive})
	}
	if len(defs) != 1 {
		return t, scalegen.Errorf(scalegen.CodeInvalidMetadata,
			"type %v must define exactly one shape, found %d", []string(w.Path), len(defs))
	}
	t.Def = defs[0]
	return t, nil
}

// MarshalJSON implements json.Marshaler for Type.
func (t Type) MarshalJSON() ([]byte, error) {
	w, err := t.wire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler for Type.
func (t *Type) UnmarshalJSON(data []byte) error {
	var w typeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	decoded, err := w.typ()
	if err != nil {
		return err
	}
	*t = decoded
	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder for Type.
func (t Type) EncodeMsgpack(enc *msgpack.Encoder) error {
	w, err := t.wire()
	if err != nil {
		return err
	}
	return enc.Encode(w)
}

// DecodeMsgpack implements msgpack.CustomDecoder for Type.
func (t *Type) DecodeMsgpack(dec *msgpack.Decoder) error {
	var w typeWire
	if err := dec.Decode(&w); err != nil {
		return err
	}
	decoded, err := w.typ()
	if err != nil {
		return err
	}
	*t = decoded
	return nil
}
