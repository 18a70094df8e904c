package metadata

import (
	"github.com/go-playground/validator/v10"

	"github.com/broady/scalegen"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("unique_ids", uniqueTypeIDs)
	return v
}

// uniqueTypeIDs rejects registries that declare the same id twice.
func uniqueTypeIDs(fl validator.FieldLevel) bool {
	types, ok := fl.Field().Interface().([]PortableType)
	if !ok {
		return false
	}
	seen := make(map[TypeID]struct{}, len(types))
	for _, t := range types {
		if _, dup := seen[t.ID]; dup {
			return false
		}
		seen[t.ID] = struct{}{}
	}
	return true
}

// Validate checks the structural rules a descriptor must satisfy before
// generation: the magic prefix, non-zero unique type ids, one shape per type,
// known primitive kinds, and names on modules, calls, call arguments and events.
//
// Validate does not check the version; generator construction rejects
// unsupported versions with a dedicated error. It also does not chase type
// references, which generation reports as dangling_type_reference.
func Validate(p *Prefixed) error {
	if p == nil {
		return scalegen.NewError(scalegen.CodeInvalidMetadata, "metadata is nil")
	}
	if err := validate.Struct(p); err != nil {
		return scalegen.FromValidation(err)
	}
	return nil
}
