package ir

// PrimitiveKind identifies a representable primitive.
// 256-bit integers have no kind here: resolution rejects them.
type PrimitiveKind int

const (
	PrimitiveBool PrimitiveKind = iota
	PrimitiveChar
	PrimitiveString
	PrimitiveU8
	PrimitiveU16
	PrimitiveU32
	PrimitiveU64
	PrimitiveU128
	PrimitiveI8
	PrimitiveI16
	PrimitiveI32
	PrimitiveI64
	PrimitiveI128
)

// String returns the string representation of the primitive kind.
func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveBool:
		return "Bool"
	case PrimitiveChar:
		return "Char"
	case PrimitiveString:
		return "String"
	case PrimitiveU8:
		return "U8"
	case PrimitiveU16:
		return "U16"
	case PrimitiveU32:
		return "U32"
	case PrimitiveU64:
		return "U64"
	case PrimitiveU128:
		return "U128"
	case PrimitiveI8:
		return "I8"
	case PrimitiveI16:
		return "I16"
	case PrimitiveI32:
		return "I32"
	case PrimitiveI64:
		return "I64"
	case PrimitiveI128:
		return "I128"
	default:
		return "Unknown"
	}
}

// Signed reports whether the kind is a signed integer.
func (k PrimitiveKind) Signed() bool {
	return k >= PrimitiveI8 && k <= PrimitiveI128
}

// BitSize returns the width of integer kinds and 0 otherwise.
func (k PrimitiveKind) BitSize() int {
	switch k {
	case PrimitiveU8, PrimitiveI8:
		return 8
	case PrimitiveU16, PrimitiveI16:
		return 16
	case PrimitiveU32, PrimitiveI32:
		return 32
	case PrimitiveU64, PrimitiveI64:
		return 64
	case PrimitiveU128, PrimitiveI128:
		return 128
	default:
		return 0
	}
}

// PrimitiveExpr is a built-in scalar type.
type PrimitiveExpr struct {
	PrimitiveKind PrimitiveKind
}

// Kind returns ExprPrimitive.
func (*PrimitiveExpr) Kind() ExprKind { return ExprPrimitive }

// Prim returns a PrimitiveExpr of the given kind.
func Prim(kind PrimitiveKind) *PrimitiveExpr {
	return &PrimitiveExpr{PrimitiveKind: kind}
}

// Convenience constructors for common primitives.

// Bool returns a PrimitiveExpr for bool.
func Bool() *PrimitiveExpr { return Prim(PrimitiveBool) }

// Char returns a PrimitiveExpr for a single character.
func Char() *PrimitiveExpr { return Prim(PrimitiveChar) }

// String returns a PrimitiveExpr for text strings.
func String() *PrimitiveExpr { return Prim(PrimitiveString) }

// U8 returns a PrimitiveExpr for 8-bit unsigned integers.
func U8() *PrimitiveExpr { return Prim(PrimitiveU8) }

// U32 returns a PrimitiveExpr for 32-bit unsigned integers.
func U32() *PrimitiveExpr { return Prim(PrimitiveU32) }

// U64 returns a PrimitiveExpr for 64-bit unsigned integers.
func U64() *PrimitiveExpr { return Prim(PrimitiveU64) }

// I32 returns a PrimitiveExpr for 32-bit signed integers.
func I32() *PrimitiveExpr { return Prim(PrimitiveI32) }
