package ir

// ExprKind identifies the category of a type expression.
type ExprKind int

const (
	ExprReference ExprKind = iota // Named declaration, possibly with arguments
	ExprParam                     // Generic placeholder of the enclosing declaration
	ExprSequence                  // Dynamically sized sequence
	ExprArray                     // Fixed-length sequence
	ExprTuple                     // Ordered heterogeneous grouping
	ExprPrimitive                 // Built-in scalar
)

// String returns the string representation of the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprReference:
		return "Reference"
	case ExprParam:
		return "Param"
	case ExprSequence:
		return "Sequence"
	case ExprArray:
		return "Array"
	case ExprTuple:
		return "Tuple"
	case ExprPrimitive:
		return "Primitive"
	default:
		return "Unknown"
	}
}

// TypeExpr is a resolved type expression as it appears in a field.
type TypeExpr interface {
	// Kind returns the expression kind for type switching.
	Kind() ExprKind

	// Ensure only types in this package can implement TypeExpr.
	sealed()
}

// ReferenceExpr refers to a declaration by name. Prelude types such as Option
// are referenced the same way even though they are never declared.
type ReferenceExpr struct {
	Name string
	Args []TypeExpr
}

// Kind returns ExprReference.
func (*ReferenceExpr) Kind() ExprKind { return ExprReference }

// Ref returns a ReferenceExpr with the given generic arguments.
func Ref(name string, args ...TypeExpr) *ReferenceExpr {
	return &ReferenceExpr{Name: name, Args: args}
}

// ParamExpr is a placeholder bound by the enclosing declaration.
type ParamExpr struct {
	Name string
}

// Kind returns ExprParam.
func (*ParamExpr) Kind() ExprKind { return ExprParam }

// Param returns a ParamExpr.
func Param(name string) *ParamExpr {
	return &ParamExpr{Name: name}
}

// SequenceExpr is a dynamically sized homogeneous sequence.
type SequenceExpr struct {
	Element TypeExpr
}

// Kind returns ExprSequence.
func (*SequenceExpr) Kind() ExprKind { return ExprSequence }

// Seq returns a SequenceExpr.
func Seq(element TypeExpr) *SequenceExpr {
	return &SequenceExpr{Element: element}
}

// ArrayExpr is a fixed-length homogeneous sequence.
type ArrayExpr struct {
	Element TypeExpr
	Length  int
}

// Kind returns ExprArray.
func (*ArrayExpr) Kind() ExprKind { return ExprArray }

// Array returns an ArrayExpr.
func Array(element TypeExpr, length int) *ArrayExpr {
	return &ArrayExpr{Element: element, Length: length}
}

// TupleExpr is an ordered heterogeneous grouping. The empty tuple is the unit type.
type TupleExpr struct {
	Elements []TypeExpr
}

// Kind returns ExprTuple.
func (*TupleExpr) Kind() ExprKind { return ExprTuple }

// Tuple returns a TupleExpr.
func Tuple(elements ...TypeExpr) *TupleExpr {
	return &TupleExpr{Elements: elements}
}

func (*ReferenceExpr) sealed() {}
func (*ParamExpr) sealed()     {}
func (*SequenceExpr) sealed()  {}
func (*ArrayExpr) sealed()     {}
func (*TupleExpr) sealed()     {}
func (*PrimitiveExpr) sealed() {}
