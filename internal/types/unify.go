package types

// Assignable returns the type a location of type expected holds after
// storing a value of type actual: actual when expected is Infer, else
// expected. It never fails; equality is enforced by Exact and Accepts.
func Assignable(expected, actual Type) Type {
	if expected.kind == KindInfer {
		return actual
	}
	return expected
}

// Exact unifies operand types.
//
//   - equal, non-Infer types give that type
//   - one Infer side gives the other side
//   - two type parameters give Never (inference failure, not an error)
//
// ok is false for any other pair.
func Exact(a, b Type) (t Type, ok bool) {
	aInfer, bInfer := a.kind == KindInfer, b.kind == KindInfer
	switch {
	case !aInfer && !bInfer && Equal(a, b):
		return a, true
	case aInfer && !bInfer:
		return b, true
	case !aInfer && bInfer:
		return a, true
	case a.IsTypeParameter() && b.IsTypeParameter():
		return Never(), true
	}
	return OrElse(a, b), false
}

// CommonParent joins if-expression branches. There is no widening, so it
// is Exact.
func CommonParent(a, b Type) (Type, bool) {
	return Exact(a, b)
}

// Accepts reports whether a value of type actual may be stored in a
// location declared as expected: equal types, null (?Never) into any
// nullable type, or a non-null value into its nullable form.
func Accepts(expected, actual Type) bool {
	if expected.kind == KindInfer || Equal(expected, actual) {
		return true
	}
	if !expected.IsNullable() {
		return false
	}
	if actual.kind == KindNever && actual.IsNullable() {
		return true
	}
	return Equal(expected, actual.ToNullable())
}
