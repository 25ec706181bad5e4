package shapes

import "fmt"

func area(s Shape) float64 {
	switch s := s.(type) { // want `Switch is not exhaustive. Unhandled cases: Triangle, \*Triangle\.`
	case Circle:
		return 3 * s.R * s.R
	case *Circle:
		return 3 * s.R * s.R
	case *Square:
		return s.S * s.S
	}
	return 0
}

// Value receivers put both Circle and *Circle in a Shape; the clauses below
// catch only the value forms.
func name(s Shape) string {
	switch s.(type) { // want `Switch is not exhaustive. Unhandled cases: \*Circle, \*Triangle\.`
	case Circle, Triangle:
		return "round or pointy"
	case *Square:
		return "square"
	}
	return ""
}

func isCircle(s Shape) bool {
	switch s.(type) {
	case Circle, *Circle:
		return true
	default:
		return false
	}
}

func describe(s Shape) string {
	switch s.(type) {
	case Circle, *Circle, *Square, Triangle, *Triangle:
		return "shape"
	default: // want "Unreachable pattern. All enum cases have already been handled"
		return "unknown"
	}
}

func show(s Shape) string {
	switch v := s.(type) {
	case fmt.Stringer: // want `None of the enum cases implement this interface \(fmt.Stringer\)`
		return v.String()
	case Circle, *Circle, *Square, Triangle, *Triangle:
		return "shape"
	}
	return ""
}

func stringer(s Shape) bool {
	_, ok := s.(fmt.Stringer) // want `None of the enum cases implement this interface \(fmt.Stringer\)`
	return ok
}

func eval(e Expr) int {
	switch e := e.(type) { // want "Switch is not exhaustive. Unhandled cases: Mul."
	case *Lit:
		return e.V
	case *Add:
		return eval(e.L) + eval(e.R)
	}
	return 0
}

func isBinary(e Expr) bool {
	switch e.(type) {
	case BinOp:
		return true
	case *Lit:
		return false
	}
	return false
}

func empty(s Shape) {
	switch s.(type) {
	}
}
