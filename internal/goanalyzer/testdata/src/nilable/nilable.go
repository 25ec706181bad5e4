package nilable

//enumclass:closed
type Token interface{ isToken() } // want Token:`closed\(Ident, \*Ident, Number, \*Number\)`

type Ident string

type Number int

func (Ident) isToken() {}

func (Number) isToken() {}

func kind(t Token) string {
	switch t.(type) { // want "The value being switched on can be null, but none of the arms check for it"
	case Ident, *Ident:
		return "ident"
	case Number, *Number:
		return "number"
	}
	return ""
}

func kindOrNil(t Token) string {
	switch t.(type) {
	case nil:
		return "none"
	case Ident, *Ident, Number, *Number:
		return "token"
	}
	return ""
}

func valuesOnly(t Token) string {
	switch t.(type) { // want "can be null" `Unhandled cases: \*Ident, \*Number\.`
	case Ident, Number:
		return "token"
	}
	return ""
}

func withDefault(t Token) string {
	switch t.(type) {
	case Ident:
		return "ident"
	default:
		return "other"
	}
}
