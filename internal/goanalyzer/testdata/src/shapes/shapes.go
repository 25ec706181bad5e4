package shapes

//enumclass:closed
type Shape interface{ isShape() } // want Shape:`closed\(Circle, \*Circle, Square, Triangle, \*Triangle\)`

type Circle struct{ R float64 }

type Square struct{ S float64 }

type Triangle struct{ A, B, C float64 }

func (Circle) isShape() {}

func (*Square) isShape() {}

func (Triangle) isShape() {}

//enumclass:closed
type Expr interface{ isExpr() } // want Expr:`closed\(Add, Mul, Lit\)`

//enumclass:closed
type BinOp interface { // want BinOp:`closed\(Add, Mul\)`
	Expr
	isBinOp()
}

type Lit struct{ V int }

type Add struct{ L, R Expr }

type Mul struct{ L, R Expr }

func (*Lit) isExpr() {}

func (*Add) isExpr()  {}
func (*Add) isBinOp() {}

func (*Mul) isExpr()  {}
func (*Mul) isBinOp() {}

//enumclass:closed
type Never interface{ isNever() } // want Never:`closed\(\)` "closed interface Never has no cases"

//enumclass:closed
type Color int // want "//enumclass:closed applies only to interface types"
