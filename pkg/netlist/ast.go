package netlist

import "github.com/alecthomas/participle/v2/lexer"

// Expression is a chain of terms joined in series: a + b + c
type Expression struct {
	Terms []*Term `@@ ( "+" @@ )*`
}

// Term is a chain of factors joined in parallel: a / b / c
type Term struct {
	Factors []*Factor `@@ ( "/" @@ )*`
}

type Factor struct {
	Group   *Expression `  "(" @@ ")"`
	Element *Element    `| @@`
}

// Element is a node with its given quantities and, for series and
// parallel, an optional child list: series(e=12)(l(r=1), l(r=2))
type Element struct {
	Pos      lexer.Position
	Kind     string        `@Ident`
	Params   []*Param      `"(" ( @@ ( "," @@ )* )? ")"`
	Children []*Expression `( "(" ( @@ ( "," @@ )* )? ")" )?`
}

// Param assigns one quantity: e=12, r=4.7k, z=100-100j, e=12@45
type Param struct {
	Pos   lexer.Position
	Name  string `@Ident "="`
	Value *Value `@@`
}

type Value struct {
	First *Number         `@@`
	Rest  []*SignedNumber `@@*`
	Angle *Number         `( ( "@" | "∠" ) @@ )?`
}

type Number struct {
	Sign  string `@( "-" | "+" )?`
	Value string `@Number`
}

type SignedNumber struct {
	Sign  string `@( "-" | "+" )`
	Value string `@Number`
}
