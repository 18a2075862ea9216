package netlist

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// ShorthandLexer tokenizes network expressions such as
// s(e=12) + (l(r=9) / l(r=9)) + l(z=100-100j).
var ShorthandLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},

	// Numbers with an optional SPICE scale suffix and imaginary unit,
	// e.g. 12, 2.2m, 1e-3, 4.7meg, 100j
	{Name: "Number", Pattern: `(?:\d+(?:\.\d+)?|\.\d+)(?:[eE][-+]?\d+)?(?:meg|[TGMKkmunpf])?j?`},

	// Element kinds and parameter names
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},

	// Series, parallel, grouping, assignment and polar angle
	{Name: "Punct", Pattern: `[-+/(),=@]|∠`},
})
