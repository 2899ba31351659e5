package fixture

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes the textual module notation this package's tests and
// cmd/pagerando load fixtures from. Grounded on the teacher's grammar
// package lexer: a stateful participle lexer with one flat rule set.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_.$]*`, nil},
		{"Integer", `[0-9]+`, nil},
		{"Ellipsis", `\.\.\.`, nil},
		{"Punctuation", `[{}()\[\]:;,=*%@.]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
