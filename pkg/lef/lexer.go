package lef

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// LEFLexer defines the lexical structure for LEF files.
// Keywords are plain identifiers; the grammar matches them literally and the
// parser is configured to compare identifiers case-insensitively.
var LEFLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments run from # to the end of the line
	{Name: "Comment", Pattern: `#[^\n]*`},

	{Name: "Whitespace", Pattern: `\s+`},

	{Name: "String", Pattern: `"[^"\n]*"`},
	{Name: "Semicolon", Pattern: `;`},

	// Numbers come before identifiers so "-0.5" or "1e-3" are never names
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},

	// Cell, pin and layer names may carry bus brackets, hierarchy dividers
	// and other punctuation, so an identifier runs until whitespace or ';'
	{Name: "Ident", Pattern: `[A-Za-z_][^\s;"]*`},

	// Anything else (parentheses, '*', ...) is kept as an opaque token
	{Name: "Punct", Pattern: `[^\s;"]+`},
})
