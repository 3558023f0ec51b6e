package config

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// ConfigLexer defines the lexical structure of pad ring descriptions.
var ConfigLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments run from # to the end of the line
	{Name: "Comment", Pattern: `#[^\n]*`},

	{Name: "Whitespace", Pattern: `\s+`},

	{Name: "String", Pattern: `"[^"\n]*"`},
	{Name: "Semicolon", Pattern: `;`},

	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},

	// Instance and cell names may contain bus brackets and hierarchy
	// separators, e.g. io[3] or u_pads/vdd!
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_!\[\]<>/\\.]*`},
})
