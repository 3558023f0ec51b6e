package config

import "github.com/alecthomas/participle/v2/lexer"

// file is the grammar root; Parse turns it into events.
type file struct {
	Statements []*statement `@@*`
}

type statement struct {
	Pos    lexer.Position
	Area   *areaStmt   `(  @@`
	Grid   *gridStmt   ` | @@`
	Pad    *padStmt    ` | @@`
	Corner *cornerStmt ` | @@`
	Space  *spaceStmt  ` | @@`
	Offset *offsetStmt ` | @@`
	Filler *fillerStmt ` | @@`
	Design *designStmt ` | @@ ) Semicolon`
}

// AREA width height
type areaStmt struct {
	Width  float64 `"AREA" @Number`
	Height float64 `@Number`
}

// GRID value
type gridStmt struct {
	Value float64 `"GRID" @Number`
}

// PAD instance N|S|E|W [FLIP] cell
type padStmt struct {
	Instance string `"PAD" @( Ident | String | Number )`
	Location string `@( "N" | "S" | "E" | "W" )`
	Flip     bool   `@"FLIP"?`
	Cell     string `@( Ident | String )`
}

// CORNER instance NW|NE|SW|SE cell
type cornerStmt struct {
	Instance string `"CORNER" @( Ident | String | Number )`
	Location string `@( "NW" | "NE" | "SW" | "SE" )`
	Cell     string `@( Ident | String )`
}

// SPACE width
type spaceStmt struct {
	Width float64 `"SPACE" @Number`
}

// OFFSET width
type offsetStmt struct {
	Width float64 `"OFFSET" @Number`
}

// FILLER prefix
type fillerStmt struct {
	Prefix string `"FILLER" @( Ident | String )`
}

// DESIGN name
type designStmt struct {
	Name string `"DESIGN" @( Ident | String )`
}
