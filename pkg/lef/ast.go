package lef

import "github.com/alecthomas/participle/v2/lexer"

// File represents a complete LEF file: a sequence of top-level statements
// optionally closed by END LIBRARY.
type File struct {
	Pos        lexer.Position
	Statements []*Statement `@@*`
	EndLibrary bool         `( @"END" "LIBRARY" )?`
}

// Statement is one top-level LEF construct.
type Statement struct {
	Units   *Units   `  @@`
	Macro   *Macro   `| @@`
	Block   *Block   `| @@`
	Section *Section `| @@`
	Simple  *Simple  `| @@`
}

// Units represents the UNITS ... END UNITS block
// Example: UNITS DATABASE MICRONS 1000 ; END UNITS
type Units struct {
	Statements []*Simple `"UNITS" @@* "END" "UNITS"`
}

// Block represents a named top-level block such as LAYER or SITE.
// Only the statements directly inside are kept; nested blocks are not supported.
type Block struct {
	Pos  lexer.Position
	Kind string    `@( "LAYER" | "VIARULE" | "VIA" | "SITE" | "NONDEFAULTRULE" )`
	Name string    `@Ident`
	Body []*Simple `@@*`
	End  string    `"END" @Ident`
}

// Section represents an unnamed block closed by END <kind>.
type Section struct {
	Kind string    `@( "PROPERTYDEFINITIONS" | "SPACING" )`
	Body []*Simple `@@*`
	End  string    `"END" @Ident`
}

// Simple is a keyword followed by arbitrary arguments up to the next ';'.
// Example: VERSION 5.8 ;
type Simple struct {
	Pos     lexer.Position
	Keyword string   `(?! "END" ) @Ident`
	Args    []string `( @~Semicolon )* Semicolon`
}

// Macro represents a cell abstract
// Example: MACRO PADCELL CLASS PAD ; SIZE 80 BY 200 ; END PADCELL
type Macro struct {
	Pos   lexer.Position
	Name  string       `"MACRO" @Ident`
	Items []*MacroItem `@@*`
	End   string       `"END" @Ident`
}

// MacroItem is one statement within a macro.
type MacroItem struct {
	Class    *Class    `  @@`
	Foreign  *Foreign  `| @@`
	Origin   *Origin   `| @@`
	Size     *Size     `| @@`
	Symmetry *Symmetry `| @@`
	Site     *SiteRef  `| @@`
	Pin      *Pin      `| @@`
	Obs      *Obs      `| @@`
	Other    *Simple   `| @@`
}

// Class represents CLASS with its optional subclass
// Example: CLASS PAD SPACER ;
type Class struct {
	Kinds []string `"CLASS" ( @~Semicolon )+ Semicolon`
}

// Point is an x/y pair of numbers.
type Point struct {
	X float64 `@Number`
	Y float64 `@Number`
}

// Foreign represents FOREIGN name [x y [orient]]
type Foreign struct {
	Name   string `"FOREIGN" @Ident`
	Offset *Point `@@?`
	Orient string `@Ident? Semicolon`
}

// Origin represents ORIGIN x y
type Origin struct {
	Point *Point `"ORIGIN" @@ Semicolon`
}

// Size represents SIZE width BY height
type Size struct {
	Width  float64 `"SIZE" @Number "BY"`
	Height float64 `@Number Semicolon`
}

// Symmetry represents SYMMETRY followed by any of X, Y and R90
type Symmetry struct {
	Axes []string `"SYMMETRY" ( @~Semicolon )* Semicolon`
}

// SiteRef represents the SITE reference inside a macro
type SiteRef struct {
	Name    string   `"SITE" @Ident`
	Pattern []string `( @~Semicolon )* Semicolon`
}

// Pin represents a PIN ... END name block
type Pin struct {
	Pos   lexer.Position
	Name  string     `"PIN" @( Ident | Number )`
	Items []*PinItem `@@*`
	End   string     `"END" @( Ident | Number )`
}

// PinItem is either a PORT geometry block or a plain pin statement.
type PinItem struct {
	Port  *Port   `  @@`
	Other *Simple `| @@`
}

// Port represents a PORT ... END block of pin geometry
type Port struct {
	Shapes []*Simple `"PORT" @@* "END"`
}

// Obs represents an OBS ... END block of obstruction geometry
type Obs struct {
	Shapes []*Simple `"OBS" @@* "END"`
}
