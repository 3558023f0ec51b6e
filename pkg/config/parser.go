// Package config reads pad ring descriptions.
//
// A description is a list of statements, each terminated by a semicolon:
//
//	# 1mm x 1mm die
//	AREA 1000 1000 ;
//	GRID 1 ;
//	CORNER c_nw NW CORNER_CELL ;
//	PAD clk N FLIP PAD_IN ;
//	SPACE 20 ;
//	FILLER FILL ;
//	DESIGN chip_top ;
//
// Parsing yields the statements as events in file order.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser represents a pad ring description parser
type Parser struct {
	parser *participle.Parser[file]
}

// NewParser creates a new parser instance
func NewParser() (*Parser, error) {
	parser, err := participle.Build[file](
		participle.Lexer(ConfigLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// Parse reads a description from r. The name is used in error positions.
func (p *Parser) Parse(name string, r io.Reader) ([]Event, error) {
	f, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return f.events()
}

// ParseString parses a description held in a string
func (p *Parser) ParseString(input string) ([]Event, error) {
	f, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return f.events()
}

// ParseFile parses a description from a file path
func (p *Parser) ParseFile(filename string) ([]Event, error) {
	fh, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer fh.Close()

	return p.Parse(filename, fh)
}

// ParseFile is a convenience wrapper that builds a parser and reads one file.
func ParseFile(filename string) ([]Event, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	return p.ParseFile(filename)
}

func (f *file) events() ([]Event, error) {
	events := make([]Event, 0, len(f.Statements))
	for _, s := range f.Statements {
		ev, err := s.event()
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", s.Pos, err)
		}
		events = append(events, ev)
	}
	return events, nil
}
