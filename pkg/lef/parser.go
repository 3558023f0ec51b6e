package lef

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser represents a LEF file parser
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser creates a new LEF parser instance
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(LEFLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
		participle.CaseInsensitive("Ident"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// Parse parses a LEF file from a reader. The name is only used in error
// positions.
func (p *Parser) Parse(name string, r io.Reader) (*File, error) {
	lef, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return checked(lef)
}

// ParseString parses a LEF file from a string
func (p *Parser) ParseString(input string) (*File, error) {
	lef, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return checked(lef)
}

// ParseBytes parses LEF content that was already read into memory.
func (p *Parser) ParseBytes(name string, data []byte) (*File, error) {
	return p.Parse(name, bytes.NewReader(data))
}

// ParseFile parses a LEF file from a file path
func (p *Parser) ParseFile(filename string) (*File, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(filename, file)
}

func checked(lef *File) (*File, error) {
	if err := lef.Validate(); err != nil {
		return nil, fmt.Errorf("lef: %w", err)
	}
	return lef, nil
}
