package parser

import "fmt"

// ParseError is the parser's single, fatal error kind (spec.md §7: "the
// parser surfaces the first structural error immediately; partial AST is
// discarded"). Token is the index of the token where the problem was
// detected, for a caller that wants to report a location.
type ParseError struct {
	Message string
	Token   uint32
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at token %d: %s", e.Token, e.Message)
}

func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{Message: fmt.Sprintf(format, args...), Token: p.pos}
}
