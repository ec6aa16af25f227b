package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Token tree construction
	SynUnclosedDelimiter Code = 2001
	SynUnexpectedCloser  Code = 2002
	SynUnexpectedToken   Code = 2003

	// Sequence expansion engine
	SeqMalformedHeader   Code = 3001
	SeqBadIntegerLiteral Code = 3002
	SeqInvalidRange      Code = 3003

	// Code generators and validators
	GenOutOfOrder      Code = 4001
	GenWildcardNotLast Code = 4002
	GenUnsupported     Code = 4003
	GenBadAttribute    Code = 4004
	GenNotAStruct      Code = 4005
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed numeric literal",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynUnexpectedCloser:         "Unexpected closing delimiter",
	SynUnexpectedToken:          "Unexpected token",
	SeqMalformedHeader:          "Malformed seq header",
	SeqBadIntegerLiteral:        "Bad integer literal in seq range",
	SeqInvalidRange:             "Invalid seq range",
	GenOutOfOrder:               "Entry out of lexical order",
	GenWildcardNotLast:          "Wildcard arm must be last",
	GenUnsupported:              "Unsupported construct",
	GenBadAttribute:             "Malformed attribute",
	GenNotAStruct:               "Derive target is not a struct",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEQ%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("GEN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
