package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies parse errors
type ErrorKind int

const (
	LexError          ErrorKind = iota + 1 // unterminated string or fragment
	SyntaxError                            // unexpected token or unterminated group
	DuplicateModifier                      // rows or cols given twice on one entry
	InvalidSpan                            // rows or cols not a positive integer
	StructureTooDeep                       // nesting exceeded the depth limit
)

// Sentinel errors, one per kind, for use with errors.Is.
var (
	ErrLex               = errors.New("lex error")
	ErrSyntax            = errors.New("syntax error")
	ErrDuplicateModifier = errors.New("duplicate modifier")
	ErrInvalidSpan       = errors.New("invalid span")
	ErrTooDeep           = errors.New("structure too deep")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case LexError:
		return ErrLex
	case SyntaxError:
		return ErrSyntax
	case DuplicateModifier:
		return ErrDuplicateModifier
	case InvalidSpan:
		return ErrInvalidSpan
	case StructureTooDeep:
		return ErrTooDeep
	default:
		return nil
	}
}

func (k ErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return "unknown error"
}

// Error is a parse error with its source position. The parser stops at the
// first error, so a failed parse returns exactly one Error.
type Error struct {
	Kind     ErrorKind
	Offset   int      // byte offset into the source
	Line     int      // 1-based
	Col      int      // 1-based, in runes
	Msg      string   // detail, without position
	Expected []string // token descriptions, SyntaxError only
	Found    string   // description of the offending token, if any
}

// Error formats the error as "<kind> at <line>:<col>: <detail>".
func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s at %d:%d", e.Kind, e.Line, e.Col)
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	if len(e.Expected) > 0 {
		sb.WriteString(": expected ")
		if len(e.Expected) > 1 {
			sb.WriteString("one of ")
		}
		sb.WriteString(strings.Join(e.Expected, ", "))
		if e.Found != "" {
			sb.WriteString(", found ")
			sb.WriteString(e.Found)
		}
	}
	return sb.String()
}

// Unwrap returns the sentinel for the error's kind.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}
