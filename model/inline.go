package model

// RunType represents the type of an inline run
type RunType int

const (
	RunTypeText RunType = iota
	RunTypeBold
	RunTypeItalic
	RunTypePreformatted
	RunTypeLoc
	RunTypeLink
	RunTypePlaceholder
	RunTypeGroup
)

func (rt RunType) String() string {
	switch rt {
	case RunTypeText:
		return "Text"
	case RunTypeBold:
		return "Bold"
	case RunTypeItalic:
		return "Italic"
	case RunTypePreformatted:
		return "Preformatted"
	case RunTypeLoc:
		return "Loc"
	case RunTypeLink:
		return "Link"
	case RunTypePlaceholder:
		return "Placeholder"
	case RunTypeGroup:
		return "Group"
	default:
		return "Unknown"
	}
}

// Inline is an ordered sequence of runs rendered as one continuous phrase.
type Inline []Run

// Run is the interface for all inline runs
type Run interface {
	Type() RunType
}

// Text is literal text
type Text struct {
	Value string
}

// Bold is strong emphasis
type Bold struct {
	Content Inline
}

// Italic is emphasis
type Italic struct {
	Content Inline
}

// Preformatted is code-like text
type Preformatted struct {
	Content Inline
}

// Loc is a bare location rendered as its own target
type Loc struct {
	Location Location
}

// Link is content pointing at a location
type Link struct {
	Content  Inline
	Location Location
}

// Placeholder splices an externally computed value into the text
type Placeholder struct {
	Chain Chain
}

// Group is a parenthesized inline
type Group struct {
	Content Inline
}

func (Text) Type() RunType         { return RunTypeText }
func (Bold) Type() RunType         { return RunTypeBold }
func (Italic) Type() RunType       { return RunTypeItalic }
func (Preformatted) Type() RunType { return RunTypePreformatted }
func (Loc) Type() RunType          { return RunTypeLoc }
func (Link) Type() RunType         { return RunTypeLink }
func (Placeholder) Type() RunType  { return RunTypePlaceholder }
func (Group) Type() RunType        { return RunTypeGroup }

// Children returns the nested inline of a run, or nil for leaf runs.
func Children(r Run) Inline {
	switch r := r.(type) {
	case Bold:
		return r.Content
	case Italic:
		return r.Content
	case Preformatted:
		return r.Content
	case Link:
		return r.Content
	case Group:
		return r.Content
	}
	return nil
}

// OperandKind identifies what a chain operand holds
type OperandKind int

const (
	OperandIdent    OperandKind = iota // $name
	OperandFragment                    // ${code}
	OperandString                      // "literal", argument position only
	OperandChain                       // ($base!...), argument position only
)

func (k OperandKind) String() string {
	switch k {
	case OperandIdent:
		return "Ident"
	case OperandFragment:
		return "Fragment"
	case OperandString:
		return "String"
	case OperandChain:
		return "Chain"
	default:
		return "Unknown"
	}
}

// Operand is one element of a placeholder chain
type Operand struct {
	Kind  OperandKind
	Text  string // identifier name, raw code, or literal
	Chain *Chain // set only for OperandChain
}

// Chain is a placeholder base followed by the arguments of successive `!`
// applications. Operands is never empty; Operands[0] is the base.
type Chain struct {
	Operands []Operand
	Pos      int // byte offset of the leading $, ignored by Equal
}

// Base returns the first operand.
func (c Chain) Base() Operand {
	return c.Operands[0]
}

// Args returns the application arguments in order.
func (c Chain) Args() []Operand {
	return c.Operands[1:]
}

// WalkInline calls fn for every run of in, depth first and in order. Nested
// runs are visited after their parent; returning false skips the children.
func WalkInline(in Inline, fn func(Run) bool) {
	for _, r := range in {
		if fn(r) {
			WalkInline(Children(r), fn)
		}
	}
}
