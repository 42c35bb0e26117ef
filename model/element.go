package model

// BlockType represents the type of top-level block
type BlockType int

const (
	BlockTypeUnknown BlockType = iota
	BlockTypeParagraph
	BlockTypeImage
	BlockTypeTable
)

func (bt BlockType) String() string {
	switch bt {
	case BlockTypeParagraph:
		return "Paragraph"
	case BlockTypeImage:
		return "Image"
	case BlockTypeTable:
		return "Table"
	default:
		return "Unknown"
	}
}

// Block is the interface for all top-level blocks
type Block interface {
	Type() BlockType
}

// Paragraph represents a paragraph of inline content
type Paragraph struct {
	Content Inline
}

func (p *Paragraph) Type() BlockType { return BlockTypeParagraph }

// Image represents an image referenced by location. When AltChain is set
// the alt text is the value of that placeholder and Alt is unused.
type Image struct {
	Location Location
	Alt      string
	AltChain *Chain
}

func (i *Image) Type() BlockType { return BlockTypeImage }

// LocationKind distinguishes the three kinds of location
type LocationKind int

const (
	LocationID       LocationKind = iota // #"key"
	LocationInternal                     // /"path"
	LocationURL                          // @"https://..."
)

func (k LocationKind) String() string {
	switch k {
	case LocationID:
		return "ID"
	case LocationInternal:
		return "Internal"
	case LocationURL:
		return "URL"
	default:
		return "Unknown"
	}
}

// Prefix returns the punctuation that introduces the location in source.
func (k LocationKind) Prefix() string {
	switch k {
	case LocationID:
		return "#"
	case LocationInternal:
		return "/"
	default:
		return "@"
	}
}

// Location is an unresolved reference. Turning it into an address is the
// renderer's job.
type Location struct {
	Kind   LocationKind
	Target string
}

// ID returns an id location.
func ID(key string) Location { return Location{Kind: LocationID, Target: key} }

// Internal returns an internal path location.
func Internal(path string) Location { return Location{Kind: LocationInternal, Target: path} }

// URL returns an external url location.
func URL(url string) Location { return Location{Kind: LocationURL, Target: url} }
