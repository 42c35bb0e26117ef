package text

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tsawler/docmark/layout"
	"github.com/tsawler/docmark/model"
)

// Renderer writes layout documents as plain or ANSI-styled text.
type Renderer struct {
	ansi        bool
	lr          *lipgloss.Renderer
	styles      Styles
	linkTargets bool
}

// Option configures the Renderer
type Option func(*Renderer)

// WithANSI enables terminal styling through lr. A nil renderer uses the
// lipgloss default.
func WithANSI(lr *lipgloss.Renderer) Option {
	return func(r *Renderer) {
		if lr == nil {
			lr = lipgloss.DefaultRenderer()
		}
		r.ansi = true
		r.lr = lr
		r.styles = DefaultStyles(lr)
	}
}

// WithStyles replaces the ANSI styles. The styles should be bound to the
// renderer given to WithANSI.
func WithStyles(s Styles) Option {
	return func(r *Renderer) {
		r.styles = s
	}
}

// WithLinkTargets controls whether a link's target is printed after its
// text as ` <target>` (default: true)
func WithLinkTargets(show bool) Option {
	return func(r *Renderer) {
		r.linkTargets = show
	}
}

// NewRenderer creates a text renderer
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{linkTargets: true}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Render returns doc as plain text.
func Render(doc *layout.Document) string {
	return NewRenderer().Render(doc)
}

// RenderANSI returns doc styled for the terminal attached to stdout.
func RenderANSI(doc *layout.Document) string {
	return NewRenderer(WithANSI(nil)).Render(doc)
}

// Write renders doc to w
func (r *Renderer) Write(w io.Writer, doc *layout.Document) error {
	_, err := io.WriteString(w, r.Render(doc))
	return err
}

// Render returns the text of doc. Blocks are separated by a blank line and
// the output ends with a newline unless the document is empty.
func (r *Renderer) Render(doc *layout.Document) string {
	if doc == nil || len(doc.Blocks) == 0 {
		return ""
	}

	parts := make([]string, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		parts = append(parts, r.block(b))
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func (r *Renderer) block(b layout.Block) string {
	switch b.Kind {
	case model.BlockTypeParagraph:
		return r.runs(b.Runs)
	case model.BlockTypeImage:
		if b.Image == nil {
			return ""
		}
		s := "[image: " + b.Image.Alt + "]"
		if r.linkTargets {
			s += " <" + href(b.Image.Location) + ">"
		}
		if r.ansi {
			return r.styles.Link.Render(s)
		}
		return s
	case model.BlockTypeTable:
		if b.Table == nil {
			return ""
		}
		return r.table(b.Table)
	}
	return ""
}

// runs renders a run list. Consecutive runs with the same target form one
// link whose target follows the last of them.
func (r *Renderer) runs(runs []layout.Run) string {
	var sb strings.Builder
	for i, run := range runs {
		sb.WriteString(r.styled(run))

		if run.Link == nil || !r.linkTargets {
			continue
		}
		if i+1 < len(runs) && runs[i+1].Link != nil && *runs[i+1].Link == *run.Link {
			continue
		}
		if target := href(*run.Link); target != linkText(runs, i) {
			sb.WriteString(" <" + target + ">")
		}
	}
	return sb.String()
}

// linkText returns the text of the link ending at runs[end]
func linkText(runs []layout.Run, end int) string {
	start := end
	for start > 0 && runs[start-1].Link != nil && *runs[start-1].Link == *runs[end].Link {
		start--
	}
	return layout.PlainText(runs[start : end+1])
}

func (r *Renderer) styled(run layout.Run) string {
	if !r.ansi {
		return run.Text
	}

	st := r.lr.NewStyle()
	if run.Style.Bold {
		st = st.Inherit(r.styles.Bold)
	}
	if run.Style.Italic {
		st = st.Inherit(r.styles.Italic)
	}
	if run.Style.Pre {
		st = st.Inherit(r.styles.Pre)
	}
	if run.Link != nil {
		st = st.Inherit(r.styles.Link)
	}
	return st.Render(run.Text)
}

// href is the printable form of a location
func href(loc model.Location) string {
	if loc.Kind == model.LocationID {
		return "#" + loc.Target
	}
	return loc.Target
}
