package slides

import (
	"fmt"
	"strings"

	"note-slides/internal/services/notes"
)

// Text shown by Render.
const (
	EmptyTitle = "No notes yet!"
	EmptyHint  = "Add a note to create your first slide."
	SwipeHint  = "Swipe →"
	ReadMore   = "[Read More]"
	BackLabel  = "← Back to Slides"
	DragFormat = "drag %+.0f"
	dotActive  = "●"
	dotIdle    = "○"
)

// Render draws the visible slide and the indicator row as plain text.
func (s *Session) Render() string {
	var b strings.Builder

	cur := s.Current()
	if s.state.Empty() || cur == nil {
		b.WriteString(EmptyTitle + "\n")
		b.WriteString(EmptyHint + "\n")
		return b.String()
	}

	if cur.Variant == notes.VariantArticle && s.state.IsExpanded(cur.ID) {
		renderFullArticle(&b, cur)
		return b.String()
	}

	fmt.Fprintf(&b, "%s %d/%d\n\n", label(cur.Variant), s.state.Index+1, len(s.notes))
	switch cur.Variant {
	case notes.VariantArticle:
		b.WriteString(cur.ArticleTitle + "\n")
		b.WriteString(cur.ArticleExcerpt + "\n")
		b.WriteString(ReadMore + "\n")
	default:
		fmt.Fprintf(&b, "\"%s\"\n", cur.QuoteText)
		fmt.Fprintf(&b, "— %s\n", cur.QuoteAuthor)
	}

	if s.state.HasNext() {
		b.WriteString("\n" + SwipeHint + "\n")
	}
	if off := s.state.Offset(); off != 0 {
		fmt.Fprintf(&b, "\n"+DragFormat+"\n", off)
	}
	b.WriteString("\n" + s.dots() + "\n")
	return b.String()
}

func renderFullArticle(b *strings.Builder, n *notes.Note) {
	b.WriteString(n.ArticleTitle + "\n\n")
	b.WriteString(n.ArticleContent + "\n\n")
	b.WriteString(BackLabel + "\n")
}

func label(v notes.Variant) string {
	if v == notes.VariantArticle {
		return "Article"
	}
	return "Quote"
}

func (s *Session) dots() string {
	parts := make([]string, len(s.notes))
	for i := range s.notes {
		parts[i] = dotIdle
		if i == s.state.Index {
			parts[i] = dotActive
		}
	}
	return strings.Join(parts, " ")
}
