package notes

import (
	"strings"

	util "note-slides/internal/utils"
)

// CreateNoteRequest represents a note creation request as it arrives on the wire
type CreateNoteRequest struct {
	Variant        string `json:"type" example:"quote" enums:"quote,article"`
	QuoteText      string `json:"quoteText,omitempty" validate:"max=10000" example:"Simplicity is the soul of efficiency."`
	QuoteAuthor    string `json:"quoteAuthor,omitempty" validate:"max=1000" example:"Austin Freeman"`
	ArticleTitle   string `json:"articleTitle,omitempty" validate:"max=1000" example:"On Focus"`
	ArticleExcerpt string `json:"articleExcerpt,omitempty" validate:"max=10000" example:"Why doing less gets more done."`
	ArticleContent string `json:"articleContent,omitempty" validate:"max=1000000" example:"Focus is a muscle..."`
	Gradient       string `json:"gradient,omitempty" validate:"omitempty,gradient" example:"linear-gradient(135deg, #667eea 0%, #764ba2 100%)"`
}

// UpdateNoteRequest represents a note update request. Present fields
// overwrite, including explicit empty strings.
type UpdateNoteRequest struct {
	Variant        *string `json:"type,omitempty" example:"article"`
	QuoteText      *string `json:"quoteText,omitempty" validate:"omitempty,max=10000"`
	QuoteAuthor    *string `json:"quoteAuthor,omitempty" validate:"omitempty,max=1000"`
	ArticleTitle   *string `json:"articleTitle,omitempty" validate:"omitempty,max=1000"`
	ArticleExcerpt *string `json:"articleExcerpt,omitempty" validate:"omitempty,max=10000"`
	ArticleContent *string `json:"articleContent,omitempty" validate:"omitempty,max=1000000"`
	Gradient       *string `json:"gradient,omitempty" validate:"omitempty,gradient"`
	Order          *int    `json:"order,omitempty" validate:"omitempty,min=0" example:"4"`
}

// Input is the validated create payload: either QuoteInput or ArticleInput.
type Input interface {
	Variant() Variant
	fill(n *Note)
}

// QuoteInput carries the quote field group.
type QuoteInput struct {
	Text   string
	Author string
}

func (QuoteInput) Variant() Variant { return VariantQuote }

func (q QuoteInput) fill(n *Note) {
	n.Variant = VariantQuote
	n.QuoteText = q.Text
	n.QuoteAuthor = q.Author
}

// ArticleInput carries the article field group.
type ArticleInput struct {
	Title   string
	Excerpt string
	Content string
}

func (ArticleInput) Variant() Variant { return VariantArticle }

func (a ArticleInput) fill(n *Note) {
	n.Variant = VariantArticle
	n.ArticleTitle = a.Title
	n.ArticleExcerpt = a.Excerpt
	n.ArticleContent = a.Content
}

// blank reports whether a required field is missing. The value itself is
// stored as given.
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Input narrows the request to the field group its type names. Text is kept
// verbatim; only whitespace-only values count as missing. Fields of the other
// group are dropped.
func (r CreateNoteRequest) Input() (Input, error) {
	switch Variant(r.Variant) {
	case VariantQuote:
		in := QuoteInput{Text: r.QuoteText, Author: r.QuoteAuthor}
		if blank(in.Text) || blank(in.Author) {
			return nil, &ValidationError{Group: "quote", Message: "quote text and author are required"}
		}
		return in, nil
	case VariantArticle:
		in := ArticleInput{
			Title:   r.ArticleTitle,
			Excerpt: r.ArticleExcerpt,
			Content: r.ArticleContent,
		}
		if blank(in.Title) || blank(in.Excerpt) || blank(in.Content) {
			return nil, &ValidationError{Group: "article", Message: "article title, excerpt, and content are required"}
		}
		return in, nil
	default:
		return nil, &ValidationError{Group: "type", Message: "invalid note type"}
	}
}

// patch turns the request into a storage patch. Only the discriminant,
// the gradient and the order are checked; field groups are not re-validated.
func (r UpdateNoteRequest) patch() (UpdateNote, error) {
	p := UpdateNote{
		QuoteText:      r.QuoteText,
		QuoteAuthor:    r.QuoteAuthor,
		ArticleTitle:   r.ArticleTitle,
		ArticleExcerpt: r.ArticleExcerpt,
		ArticleContent: r.ArticleContent,
		Gradient:       r.Gradient,
		Order:          r.Order,
	}

	// An empty type is ignored rather than stored.
	if r.Variant != nil && *r.Variant != "" {
		v := Variant(*r.Variant)
		if !v.Valid() {
			return UpdateNote{}, &ValidationError{Group: "type", Message: "invalid note type"}
		}
		p.Variant = &v
	}
	if p.Gradient != nil && !util.IsGradient(*p.Gradient) {
		return UpdateNote{}, &ValidationError{Group: "gradient", Message: "invalid gradient"}
	}
	if p.Order != nil && *p.Order < 0 {
		return UpdateNote{}, &ValidationError{Group: "order", Message: "order must not be negative"}
	}
	return p, nil
}
