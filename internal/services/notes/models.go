package notes

import (
	"cmp"
	"slices"
	"time"
)

// Variant selects which field group a note carries.
type Variant string

const (
	VariantQuote   Variant = "quote"
	VariantArticle Variant = "article"
)

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	return v == VariantQuote || v == VariantArticle
}

// Note represents a single slide in the ordered collection
type Note struct {
	ID             string    `json:"id" example:"683cdb8aa96ad71e8e075bd1"`
	Variant        Variant   `json:"type" example:"quote" enums:"quote,article"`
	QuoteText      string    `json:"quoteText,omitempty" example:"Simplicity is the soul of efficiency."`
	QuoteAuthor    string    `json:"quoteAuthor,omitempty" example:"Austin Freeman"`
	ArticleTitle   string    `json:"articleTitle,omitempty" example:"On Focus"`
	ArticleExcerpt string    `json:"articleExcerpt,omitempty" example:"Why doing less gets more done."`
	ArticleContent string    `json:"articleContent,omitempty" example:"Focus is a muscle..."`
	Gradient       string    `json:"gradient" example:"linear-gradient(135deg, #1db954 0%, #1ed760 100%)"`
	Order          int       `json:"order" example:"3"`
	CreatedAt      time.Time `json:"createdAt" example:"2025-06-01T23:00:26.005Z"`
	UpdatedAt      time.Time `json:"updatedAt" example:"2025-06-01T23:00:26.005Z"`
}

// UpdateNote is the storage-level patch. nil fields are left unchanged.
type UpdateNote struct {
	Variant        *Variant
	QuoteText      *string
	QuoteAuthor    *string
	ArticleTitle   *string
	ArticleExcerpt *string
	ArticleContent *string
	Gradient       *string
	Order          *int
	UpdatedAt      time.Time
}

// Apply copies every set field of p onto n.
func (p UpdateNote) Apply(n *Note) {
	if p.Variant != nil {
		n.Variant = *p.Variant
	}
	if p.QuoteText != nil {
		n.QuoteText = *p.QuoteText
	}
	if p.QuoteAuthor != nil {
		n.QuoteAuthor = *p.QuoteAuthor
	}
	if p.ArticleTitle != nil {
		n.ArticleTitle = *p.ArticleTitle
	}
	if p.ArticleExcerpt != nil {
		n.ArticleExcerpt = *p.ArticleExcerpt
	}
	if p.ArticleContent != nil {
		n.ArticleContent = *p.ArticleContent
	}
	if p.Gradient != nil {
		n.Gradient = *p.Gradient
	}
	if p.Order != nil {
		n.Order = *p.Order
	}
	if !p.UpdatedAt.IsZero() {
		n.UpdatedAt = p.UpdatedAt
	}
}

// CompareDisplayOrder orders notes by (order, createdAt, id).
func CompareDisplayOrder(a, b *Note) int {
	if c := cmp.Compare(a.Order, b.Order); c != 0 {
		return c
	}
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// SortByDisplayOrder sorts notes in place into display sequence.
func SortByDisplayOrder(notes []*Note) {
	slices.SortFunc(notes, CompareDisplayOrder)
}

// NextOrder returns the order a newly created note receives.
func NextOrder(notes []*Note) int {
	next := 0
	for _, n := range notes {
		if n.Order >= next {
			next = n.Order + 1
		}
	}
	return next
}

// DeleteNoteResponse is returned after a successful delete
type DeleteNoteResponse struct {
	Message string `json:"message" example:"Note deleted successfully"`
}
