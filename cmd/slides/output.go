package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"note-slides/internal/services/notes"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// noteView is the YAML shape of a note. JSON output uses the wire shape.
type noteView struct {
	ID             string `yaml:"id"`
	Type           string `yaml:"type"`
	Order          int    `yaml:"order"`
	QuoteText      string `yaml:"quoteText,omitempty"`
	QuoteAuthor    string `yaml:"quoteAuthor,omitempty"`
	ArticleTitle   string `yaml:"articleTitle,omitempty"`
	ArticleExcerpt string `yaml:"articleExcerpt,omitempty"`
	ArticleContent string `yaml:"articleContent,omitempty"`
	Gradient       string `yaml:"gradient"`
	CreatedAt      string `yaml:"createdAt"`
	UpdatedAt      string `yaml:"updatedAt"`
}

func toView(n *notes.Note) noteView {
	return noteView{
		ID:             n.ID,
		Type:           string(n.Variant),
		Order:          n.Order,
		QuoteText:      n.QuoteText,
		QuoteAuthor:    n.QuoteAuthor,
		ArticleTitle:   n.ArticleTitle,
		ArticleExcerpt: n.ArticleExcerpt,
		ArticleContent: n.ArticleContent,
		Gradient:       n.Gradient,
		CreatedAt:      n.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:      n.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// summary is the one-line description used by the table.
func summary(n *notes.Note) string {
	var s string
	switch n.Variant {
	case notes.VariantArticle:
		s = n.ArticleTitle
	default:
		s = fmt.Sprintf("%q — %s", n.QuoteText, n.QuoteAuthor)
	}
	const maxSummary = 60
	if r := []rune(s); len(r) > maxSummary {
		s = string(r[:maxSummary-1]) + "…"
	}
	return s
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeNotes(w io.Writer, list []*notes.Note, format string) error {
	switch strings.ToLower(format) {
	case formatJSON:
		return writeJSON(w, list)
	case formatYAML:
		views := make([]noteView, len(list))
		for i, n := range list {
			views[i] = toView(n)
		}
		return writeYAML(w, views)
	case formatTable, "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ORDER\tID\tTYPE\tSUMMARY")
		for _, n := range list {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", n.Order, n.ID, n.Variant, summary(n))
		}
		return tw.Flush()
	}
	return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
}

func writeNote(w io.Writer, n *notes.Note, format string) error {
	switch strings.ToLower(format) {
	case formatJSON:
		return writeJSON(w, n)
	case formatYAML, "":
		return writeYAML(w, toView(n))
	}
	return fmt.Errorf("unknown format %q (want json or yaml)", format)
}
