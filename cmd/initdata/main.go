package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"note-slides/internal/client"
	"note-slides/internal/services/notes"

	"github.com/brianvoe/gofakeit/v6"
)

// ----------------------------------------------------------------------------
// Config ---------------------------------------------------------------------
var (
	baseURL   = flag.String("url", env("API_BASE_URL", "http://localhost:8080"), "Server base URL")
	nNotes    = flag.Int("n", envInt("COUNT", 20), "How many notes to create")
	quoteRate = flag.Float64("quotes", 0.6, "Share of notes created as quotes (0..1)")
	seed      = flag.Int64("seed", 0, "Faker seed, 0 picks one from the clock")
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return def
}

// ----------------------------------------------------------------------------
// Main -----------------------------------------------------------------------
func main() {
	flag.Parse()

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	faker := gofakeit.New(s)

	c, err := client.New(*baseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	fmt.Printf("Seeding %d notes on %s\n", *nNotes, *baseURL)

	if err := c.Health(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL: server not healthy:", err)
		os.Exit(1)
	}

	if err := createNotes(ctx, c, faker, *nNotes, *quoteRate); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	fmt.Println("✔ done")
}

// noteCreator is the slice of the API client the seeder needs.
type noteCreator interface {
	Create(ctx context.Context, req notes.CreateNoteRequest) (*notes.Note, error)
}

// ----------------------------------------------------------------------------
// Notes ----------------------------------------------------------------------
func createNotes(ctx context.Context, c noteCreator, faker *gofakeit.Faker, total int, quoteRate float64) error {
	for i := 1; i <= total; i++ {
		req := fakeNote(faker, quoteRate)

		if _, err := c.Create(ctx, req); err != nil {
			return fmt.Errorf("create note %d (%s): %w", i, req.Variant, err)
		}

		if i%10 == 0 || i == total {
			fmt.Printf("  … %d/%d\n", i, total)
		}
	}
	return nil
}

// fakeNote builds a quote or an article with a palette gradient.
func fakeNote(faker *gofakeit.Faker, quoteRate float64) notes.CreateNoteRequest {
	gradient := notes.Gradients[faker.IntRange(0, len(notes.Gradients)-1)]

	if faker.Float64Range(0, 1) < quoteRate {
		return notes.CreateNoteRequest{
			Variant:     string(notes.VariantQuote),
			QuoteText:   faker.Quote(),
			QuoteAuthor: faker.Name(),
			Gradient:    gradient,
		}
	}

	paragraphs := make([]string, faker.IntRange(2, 5))
	for i := range paragraphs {
		paragraphs[i] = faker.Paragraph(1, 4, 30, " ")
	}
	return notes.CreateNoteRequest{
		Variant:        string(notes.VariantArticle),
		ArticleTitle:   faker.BookTitle(),
		ArticleExcerpt: faker.Sentence(14),
		ArticleContent: strings.Join(paragraphs, "\n\n"),
		Gradient:       gradient,
	}
}
