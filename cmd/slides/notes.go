package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"note-slides/internal/services/notes"

	"github.com/spf13/cobra"
)

func newListCmd(c *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := c.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
			defer cancel()

			list, err := api.List(ctx)
			if err != nil {
				return fmt.Errorf("list notes: %w", err)
			}
			c.log.Debug("listed notes", "count", len(list))
			return writeNotes(cmd.OutOrStdout(), list, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: table, json or yaml")
	return cmd
}

func newShowCmd(c *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show one note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := c.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
			defer cancel()

			n, err := api.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("show note %s: %w", args[0], err)
			}
			return writeNote(cmd.OutOrStdout(), n, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "Output format: json or yaml")
	return cmd
}

// gradientOrRandom keeps an explicit gradient or picks one from the palette.
func gradientOrRandom(g string) string {
	if g != "" {
		return g
	}
	return notes.RandomGradient()
}

func newAddCmd(c *cli) *cobra.Command {
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a quote or an article",
	}

	create := func(cmd *cobra.Command, req notes.CreateNoteRequest) error {
		api, err := c.client()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
		defer cancel()

		n, err := api.Create(ctx, req)
		if err != nil {
			return fmt.Errorf("create %s: %w", req.Variant, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s at position %d\n", n.Variant, n.ID, n.Order)
		return nil
	}

	var text, author, quoteGradient string
	quote := &cobra.Command{
		Use:   "quote",
		Short: "Create a quote note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return create(cmd, notes.CreateNoteRequest{
				Variant:     string(notes.VariantQuote),
				QuoteText:   text,
				QuoteAuthor: author,
				Gradient:    gradientOrRandom(quoteGradient),
			})
		},
	}
	quote.Flags().StringVar(&text, "text", "", "Quote text")
	quote.Flags().StringVar(&author, "author", "", "Quote author")
	quote.Flags().StringVar(&quoteGradient, "gradient", "", "CSS gradient (random palette entry when empty)")

	var title, excerpt, content, contentFile, articleGradient string
	article := &cobra.Command{
		Use:   "article",
		Short: "Create an article note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body := content
			if contentFile != "" {
				data, err := os.ReadFile(contentFile)
				if err != nil {
					return fmt.Errorf("read content file: %w", err)
				}
				body = string(data)
			}
			return create(cmd, notes.CreateNoteRequest{
				Variant:        string(notes.VariantArticle),
				ArticleTitle:   title,
				ArticleExcerpt: excerpt,
				ArticleContent: body,
				Gradient:       gradientOrRandom(articleGradient),
			})
		},
	}
	article.Flags().StringVar(&title, "title", "", "Article title")
	article.Flags().StringVar(&excerpt, "excerpt", "", "Short excerpt shown on the slide")
	article.Flags().StringVar(&content, "content", "", "Full article content")
	article.Flags().StringVar(&contentFile, "content-file", "", "Read the content from a file")
	article.Flags().StringVar(&articleGradient, "gradient", "", "CSS gradient (random palette entry when empty)")
	article.MarkFlagsMutuallyExclusive("content", "content-file")

	add.AddCommand(quote, article)
	return add
}

func newUpdateCmd(c *cli) *cobra.Command {
	var (
		variant, text, author, title, excerpt, content, gradient string
		order                                                    int
	)

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Overwrite fields of a note",
		Long: `update sends only the flags that were given. An explicit empty value
clears the field.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			str := func(name, v string) *string {
				if !flags.Changed(name) {
					return nil
				}
				return &v
			}

			req := notes.UpdateNoteRequest{
				Variant:        str("type", variant),
				QuoteText:      str("text", text),
				QuoteAuthor:    str("author", author),
				ArticleTitle:   str("title", title),
				ArticleExcerpt: str("excerpt", excerpt),
				ArticleContent: str("content", content),
				Gradient:       str("gradient", gradient),
			}
			if flags.Changed("order") {
				req.Order = &order
			}
			if req == (notes.UpdateNoteRequest{}) {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			api, err := c.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
			defer cancel()

			n, err := api.Update(ctx, args[0], req)
			if err != nil {
				return fmt.Errorf("update note %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s (position %d)\n", n.Variant, n.ID, n.Order)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&variant, "type", "", "Note type: quote or article")
	f.StringVar(&text, "text", "", "Quote text")
	f.StringVar(&author, "author", "", "Quote author")
	f.StringVar(&title, "title", "", "Article title")
	f.StringVar(&excerpt, "excerpt", "", "Article excerpt")
	f.StringVar(&content, "content", "", "Article content")
	f.StringVar(&gradient, "gradient", "", "CSS gradient")
	f.IntVar(&order, "order", 0, "Display position (must be free)")
	return cmd
}

// confirm asks a yes/no question on out and reads the answer from in.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func newDeleteCmd(c *cli) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a note",
		Long:  `Delete permanently removes a note. The remaining notes keep their positions.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if !yes {
				ok, err := confirm(cmd, "Are you sure you want to delete this note?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return nil
				}
			}

			api, err := c.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
			defer cancel()

			if err := api.Delete(ctx, id); err != nil {
				return fmt.Errorf("delete note %s: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Note deleted: %s\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newHealthCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server and its storage are up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := c.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
			defer cancel()

			if err := api.Health(ctx); err != nil {
				return fmt.Errorf("health: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok %s\n", api.BaseURL())
			return nil
		},
	}
}
