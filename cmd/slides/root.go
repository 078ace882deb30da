package main

import (
	"log/slog"
	"os"
	"time"

	"note-slides/internal/client"

	"github.com/spf13/cobra"
)

const defaultBaseURL = "http://localhost:8080"

// cli holds the state shared by every subcommand.
type cli struct {
	baseURL string
	verbose bool
	timeout time.Duration
	log     *slog.Logger
}

func (c *cli) client() (*client.Client, error) {
	return client.New(c.baseURL)
}

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	c := &cli{log: slog.Default()}

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	root := &cobra.Command{
		Use:   "slides",
		Short: "Browse and manage quote and article notes as slides",
		Long: `slides talks to a Note Slides server. It lists, creates, edits and deletes
notes, and can browse them one slide at a time with swipe gestures.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if c.verbose {
				level = slog.LevelDebug
			}

			opts := &slog.HandlerOptions{
				Level: level,
			}
			c.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
			slog.SetDefault(c.log)
		},
	}

	root.PersistentFlags().StringVar(&c.baseURL, "url", baseURL, "Server base URL (env API_BASE_URL)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", client.DefaultTimeout, "Per-command timeout")

	root.AddCommand(
		newListCmd(c),
		newShowCmd(c),
		newAddCmd(c),
		newUpdateCmd(c),
		newDeleteCmd(c),
		newBrowseCmd(c),
		newHealthCmd(c),
	)

	return root
}
