package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"note-slides/internal/slides"

	"github.com/spf13/cobra"
)

const browseHelp = `commands:
  down X    press the pointer at x
  move X    drag the pointer to x
  up        release the pointer
  leave     pointer leaves the slide area
  go I      jump to slide I (1-based)
  open      read the full article
  close     back to the slides
  rm        delete the visible note
  reload    fetch the notes again
  help      show this help
  quit      exit`

// errQuit ends the browse loop without an error.
var errQuit = errors.New("quit")

func newBrowseCmd(c *cli) *cobra.Command {
	var (
		script    string
		reference bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse notes one slide at a time",
		Long: `browse renders the visible slide and reads gesture commands, one per
line, from stdin or from --script. Type "help" for the command list.

` + browseHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := c.client()
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if script != "" {
				f, err := os.Open(script)
				if err != nil {
					return fmt.Errorf("open script: %w", err)
				}
				defer f.Close()
				in = f
			}

			errOut := cmd.ErrOrStderr()
			notifier := slides.NotifierFunc(func(msg string) {
				fmt.Fprintf(errOut, "! %s\n", msg)
			})

			var opts []slides.Option
			if reference {
				opts = append(opts, slides.WithReconcilePolicy(slides.ReconcileReference))
			}
			session := slides.NewSession(api, notifier, c.log, opts...)

			return browse(cmd.Context(), session, in, cmd.OutOrStdout(), errOut)
		},
	}

	cmd.Flags().StringVar(&script, "script", "", "Read commands from a file instead of stdin")
	cmd.Flags().BoolVar(&reference, "reference-reconcile", false,
		"After a delete, move to max(0, N-2) of the old count instead of staying in place")
	return cmd
}

// browse loads the session and runs commands until quit or end of input.
// Failed commands are reported and the loop goes on.
func browse(ctx context.Context, s *slides.Session, in io.Reader, out, errOut io.Writer) error {
	// A failed first load already raised a notice; the empty slide is shown.
	_ = s.Load(ctx)
	fmt.Fprint(out, s.Render())

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		err := runCommand(ctx, s, line, out)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			continue
		}
		fmt.Fprint(out, "\n"+s.Render())
	}
	return scanner.Err()
}

func runCommand(ctx context.Context, s *slides.Session, line string, out io.Writer) error {
	fields := strings.Fields(line)
	name, args := strings.ToLower(fields[0]), fields[1:]

	number := func() (float64, error) {
		if len(args) != 1 {
			return 0, fmt.Errorf("%s needs one number", name)
		}
		return strconv.ParseFloat(args[0], 64)
	}

	switch name {
	case "down":
		x, err := number()
		if err != nil {
			return err
		}
		s.PointerDown(x)
	case "move":
		x, err := number()
		if err != nil {
			return err
		}
		s.PointerMove(x)
	case "up":
		s.PointerUp()
	case "leave":
		s.PointerLeave()
	case "go":
		i, err := number()
		if err != nil {
			return err
		}
		return s.Select(int(i) - 1)
	case "open":
		return s.OpenArticle()
	case "close":
		s.CloseArticle()
	case "rm":
		return s.DeleteCurrent(ctx)
	case "reload":
		return s.Load(ctx)
	case "help":
		fmt.Fprintln(out, browseHelp)
	case "quit", "exit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, type help", name)
	}
	return nil
}
