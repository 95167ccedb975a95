package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	serviceErrors "github.com/rowjay/scissors/internal/errors"
	"github.com/rowjay/scissors/internal/notify"
	"github.com/rowjay/scissors/internal/view"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shellHelp = `commands:
  url <text>          set the long URL
  alias <text>        set the custom alias
  submit              shorten the URL
  copy                copy the short URL
  qr                  save the QR code of the short URL
  another             start over with empty fields
  recent              reload and show recent links
  copy-recent <id>    copy a recent link
  history             show the current history page
  next, prev          turn the history page
  download <id>       save the QR code of a history row
  theme               switch between light and dark
  show                print the current state
  quit                leave the shell`

func newShellCmd(current func() *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Drive the shortener interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			if err := a.ctrl.Refresh(cmd.Context()); err != nil {
				log.Warn().Err(err).Msg("Could not load recent links")
			}
			sh := &shell{ctrl: a.ctrl, out: cmd.OutOrStdout(), dir: dir, shown: map[uint64]bool{}}
			return sh.run(cmd.Context(), cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory QR codes are saved to")
	return cmd
}

// shell reads one command per line and renders the controller state after
// each one. Toasts are printed once, when first seen.
type shell struct {
	ctrl  *view.Controller
	out   io.Writer
	dir   string
	shown map[uint64]bool
}

func (s *shell) run(ctx context.Context, in io.Reader) error {
	s.render(s.ctrl.Snapshot(), false)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		name, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		if name == "quit" || name == "exit" {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		showHistory, err := s.exec(ctx, name, arg)
		if err != nil && !serviceErrors.IsUserFacing(err) {
			fmt.Fprintf(s.out, "error: %s\n", serviceErrors.MessageOf(err))
		}
		s.render(s.ctrl.Snapshot(), showHistory)
	}
}

// exec runs a single command and reports whether the history page should be
// printed afterwards.
func (s *shell) exec(ctx context.Context, name, arg string) (bool, error) {
	switch name {
	case "url":
		s.ctrl.SetURL(arg)
	case "alias":
		s.ctrl.SetAlias(arg)
	case "submit":
		return false, s.ctrl.Submit(ctx)
	case "copy":
		return false, s.ctrl.Copy(ctx)
	case "qr":
		return false, s.ctrl.DownloadResultQR(ctx, &fileSink{dir: s.dir})
	case "another":
		s.ctrl.CreateAnother()
	case "recent":
		return false, s.ctrl.Refresh(ctx)
	case "copy-recent":
		return false, s.ctrl.CopyRecent(ctx, arg)
	case "history":
		return true, s.ctrl.OpenHistory(ctx)
	case "next":
		return true, s.ctrl.NextPage(ctx)
	case "prev", "previous":
		return true, s.ctrl.PreviousPage(ctx)
	case "download":
		return true, s.ctrl.DownloadHistoryQR(ctx, arg, &fileSink{dir: s.dir})
	case "theme":
		fmt.Fprintf(s.out, "theme: %s\n", s.ctrl.ToggleTheme())
	case "show":
	case "help":
		fmt.Fprintln(s.out, shellHelp)
	default:
		fmt.Fprintf(s.out, "unknown command %q, try help\n", name)
	}
	return false, nil
}

func (s *shell) render(state view.State, showHistory bool) {
	switch {
	case state.Loading:
		fmt.Fprintln(s.out, "loading...")
	case state.InResult():
		fmt.Fprintf(s.out, "long url: %s\nshort url: %s [%s]\n", state.URL, state.ShortURL, state.CopyLabel)
	default:
		fmt.Fprintf(s.out, "url: %s\nalias: %s\n", state.URL, state.Alias)
		if len(state.Recent) > 0 {
			fmt.Fprintln(s.out, "recent:")
			for _, item := range state.Recent {
				mark := ""
				if item.Copied {
					mark = " (copied)"
				}
				fmt.Fprintf(s.out, "  %s  %s  %s  clicks: %d%s\n", item.ID, item.ShortURL, item.OriginalURL, item.Clicks, mark)
			}
		}
	}

	if showHistory {
		s.renderHistory(state.History)
	}

	for _, t := range state.Toasts {
		if s.shown[t.ID] {
			continue
		}
		s.shown[t.ID] = true
		if t.Variant == notify.VariantDestructive {
			fmt.Fprintf(s.out, "! %s\n", t.Message)
		} else {
			fmt.Fprintf(s.out, "* %s\n", t.Message)
		}
	}
}

func (s *shell) renderHistory(h view.HistoryState) {
	if h.Loading {
		fmt.Fprintln(s.out, "loading history...")
		return
	}

	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSHORT URL\tLONG URL\tCLICKS")
	for _, link := range h.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", link.ID, link.ShortURL, link.OriginalURL, link.Clicks)
	}
	w.Flush()

	nav := fmt.Sprintf("page %d of %d", h.CurrentPage, h.TotalPages)
	if h.HasPrevious {
		nav = "prev | " + nav
	}
	if h.HasNext {
		nav += " | next"
	}
	fmt.Fprintln(s.out, nav)
}
