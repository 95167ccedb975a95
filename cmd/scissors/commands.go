package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	serviceErrors "github.com/rowjay/scissors/internal/errors"
	"github.com/rowjay/scissors/internal/models"
	"github.com/spf13/cobra"
)

func newShortenCmd(current func() *app) *cobra.Command {
	var (
		alias  string
		copyIt bool
		qrPath string
	)

	cmd := &cobra.Command{
		Use:   "shorten <url>",
		Short: "Create a short link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			a.ctrl.SetURL(args[0])
			a.ctrl.SetAlias(alias)
			if err := a.ctrl.Submit(ctx); err != nil {
				if serviceErrors.IsUserFacing(err) {
					return fmt.Errorf("%s", serviceErrors.MessageOf(err))
				}
				return err
			}

			state := a.ctrl.Snapshot()
			fmt.Fprintln(out, state.ShortURL)

			if copyIt {
				if err := a.ctrl.Copy(ctx); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "could not copy to clipboard")
				}
			}
			if qrPath != "" {
				sink := &fileSink{path: qrPath}
				if err := a.ctrl.DownloadResultQR(ctx, sink); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "QR code saved to %s\n", sink.saved)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&alias, "alias", "a", "", "custom alias for the short URL")
	cmd.Flags().BoolVarP(&copyIt, "copy", "c", false, "copy the short URL to the clipboard")
	cmd.Flags().StringVar(&qrPath, "qr", "", "save the QR code to this file")
	return cmd
}

func newHistoryCmd(current func() *app) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously created links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := current().links.Page(cmd.Context(), page)
			if err != nil {
				return err
			}
			printLinks(cmd, result.Data)
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d\n", max(page, 1), result.TotalPages)
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page to show")
	return cmd
}

func newRecentCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "Show the most recently created links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			if err := a.ctrl.Refresh(cmd.Context()); err != nil {
				return err
			}
			state := a.ctrl.Snapshot()
			links := make([]models.Link, len(state.Recent))
			for i, item := range state.Recent {
				links[i] = item.Link
			}
			printLinks(cmd, links)
			return nil
		},
	}
}

func printLinks(cmd *cobra.Command, links []models.Link) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSHORT URL\tLONG URL\tCLICKS")
	for _, link := range links {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", link.ID, link.ShortURL, link.OriginalURL, strconv.FormatInt(link.Clicks, 10))
	}
	w.Flush()
}
