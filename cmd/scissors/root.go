package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rowjay/scissors/internal/client"
	"github.com/rowjay/scissors/internal/config"
	"github.com/rowjay/scissors/internal/constants"
	"github.com/rowjay/scissors/internal/qrcode"
	"github.com/rowjay/scissors/internal/repository"
	"github.com/rowjay/scissors/internal/services"
	"github.com/rowjay/scissors/internal/view"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app is what every subcommand works with once configuration is loaded.
type app struct {
	cfg   *config.Config
	links services.LinkService
	ctrl  *view.Controller
}

func newApp(cfg *config.Config, clipboard view.Clipboard) *app {
	linkClient := client.New(cfg.LinkServiceURL, cfg.RequestTimeout)
	links := services.NewLinkService(repository.NewLinkRepository(linkClient))
	resolver := qrcode.NewResolver(linkClient.HTTPClient, cfg.MaxQRCodeBytes)

	return &app{
		cfg:   cfg,
		links: links,
		ctrl: view.NewController(links, resolver, clipboard, view.Options{
			RecentCount:        cfg.RecentCount,
			CopyConfirmDelay:   cfg.CopyConfirmDelay,
			DownloadToastDelay: cfg.DownloadToastDelay,
			ErrorToastDelay:    cfg.ErrorToastDelay,
		}),
	}
}

func newRootCmd() *cobra.Command {
	var (
		serviceURL string
		wide       bool
		verbose    bool
		a          *app
	)

	root := &cobra.Command{
		Use:           "scissors",
		Short:         "Shorten links from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			_ = godotenv.Load()
			cfg := config.Load()
			if serviceURL != "" {
				cfg.LinkServiceURL = serviceURL
			}
			if wide {
				cfg.RecentCount = constants.WideRecentCount
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			a = newApp(cfg, systemClipboard{})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&serviceURL, "service", "", "Link Service base URL (overrides LINK_SERVICE_URL)")
	root.PersistentFlags().BoolVar(&wide, "wide", false, "show four recent links instead of two")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests to stderr")

	current := func() *app { return a }
	root.AddCommand(
		newShortenCmd(current),
		newHistoryCmd(current),
		newRecentCmd(current),
		newShellCmd(current),
	)
	return root
}
