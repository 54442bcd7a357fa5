package commands

import (
	"fmt"
	"os"

	"github.com/IannnnnW/ambso-site/pkg/catalog"
	"github.com/IannnnnW/ambso-site/pkg/config"
	"github.com/IannnnnW/ambso-site/pkg/handlers"
	"github.com/IannnnnW/ambso-site/pkg/logger"
	"github.com/IannnnnW/ambso-site/pkg/services"
	"github.com/spf13/cobra"
)

var log *logger.Logger

var rootCmd = &cobra.Command{
	Use:   "ambso-site",
	Short: "AMBSO website server",
	Long: `Serves the AMBSO website. Page content comes from the Sanity CMS
when SANITY_PROJECT_ID is set and falls back to the bundled catalog
wherever the CMS has nothing or fails.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Init()
		l, err := logger.New(config.AppMode)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		log = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, exportCmd, catalogCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newFetcher returns a fetcher backed by Sanity, or a disabled one when no
// project is configured.
func newFetcher() (*services.Fetcher, error) {
	if !config.CMSEnabled() {
		log.Warn("SANITY_PROJECT_ID not set, serving fallback content only")
		return services.NewFetcher(nil, services.Queries, config.FetchTimeout, log), nil
	}
	client, err := services.NewSanityClient(services.SanityOptions{
		ProjectID:  config.SanityProjectID,
		Dataset:    config.SanityDataset,
		APIVersion: config.SanityAPIVersion,
		Token:      config.SanityToken,
		UseCDN:     config.SanityUseCDN,
		Timeout:    config.FetchTimeout,
	})
	if err != nil {
		return nil, err
	}
	return services.NewFetcher(client, services.Queries, config.FetchTimeout, log), nil
}

func newSite() (*handlers.Site, *services.Fetcher, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, nil, err
	}
	fetcher, err := newFetcher()
	if err != nil {
		return nil, nil, err
	}
	site, err := handlers.NewSite(handlers.SiteOptions{
		Assembler: services.NewAssembler(fetcher, cat, config.FetchConcurrency, log),
		Media: services.MediaURLs{
			ProjectID: config.SanityProjectID,
			Dataset:   config.SanityDataset,
			BasePath:  config.BasePath,
		},
		CMSEnabled: config.CMSEnabled(),
		Log:        log,
	})
	if err != nil {
		return nil, nil, err
	}
	return site, fetcher, nil
}
