// Package cli is the advisor command line tool. Every command prints its result to stdout as
// JSON or YAML.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kpango/glg"
	"github.com/spf13/cobra"

	"github.com/rking788/warmind-advisors/bungie"
	"github.com/rking788/warmind-advisors/config"
	"github.com/rking788/warmind-advisors/models"
)

// Options holds the global flags.
type Options struct {
	ConfigPath string
	Platform   string
	Format     string
	Verbose    bool
}

var (
	opts     *Options
	client   *bungie.Client
	platform models.Platform

	// transport replaces the HTTP transport when set.
	transport bungie.Transport
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts = &Options{Platform: "any", Format: formatJSON}

	rootCmd := &cobra.Command{
		Use:   "advisor",
		Short: "Read-only Destiny advisor queries against Bungie.net",
		Long: `advisor answers questions about Destiny players and the current week from the
Bungie.net API: who a gamertag is, what they are playing, their characters and gear,
raid completions, clan rosters, what Xur is selling and the featured weekly activities.

Configuration comes from the environment (BUNGIE_API_KEY, BUNGIE_URL_BASE, ...) and an
optional --config file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := configureOutput(cmd.ErrOrStderr()); err != nil {
				return err
			}

			p, err := models.ParsePlatform(opts.Platform)
			if err != nil {
				return err
			}
			platform = p

			client = newClient(config.Load(opts.ConfigPath))
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Path to a .env style configuration file")
	rootCmd.PersistentFlags().StringVarP(&opts.Platform, "platform", "p", opts.Platform, "Platform: xbox, playstation, any")
	rootCmd.PersistentFlags().StringVarP(&opts.Format, "format", "f", opts.Format, "Output format: json, yaml")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log requests to stderr")

	// Player commands
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newActivityCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newInventoryCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newRaidsCmd())
	rootCmd.AddCommand(newTriumphsCmd())

	// World commands
	rootCmd.AddCommand(newClanCmd())
	rootCmd.AddCommand(newXurCmd())
	rootCmd.AddCommand(newWeeklyCmd())
	rootCmd.AddCommand(newRawCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func configureOutput(stderr io.Writer) error {
	opts.Format = strings.ToLower(opts.Format)
	if opts.Format != formatJSON && opts.Format != formatYAML {
		return fmt.Errorf("unknown output format %q", opts.Format)
	}

	// Library logging would corrupt the document on stdout
	if opts.Verbose {
		glg.Get().SetWriter(stderr).SetMode(glg.WRITER)
	} else {
		glg.Get().SetMode(glg.NONE)
	}

	return nil
}

func newClient(c *config.EnvConfig) *bungie.Client {
	clientConfig := c.BungieConfig()
	clientConfig.Transport = transport
	if clientConfig.Transport == nil {
		clientConfig.Transport = bungie.NewHTTPTransport(bungie.NewClientPool(c.LocalClientsPath, glg.Get()))
	}

	return bungie.NewClient(clientConfig)
}
