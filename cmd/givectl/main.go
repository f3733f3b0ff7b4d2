package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mindthegap/mindthegap/internal/config"
	"github.com/mindthegap/mindthegap/internal/utils"
	"github.com/mindthegap/mindthegap/pkg/dashboard"
	"github.com/mindthegap/mindthegap/pkg/donation"
	"github.com/mindthegap/mindthegap/pkg/numfmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type cliApp struct {
	rootCmd *cobra.Command

	store    dashboard.Store
	renderer *renderer
}

func newCLIApp() *cliApp {
	app := &cliApp{}

	rootCmd := &cobra.Command{
		Use:   "givectl",
		Short: "Charity giving dashboard for your terminal",
		Long: "givectl tracks your household income and charity donations, shows what share " +
			"of your income you give away, and compares that rate against the world's richest.",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Bool("local", false, "Keep all data in a local snapshot file instead of a backend")
	rootCmd.PersistentFlags().String("server", "", "Base URL of the backend (remote mode)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for session and snapshot files")
	rootCmd.PersistentFlags().String("link", "", "Shared dashboard link to open instead of your own data")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}

	rootCmd.AddCommand(
		app.showCmd(),
		app.incomeCmd(),
		app.addCmd(),
		app.updateCmd(),
		app.removeCmd(),
		app.shareCmd(),
	)

	app.rootCmd = rootCmd
	return app
}

// setup resolves configuration, selects the persistence strategy, and loads
// the initial state before any subcommand runs.
func (app *cliApp) setup(cmd *cobra.Command) error {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return err
	}

	clientCfg := cfg.Client
	if local, _ := cmd.Flags().GetBool("local"); local {
		clientCfg.Mode = "local"
	}
	if server, _ := cmd.Flags().GetString("server"); server != "" {
		clientCfg.Server = server
	}
	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		clientCfg.DataDir = dataDir
	}
	if clientCfg.DataDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("could not resolve data directory: %w", err)
		}
		clientCfg.DataDir = filepath.Join(configDir, "mindthegap")
	}
	link, _ := cmd.Flags().GetString("link")

	store, err := dashboard.NewStore(clientCfg, cfg.Host, link, utils.SystemClock{})
	if err != nil {
		return err
	}
	if err := store.Load(cmd.Context()); err != nil {
		// The store falls back to a usable state; the message center carries
		// the details for the renderer.
		log.Debugf("initial load degraded: %v", err)
	}

	app.store = store
	app.renderer = newRenderer(numfmt.NewFormatter(cfg.Locale))
	return nil
}

func (app *cliApp) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the dashboard: income, donations, and the comparison",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.renderer.renderDashboard(app.store.State())
			app.renderer.renderMessage(app.store.Messages().Current())
			return nil
		},
	}
}

func (app *cliApp) incomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "income <annual-amount>",
		Short: "Set your household's annual income",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount := numfmt.Parse(args[0])
			err := app.store.SaveIncome(cmd.Context(), amount)
			app.renderer.renderMessage(app.store.Messages().Current())
			return err
		},
	}
}

func (app *cliApp) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <charity> <amount> <monthly|quarterly|yearly>",
		Short: "Add a recurring donation",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := donationFields(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			err = app.store.AddDonation(cmd.Context(), fields)
			app.renderer.renderMessage(app.store.Messages().Current())
			return err
		},
	}
}

func (app *cliApp) updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <charity> <amount> <monthly|quarterly|yearly>",
		Short: "Rewrite an existing donation",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := donationFields(args[1], args[2], args[3])
			if err != nil {
				return err
			}
			err = app.store.UpdateDonation(cmd.Context(), args[0], fields)
			app.renderer.renderMessage(app.store.Messages().Current())
			return err
		},
	}
}

func (app *cliApp) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a donation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.store.RemoveDonation(cmd.Context(), args[0])
			app.renderer.renderMessage(app.store.Messages().Current())
			return err
		},
	}
}

func (app *cliApp) shareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share",
		Short: "Print a link that opens your dashboard anywhere",
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := app.store.ShareLink()
			app.renderer.renderMessage(app.store.Messages().Current())
			if err != nil {
				return err
			}
			app.renderer.renderShareLink(app.store.State(), link)
			return nil
		},
	}
}

func donationFields(charityName string, amount string, frequency string) (donation.Fields, error) {
	parsedAmount, err := strconv.Atoi(numfmt.Sanitize(amount))
	if err != nil {
		return donation.Fields{}, fmt.Errorf("invalid amount: %q", amount)
	}
	parsedFrequency, err := donation.ParseFrequency(frequency)
	if err != nil {
		return donation.Fields{}, err
	}
	return donation.Fields{
		CharityName: charityName,
		Amount:      parsedAmount,
		Frequency:   parsedFrequency,
	}, nil
}

func main() {
	log.SetLevel(log.WarnLevel)
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		if logrusLevel, err := log.ParseLevel(level); err == nil {
			log.SetLevel(logrusLevel)
		}
	}

	app := newCLIApp()
	if err := app.rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
