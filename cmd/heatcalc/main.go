package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomaszchojnowski/heatcalc/internal/config"
	"github.com/tomaszchojnowski/heatcalc/internal/logging"
)

// app carries what PersistentPreRunE resolves for every command.
type app struct {
	envFile   string
	logLevel  string
	logFormat string

	cfg    config.Config
	logger *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:          "heatcalc",
		Short:        "Heat loss and heating system cost estimates for UK house types",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.envFile, "env-file", "", "dotenv file to load (default .env)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.logFormat, "log-format", "", "log format: text, plain, json")

	rootCmd.AddCommand(assessCmd(a))
	rootCmd.AddCommand(templatesCmd(a))
	rootCmd.AddCommand(regionsCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(serveCmd(a))
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.New(logging.Config{Writer: cmd.ErrOrStderr(), Level: level, Format: format})
	return nil
}

func assessCmd(a *app) *cobra.Command {
	var opts assessOptions

	cmd := &cobra.Command{
		Use:   "assess POSTCODE PROPERTY_TYPE",
		Short: "Calculate heat loss and compare heat pump and boiler costs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.postcode, opts.propertyType = args[0], args[1]
			if cmd.Flags().Changed("internal-temp") {
				opts.request.InternalTemp = &opts.internalTemp
			}
			if cmd.Flags().Changed("bedroom-temp") {
				opts.request.BedroomTemp = &opts.bedroomTemp
			}
			return a.runAssess(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.json, "json", false, "print the full result as JSON")
	f.StringVar(&opts.request.UpgradePackage, "upgrade", "", "upgrade package: basic, intermediate, deep_retrofit")
	f.BoolVar(&opts.request.NoGrants, "no-grants", false, "price the heat pump without the BUS grant")
	f.StringVar(&opts.xlsx, "xlsx", "", "write a spreadsheet report to this path")
	f.StringVar(&opts.chart, "chart", "", "write a per-room heat loss chart (.png or .svg)")
	f.StringVar(&opts.prices, "prices", "", "price book YAML overlay")
	f.StringVar(&opts.templates, "templates", "", "directory of extra property templates")
	f.Float64Var(&opts.internalTemp, "internal-temp", 21, "internal design temperature (°C)")
	f.Float64Var(&opts.bedroomTemp, "bedroom-temp", 18, "bedroom design temperature (°C)")
	return cmd
}

func templatesCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the available property templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTemplates(cmd.OutOrStdout(), dir)
		},
	}
	cmd.Flags().StringVar(&dir, "templates", "", "directory of extra property templates")
	return cmd
}

func regionsCmd() *cobra.Command {
	var coldest int
	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List climate regions and their design conditions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRegions(cmd.OutOrStdout(), coldest)
		},
	}
	cmd.Flags().IntVar(&coldest, "coldest", 0, "list only the N coldest regions")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a property template file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args[0])
		},
	}
}

func serveCmd(a *app) *cobra.Command {
	var port int
	var prices, templates string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}
			return a.runServe(cmd.Context(), prices, templates)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP server port")
	cmd.Flags().StringVar(&prices, "prices", "", "price book YAML overlay")
	cmd.Flags().StringVar(&templates, "templates", "", "directory of extra property templates")
	return cmd
}
