// Package cli implements the cobra command tree for exopop.
package cli

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/exopop/internal/config"
	"github.com/JonMunkholm/exopop/internal/core"
	_ "github.com/JonMunkholm/exopop/internal/core/subsets" // Register all subsets
	"github.com/JonMunkholm/exopop/internal/logging"
)

// ExitError wraps an error with a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Execute builds the command tree, runs it, and returns the exit code.
// Errors are printed with their user-facing message.
func Execute() int {
	cmd := NewRootCommand()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		if core.IsUserFacing(err) {
			fmt.Fprintln(cmd.ErrOrStderr(), core.FormatUserError(err))
		}

		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}

		return 1
	}

	return 0
}

// NewRootCommand constructs the top-level cobra.Command with all
// subcommands attached.
func NewRootCommand() *cobra.Command {
	a := &app{}
	var envFile string

	cmd := &cobra.Command{
		Use:   "exopop",
		Short: "Curate the transiting exoplanet population",
		Long: `exopop downloads the NASA Exoplanet Archive confirmed-planets table,
keeps the transiting planets with usable stellar data, normalizes them to a
canonical schema and selects named subsets by discoverer, mass quality and
host star temperature.

Configuration comes from the environment (and an optional .env file).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return &ExitError{Code: 2, Err: fmt.Errorf("load env file: %w", err)}
				}
			} else {
				// A missing .env is normal.
				_ = godotenv.Load()
			}

			cfg, err := config.Load()
			if err != nil {
				return &ExitError{Code: 2, Err: err}
			}

			pf := cmd.Flags()
			if pf.Changed("log-level") {
				cfg.Logging.Level, _ = pf.GetString("log-level")
			}
			if pf.Changed("log-format") {
				cfg.Logging.Format, _ = pf.GetString("log-format")
			}
			if pf.Changed("mass-threshold") {
				cfg.Catalog.MassThreshold, _ = pf.GetFloat64("mass-threshold")
			}
			if err := cfg.Validate(); err != nil {
				return &ExitError{Code: 2, Err: err}
			}

			logger := logging.Setup(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)

			params := core.DefaultParams()
			params.MassThreshold = cfg.Catalog.MassThreshold
			if cfg.Catalog.SurveysFile != "" {
				labels, err := core.LoadSurveyLabels(cfg.Catalog.SurveysFile)
				if err != nil {
					return &ExitError{Code: 2, Err: err}
				}
				params.Surveys = labels
			}

			a.cfg = cfg
			a.params = params

			logger.Debug("configuration loaded", "config", cfg.String())
			logger.Debug("subsets registered",
				"count", core.SubsetCount(),
				"groups", len(core.Groups()),
			)

			return nil
		},
	}

	// Global persistent flags.
	pf := cmd.PersistentFlags()
	pf.StringVar(&envFile, "env-file", "", "env file to load (default: .env if present)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json")
	pf.Float64("mass-threshold", core.DefaultMassThreshold, "mass signal-to-noise threshold")

	// Flag parsing errors return exit code 2.
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: 2, Err: err}
	})

	cmd.AddCommand(
		newFetchCommand(a),
		newBuildCommand(a),
		newListCommand(a),
		newSubsetsCommand(a),
		newStatsCommand(a),
		newExportCommand(a),
		newPublishCommand(a),
		newServeCommand(a),
	)

	return cmd
}
