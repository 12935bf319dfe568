// Package cli implements the grounds command line.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grounds-studio/grounds/internal/config"
	"github.com/grounds-studio/grounds/internal/logging"
)

var (
	cfgFile        string
	logLevel       string
	logFormat      string
	jsonOutput     bool
	jsonlOutput    bool
	yamlOutput     bool
	noColor        bool
	noProgress     bool
	nonInteractive bool

	appConfig *config.Config
	logger    = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "grounds",
	Short: "Grounds site tooling",
	Long: `Grounds compiles Figma design-token exports into the site stylesheet,
previews them in the terminal, and serves the waitlist endpoint.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initApp,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./grounds.yaml or ~/.config/grounds/grounds.yaml)")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "log format (console, json)")
	flags.BoolVar(&jsonOutput, "json", false, "output in JSON format")
	flags.BoolVar(&jsonlOutput, "jsonl", false, "output in JSON Lines format")
	flags.BoolVar(&yamlOutput, "yaml", false, "output in YAML format")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&noProgress, "no-progress", false, "disable progress output")
	flags.BoolVar(&nonInteractive, "non-interactive", false, "never prompt or start interactive views")
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(os.Stderr, err)
	}
	return err
}

func initApp(cmd *cobra.Command, args []string) error {
	if countTrue(jsonOutput, jsonlOutput, yamlOutput) > 1 {
		return &PreflightError{
			Message:  "--json, --jsonl and --yaml are mutually exclusive",
			NextStep: cmd.CommandPath() + " --json",
		}
	}
	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	v := viper.New()
	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	loader := config.NewLoader(v)
	loader.SetConfigFile(cfgFile)
	cfg, err := loader.Load()
	if err != nil {
		return &PreflightError{
			Message:  err.Error(),
			Hint:     "Check the config file syntax and the GROUNDS_* environment variables",
			NextStep: "grounds --config <path> " + cmd.Name(),
		}
	}
	appConfig = cfg

	logger = logging.Init(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		NoColor: color.NoColor,
	})
	if used := loader.ConfigFileUsed(); used != "" {
		logger.Debug().Str("file", used).Msg("loaded config")
	}
	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	bindings := map[string]string{
		"logging.level":  "log-level",
		"logging.format": "log-format",
	}
	for key, name := range bindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

// GetConfig returns the loaded configuration, or nil before initialization.
func GetConfig() *config.Config {
	return appConfig
}

func countTrue(values ...bool) int {
	n := 0
	for _, v := range values {
		if v {
			n++
		}
	}
	return n
}

func requireConfig() (*config.Config, error) {
	if appConfig == nil {
		return nil, errors.New("configuration not loaded")
	}
	return appConfig, nil
}
