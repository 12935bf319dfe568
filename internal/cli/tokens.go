package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/grounds-studio/grounds/internal/config"
	"github.com/grounds-studio/grounds/internal/logging"
	"github.com/grounds-studio/grounds/internal/tokens"
	"github.com/grounds-studio/grounds/internal/tui"
	"github.com/grounds-studio/grounds/internal/tui/styles"
)

var previewInteractive bool

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.AddCommand(tokensSyncCmd)
	tokensCmd.AddCommand(tokensCheckCmd)
	tokensCmd.AddCommand(tokensPreviewCmd)

	tokensPreviewCmd.Flags().BoolVarP(&previewInteractive, "interactive", "i", false, "open the interactive preview")
}

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Compile and inspect design tokens",
	Long:  "Compile the Figma Base, Aliases and Typography exports into CSS custom properties.",
}

var tokensSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Compile tokens into the site stylesheet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pipeline, err := newTokenPipeline()
		if err != nil {
			return err
		}

		step := startProgress("Compiling tokens")
		report, err := pipeline.Sync()
		if err != nil {
			step.Fail(err)
			return tokenError(err)
		}
		step.Done()

		return writeSyncReport(cmd.OutOrStdout(), report)
	},
}

var tokensCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate tokens without writing the stylesheet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pipeline, err := newTokenPipeline()
		if err != nil {
			return err
		}

		result, err := pipeline.Check()
		if err != nil {
			return tokenError(err)
		}
		return writeCheckResult(cmd.OutOrStdout(), result)
	},
}

var tokensPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the palette, aliases and typography",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		pipeline, err := newTokenPipeline()
		if err != nil {
			return err
		}

		load := func() (*tokens.Preview, error) {
			set, err := pipeline.Load()
			if err != nil {
				return nil, err
			}
			return tokens.BuildPreview(set), nil
		}

		preview, err := load()
		if err != nil {
			return tokenError(err)
		}

		if IsStructuredOutput() {
			return WriteOutput(cmd.OutOrStdout(), preview)
		}

		theme := styles.ThemeByName(cfg.TUI.Theme)
		if previewInteractive {
			if IsNonInteractive() {
				return &PreflightError{
					Message:  "interactive preview requires a terminal",
					Hint:     "Run without --non-interactive and with a TTY",
					NextStep: "grounds tokens preview",
				}
			}
			return tui.Run(preview, tui.Options{Theme: theme, Reload: load})
		}

		_, err = io.WriteString(cmd.OutOrStdout(), tui.RenderPreview(preview, tui.BuildStyles(theme, preview)))
		return err
	},
}

func newTokenPipeline() (*tokens.Pipeline, error) {
	cfg, err := requireConfig()
	if err != nil {
		return nil, err
	}
	return pipelineFromConfig(cfg)
}

func pipelineFromConfig(cfg *config.Config) (*tokens.Pipeline, error) {
	policy, err := tokens.LoadPolicy(cfg.PolicyPath())
	if err != nil {
		return nil, &PreflightError{
			Message:  err.Error(),
			Hint:     "Fix or remove tokens.policy in the config",
			NextStep: "grounds tokens check",
			Err:      err,
		}
	}
	return tokens.NewPipeline(cfg.TokenPaths(), tokens.Options{Policy: policy}, logging.Component("tokens")), nil
}

// tokenError attaches a hint for the failure kinds a designer can fix.
func tokenError(err error) error {
	hint := ""
	switch {
	case errors.Is(err, tokens.ErrMissingInput):
		hint = "Export the Base, Aliases and Typography collections from Figma into design-system/tokens"
	case errors.Is(err, tokens.ErrInvalidDocument):
		hint = "The export is not valid JSON; re-export it from Figma"
	case errors.Is(err, tokens.ErrNotRefOnly):
		hint = "Aliases and Typography must only contain {\"$ref\": \"<base path>\"} entries"
	case errors.Is(err, tokens.ErrDanglingRef):
		hint = "Add the missing Base tokens or fix the references"
	case errors.Is(err, tokens.ErrNotLiteral):
		hint = "Base tokens must be plain values, not references"
	case errors.Is(err, tokens.ErrLiteralFormat):
		hint = "Adjust the Base values or the literal policy"
	default:
		return err
	}
	return &PreflightError{
		Message:  err.Error(),
		Hint:     hint,
		NextStep: "grounds tokens check",
		Err:      err,
	}
}

type checkOutput struct {
	Valid    bool             `json:"valid" yaml:"valid"`
	Stats    tokens.Stats     `json:"stats" yaml:"stats"`
	Warnings []tokens.Warning `json:"warnings" yaml:"warnings"`
}

type syncOutput struct {
	Output   string           `json:"output" yaml:"output"`
	Stats    tokens.Stats     `json:"stats" yaml:"stats"`
	Warnings []tokens.Warning `json:"warnings" yaml:"warnings"`
}

func writeSyncReport(out io.Writer, report *tokens.SyncReport) error {
	if IsStructuredOutput() {
		return WriteOutput(out, syncOutput{
			Output:   report.Output,
			Stats:    report.Result.Stats,
			Warnings: nonNilWarnings(report.Result.Warnings),
		})
	}
	_, err := fmt.Fprintf(out, "%s %s\n", okLabel("Wrote"), report.Output)
	return err
}

func writeCheckResult(out io.Writer, result *tokens.Result) error {
	if IsStructuredOutput() {
		return WriteOutput(out, checkOutput{
			Valid:    true,
			Stats:    result.Stats,
			Warnings: nonNilWarnings(result.Warnings),
		})
	}

	rows := [][]string{
		{tokens.LayerBase.Label(), strconv.Itoa(result.Stats.Base)},
		{tokens.LayerAlias.Label(), strconv.Itoa(result.Stats.Alias)},
		{tokens.LayerTypography.Label(), strconv.Itoa(result.Stats.Typography)},
	}
	if err := writeTable(out, []string{"LAYER", "TOKENS"}, rows); err != nil {
		return err
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "%s %s\n", hintLabel("warning:"), w)
	}
	_, err := fmt.Fprintf(out, "%s tokens are valid (%d warnings)\n", okLabel("OK"), len(result.Warnings))
	return err
}

func nonNilWarnings(warnings []tokens.Warning) []tokens.Warning {
	if warnings == nil {
		return []tokens.Warning{}
	}
	return warnings
}
