package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/grounds-studio/grounds/internal/config"
	"github.com/grounds-studio/grounds/internal/db"
	"github.com/grounds-studio/grounds/internal/logging"
	"github.com/grounds-studio/grounds/internal/waitlist"
)

var (
	serveListen string
	serveSync   bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (overrides server.listen)")
	serveCmd.Flags().BoolVar(&serveSync, "sync", false, "compile tokens before serving")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the waitlist server",
	Long: `Serve the waitlist endpoint at /api/waitlist together with /healthz,
/metrics and the generated stylesheet at /tokens.css.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		if serveListen != "" {
			cfg.Server.Listen = serveListen
		}
		if err := cfg.Validate(); err != nil {
			return &PreflightError{
				Message:  err.Error(),
				Hint:     "Set RESEND_API_KEY and CONTACT_EMAIL, or use mail.provider: log",
				NextStep: "grounds serve --config grounds.yaml",
				Err:      err,
			}
		}

		if serveSync {
			pipeline, err := pipelineFromConfig(cfg)
			if err != nil {
				return err
			}
			report, err := pipeline.Sync()
			if err != nil {
				return tokenError(err)
			}
			logger.Info().Str("output", report.Output).Msg("compiled tokens")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var store waitlist.SignupStore
		if cfg.StorePath() != "" {
			database, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer database.Close()
			store = signupStore{repo: db.NewSignupRepository(database)}
			logger.Info().Str("path", database.Path()).Msg("recording signups")
		}

		server, err := newWaitlistServer(cfg, store)
		if err != nil {
			return err
		}
		return server.Run(ctx)
	},
}

func newWaitlistServer(cfg *config.Config, store waitlist.SignupStore) (*waitlist.Server, error) {
	serverLogger := logging.Component("waitlist")

	var mailer waitlist.Mailer
	switch cfg.Mail.Provider {
	case config.MailProviderResend:
		mailer = waitlist.NewResendMailer(cfg.Mail.Endpoint, cfg.Mail.APIKey, cfg.Mail.Timeout)
	default:
		mailer = waitlist.NewLogMailer(serverLogger)
	}

	limiter := waitlist.NewRateLimiter(
		waitlist.WithLimit(waitlist.RateLimitConfig{
			RequestsPerSecond: cfg.Server.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.Server.RateLimit.Burst,
		}),
		waitlist.WithEnabled(cfg.Server.RateLimit.Enabled),
	)

	opts := []waitlist.HandlerOption{
		waitlist.WithRateLimiter(limiter),
		waitlist.WithTrustForwarded(cfg.Server.TrustForwarded),
	}
	if store != nil {
		opts = append(opts, waitlist.WithStore(store))
	}
	handler := waitlist.NewHandler(mailer, cfg.Mail.From, cfg.Mail.To, serverLogger, opts...)

	return waitlist.NewServer(waitlist.Options{
		Listen:          cfg.Server.Listen,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		StylesheetPath:  cfg.TokenPaths().Output,
	}, handler, limiter, serverLogger)
}
