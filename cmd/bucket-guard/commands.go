package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hemantobora/bucket-guard/internal/audit"
	"github.com/hemantobora/bucket-guard/internal/cloud"
	awscloud "github.com/hemantobora/bucket-guard/internal/cloud/aws"
	"github.com/hemantobora/bucket-guard/internal/config"
	"github.com/hemantobora/bucket-guard/internal/logging"
	"github.com/hemantobora/bucket-guard/internal/models"
	"github.com/hemantobora/bucket-guard/internal/progress"
	"github.com/hemantobora/bucket-guard/internal/prompts"
	"github.com/hemantobora/bucket-guard/internal/report"
)

// exitPublicFound is the status returned by --fail-on-public.
const exitPublicFound = 2

// stdinIsTerminal reports whether prompts can be answered. Replaced in tests.
var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// configFromContext reads global and command flags into a Config
func configFromContext(c *cli.Context) *config.Config {
	cfg := config.Default()
	cfg.Provider = c.String("provider")
	cfg.Profile = c.String("profile")
	cfg.Region = c.String("region")
	cfg.Endpoint = c.String("endpoint")
	cfg.AccessKeyID = c.String("access-key-id")
	cfg.SecretAccessKey = c.String("secret-access-key")
	cfg.SessionToken = c.String("session-token")
	cfg.LogLevel = c.String("log-level")
	cfg.LogFormat = c.String("log-format")

	if c.IsSet("concurrency") {
		cfg.Concurrency = c.Int("concurrency")
	}
	if c.IsSet("page-size") {
		cfg.PageSize = c.Int("page-size")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	cfg.DryRun = c.Bool("dry-run")
	cfg.Yes = c.Bool("yes")
	cfg.FailOnPublic = c.Bool("fail-on-public")
	cfg.Include = config.SplitPatterns(c.StringSlice("include"))
	cfg.Exclude = config.SplitPatterns(c.StringSlice("exclude"))
	return cfg
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// auditCommand enumerates, classifies and (unless dryRun) remediates buckets
func auditCommand(c *cli.Context, dryRun bool) error {
	cfg := configFromContext(c)
	if dryRun {
		cfg.DryRun = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signalContext()
	defer cancel()

	provider, err := cloud.NewFactory().CreateProvider(ctx, cfg)
	if err != nil {
		return err
	}
	return runAudit(ctx, cfg, provider, logger, c.App.Writer)
}

func runAudit(ctx context.Context, cfg *config.Config, provider cloud.Provider, logger *zap.Logger, out io.Writer) error {
	account := models.AccountInfo{Region: provider.GetRegion()}
	if info, err := provider.CallerIdentity(ctx); err != nil {
		// S3-compatible stores usually have no STS endpoint.
		logger.Warn("could not resolve caller identity", zap.Error(err))
	} else {
		account = *info
		logger.Info("auditing account", zap.String("account", info.AccountID), zap.String("arn", info.ARN))
	}

	opts := audit.Options{
		Concurrency: cfg.Concurrency,
		DryRun:      cfg.DryRun,
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
	}
	interactive := cfg.Interactive(stdinIsTerminal())
	if interactive {
		opts.Approve = prompts.NewRemediationPrompt().Approve
	} else if cfg.Interactive(true) {
		logger.Info("stdin is not a terminal, remediating without confirmation")
	}

	// Info-level logs already narrate progress; the spinner would only garble them.
	var spinner *progress.Spinner
	if cfg.Output == config.OutputText && !interactive && !logger.Core().Enabled(zap.InfoLevel) {
		spinner = progress.New(os.Stderr)
		spinner.Start("Auditing buckets...")
		opts.OnProgress = func(done, total int) {
			spinner.SetMessage(fmt.Sprintf("Audited %d/%d buckets", done, total))
		}
	}

	summary, err := audit.NewAuditor(provider.Storage(), logger, opts).Run(ctx)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	summary.Account = account
	for _, r := range summary.Reports {
		if r.Err != nil && awscloud.IsAccessBlockMissing(r.Err) {
			logger.Warn("bucket has no public access block configuration and could not be classified",
				zap.String("bucket", r.Bucket.Name))
		}
	}

	if cfg.Output == config.OutputJSON {
		err = report.WriteJSON(out, summary)
	} else {
		err = report.WriteText(out, summary)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	// A bucket that could not be checked may be public too.
	exposed, unchecked := len(summary.Exposed()), 0
	for _, r := range summary.Reports {
		if r.Failed() && !r.Public {
			unchecked++
		}
	}
	if cfg.FailOnPublic && (exposed > 0 || unchecked > 0) {
		return cli.Exit(fmt.Sprintf("%d bucket(s) still publicly accessible, %d could not be checked", exposed, unchecked), exitPublicFound)
	}
	return nil
}

// whoamiCommand validates credentials and prints the resolved account
func whoamiCommand(c *cli.Context) error {
	cfg := configFromContext(c)
	ctx, cancel := signalContext()
	defer cancel()

	provider, err := cloud.NewFactory().CreateProvider(ctx, cfg)
	if err != nil {
		return err
	}
	info, err := provider.CallerIdentity(ctx)
	if err != nil {
		return fmt.Errorf("❌ No valid credentials found: %w", err)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "🔍 Provider: %s\n", provider.GetProviderType())
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Account: %s\n", info.AccountID)
	if info.Alias != "" {
		fmt.Fprintf(w, "Alias:   %s\n", info.Alias)
	}
	fmt.Fprintf(w, "ARN:     %s\n", info.ARN)
	fmt.Fprintf(w, "Region:  %s\n", info.Region)
	return nil
}
