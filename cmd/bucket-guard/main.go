package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hemantobora/bucket-guard/internal/config"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	defaults := config.Default()
	return &cli.App{
		Name:  "bucket-guard",
		Usage: "Find publicly accessible S3 buckets and block public access on them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "profile",
				Usage:   "AWS credential profile name (e.g., dev, prod)",
				EnvVars: []string{"AWS_PROFILE"},
			},
			&cli.StringFlag{
				Name:    "region",
				Usage:   "Region used for account-level calls (defaults to the profile's region, then us-east-1)",
				EnvVars: []string{"AWS_REGION", "AWS_DEFAULT_REGION"},
			},
			&cli.StringFlag{
				Name:    "provider",
				Usage:   "Storage provider (aws, s3-compatible)",
				Value:   defaults.Provider,
				EnvVars: []string{"BUCKET_GUARD_PROVIDER"},
			},
			&cli.StringFlag{
				Name:    "endpoint",
				Usage:   "S3-compatible endpoint URL (path-style addressing)",
				EnvVars: []string{"BUCKET_GUARD_ENDPOINT"},
			},
			&cli.StringFlag{
				Name:    "access-key-id",
				Usage:   "Static access key (bypasses the default credential chain)",
				EnvVars: []string{"BUCKET_GUARD_ACCESS_KEY_ID"},
			},
			&cli.StringFlag{
				Name:    "secret-access-key",
				Usage:   "Static secret key, required with --access-key-id",
				EnvVars: []string{"BUCKET_GUARD_SECRET_ACCESS_KEY"},
			},
			&cli.StringFlag{
				Name:    "session-token",
				Usage:   "Session token for temporary static credentials",
				EnvVars: []string{"BUCKET_GUARD_SESSION_TOKEN"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   defaults.LogLevel,
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "Log format (console, json)",
				Value:   defaults.LogFormat,
				EnvVars: []string{"LOG_FORMAT"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "audit",
				Usage: "Classify every bucket and block public access on the public ones",
				Flags: auditFlags(defaults),
				Action: func(c *cli.Context) error {
					return auditCommand(c, false)
				},
			},
			{
				Name:  "scan",
				Usage: "Classify every bucket without changing anything (audit --dry-run)",
				Flags: auditFlags(defaults),
				Action: func(c *cli.Context) error {
					return auditCommand(c, true)
				},
			},
			{
				Name:   "whoami",
				Usage:  "Show the account the current credentials belong to",
				Action: whoamiCommand,
			},
		},
		Action: func(c *cli.Context) error {
			return cli.ShowAppHelp(c)
		},
	}
}

func auditFlags(defaults *config.Config) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Report public buckets without remediating them",
		},
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "Remediate without asking for confirmation",
		},
		&cli.IntFlag{
			Name:  "concurrency",
			Usage: "Number of buckets audited at once",
			Value: defaults.Concurrency,
		},
		&cli.IntFlag{
			Name:  "page-size",
			Usage: "ListBuckets page size hint",
			Value: defaults.PageSize,
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Only audit buckets matching these glob patterns",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Skip buckets matching these glob patterns",
		},
		&cli.StringFlag{
			Name:  "output",
			Usage: "Report format (text, json)",
			Value: defaults.Output,
		},
		&cli.BoolFlag{
			Name:  "fail-on-public",
			Usage: "Exit with status 2 if any bucket is still public, or could not be checked, after the run",
		},
	}
}
