package config

import (
	"fmt"
	"strings"
)

// Output formats for the audit report.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Provider types.
const (
	ProviderAWS          = "aws"
	ProviderS3Compatible = "s3-compatible"
)

// S3 caps ListBuckets pages at 10000 entries.
const maxPageSize = 10000

type Config struct {
	Provider string // aws|s3-compatible
	Profile  string
	Region   string
	Endpoint string // required for s3-compatible

	// Explicit credentials; when empty the default AWS credential chain is used.
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	PageSize     int
	Concurrency  int
	DryRun       bool
	Yes          bool // skip per-bucket confirmation
	FailOnPublic bool

	Include []string
	Exclude []string

	Output    string // text|json
	LogLevel  string
	LogFormat string // console|json
}

// Default returns a configuration with every optional field at its default.
func Default() *Config {
	return &Config{
		Provider:    ProviderAWS,
		PageSize:    1000,
		Concurrency: 1,
		Output:      OutputText,
		LogLevel:    "info",
		LogFormat:   "console",
	}
}

// Validate checks field combinations the flags cannot express
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderAWS:
	case ProviderS3Compatible:
		if c.Endpoint == "" {
			return fmt.Errorf("--endpoint is required for provider %s", ProviderS3Compatible)
		}
	case "gcp", "azure":
		return fmt.Errorf("%s provider not yet implemented", c.Provider)
	default:
		return fmt.Errorf("unsupported provider type: %s", c.Provider)
	}

	if (c.AccessKeyID == "") != (c.SecretAccessKey == "") {
		return fmt.Errorf("--access-key-id and --secret-access-key must be set together")
	}
	if c.SessionToken != "" && c.AccessKeyID == "" {
		return fmt.Errorf("--session-token requires --access-key-id")
	}
	if c.PageSize < 1 || c.PageSize > maxPageSize {
		return fmt.Errorf("--page-size must be between 1 and %d, got %d", maxPageSize, c.PageSize)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1, got %d", c.Concurrency)
	}
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("--output must be %s or %s, got %q", OutputText, OutputJSON, c.Output)
	}
	return nil
}

// Interactive reports whether remediation should be confirmed bucket by bucket.
// terminal tells whether stdin can answer a prompt; without one nothing is asked.
func (c *Config) Interactive(terminal bool) bool {
	return terminal && !c.Yes && !c.DryRun && c.Output == OutputText
}

// SplitPatterns turns repeated and comma-separated pattern flags into one list
func SplitPatterns(values []string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
