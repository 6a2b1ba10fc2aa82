package config

import (
	"reflect"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Concurrency != 1 {
		t.Fatalf("expected sequential default, got %d", cfg.Concurrency)
	}
	if !cfg.Interactive(true) {
		t.Fatalf("default text run on a terminal should be interactive")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"s3-compatible without endpoint", func(c *Config) { c.Provider = ProviderS3Compatible }, true},
		{"s3-compatible with endpoint", func(c *Config) { c.Provider = ProviderS3Compatible; c.Endpoint = "http://minio:9000" }, false},
		{"gcp not implemented", func(c *Config) { c.Provider = "gcp" }, true},
		{"unknown provider", func(c *Config) { c.Provider = "ftp" }, true},
		{"access key without secret", func(c *Config) { c.AccessKeyID = "AKIA" }, true},
		{"secret without access key", func(c *Config) { c.SecretAccessKey = "s" }, true},
		{"full static keys", func(c *Config) { c.AccessKeyID = "AKIA"; c.SecretAccessKey = "s"; c.SessionToken = "t" }, false},
		{"session token alone", func(c *Config) { c.SessionToken = "t" }, true},
		{"zero page size", func(c *Config) { c.PageSize = 0 }, true},
		{"page size too large", func(c *Config) { c.PageSize = 20000 }, true},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, true},
		{"bad output", func(c *Config) { c.Output = "yaml" }, true},
		{"json output", func(c *Config) { c.Output = OutputJSON }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestInteractive(t *testing.T) {
	cfg := Default()
	cfg.Yes = true
	if cfg.Interactive(true) {
		t.Error("--yes must disable prompts")
	}
	cfg = Default()
	cfg.DryRun = true
	if cfg.Interactive(true) {
		t.Error("dry run must not prompt")
	}
	cfg = Default()
	cfg.Output = OutputJSON
	if cfg.Interactive(true) {
		t.Error("json output must not prompt")
	}
	cfg = Default()
	if cfg.Interactive(false) {
		t.Error("stdin without a terminal must not prompt")
	}
}

func TestSplitPatterns(t *testing.T) {
	got := SplitPatterns([]string{"prod-*, dev-*", "", " logs-* "})
	want := []string{"prod-*", "dev-*", "logs-*"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
