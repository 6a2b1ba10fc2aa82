package models

import (
	"encoding/json"
	"time"
)

// BucketReport is the outcome of auditing a single bucket
type BucketReport struct {
	Bucket     Bucket `json:"bucket"`
	Public     bool   `json:"public"`
	Remediated bool   `json:"remediated"`
	Skipped    bool   `json:"skipped"` // public but remediation declined or dry-run
	Err        error  `json:"-"`
}

// Failed reports whether the bucket hit an error during classification or remediation.
func (r BucketReport) Failed() bool {
	return r.Err != nil
}

// MarshalJSON renders Err as a plain string.
func (r BucketReport) MarshalJSON() ([]byte, error) {
	type alias BucketReport
	out := struct {
		alias
		Error string `json:"error,omitempty"`
	}{alias: alias(r)}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(out)
}

// AccountInfo contains cloud account information
type AccountInfo struct {
	AccountID string `json:"account_id"`
	Alias     string `json:"alias,omitempty"`
	ARN       string `json:"arn"`
	Region    string `json:"region"`
}

// AuditSummary aggregates the reports of a whole run
type AuditSummary struct {
	Account  AccountInfo    `json:"account"`
	DryRun   bool           `json:"dry_run"`
	Started  time.Time      `json:"started"`
	Finished time.Time      `json:"finished"`
	Reports  []BucketReport `json:"reports"`
}

// Total returns the number of audited buckets.
func (s *AuditSummary) Total() int { return len(s.Reports) }

// Public returns the number of buckets classified as public.
func (s *AuditSummary) Public() int {
	n := 0
	for _, r := range s.Reports {
		if r.Public {
			n++
		}
	}
	return n
}

// Remediated returns the number of buckets that had public access blocked.
func (s *AuditSummary) Remediated() int {
	n := 0
	for _, r := range s.Reports {
		if r.Remediated {
			n++
		}
	}
	return n
}

// Failed returns the number of buckets that errored.
func (s *AuditSummary) Failed() int {
	n := 0
	for _, r := range s.Reports {
		if r.Failed() {
			n++
		}
	}
	return n
}

// Exposed returns public buckets that are still public after the run.
func (s *AuditSummary) Exposed() []BucketReport {
	var out []BucketReport
	for _, r := range s.Reports {
		if r.Public && !r.Remediated {
			out = append(out, r)
		}
	}
	return out
}
