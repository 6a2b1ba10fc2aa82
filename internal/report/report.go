// Package report renders audit summaries for humans and machines.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hemantobora/bucket-guard/internal/models"
)

// WriteJSON writes the summary as indented JSON.
func WriteJSON(w io.Writer, s *models.AuditSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteText writes one line per bucket followed by totals.
func WriteText(w io.Writer, s *models.AuditSummary) error {
	var b strings.Builder

	account := s.Account.AccountID
	if s.Account.Alias != "" {
		account = fmt.Sprintf("%s (%s)", s.Account.Alias, s.Account.AccountID)
	}
	if account != "" {
		fmt.Fprintf(&b, "📊 Public access audit: %s\n", account)
	} else {
		b.WriteString("📊 Public access audit\n")
	}
	if s.DryRun {
		b.WriteString("🔍 Dry run: no bucket was modified\n")
	}
	b.WriteString(strings.Repeat("=", 60) + "\n")

	for _, r := range s.Reports {
		b.WriteString(Line(r) + "\n")
	}

	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "Buckets: %d  Public: %d  Remediated: %d  Failed: %d  Duration: %s\n",
		s.Total(), s.Public(), s.Remediated(), s.Failed(), s.Finished.Sub(s.Started).Round(time.Millisecond))

	if exposed := s.Exposed(); len(exposed) > 0 {
		b.WriteString("\n⚠️  Still publicly accessible:\n")
		for _, r := range exposed {
			fmt.Fprintf(&b, "   • %s\n", r.Bucket.Name)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Line describes the outcome for a single bucket.
func Line(r models.BucketReport) string {
	name := r.Bucket.Name
	if r.Err != nil {
		var berr *models.BucketError
		phase := models.PhaseClassify
		if errors.As(r.Err, &berr) {
			phase = berr.Phase
		}
		switch phase {
		case models.PhaseRemediate:
			return fmt.Sprintf("❌ %s: public, failed to block public access: %v", name, r.Err)
		case models.PhaseApprove:
			return fmt.Sprintf("❌ %s: public, confirmation failed: %v", name, r.Err)
		default:
			return fmt.Sprintf("❌ %s: error checking bucket: %v", name, r.Err)
		}
	}
	switch {
	case r.Remediated:
		return fmt.Sprintf("✅ %s: had public access, Block Public Access enabled", name)
	case r.Skipped:
		return fmt.Sprintf("⚠️  %s: has public access (not remediated)", name)
	case r.Public:
		return fmt.Sprintf("⚠️  %s: has public access", name)
	default:
		return fmt.Sprintf("🔒 %s: does not have public access", name)
	}
}
