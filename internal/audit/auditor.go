package audit

import (
	"context"
	"fmt"
	"path"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hemantobora/bucket-guard/internal"
	"github.com/hemantobora/bucket-guard/internal/models"
)

// ApproveFunc decides whether a public bucket may be remediated.
type ApproveFunc func(ctx context.Context, bucket string) (bool, error)

// Options controls an audit run
type Options struct {
	// Concurrency is the number of buckets audited at once. Values below 2
	// audit strictly one bucket at a time.
	Concurrency int
	// DryRun classifies buckets without remediating any of them.
	DryRun bool
	// Approve, when set, is consulted before each remediation.
	Approve ApproveFunc
	// Include and Exclude are path.Match patterns on bucket names.
	Include []string
	Exclude []string
	// OnProgress, when set, is called after each bucket with the number of
	// buckets finished so far.
	OnProgress func(done, total int)
}

// Auditor runs the enumerate, classify, remediate pipeline
type Auditor struct {
	api    internal.StorageAPI
	logger *zap.Logger
	opts   Options
	now    func() time.Time
}

// NewAuditor creates an auditor. A nil logger discards output.
func NewAuditor(api internal.StorageAPI, logger *zap.Logger, opts Options) *Auditor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auditor{api: api, logger: logger, opts: opts, now: time.Now}
}

// Run audits every bucket in the account. Only a listing failure is returned
// as an error; per-bucket failures are recorded on their report.
func (a *Auditor) Run(ctx context.Context) (*models.AuditSummary, error) {
	summary := &models.AuditSummary{DryRun: a.opts.DryRun, Started: a.now()}

	buckets, err := ListAllBuckets(ctx, a.api)
	if err != nil {
		return nil, err
	}
	buckets, err = a.filter(buckets)
	if err != nil {
		return nil, err
	}
	a.logger.Info("buckets enumerated", zap.Int("count", len(buckets)))

	reports := make([]models.BucketReport, len(buckets))
	var done atomic.Int64
	progress := func() {
		n := done.Add(1)
		if a.opts.OnProgress != nil {
			a.opts.OnProgress(int(n), len(buckets))
		}
	}
	if a.opts.Concurrency < 2 {
		for i, b := range buckets {
			reports[i] = a.auditBucket(ctx, b)
			progress()
		}
	} else {
		// Bucket failures land in reports, so workers never return an error.
		var g errgroup.Group
		g.SetLimit(a.opts.Concurrency)
		for i, b := range buckets {
			g.Go(func() error {
				reports[i] = a.auditBucket(ctx, b)
				progress()
				return nil
			})
		}
		g.Wait()
	}

	summary.Reports = reports
	summary.Finished = a.now()
	return summary, nil
}

func (a *Auditor) auditBucket(ctx context.Context, b models.Bucket) models.BucketReport {
	report := models.BucketReport{Bucket: b}
	log := a.logger.With(zap.String("bucket", b.Name))

	if err := ctx.Err(); err != nil {
		report.Err = &models.BucketError{Bucket: b.Name, Phase: models.PhaseClassify, Cause: err}
		return report
	}

	public, err := IsPublic(ctx, a.api, b.Name)
	if err != nil {
		report.Err = &models.BucketError{Bucket: b.Name, Phase: models.PhaseClassify, Cause: err}
		log.Error("error checking bucket", zap.Error(err))
		return report
	}
	report.Public = public
	if !public {
		log.Info("bucket does not have public access")
		return report
	}

	if a.opts.DryRun {
		report.Skipped = true
		log.Warn("bucket has public access (dry run, not remediated)")
		return report
	}

	if a.opts.Approve != nil {
		ok, err := a.opts.Approve(ctx, b.Name)
		if err != nil {
			report.Err = &models.BucketError{Bucket: b.Name, Phase: models.PhaseApprove, Cause: err}
			log.Error("approval failed", zap.Error(err))
			return report
		}
		if !ok {
			report.Skipped = true
			log.Warn("bucket has public access, remediation declined")
			return report
		}
	}

	log.Warn("bucket has public access, enabling block public access")
	if err := BlockPublicAccess(ctx, a.api, b.Name); err != nil {
		report.Err = &models.BucketError{Bucket: b.Name, Phase: models.PhaseRemediate, Cause: err}
		log.Error("error blocking public access", zap.Error(err))
		return report
	}
	report.Remediated = true
	log.Info("block public access enabled")
	return report
}

func (a *Auditor) filter(buckets []models.Bucket) ([]models.Bucket, error) {
	if len(a.opts.Include) == 0 && len(a.opts.Exclude) == 0 {
		return buckets, nil
	}
	out := make([]models.Bucket, 0, len(buckets))
	for _, b := range buckets {
		keep := len(a.opts.Include) == 0
		for _, p := range a.opts.Include {
			ok, err := path.Match(p, b.Name)
			if err != nil {
				return nil, fmt.Errorf("invalid include pattern %q: %w", p, err)
			}
			if ok {
				keep = true
				break
			}
		}
		for _, p := range a.opts.Exclude {
			ok, err := path.Match(p, b.Name)
			if err != nil {
				return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
			}
			if ok {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, b)
		}
	}
	return out, nil
}
