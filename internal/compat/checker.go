// Package compat classifies ESXi hosts by their compatibility with a target
// platform release.
//
// # Pipeline
//
//  1. Normalize: the CPU descriptions of each model group are reduced to
//     Xeon family labels (GroupFamilies).
//  2. Resolve: each model group is looked up once in the compatibility
//     catalog (Resolver).
//  3. Classify: every host is put in exactly one bucket (Classify) and the
//     buckets are grouped by model label (Aggregate).
//
// Checker composes the three steps. Model groups are resolved in model-label
// order; with a concurrency above one they are resolved in parallel and the
// results are reassembled in the same order, so the report does not depend
// on the concurrency.
//
// A failed catalog lookup does not abort the run. The group's hosts end up
// in the Unresolved bucket and the error is returned next to the report.
package compat

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"evalgo.org/vcfcompat/models"
)

// Checker runs the normalize, resolve and classify pipeline.
type Checker struct {
	resolver      *Resolver
	targetRelease string
	concurrency   int
}

// Option configures a Checker.
type Option func(*Checker)

// WithTargetRelease sets the release required for the compatible bucket.
func WithTargetRelease(release string) Option {
	return func(c *Checker) {
		if release != "" {
			c.targetRelease = release
		}
	}
}

// WithConcurrency sets how many model groups are resolved at once.
func WithConcurrency(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// NewChecker creates a Checker resolving against cat.
func NewChecker(cat Catalog, opts ...Option) *Checker {
	c := &Checker{
		resolver:      NewResolver(cat),
		targetRelease: DefaultTargetRelease,
		concurrency:   1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TargetRelease returns the release hosts are checked against.
func (c *Checker) TargetRelease() string {
	return c.targetRelease
}

// Run classifies every host of the inventory. The report is always
// returned; the error combines the failures of unresolved model groups.
func (c *Checker) Run(ctx context.Context, inv models.Inventory) (*models.Report, error) {
	report := models.NewReport(c.targetRelease)
	logger := log.WithField("run", report.RunID)

	labels := inv.Models()
	results := make([]models.CompatibilityResult, len(labels))
	errs := make([]error, len(labels))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, label := range labels {
		i, label := i, label
		g.Go(func() error {
			// Catalog failures stay per group; only cancellation stops the run
			if err := ctx.Err(); err != nil {
				results[i], errs[i] = models.Unresolved(err.Error()), err
				return err
			}
			logger.WithFields(log.Fields{"model": label, "hosts": len(inv[label])}).Debug("resolving model group")
			results[i], errs[i] = c.resolver.ResolveGroup(ctx, label, inv[label])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.WithError(err).Warn("compatibility check interrupted")
	}

	for i, label := range labels {
		if errs[i] != nil {
			report.Failures = append(report.Failures, models.GroupFailure{Model: label, Error: errs[i].Error()})
		}
		bucket := Classify(results[i], c.targetRelease)
		for _, h := range inv[label] {
			report.Hosts = append(report.Hosts, models.ClassifiedHost{
				HostRecord:    h,
				Compatibility: results[i],
				Bucket:        bucket,
			})
		}
	}

	report.Buckets = Aggregate(report.Hosts)
	report.GeneratedAt = time.Now().UTC()

	logger.WithFields(log.Fields{
		"models":     len(labels),
		"hosts":      len(report.Hosts),
		"compatible": report.Buckets.Count(models.BucketVCF9Compatible),
		"unresolved": len(report.Failures),
	}).Info("compatibility check finished")

	return report, multierr.Combine(errs...)
}
