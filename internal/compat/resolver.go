package compat

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"evalgo.org/vcfcompat/internal/catalog"
	"evalgo.org/vcfcompat/models"
)

// Catalog searches the compatibility catalog.
type Catalog interface {
	Search(ctx context.Context, q catalog.Query) (*catalog.Result, error)
}

// Resolver looks model groups up in the compatibility catalog.
type Resolver struct {
	catalog Catalog
}

// NewResolver creates a Resolver backed by c.
func NewResolver(c Catalog) *Resolver {
	return &Resolver{catalog: c}
}

// ResolveGroup resolves all hosts of one model group. Virtual and cloud
// platforms are NotApplied without a catalog call. On a catalog failure the
// result is Unresolved and the error wraps catalog.ErrUnavailable.
func (r *Resolver) ResolveGroup(ctx context.Context, label string, hosts []models.HostRecord) (models.CompatibilityResult, error) {
	if IsNotAssessed(label) {
		return models.NotApplied(), nil
	}

	id := SplitIdentity(label)
	return r.Resolve(ctx, id.Vendor, id.Model, GroupFamilies(hosts))
}

// Resolve runs one catalog search for vendor and model and picks the
// releases of the first listing with a CPU series matching any of the
// families.
func (r *Resolver) Resolve(ctx context.Context, vendor, model string, families []string) (models.CompatibilityResult, error) {
	logger := log.WithFields(log.Fields{"vendor": vendor, "model": model, "families": families})

	result, err := r.catalog.Search(ctx, catalog.Query{Vendor: vendor, Keyword: model})
	if err != nil {
		logger.WithError(err).Warn("catalog lookup failed")
		return models.Unresolved(err.Error()), fmt.Errorf("resolve %s %s: %w", vendor, model, err)
	}

	if result == nil || result.Data == nil {
		err := fmt.Errorf("resolve %s %s: %w: response has no data", vendor, model, catalog.ErrUnavailable)
		logger.WithError(err).Warn("catalog lookup failed")
		return models.Unresolved(err.Error()), err
	}

	if result.Data.Count == 0 {
		logger.Debug("no catalog listing")
		return models.NotFound(), nil
	}

	releases, ok := MatchReleases(result.Data.FieldValues, families)
	if !ok {
		logger.Debug("no certified cpu series matches")
		return models.NotFound(), nil
	}

	logger.WithField("releases", releases).Debug("resolved")
	return models.Releases(releases...), nil
}

// MatchReleases scans the listings in order and returns the releases of the
// first CPU series whose name contains every word of one of the families.
// The series' own releases are used when listed, otherwise the listing's.
func MatchReleases(entries []catalog.Entry, families []string) ([]string, bool) {
	for _, entry := range entries {
		for _, series := range entry.CPUSeries {
			name := strings.ToLower(series.Name)
			for _, family := range families {
				if !containsAllWords(name, family) {
					continue
				}
				releases := series.SupportedReleases
				if len(releases) == 0 {
					releases = entry.SupportedReleases
				}
				return catalog.ReleaseNames(releases), true
			}
		}
	}
	return nil, false
}

// containsAllWords reports whether every word of family occurs in name.
// An empty family has no words and matches any name.
func containsAllWords(name, family string) bool {
	for _, word := range strings.Fields(strings.ToLower(family)) {
		if !strings.Contains(name, word) {
			return false
		}
	}
	return true
}
