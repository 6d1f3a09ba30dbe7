package models

import (
	"slices"
	"strings"
)

// ResultKind tells the supported-release list apart from the sentinel
// outcomes of a catalog lookup.
type ResultKind string

const (
	// KindReleases means the catalog listed supported releases (possibly none).
	KindReleases ResultKind = "releases"

	// KindNotFound means the catalog has no entry for the vendor, model and CPU.
	KindNotFound ResultKind = "not_found"

	// KindNotApplied means compatibility is not assessed (virtual or cloud platforms).
	KindNotApplied ResultKind = "not_applied"

	// KindUnresolved means the catalog could not be queried for the group.
	KindUnresolved ResultKind = "unresolved"
)

// Rendered forms of the sentinel results in console and CSV output.
const (
	NotFoundLabel   = "Not Found"
	NotAppliedLabel = "Not Applied"
	UnresolvedLabel = "Unresolved"
)

// CompatibilityResult is the outcome of resolving one model group against
// the compatibility catalog. Every host ends with exactly one.
type CompatibilityResult struct {
	// Kind selects between Releases and the sentinel outcomes
	Kind ResultKind `json:"kind" yaml:"kind"`

	// Releases are the supported platform releases in catalog order
	Releases []string `json:"releases,omitempty" yaml:"releases,omitempty"`

	// Reason describes why the result is unresolved
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Releases builds a result listing the given supported releases.
func Releases(names ...string) CompatibilityResult {
	return CompatibilityResult{Kind: KindReleases, Releases: names}
}

// NotFound is the result for models the catalog does not know.
func NotFound() CompatibilityResult {
	return CompatibilityResult{Kind: KindNotFound}
}

// NotApplied is the result for platforms that are not assessed.
func NotApplied() CompatibilityResult {
	return CompatibilityResult{Kind: KindNotApplied}
}

// Unresolved is the result for groups whose catalog lookup failed.
func Unresolved(reason string) CompatibilityResult {
	return CompatibilityResult{Kind: KindUnresolved, Reason: reason}
}

// Supports reports whether release is one of the supported releases.
func (r CompatibilityResult) Supports(release string) bool {
	return r.Kind == KindReleases && slices.Contains(r.Releases, release)
}

// String renders the result the way it appears in reports: the releases
// joined with ", " or the sentinel label.
func (r CompatibilityResult) String() string {
	switch r.Kind {
	case KindNotFound:
		return NotFoundLabel
	case KindNotApplied:
		return NotAppliedLabel
	case KindUnresolved:
		return UnresolvedLabel
	default:
		return strings.Join(r.Releases, ", ")
	}
}

// ParseCompatibility is the inverse of CompatibilityResult.String.
func ParseCompatibility(s string) CompatibilityResult {
	switch s {
	case NotFoundLabel:
		return NotFound()
	case NotAppliedLabel:
		return NotApplied()
	case UnresolvedLabel:
		return Unresolved("")
	case "":
		return Releases()
	}
	parts := strings.Split(s, ", ")
	return Releases(parts...)
}

// Bucket is the final classification of a host.
type Bucket string

const (
	BucketVCF9Compatible Bucket = "VCF9Compatible"
	BucketNotCompatible  Bucket = "NotCompatible"
	BucketNotFound       Bucket = "NotFound"
	BucketNotApplied     Bucket = "NotApplied"
	BucketUnresolved     Bucket = "Unresolved"
)

// Buckets lists every bucket in report order.
var Buckets = []Bucket{
	BucketVCF9Compatible,
	BucketNotCompatible,
	BucketNotFound,
	BucketNotApplied,
	BucketUnresolved,
}

// Title returns the heading used for the bucket in console tables.
func (b Bucket) Title() string {
	switch b {
	case BucketVCF9Compatible:
		return "VCF 9 COMPATIBLE SERVERS"
	case BucketNotCompatible:
		return "NOT COMPATIBLE"
	case BucketNotFound:
		return "NOT FOUND"
	case BucketNotApplied:
		return "NOT APPLIED"
	case BucketUnresolved:
		return "UNRESOLVED"
	}
	return string(b)
}
