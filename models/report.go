package models

import (
	"time"

	"github.com/google/uuid"
)

// ClassifiedHost is a host together with its resolved compatibility and
// the bucket it was classified into.
type ClassifiedHost struct {
	HostRecord `yaml:",inline"`

	// Compatibility is the catalog outcome for the host's model group
	Compatibility CompatibilityResult `json:"compatibility" yaml:"compatibility"`

	// Bucket is the classification derived from Compatibility
	Bucket Bucket `json:"bucket" yaml:"bucket"`
}

// BucketMap groups classified hosts by bucket and then by model label.
// A model label never maps to an empty host list.
type BucketMap map[Bucket]map[string][]ClassifiedHost

// Count returns the number of hosts in bucket b.
func (m BucketMap) Count(b Bucket) int {
	n := 0
	for _, hosts := range m[b] {
		n += len(hosts)
	}
	return n
}

// GroupFailure records a model group that could not be resolved.
type GroupFailure struct {
	Model string `json:"model" yaml:"model"`
	Error string `json:"error" yaml:"error"`
}

// Report is the result of one compatibility check run.
type Report struct {
	// RunID identifies the run in logs and exported reports
	RunID string `json:"runId" yaml:"runId"`

	// TargetRelease is the release hosts were checked against
	TargetRelease string `json:"targetRelease" yaml:"targetRelease"`

	// GeneratedAt is when classification finished
	GeneratedAt time.Time `json:"generatedAt" yaml:"generatedAt"`

	// Hosts are the classified hosts in model-label order
	Hosts []ClassifiedHost `json:"hosts" yaml:"hosts"`

	// Buckets groups Hosts per bucket and model label
	Buckets BucketMap `json:"buckets" yaml:"buckets"`

	// Failures lists model groups whose catalog lookup failed
	Failures []GroupFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// NewReport creates an empty report with a fresh run identifier.
func NewReport(targetRelease string) *Report {
	return &Report{
		RunID:         uuid.New().String(),
		TargetRelease: targetRelease,
		Buckets:       BucketMap{},
	}
}
