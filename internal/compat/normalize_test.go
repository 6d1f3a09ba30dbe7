package compat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"evalgo.org/vcfcompat/models"
)

func TestCleanCPU(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"Intel(R) Xeon(R) Gold 6230 CPU @ 2.10GHz", "Intel Xeon Gold 6230 CPU"},
		{"Intel(R) Xeon(R) Platinum 8380 CPU @ 2.30GHz", "Intel Xeon Platinum 8380 CPU"},
		{"  AMD EPYC 7763 64-Core Processor  ", "AMD EPYC 7763 64-Core Processor"},
		{"Intel(R)   Xeon(R)  CPU E5-2680 v4 @ 2.40GHz @ turbo", "Intel Xeon CPU E5-2680 v4"},
		{"Unknown", "Unknown"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanCPU(tt.raw))
		})
	}
}

func TestCleanCPU_StripsAnnotations(t *testing.T) {
	raws := []string{
		"Intel(R) Xeon(R) Gold 6230 CPU @ 2.10GHz",
		"Intel(R) Xeon(R) Silver 4210R CPU @ 2.40GHz",
		"Genuine Intel(R) CPU 0000%@ (ES)",
	}
	for _, raw := range raws {
		cleaned := CleanCPU(raw)
		assert.NotContains(t, cleaned, "(")
		assert.NotContains(t, cleaned, ")")
		assert.NotContains(t, cleaned, "@")
		assert.Equal(t, strings.TrimSpace(cleaned), cleaned)
	}
}

func TestExtractFamily(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"Intel(R) Xeon(R) Gold 6230 CPU @ 2.10GHz", "Intel Xeon Gold 62"},
		{"Intel(R) Xeon(R) Gold 6338 CPU @ 2.00GHz", "Intel Xeon Gold 63"},
		{"Intel(R) Xeon(R) Silver 4314 CPU @ 2.40GHz", "Intel Xeon Silver 43"},
		{"Intel(R) Xeon(R) Platinum 8480+", "Intel Xeon Platinum 84"},
		{"AMD EPYC 7763 64-Core Processor", ""},
		{"Intel(R) Xeon(R) CPU E5-2680 v4 @ 2.40GHz", ""},
		{"Unknown", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractFamily(tt.raw))
		})
	}
}

func hostsWithCPUs(cpus ...string) []models.HostRecord {
	hosts := make([]models.HostRecord, 0, len(cpus))
	for i, cpu := range cpus {
		hosts = append(hosts, models.HostRecord{
			Hostname: "esx" + string(rune('a'+i)),
			Vendor:   "Dell Inc.",
			Model:    "Dell Inc. PowerEdge R750",
			CPU:      cpu,
		})
	}
	return hosts
}

func TestGroupFamilies(t *testing.T) {
	tests := []struct {
		name     string
		cpus     []string
		expected []string
	}{
		{
			name:     "identical cpus collapse",
			cpus:     []string{"Intel(R) Xeon(R) Gold 6338 CPU @ 2.00GHz", "Intel(R) Xeon(R) Gold 6338 CPU @ 2.00GHz"},
			expected: []string{"Intel Xeon Gold 63"},
		},
		{
			name:     "single unrecognized cpu keeps an empty family",
			cpus:     []string{"AMD EPYC 7763 64-Core Processor"},
			expected: []string{""},
		},
		{
			name:     "mixed cpus drop unrecognized ones",
			cpus:     []string{"AMD EPYC 7763 64-Core Processor", "Intel(R) Xeon(R) Silver 4314 CPU @ 2.40GHz"},
			expected: []string{"Intel Xeon Silver 43"},
		},
		{
			name:     "several unrecognized cpus yield nothing",
			cpus:     []string{"AMD EPYC 7763 64-Core Processor", "AMD EPYC 9654 96-Core Processor"},
			expected: nil,
		},
		{
			name:     "same family from different models is reported once",
			cpus:     []string{"Intel(R) Xeon(R) Gold 6338 CPU @ 2.00GHz", "Intel(R) Xeon(R) Gold 6330 CPU @ 2.00GHz", "Intel(R) Xeon(R) Gold 6230 CPU @ 2.10GHz"},
			expected: []string{"Intel Xeon Gold 62", "Intel Xeon Gold 63"},
		},
		{
			name:     "cpus differing only in annotations are one cpu",
			cpus:     []string{"Intel(R) Xeon(R) Gold 6338 CPU @ 2.00GHz", "Intel Xeon Gold 6338 CPU"},
			expected: []string{"Intel Xeon Gold 63"},
		},
		{
			name:     "empty group",
			cpus:     nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GroupFamilies(hostsWithCPUs(tt.cpus...)))
		})
	}
}
