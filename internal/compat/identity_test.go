package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitIdentity(t *testing.T) {
	tests := []struct {
		label    string
		expected Identity
	}{
		{"Dell Inc. PowerEdge R750", Identity{Vendor: "Dell", Model: "PowerEdge R750"}},
		{"DELL EMC PowerEdge R650xs", Identity{Vendor: "Dell", Model: "PowerEdge R650xs"}},
		{"HPE ProLiant DL380 Gen10", Identity{Vendor: "Hewlett Packard Enterprise", Model: "DL380 Gen10"}},
		{"HP ProLiant BL460c Gen9", Identity{Vendor: "Hewlett Packard Enterprise", Model: "BL460c Gen9"}},
		{"Dell-HPC Systems PowerEdge R750", Identity{Vendor: "Dell", Model: "PowerEdge R750"}},
		{"Cisco Systems Inc UCSC-C240-M6", Identity{Vendor: "Cisco Systems", Model: "Inc UCSC-C240-M6"}},
		{"Lenovo ThinkSystem SR650 V2", Identity{Vendor: "Lenovo ThinkSystem", Model: "SR650 V2"}},
		{"Unknown", Identity{Vendor: "Unknown", Model: ""}},
		{"", Identity{}},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitIdentity(tt.label))
		})
	}
}

func TestIsNotAssessed(t *testing.T) {
	assert.True(t, IsNotAssessed("VMware, Inc. VMware7,1"))
	assert.True(t, IsNotAssessed("VMware Virtual Platform"))
	assert.True(t, IsNotAssessed("Amazon EC2 i3.metal"))
	assert.False(t, IsNotAssessed("Dell Inc. PowerEdge R750"))
	assert.False(t, IsNotAssessed("Unknown"))
}
