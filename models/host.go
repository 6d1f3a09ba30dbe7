package models

import "sort"

// Unknown is recorded for hardware model and CPU fields that Aria Operations
// does not report for a host.
const Unknown = "Unknown"

// HostRecord represents one ESXi host as reported by Aria Operations.
// It carries the hardware identity needed to look the host up in the
// compatibility catalog.
//
// Example JSON representation:
//
//	{
//	  "resourceId": "4e1c5b0a-...",
//	  "hostname": "esx01.lab.local",
//	  "vendor": "Dell Inc.",
//	  "model": "Dell Inc. PowerEdge R750",
//	  "cpu": "Intel(R) Xeon(R) Gold 6338 CPU @ 2.00GHz"
//	}
type HostRecord struct {
	// ResourceID is the Aria Operations resource identifier
	ResourceID string `json:"resourceId,omitempty" yaml:"resourceId,omitempty"`

	// Hostname is the host name (unique within a model group)
	Hostname string `json:"hostname" yaml:"hostname" validate:"required"`

	// Vendor is the hardware vendor (required, never defaulted)
	Vendor string `json:"vendor" yaml:"vendor" validate:"required"`

	// Model is the hardware model label (Unknown when not reported)
	Model string `json:"model" yaml:"model" validate:"required"`

	// CPU is the raw CPU description (Unknown when not reported)
	CPU string `json:"cpu" yaml:"cpu" validate:"required"`
}

// Inventory maps a hardware model label to the hosts reported under it.
// Every host belongs to exactly one model group.
type Inventory map[string][]HostRecord

// Add appends a host to the group of its model label.
func (inv Inventory) Add(h HostRecord) {
	inv[h.Model] = append(inv[h.Model], h)
}

// Models returns the model labels in sort order.
func (inv Inventory) Models() []string {
	labels := make([]string, 0, len(inv))
	for label := range inv {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// HostCount returns the number of hosts across all model groups.
func (inv Inventory) HostCount() int {
	n := 0
	for _, hosts := range inv {
		n += len(hosts)
	}
	return n
}
