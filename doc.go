// Package vcfcompat checks ESXi hosts for VMware Cloud Foundation 9
// compatibility.
//
// # Overview
//
// vcfcompat reads the host inventory from VMware Aria Operations, looks
// every server model up in the Broadcom Compatibility Guide and sorts the
// hosts into buckets:
//   - VCF9Compatible: the catalog lists the target release (ESXi 9.0)
//   - NotCompatible: the model is listed without the target release
//   - NotFound: the catalog has no entry for the model and CPU family
//   - NotApplied: virtual and cloud platforms (VMware, Amazon)
//   - Unresolved: the catalog could not be queried for the model
//
// # Architecture
//
//	┌──────────────────┐       ┌──────────────────┐
//	│ Aria Operations  │       │ Compatibility    │
//	│ (suite API)      │       │ Guide (catalog)  │
//	└────────┬─────────┘       └────────▲─────────┘
//	         │ hosts                    │ one search per model
//	┌────────▼─────────┐       ┌────────┴─────────┐
//	│ internal/aria    ├──────►│ internal/compat  │
//	│ (inventory)      │       │ (normalize,      │
//	└──────────────────┘       │  resolve,        │
//	                           │  classify)       │
//	                           └────────┬─────────┘
//	                                    │ report
//	                           ┌────────▼─────────┐
//	                           │ internal/report  │
//	                           │ (tables, CSV,    │
//	                           │  JSON/YAML,      │
//	                           │  textfile)       │
//	                           └──────────────────┘
//
// # Usage
//
// Classify every host and export the result:
//
//	vcfcompat check -H aria.example.com -u admin -d LOCAL -o server_export.csv
//
// List the server models only:
//
//	vcfcompat models -H aria.example.com -u admin
//
// Look one model up without Aria Operations:
//
//	vcfcompat lookup "Dell Inc. PowerEdge R750" "Intel(R) Xeon(R) Gold 6338 CPU @ 2.00GHz"
//
// Print the summary of an earlier export:
//
//	vcfcompat summarize server_export.csv
//
// # Configuration
//
// Configuration can be provided via:
//   - YAML file (config.yaml, see "vcfcompat config init")
//   - Environment variables (VC_ prefix)
//   - .env file
//   - Command-line flags
//
// Example configuration:
//
//	aria:
//	  host: aria.example.com
//	  username: admin
//	  domain: LOCAL
//	  insecure: true
//	catalog:
//	  rate_limit: 2
//	  concurrency: 4
//	check:
//	  target_release: ESXi 9.0
//	  output: server_export.csv
//
// # Development
//
// Run tests:
//
//	go test ./...
//
// Build the binary:
//
//	go build -o vcfcompat ./cmd/vcfcompat
package vcfcompat
