package catalog

// Query selects catalog entries for one server model.
type Query struct {
	// Vendor is the canonical partner name (e.g. Dell)
	Vendor string

	// Keyword is the model text searched for (e.g. PowerEdge R750)
	Keyword string
}

type searchRequest struct {
	ProgramID string         `json:"programId"`
	Filters   []searchFilter `json:"filters"`
	Keyword   []string       `json:"keyword"`
	Date      dateRange      `json:"date"`
}

type searchFilter struct {
	DisplayKey   string   `json:"displayKey"`
	FilterValues []string `json:"filterValues"`
}

type dateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Result is the decoded catalog search response.
type Result struct {
	// Data is nil when the response carries no data object
	Data *ResultData `json:"data"`
}

// ResultData holds the match count and the matching entries.
type ResultData struct {
	Count       int     `json:"count"`
	FieldValues []Entry `json:"fieldValues"`
}

// Entry is one certified server listing.
type Entry struct {
	// CPUSeries lists the certified CPU series of the listing
	CPUSeries []CPUSeries `json:"cpuSeries"`

	// SupportedReleases lists the releases certified for the listing
	SupportedReleases []Release `json:"supportedReleases"`
}

// CPUSeries is a certified CPU series, optionally with its own releases.
type CPUSeries struct {
	Name              string    `json:"name"`
	SupportedReleases []Release `json:"supportedReleases"`
}

// Release is a platform release name such as "ESXi 9.0".
type Release struct {
	Name string `json:"name"`
}

// ReleaseNames returns the names of releases in order.
func ReleaseNames(releases []Release) []string {
	names := make([]string, 0, len(releases))
	for _, r := range releases {
		names = append(names, r.Name)
	}
	return names
}
