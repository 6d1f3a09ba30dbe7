package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const r750Response = `{
  "data": {
    "count": 1,
    "fieldValues": [
      {
        "cpuSeries": [
          {"name": "Intel Xeon Gold 6300 Series", "supportedReleases": [{"name": "ESXi 9.0"}]}
        ],
        "supportedReleases": [{"name": "ESXi 9.0"}, {"name": "ESXi 8.0 U3"}]
      }
    ]
  }
}`

func TestNew_RequiresBaseURL(t *testing.T) {
	c, err := New("")
	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestSearch_SendsQuery(t *testing.T) {
	var got searchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "partnerName", r.URL.Query().Get("sortBy"))
		assert.Equal(t, "ASC", r.URL.Query().Get("sortType"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(r750Response))
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	result, err := c.Search(context.Background(), Query{Vendor: "Dell", Keyword: "PowerEdge R750"})
	require.NoError(t, err)

	assert.Equal(t, "server", got.ProgramID)
	require.Len(t, got.Filters, 1)
	assert.Equal(t, "partnerName", got.Filters[0].DisplayKey)
	assert.Equal(t, []string{"Dell"}, got.Filters[0].FilterValues)
	assert.Equal(t, []string{"PowerEdge R750"}, got.Keyword)

	assert.Equal(t, 1, result.Data.Count)
	require.Len(t, result.Data.FieldValues, 1)
	entry := result.Data.FieldValues[0]
	assert.Equal(t, "Intel Xeon Gold 6300 Series", entry.CPUSeries[0].Name)
	assert.Equal(t, []string{"ESXi 9.0"}, ReleaseNames(entry.CPUSeries[0].SupportedReleases))
	assert.Equal(t, []string{"ESXi 9.0", "ESXi 8.0 U3"}, ReleaseNames(entry.SupportedReleases))
}

func TestSearch_Options(t *testing.T) {
	var program string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "vcfcompat/test", r.Header.Get("User-Agent"))
		var req searchRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		program = req.ProgramID
		_, _ = w.Write([]byte(`{"data":{"count":0,"fieldValues":[]}}`))
	}))
	defer server.Close()

	c, err := New(server.URL, WithProgram("io"), WithLimit(50), WithRateLimit(100, 2), WithUserAgent("vcfcompat/test"))
	require.NoError(t, err)

	result, err := c.Search(context.Background(), Query{Vendor: "Cisco", Keyword: "UCSC-C240-M6"})
	require.NoError(t, err)
	assert.Equal(t, "io", program)
	assert.Zero(t, result.Data.Count)
}

func TestSearch_Unavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "maintenance", http.StatusServiceUnavailable)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"data": [`))
			},
		},
		{
			name: "empty object",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			},
		},
		{
			name: "error body with status 200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"error":"rate limited"}`))
			},
		},
		{
			name: "null data",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"data":null}`))
			},
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			c, err := New(server.URL, WithTimeout(100*time.Millisecond))
			require.NoError(t, err)

			result, err := c.Search(context.Background(), Query{Vendor: "Dell", Keyword: "PowerEdge R750"})
			assert.ErrorIs(t, err, ErrUnavailable)
			assert.Nil(t, result)
		})
	}
}

func TestSearch_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := New(url)
	require.NoError(t, err)

	_, err = c.Search(context.Background(), Query{Vendor: "Dell", Keyword: "PowerEdge R750"})
	assert.ErrorIs(t, err, ErrUnavailable)
}
