// Package aria reads the ESXi host inventory from VMware Aria Operations.
//
// The client acquires a token from the suite API, pages through all
// hostSystem resources and reads the hardware vendor, hardware model and CPU
// model properties of each host.
//
// # Errors
//
//   - ErrAuthenticationFailed: the token could not be acquired. Callers treat
//     it as fatal.
//   - ErrInventoryFetchFailed: a listing page or a host's properties could not
//     be read. The affected resource is skipped.
//   - ErrMissingVendor: a host reports no hardware vendor. The host is skipped
//     rather than given a made-up vendor.
package aria

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"evalgo.org/vcfcompat/internal/validation"
	"evalgo.org/vcfcompat/models"
)

var (
	// ErrAuthenticationFailed is returned when Aria Operations rejects the credentials.
	ErrAuthenticationFailed = errors.New("authentication with Aria Operations failed")

	// ErrInventoryFetchFailed is returned when a resource cannot be read.
	ErrInventoryFetchFailed = errors.New("inventory fetch failed")

	// ErrMissingVendor is returned for hosts without a hardware vendor.
	ErrMissingVendor = errors.New("host reports no hardware vendor")

	// ErrInvalidHost is returned for host records failing validation.
	ErrInvalidHost = errors.New("invalid host record")
)

const apiPrefix = "/suite-api/api"

// Credentials authenticate against Aria Operations.
type Credentials struct {
	Username string
	// Domain is the authentication source (LOCAL or a directory domain)
	Domain   string
	Password string
}

// Client is an Aria Operations suite API client.
type Client struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
	insecure   bool
	timeout    time.Duration
	pageSize   int
	userAgent  string
	token      string
	validator  *validation.Validator
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithInsecureSkipVerify disables TLS certificate verification, for
// appliances with self-signed certificates.
func WithInsecureSkipVerify(insecure bool) Option {
	return func(c *Client) { c.insecure = insecure }
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithPageSize sets the number of resources requested per page.
func WithPageSize(n int) Option {
	return func(c *Client) { c.pageSize = n }
}

// WithUserAgent sets the User-Agent header of every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a client for the Aria Operations instance at baseURL.
func New(baseURL string, creds Credentials, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is required")
	}
	if creds.Username == "" {
		return nil, fmt.Errorf("username is required")
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		creds:     creds,
		timeout:   60 * time.Second,
		pageSize:  1000,
		validator: validation.New(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if c.insecure {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		}
		c.httpClient = &http.Client{Transport: transport, Timeout: c.timeout}
	}

	return c, nil
}

// Authenticate acquires an API token.
func (c *Client) Authenticate(ctx context.Context) error {
	payload, err := json.Marshal(tokenRequest{
		Username:   c.creds.Username,
		AuthSource: c.creds.Domain,
		Password:   c.creds.Password,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiPrefix+"/auth/token/acquire", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.setUserAgent(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrAuthenticationFailed, resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return fmt.Errorf("%w: failed to decode token: %v", ErrAuthenticationFailed, err)
	}
	if tok.Token == "" {
		return fmt.Errorf("%w: empty token", ErrAuthenticationFailed)
	}

	c.token = tok.Token
	log.WithField("user", c.creds.Username).Debug("acquired Aria Operations token")
	return nil
}

// ListHosts returns every ESXi host resource. When a page fails, the hosts
// read so far are returned together with the error.
func (c *Client) ListHosts(ctx context.Context) ([]Resource, error) {
	var hosts []Resource

	for page := 0; ; page++ {
		params := url.Values{}
		params.Set("page", strconv.Itoa(page))
		params.Set("pageSize", strconv.Itoa(c.pageSize))
		params.Set("resourceKind", HostResourceKind)
		params.Set("_no_links", "true")

		var list resourceList
		if err := c.getJSON(ctx, apiPrefix+"/resources?"+params.Encode(), &list); err != nil {
			return hosts, fmt.Errorf("%w: host list page %d: %v", ErrInventoryFetchFailed, page, err)
		}

		hosts = append(hosts, list.ResourceList...)
		log.WithFields(log.Fields{"page": page, "count": len(list.ResourceList)}).Debug("fetched host page")

		if len(list.ResourceList) == 0 || len(hosts) >= list.PageInfo.TotalCount {
			break
		}
	}

	return hosts, nil
}

// GetProperties returns the properties of one resource.
func (c *Client) GetProperties(ctx context.Context, resourceID string) ([]Property, error) {
	var props propertyList
	path := apiPrefix + "/resources/" + url.PathEscape(resourceID) + "/properties?_no_links=true"
	if err := c.getJSON(ctx, path, &props); err != nil {
		return nil, fmt.Errorf("%w: properties of %s: %v", ErrInventoryFetchFailed, resourceID, err)
	}
	return props.Property, nil
}

// CollectInventory reads the hardware identity of every host and groups the
// hosts by model label. Hosts whose properties cannot be read or whose
// record is invalid are skipped; their errors are combined into the returned
// error while the inventory holds everything that could be read.
func (c *Client) CollectInventory(ctx context.Context, hosts []Resource) (models.Inventory, error) {
	inv := models.Inventory{}
	var errs error

	for _, h := range hosts {
		if err := ctx.Err(); err != nil {
			return inv, multierr.Append(errs, err)
		}

		hostname := h.ResourceKey.Name
		if hostname == "" {
			hostname = models.Unknown
		}
		logger := log.WithField("host", hostname)
		logger.Debug("processing host")

		props, err := c.GetProperties(ctx, h.Identifier)
		if err != nil {
			logger.WithError(err).Warn("skipping host")
			errs = multierr.Append(errs, err)
			continue
		}

		record := RecordFromProperties(h.Identifier, hostname, props)
		if result := c.validator.ValidateHost(record); !result.Valid {
			sentinel := ErrInvalidHost
			if result.HasField("vendor") {
				sentinel = ErrMissingVendor
			}
			err := fmt.Errorf("%w: %s: %s", sentinel, hostname, result.Error())
			logger.WithError(err).Warn("skipping host")
			errs = multierr.Append(errs, err)
			continue
		}

		logger.WithFields(log.Fields{"model": record.Model, "cpu": record.CPU}).Debug("hardware identity")
		inv.Add(record)
	}

	return inv, errs
}

// RecordFromProperties extracts the hardware identity of a host from its
// properties. A missing model or CPU becomes Unknown; a missing vendor is
// left empty so validation rejects the record.
func RecordFromProperties(resourceID, hostname string, props []Property) models.HostRecord {
	record := models.HostRecord{ResourceID: resourceID, Hostname: hostname}

	for _, p := range props {
		switch {
		// vendorModel shares its prefix with vendor and is checked first
		case strings.Contains(p.Name, PropertyVendorModel):
			if record.Model == "" {
				record.Model = strings.TrimSpace(p.Value)
			}
		case strings.Contains(p.Name, PropertyVendor):
			if record.Vendor == "" {
				record.Vendor = strings.TrimSpace(p.Value)
			}
		case strings.Contains(p.Name, PropertyCPUModel):
			if record.CPU == "" {
				record.CPU = strings.TrimSpace(p.Value)
			}
		}
	}

	if record.Model == "" {
		record.Model = models.Unknown
	}
	if record.CPU == "" {
		record.CPU = models.Unknown
	}
	return record
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "vRealizeOpsToken "+c.token)
	}
	c.setUserAgent(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) setUserAgent(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}
