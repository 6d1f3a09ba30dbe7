package aria

// Property name fragments carrying the hardware identity of a host.
const (
	PropertyVendor      = "hardware|vendor"
	PropertyVendorModel = "hardware|vendorModel"
	PropertyCPUModel    = "cpu|cpuModel"
)

// HostResourceKind is the resource kind of ESXi hosts.
const HostResourceKind = "hostSystem"

type tokenRequest struct {
	Username   string `json:"username"`
	AuthSource string `json:"authSource,omitempty"`
	Password   string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Resource is an Aria Operations resource summary.
type Resource struct {
	Identifier  string      `json:"identifier"`
	ResourceKey ResourceKey `json:"resourceKey"`
}

// ResourceKey names a resource.
type ResourceKey struct {
	Name string `json:"name"`
}

type pageInfo struct {
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
}

type resourceList struct {
	PageInfo     pageInfo   `json:"pageInfo"`
	ResourceList []Resource `json:"resourceList"`
}

// Property is a single resource property.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type propertyList struct {
	ResourceID string     `json:"resourceId"`
	Property   []Property `json:"property"`
}
