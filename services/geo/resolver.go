package geo

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the free IP geolocation service used when no override
// is configured via REGION_API_URL.
const DefaultBaseURL = "https://freeipapi.com"

// UnknownRegion is the sentinel returned when a lookup fails or the service
// has no region data for the address. Callers must treat it as "filter
// unavailable", never as an error.
const UnknownRegion = "Unknown"

// Result is a region lookup outcome. Resolved is false when the lookup
// degraded to the UnknownRegion sentinel.
type Result struct {
	Region   string
	Resolved bool
}

type lookupResponse struct {
	RegionName string `json:"regionName"`
	CityName   string `json:"cityName"`
}

// Resolver resolves a coarse region name for an IP address via an external
// geolocation service. Every call is a fresh lookup; there is no retry and
// no cache.
type Resolver struct {
	client *resty.Client
}

func NewResolver(baseURL string) *Resolver {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Second)
	return &Resolver{client: client}
}

// Resolve returns the region name for ip, falling back to the city name and
// finally to UnknownRegion. Transport and parse failures are logged only.
func (res *Resolver) Resolve(ip string) Result {
	var out lookupResponse
	resp, err := res.client.R().SetResult(&out).Get("/api/json/" + ip)
	if err != nil {
		log.Printf("Region lookup failed for %s: %v", ip, err)
		return Result{Region: UnknownRegion}
	}
	if resp.IsError() {
		log.Printf("Region lookup failed for %s: status %d", ip, resp.StatusCode())
		return Result{Region: UnknownRegion}
	}

	if out.RegionName != "" {
		return Result{Region: out.RegionName, Resolved: true}
	}
	if out.CityName != "" {
		return Result{Region: out.CityName, Resolved: true}
	}
	return Result{Region: UnknownRegion}
}

// ClientIP extracts the originating address from the X-Forwarded-For header,
// taking the first entry, with a loopback fallback for direct local requests.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip := strings.TrimSpace(strings.Split(forwarded, ",")[0]); ip != "" {
			return ip
		}
	}
	return "127.0.0.1"
}
