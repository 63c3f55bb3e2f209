package region

import (
	"encoding/json"
	"net/http"

	"cofoundly/backend/services/geo"
)

type resolveResponse struct {
	IP     string `json:"ip"`
	Region string `json:"region"`
}

// ResolveRegionHandler geolocates the visitor's IP. Always answers 200;
// lookup failures surface only as the "Unknown" region sentinel.
// Used by: /api/resolve-region
func ResolveRegionHandler(resolver *geo.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		ip := geo.ClientIP(r)
		result := resolver.Resolve(ip)

		json.NewEncoder(w).Encode(resolveResponse{
			IP:     ip,
			Region: result.Region,
		})
	}
}
