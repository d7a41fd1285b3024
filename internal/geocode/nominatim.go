package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// NominatimClient reverse-geocodes through the Nominatim API. Requests are
// rate limited to 1/second per the usage policy.
type NominatimClient struct {
	baseURL     string
	userAgent   string
	httpClient  *http.Client
	lastRequest time.Time
	rateMu      sync.Mutex
}

// NewNominatimClient creates a Nominatim reverse-geocoding client
func NewNominatimClient(userAgent string, timeout time.Duration) *NominatimClient {
	return &NominatimClient{
		baseURL:   "https://nominatim.openstreetmap.org",
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// nominatimResponse is the subset of the reverse API response we use
type nominatimResponse struct {
	Name        string           `json:"name"`
	DisplayName string           `json:"display_name"`
	Address     nominatimAddress `json:"address"`
}

type nominatimAddress struct {
	Amenity       string `json:"amenity,omitempty"`
	Leisure       string `json:"leisure,omitempty"`
	Tourism       string `json:"tourism,omitempty"`
	Building      string `json:"building,omitempty"`
	HouseNumber   string `json:"house_number,omitempty"`
	Road          string `json:"road,omitempty"`
	Neighbourhood string `json:"neighbourhood,omitempty"`
	Suburb        string `json:"suburb,omitempty"`
	City          string `json:"city,omitempty"`
	Town          string `json:"town,omitempty"`
	Village       string `json:"village,omitempty"`
}

// Reverse looks up the place name for a coordinate
func (c *NominatimClient) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	// Rate limit: 1 request per second
	c.rateMu.Lock()
	if elapsed := time.Since(c.lastRequest); elapsed < time.Second {
		time.Sleep(time.Second - elapsed)
	}
	c.lastRequest = time.Now()
	c.rateMu.Unlock()

	reqURL := fmt.Sprintf("%s/reverse?lat=%.6f&lon=%.6f&format=jsonv2&zoom=16&addressdetails=1",
		c.baseURL, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}
	// Required by Nominatim ToS
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("nominatim request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var nr nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return "", fmt.Errorf("failed to parse nominatim response: %w", err)
	}

	name := extractPlaceName(nr)
	if name == "" {
		return "", fmt.Errorf("no usable place name for (%.6f, %.6f)", lat, lon)
	}
	return name, nil
}

// extractPlaceName gets the most useful place name from a response,
// preferring named places over street addresses over settlements
func extractPlaceName(nr nominatimResponse) string {
	if nr.Name != "" {
		return nr.Name
	}

	addr := nr.Address
	if addr.Amenity != "" {
		return addr.Amenity
	}
	if addr.Leisure != "" {
		return addr.Leisure
	}
	if addr.Tourism != "" {
		return addr.Tourism
	}
	if addr.Building != "" && addr.Building != "yes" {
		return addr.Building
	}

	if addr.Road != "" {
		if addr.HouseNumber != "" {
			return addr.HouseNumber + " " + addr.Road
		}
		return addr.Road
	}

	if addr.Neighbourhood != "" {
		return addr.Neighbourhood
	}
	if addr.Suburb != "" {
		return addr.Suburb
	}
	if addr.City != "" {
		return addr.City
	}
	if addr.Town != "" {
		return addr.Town
	}
	return addr.Village
}
