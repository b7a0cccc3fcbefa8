package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dwikikusuma/storefront/internal/delivery/domain"
	"github.com/sony/gobreaker/v2"
)

type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// HTTPGeocoder resolves addresses against a Nominatim-compatible search
// endpoint. Calls go through a circuit breaker so a flapping provider
// fails fast instead of stalling checkouts.
type HTTPGeocoder struct {
	cfg     Config
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[domain.Coordinates]
}

func NewHTTPGeocoder(cfg Config) *HTTPGeocoder {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &HTTPGeocoder{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		breaker: gobreaker.NewCircuitBreaker[domain.Coordinates](gobreaker.Settings{
			Name:    "geocoder",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func (g *HTTPGeocoder) Geocode(ctx context.Context, addr domain.Address) (domain.Coordinates, error) {
	return g.breaker.Execute(func() (domain.Coordinates, error) {
		return g.lookup(ctx, addr)
	})
}

func (g *HTTPGeocoder) lookup(ctx context.Context, addr domain.Address) (domain.Coordinates, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("street", addr.Street)
	q.Set("city", addr.City)
	q.Set("state", addr.State)
	q.Set("postalcode", addr.ZipCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.BaseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return domain.Coordinates{}, err
	}
	req.Header.Set("User-Agent", g.cfg.UserAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.Coordinates{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinates{}, err
	}
	if len(results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no match for address")
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("bad latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("bad longitude %q: %w", results[0].Lon, err)
	}

	return domain.Coordinates{Latitude: lat, Longitude: lon}, nil
}
