package geocode

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type Client struct {
	config     *Config
	httpClient *http.Client
}

type Place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func NewClient(config *Config) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) get(endpoint string, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("format", "json")

	fullURL := fmt.Sprintf("%s%s?%s", c.config.BaseURL, endpoint, params.Encode())
	log.Printf("geocoder request: %s", fullURL)

	req, err := http.NewRequest(http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("HTTP request failed: %v", err)
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("geocoder error: status %d, body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("geocoder error: status %d", resp.StatusCode)
	}

	return body, nil
}

// Search performs a forward-geocoding lookup for a free-text address.
func (c *Client) Search(address string) ([]Place, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("limit", "1")

	body, err := c.get("/search", params)
	if err != nil {
		return nil, err
	}

	var places []Place
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	return places, nil
}

// Locate resolves an address to coordinates using the best search match.
func (c *Client) Locate(address string) (float64, float64, error) {
	places, err := c.Search(address)
	if err != nil {
		return 0, 0, fmt.Errorf("search: %w", err)
	}
	if len(places) == 0 {
		return 0, 0, fmt.Errorf("no results found for: %s", address)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse lat: %w", err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse lon: %w", err)
	}

	return lat, lon, nil
}
