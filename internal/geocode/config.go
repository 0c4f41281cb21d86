package geocode

import "os"

const DefaultBaseURL = "https://nominatim.openstreetmap.org"

type Config struct {
	BaseURL   string
	UserAgent string
}

func NewConfig() *Config {
	baseURL := os.Getenv("NOMINATIM_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	// Nominatim's usage policy requires an identifying User-Agent
	userAgent := os.Getenv("GEOCODER_USER_AGENT")
	if userAgent == "" {
		userAgent = "ocean-blue-backend"
	}
	return &Config{
		BaseURL:   baseURL,
		UserAgent: userAgent,
	}
}
