package imagesource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultUnsplashEndpoint = "https://api.unsplash.com"
	unsplashMaxPerPage      = 30
)

var errMissingResults = errors.New("unsplash response has no results field")

// UnsplashOptions configures NewUnsplashSearcher.
// RatePerHour bounds outgoing searches; 0 disables limiting.
type UnsplashOptions struct {
	Endpoint    string
	AccessKey   string
	RatePerHour int
	HTTPClient  *http.Client
}

// UnsplashSearcher queries the Unsplash photo search API.
type UnsplashSearcher struct {
	endpoint   string
	accessKey  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewUnsplashSearcher(opts UnsplashOptions) *UnsplashSearcher {
	endpoint := strings.TrimSuffix(opts.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultUnsplashEndpoint
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	s := &UnsplashSearcher{
		endpoint:   endpoint,
		accessKey:  strings.TrimSpace(opts.AccessKey),
		httpClient: hc,
	}
	if opts.RatePerHour > 0 {
		burst := opts.RatePerHour / 10
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Every(time.Hour/time.Duration(opts.RatePerHour)), burst)
	}
	return s
}

type unsplashResponse struct {
	Results *[]struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

func (s *UnsplashSearcher) Search(ctx context.Context, query string, count int) ([]string, error) {
	if s.accessKey == "" {
		return nil, ErrNoAccessKey
	}
	if count <= 0 {
		count = DefaultCount
	}
	if count > unsplashMaxPerPage {
		count = unsplashMaxPerPage
	}
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("image search rate limit: %w", err)
		}
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", strconv.Itoa(count))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"/search/photos?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build unsplash request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+s.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unsplash request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unsplash status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var data unsplashResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode unsplash response: %w", err)
	}
	if data.Results == nil {
		return nil, errMissingResults
	}

	urls := make([]string, 0, len(*data.Results))
	for _, photo := range *data.Results {
		if photo.URLs.Regular != "" {
			urls = append(urls, photo.URLs.Regular)
		}
	}
	return urls, nil
}
