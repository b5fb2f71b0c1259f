package imagery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

const (
	pexelsDefaultURL = "https://api.pexels.com/v1/search"

	TextCodeImageUpstream = "IMAGE_UPSTREAM_FAILED"
	TextCodeImageMissing  = "IMAGE_NOT_FOUND"
)

var (
	ErrQueryRequired  = errors.New("imagery: query required")
	ErrNoResults      = errors.New("imagery: no images found")
	ErrAPIKeyRequired = errors.New("imagery: PEXELS_API_KEY not configured")
)

// Photo is the image selected for a query.
type Photo struct {
	ImageURL     string `json:"imageUrl"`
	Photographer string `json:"photographer"`
	Alt          string `json:"alt"`
}

// Fetcher resolves a search query to a single photo.
type Fetcher interface {
	Fetch(ctx context.Context, query string) (Photo, error)
}

// PexelsOption configures the Pexels client.
type PexelsOption func(*PexelsClient)

// WithBaseURL points the client at a different search endpoint.
func WithBaseURL(base string) PexelsOption {
	return func(c *PexelsClient) {
		if strings.TrimSpace(base) != "" {
			c.baseURL = base
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) PexelsOption {
	return func(c *PexelsClient) {
		if client != nil {
			c.client = client
		}
	}
}

// WithLogger sets the logger used for upstream failures.
func WithLogger(logger interfaces.Logger) PexelsOption {
	return func(c *PexelsClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// PexelsClient implements Fetcher against the Pexels search API.
type PexelsClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  interfaces.Logger
}

var _ Fetcher = (*PexelsClient)(nil)

// NewPexelsClient builds a client. An empty key is accepted; every fetch then
// fails with ErrAPIKeyRequired.
func NewPexelsClient(apiKey string, opts ...PexelsOption) *PexelsClient {
	c := &PexelsClient{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: pexelsDefaultURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type pexelsResponse struct {
	Photos []struct {
		Alt          string `json:"alt"`
		Photographer string `json:"photographer"`
		Src          struct {
			Original string `json:"original"`
			Large2x  string `json:"large2x"`
			Large    string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

// Fetch returns the first landscape photo matching query.
func (c *PexelsClient) Fetch(ctx context.Context, query string) (Photo, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Photo{}, ErrQueryRequired
	}
	if c.apiKey == "" {
		return Photo{}, ErrAPIKeyRequired
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "1")
	params.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Photo{}, fmt.Errorf("imagery: build request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("imagery.fetch.network_failed", "query", query, "error", err)
		return Photo{}, goerrors.Wrap(err, goerrors.CategoryExternal, "image search unreachable").
			WithTextCode(TextCodeImageUpstream)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Photo{}, fmt.Errorf("imagery: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("imagery.fetch.status", "query", query, "status", resp.StatusCode)
		return Photo{}, goerrors.New(fmt.Sprintf("image search returned status %d", resp.StatusCode), goerrors.CategoryExternal).
			WithTextCode(TextCodeImageUpstream)
	}

	var payload pexelsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return Photo{}, goerrors.Wrap(err, goerrors.CategoryExternal, "image search returned malformed JSON").
			WithTextCode(TextCodeImageUpstream)
	}
	if len(payload.Photos) == 0 {
		return Photo{}, ErrNoResults
	}

	first := payload.Photos[0]
	imageURL := first.Src.Large2x
	if imageURL == "" {
		imageURL = first.Src.Large
	}
	if imageURL == "" {
		imageURL = first.Src.Original
	}
	alt := first.Alt
	if alt == "" {
		alt = query
	}
	return Photo{ImageURL: imageURL, Photographer: first.Photographer, Alt: alt}, nil
}

// Service combines query building with photo lookup.
type Service struct {
	builder *Builder
	fetcher Fetcher
}

// NewService wires a builder and fetcher.
func NewService(builder *Builder, fetcher Fetcher) *Service {
	if builder == nil {
		builder = NewBuilder(nil)
	}
	return &Service{builder: builder, fetcher: fetcher}
}

// Fetch looks up a raw query.
func (s *Service) Fetch(ctx context.Context, query string) (Photo, error) {
	if s.fetcher == nil {
		return Photo{}, ErrAPIKeyRequired
	}
	return s.fetcher.Fetch(ctx, query)
}

// ImageFor builds a query for the business and role, then returns the image URL.
func (s *Service) ImageFor(ctx context.Context, businessType string, role Role, location string) (string, error) {
	photo, err := s.Fetch(ctx, s.builder.BuildQuery(businessType, role, location))
	if err != nil {
		return "", err
	}
	return photo.ImageURL, nil
}

// Query exposes the underlying query builder.
func (s *Service) Query(businessType string, role Role, location string) string {
	return s.builder.BuildQuery(businessType, role, location)
}
