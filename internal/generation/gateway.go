// Package generation turns business profiles into website copy through a
// text generation provider, with deterministic local fallbacks.
package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/website"
)

const (
	TextCodeGenerationFailed = "GENERATION_FAILED"

	defaultTemperature = 0.7
)

var ErrUnknownField = errors.New("generation: field cannot be regenerated")

// GatewayOption configures the gateway.
type GatewayOption func(*Gateway)

// WithLogger sets the gateway logger.
func WithLogger(logger interfaces.Logger) GatewayOption {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(value float64) GatewayOption {
	return func(g *Gateway) {
		if value >= 0 {
			g.temperature = value
		}
	}
}

// Gateway is the single entry point for copy generation.
type Gateway struct {
	provider    Provider
	logger      interfaces.Logger
	temperature float64
}

// NewGateway constructs a gateway. A nil provider is allowed: raw generation
// then fails and every fallback path is taken.
func NewGateway(provider Provider, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		provider:    provider,
		logger:      logging.NoOp(),
		temperature: defaultTemperature,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) providerName() string {
	if g.provider == nil {
		return "none"
	}
	return g.provider.Name()
}

func (g *Gateway) complete(ctx context.Context, prompt string) (map[string]any, string, error) {
	if g.provider == nil {
		return nil, "", ErrProviderRequired
	}
	raw, err := g.provider.Complete(ctx, Request{
		System:      systemInstruction,
		Prompt:      prompt,
		Temperature: g.temperature,
	})
	if err != nil {
		return nil, "", err
	}
	cleaned := stripFences(raw)
	var payload map[string]any
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil || payload == nil {
		return nil, cleaned, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return payload, cleaned, nil
}

// Generate sends a caller supplied prompt and returns the parsed JSON object.
// Failures are returned to the caller.
func (g *Gateway) Generate(ctx context.Context, prompt string, businessInfo map[string]any) (map[string]any, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, goerrors.New("prompt is required", goerrors.CategoryBadInput).WithTextCode("PROMPT_REQUIRED")
	}
	payload, _, err := g.complete(ctx, customPrompt(prompt, businessInfo))
	if err != nil {
		g.logger.Error("generation.generate.failed", "provider", g.providerName(), "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "content generation failed").
			WithTextCode(TextCodeGenerationFailed)
	}
	return payload, nil
}

// GenerateWebsiteContent produces the copy for a new website. It never fails:
// upstream errors and malformed output yield FallbackCopy. The boolean reports
// whether the fallback was used.
func (g *Gateway) GenerateWebsiteContent(ctx context.Context, profile website.BusinessProfile) (WebsiteCopy, bool) {
	_, raw, err := g.complete(ctx, websitePrompt(profile))
	if err == nil {
		generated, parseErr := ParseWebsiteCopy(raw)
		if parseErr == nil {
			return generated, false
		}
		err = parseErr
	}
	g.logger.Warn("generation.website.fallback", "provider", g.providerName(), "business", profile.Name, "error", err)
	return FallbackCopy(profile), true
}

// RegenerateField rewrites a banner tagline, headline or subtext. Provider
// failures yield the canned FallbackField sentence.
func (g *Gateway) RegenerateField(ctx context.Context, field string, profile website.BusinessProfile) (string, error) {
	if !IsRegenerableField(field) {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	payload, _, err := g.complete(ctx, fieldPrompt(field, profile))
	if err == nil {
		if text, ok := payload["text"].(string); ok && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text), nil
		}
		err = ErrMalformedJSON
	}
	g.logger.Warn("generation.field.fallback", "provider", g.providerName(), "field", field, "error", err)
	return FallbackField(field, profile), nil
}

// RegenerateBlockContent rewrites the text of a block. Only fields the block
// variant renders are applied. Failures are returned so the caller can alert.
func (g *Gateway) RegenerateBlockContent(ctx context.Context, block website.ContentBlock, profile website.BusinessProfile) (website.Content, error) {
	payload, _, err := g.complete(ctx, blockPrompt(block, profile))
	if err != nil {
		g.logger.Error("generation.block.failed", "provider", g.providerName(), "block", block.ID, "error", err)
		return block.Content, goerrors.Wrap(err, goerrors.CategoryExternal, "content regeneration failed").
			WithTextCode(TextCodeGenerationFailed)
	}

	content := block.Content.Clone()
	applied := 0
	for field, value := range payload {
		if !website.RendersField(block.Type, field) || isImageField(field) {
			continue
		}
		next, err := content.With(field, value)
		if err != nil {
			g.logger.Debug("generation.block.skip_field", "field", field, "error", err)
			continue
		}
		content = next
		applied++
	}
	if applied == 0 {
		return block.Content, goerrors.Wrap(ErrMalformedJSON, goerrors.CategoryExternal, "content regeneration returned no usable fields").
			WithTextCode(TextCodeGenerationFailed)
	}
	for i := range content.Services {
		if i < len(block.Content.Services) && content.Services[i].Image == "" {
			content.Services[i].Image = block.Content.Services[i].Image
		}
	}
	for i := range content.Testimonials {
		if i < len(block.Content.Testimonials) && content.Testimonials[i].Avatar == "" {
			content.Testimonials[i].Avatar = block.Content.Testimonials[i].Avatar
		}
	}
	return content, nil
}

func isImageField(field string) bool {
	switch field {
	case "image", "images", "backgroundImage", "slides":
		return true
	}
	return false
}
