// Package generator wraps the external AI text-generation provider behind a
// small client built on langchaingo, so the lifecycle service stays
// provider-agnostic and tests can substitute a fake.
package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

// Known provider names.
const (
	ProviderGoogleAI = "googleai"
	ProviderOpenAI   = "openai"
)

// errorSentinel prefixes provider failures that are surfaced as content
// instead of errors. A failing provider must not abort a whole-project
// generation pass, so the failure becomes visible text in the document.
const errorSentinel = "AI Error: "

// Config holds configuration for the content-generator client.
type Config struct {
	// Provider selects the backing LLM: googleai or openai.
	Provider string

	// Model is the model name, e.g. gemini-2.0-flash or gpt-4o-mini.
	Model string

	// APIKey authenticates against the provider.
	APIKey string

	// BaseURL overrides the provider endpoint (OpenAI-compatible gateways).
	BaseURL string
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if c.Provider != ProviderGoogleAI && c.Provider != ProviderOpenAI {
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("model required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("api key required")
	}
	return nil
}

// SectionInput carries everything a generation or refinement call needs.
// CurrentContent and RefinePrompt are set only for refinement.
type SectionInput struct {
	Topic          string
	DocType        string
	Heading        string
	CurrentContent string
	RefinePrompt   string
}

// ContentGenerator is the surface the lifecycle service depends on.
type ContentGenerator interface {
	// GenerateSection produces text for one section. It never fails:
	// provider errors come back as sentinel text (see errorSentinel).
	GenerateSection(ctx context.Context, in SectionInput) string

	// SuggestOutline asks for heading candidates for a new project.
	SuggestOutline(ctx context.Context, topic, docType string) []string
}

// Client implements ContentGenerator over a langchaingo model.
type Client struct {
	llm llms.Model
}

var _ ContentGenerator = (*Client)(nil)

// New builds a client for the configured provider.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating generator config: %w", err)
	}

	var llm llms.Model
	var err error
	switch cfg.Provider {
	case ProviderGoogleAI:
		llm, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
	case ProviderOpenAI:
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		llm, err = openai.New(opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", cfg.Provider, err)
	}

	return &Client{llm: llm}, nil
}

func (c *Client) GenerateSection(ctx context.Context, in SectionInput) string {
	return c.call(ctx, sectionPrompt(in))
}

func (c *Client) SuggestOutline(ctx context.Context, topic, docType string) []string {
	return parseOutline(c.call(ctx, outlinePrompt(topic, docType)))
}

func (c *Client) call(ctx context.Context, prompt string) string {
	out, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt)
	if err != nil {
		return errorSentinel + err.Error()
	}
	return strings.TrimSpace(out)
}
