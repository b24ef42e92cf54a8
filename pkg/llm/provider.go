package llm

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Provider names.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// DefaultTimeout bounds one generation request.
const DefaultTimeout = 180 * time.Second

// Options selects and configures a provider.
type Options struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

// NewProvider builds the provider named in opts. An empty name means OpenAI.
func NewProvider(ctx context.Context, opts Options) (provider Provider, err error) {
	if opts.APIKey == "" {
		err = errors.Errorf("no API key configured for provider %q", opts.Provider)
		return provider, err
	}

	switch opts.Provider {
	case "", ProviderOpenAI:
		provider = NewOpenAIProvider(opts.APIKey, opts.Model, opts.BaseURL, opts.Timeout)
	case ProviderAnthropic:
		provider = NewAnthropicProvider(opts.APIKey, opts.Model, opts.BaseURL, opts.Timeout)
	case ProviderGemini:
		var gemini *GeminiProvider
		gemini, err = NewGeminiProvider(ctx, opts.APIKey, opts.Model)
		if err == nil {
			provider = gemini
		}
	default:
		err = errors.Errorf("unknown provider %q", opts.Provider)
	}

	return provider, err
}
