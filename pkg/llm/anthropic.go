package llm

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"
)

const (
	// ClaudeModel is the default Anthropic model.
	ClaudeModel = "claude-sonnet-4-20250514"
	// ClaudeMaxTokens bounds the reply length. A full one-page document fits well inside it.
	ClaudeMaxTokens = 8192
)

// AnthropicProvider talks to the Anthropic Messages API through the official SDK.
type AnthropicProvider struct {
	client anthropic.Client
	model  string
}

// NewAnthropicProvider creates an Anthropic provider. An empty baseURL selects the public API.
func NewAnthropicProvider(apiKey, model, baseURL string, timeout time.Duration) (provider *AnthropicProvider) {
	if model == "" {
		model = ClaudeModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	provider = &AnthropicProvider{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
	return provider
}

// Name returns the provider name.
func (p *AnthropicProvider) Name() (name string) {
	name = ProviderAnthropic
	return name
}

// Complete sends one Messages API request.
func (p *AnthropicProvider) Complete(ctx context.Context, system, input string) (text string, err error) {
	var msg *anthropic.Message
	msg, err = p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: ClaudeMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(input)),
		},
	})
	if err != nil {
		err = errors.Wrap(err, "messages request failed")
		return text, err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text = sb.String()
	if text == "" {
		err = errors.New("no text content in response")
		return text, err
	}

	return text, err
}
