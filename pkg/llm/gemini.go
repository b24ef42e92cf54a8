package llm

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// GeminiModel is the default Gemini model.
const GeminiModel = "gemini-2.5-pro"

// GeminiProvider talks to the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini provider. The caller must Close it.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (provider *GeminiProvider, err error) {
	if model == "" {
		model = GeminiModel
	}

	var client *genai.Client
	client, err = genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		err = errors.Wrap(err, "failed to create gemini client")
		return provider, err
	}

	provider = &GeminiProvider{
		client: client,
		model:  model,
	}
	return provider, err
}

// Name returns the provider name.
func (p *GeminiProvider) Name() (name string) {
	name = ProviderGemini
	return name
}

// Complete sends one GenerateContent request.
func (p *GeminiProvider) Complete(ctx context.Context, system, input string) (text string, err error) {
	model := p.client.GenerativeModel(p.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	var resp *genai.GenerateContentResponse
	resp, err = model.GenerateContent(ctx, genai.Text(input))
	if err != nil {
		err = errors.Wrap(err, "generate content failed")
		return text, err
	}

	text = candidateText(resp)
	if text == "" {
		err = errors.New("no text in gemini response")
		return text, err
	}

	return text, err
}

// Close releases the underlying client.
func (p *GeminiProvider) Close() (err error) {
	err = p.client.Close()
	return err
}

// candidateText joins the text parts of the first candidate.
func candidateText(resp *genai.GenerateContentResponse) (text string) {
	if resp == nil || len(resp.Candidates) == 0 {
		return text
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return text
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	text = sb.String()
	return text
}
