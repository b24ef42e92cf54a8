package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// OpenAIBaseURL is the OpenAI API base URL.
	OpenAIBaseURL = "https://api.openai.com"
	// OpenAIResponsesPath is the Responses API path.
	OpenAIResponsesPath = "/v1/responses"
	// OpenAIModel is the default OpenAI model.
	OpenAIModel = "gpt-5.2"
)

// OpenAIProvider talks to the OpenAI Responses API.
type OpenAIProvider struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewOpenAIProvider creates an OpenAI provider. An empty baseURL selects the public API.
func NewOpenAIProvider(apiKey, model, baseURL string, timeout time.Duration) (provider *OpenAIProvider) {
	if model == "" {
		model = OpenAIModel
	}
	if baseURL == "" {
		baseURL = OpenAIBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	provider = &OpenAIProvider{
		apiKey:   apiKey,
		model:    model,
		endpoint: strings.TrimSuffix(baseURL, "/") + OpenAIResponsesPath,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	return provider
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() (name string) {
	name = ProviderOpenAI
	return name
}

// Complete sends one Responses API request.
func (p *OpenAIProvider) Complete(ctx context.Context, system, input string) (text string, err error) {
	req := openAIRequest{
		Model:        p.model,
		Instructions: system,
		Input:        input,
	}

	var reqBody []byte
	reqBody, err = json.Marshal(req)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return text, err
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return text, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	var httpResp *http.Response
	httpResp, err = p.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return text, err
	}
	defer httpResp.Body.Close()

	var respBody []byte
	respBody, err = io.ReadAll(httpResp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return text, err
	}

	if httpResp.StatusCode != http.StatusOK {
		err = errors.Errorf("API returned status %d: %s", httpResp.StatusCode, string(respBody))
		return text, err
	}

	var resp openAIResponse
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		err = errors.Wrap(err, "failed to parse API response")
		return text, err
	}

	if resp.Error != nil {
		err = errors.Errorf("API error %s: %s", resp.Error.Code, resp.Error.Message)
		return text, err
	}

	text = outputText(resp)
	if text == "" {
		err = errors.New("no output text in response")
		return text, err
	}

	return text, err
}

// outputText concatenates every output_text part of assistant messages.
func outputText(resp openAIResponse) (text string) {
	var sb strings.Builder
	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" {
				sb.WriteString(part.Text)
			}
		}
	}
	text = sb.String()
	return text
}
