package llm

// openAIRequest is the Responses API request body.
type openAIRequest struct {
	Model        string `json:"model"`
	Instructions string `json:"instructions,omitempty"`
	Input        string `json:"input"`
}

// openAIResponse is the subset of the Responses API reply this client reads.
type openAIResponse struct {
	ID     string         `json:"id"`
	Status string         `json:"status"`
	Output []openAIOutput `json:"output"`
	Error  *openAIError   `json:"error,omitempty"`
	Usage  Usage          `json:"usage"`
}

type openAIOutput struct {
	Type    string          `json:"type"`
	Role    string          `json:"role,omitempty"`
	Content []openAIContent `json:"content,omitempty"`
}

type openAIContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type openAIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// Usage represents token usage information.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}
