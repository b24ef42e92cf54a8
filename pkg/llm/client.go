// Package llm wraps the text-generation service: one instruction in, one
// LaTeX document out.
package llm

import (
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// SystemDirective is sent with every generation call.
const SystemDirective = "You output only LaTeX. No Markdown. No commentary. No code fences."

// DocumentTag is the fence tag the service may wrap its output in.
const DocumentTag = "latex"

// Provider is one text-generation backend.
type Provider interface {
	// Name identifies the backend in logs and errors.
	Name() (name string)
	// Complete sends a system directive and an input text and returns the raw reply.
	Complete(ctx context.Context, system, input string) (text string, err error)
}

// GenerationError reports a failed call to the generation service.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() (msg string) {
	msg = e.Provider + " generation failed: " + e.Err.Error()
	return msg
}

// Unwrap exposes the provider error.
func (e *GenerationError) Unwrap() (err error) {
	err = e.Err
	return err
}

// Client is the generation adapter used by the batch driver.
type Client struct {
	provider Provider
}

// NewClient wraps a provider.
func NewClient(provider Provider) (client *Client) {
	client = &Client{provider: provider}
	return client
}

// Generate sends the instruction with the fixed system directive and returns
// the document with any wrapping code fence removed. No retry is attempted.
func (c *Client) Generate(ctx context.Context, instruction string) (document string, err error) {
	var raw string
	raw, err = c.provider.Complete(ctx, SystemDirective, instruction)
	if err != nil {
		err = &GenerationError{Provider: c.provider.Name(), Err: err}
		return document, err
	}

	document = StripFences(raw, DocumentTag)
	if document == "" {
		err = &GenerationError{Provider: c.provider.Name(), Err: errors.New("empty document in response")}
		return document, err
	}

	return document, err
}

// Close releases provider resources when the provider holds any.
func (c *Client) Close() (err error) {
	if closer, ok := c.provider.(io.Closer); ok {
		err = closer.Close()
	}
	return err
}

// StripFences removes one leading ``` opener (optionally tagged, any case) and
// one trailing ``` closer, then trims. Text without fences comes back trimmed
// and otherwise unchanged.
func StripFences(raw, tag string) (cleaned string) {
	opener := regexp.MustCompile(`(?i)^` + "```" + `(?:` + regexp.QuoteMeta(tag) + `)?\s*\n`)
	closer := regexp.MustCompile(`\n` + "```" + `\s*$`)

	cleaned = strings.TrimSpace(raw)
	cleaned = opener.ReplaceAllString(cleaned, "")
	cleaned = closer.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	return cleaned
}
