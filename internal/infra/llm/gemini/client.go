// Package gemini adapts the Gemini streaming API to the generation domain.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/generation"
	"github.com/Captain-T2004/Ongaku-Backend/pkg/metrics"
)

// ProviderName is reported as llm_provider in API responses.
const ProviderName = "gemini"

const defaultModel = "gemini-2.0-flash"

// Config holds model tunables.
type Config struct {
	APIKey          string
	Model           string
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
}

// Client streams completions from Gemini.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient creates a Gemini client. The API key is required.
func NewClient(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	opts = append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	name := strings.TrimSpace(cfg.Model)
	if name == "" {
		name = defaultModel
	}
	model := client.GenerativeModel(name)
	model.SetTemperature(cfg.Temperature)
	model.SetTopP(cfg.TopP)
	model.SetTopK(cfg.TopK)
	model.SetMaxOutputTokens(cfg.MaxOutputTokens)

	return &Client{client: client, model: model}, nil
}

// Generate streams a completion and concatenates the text of every chunk.
func (c *Client) Generate(ctx context.Context, prompt string) (generation.Result, error) {
	return collect(c.model.GenerateContentStream(ctx, genai.Text(prompt)))
}

// Ready reports whether the client was built with credentials.
func (c *Client) Ready() bool {
	return c != nil && c.model != nil
}

// Provider names the backend.
func (c *Client) Provider() string {
	return ProviderName
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

type stream interface {
	Next() (*genai.GenerateContentResponse, error)
}

func collect(it stream) (generation.Result, error) {
	var (
		b   strings.Builder
		res generation.Result
	)
	for {
		resp, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return generation.Result{}, fmt.Errorf("gemini stream: %w", err)
		}
		res.Chunks++
		b.WriteString(chunkText(resp))
		if u := resp.UsageMetadata; u != nil {
			res.Usage = metrics.TokenUsage{
				PromptTokens:     int(u.PromptTokenCount),
				CompletionTokens: int(u.CandidatesTokenCount),
				TotalTokens:      int(u.TotalTokenCount),
			}
		}
	}
	res.Text = b.String()
	return res, nil
}

func chunkText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}
