package chatgpt

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/generation"
	"github.com/Captain-T2004/Ongaku-Backend/pkg/metrics"
)

// ProviderName is reported as llm_provider in API responses.
const ProviderName = "chatgpt"

// GeneratorConfig holds model tunables.
type GeneratorConfig struct {
	Model           string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
}

// StreamClient opens chat completion streams.
type StreamClient interface {
	CreateChatCompletionStream(ctx context.Context, req ChatCompletionRequest) (Stream, error)
}

// Generator adapts a ChatGPT stream to the generation domain.
type Generator struct {
	cfg    GeneratorConfig
	client StreamClient
}

// NewGenerator wraps client.
func NewGenerator(cfg GeneratorConfig, client StreamClient) *Generator {
	return &Generator{cfg: cfg, client: client}
}

// Generate sends prompt as a single user message and concatenates the streamed deltas.
func (g *Generator) Generate(ctx context.Context, prompt string) (generation.Result, error) {
	stream, err := g.client.CreateChatCompletionStream(ctx, ChatCompletionRequest{
		Model:         g.cfg.Model,
		Messages:      []Message{{Role: "user", Content: prompt}},
		Temperature:   g.cfg.Temperature,
		TopP:          g.cfg.TopP,
		MaxTokens:     g.cfg.MaxOutputTokens,
		StreamOptions: &StreamOptions{IncludeUsage: true},
	})
	if err != nil {
		return generation.Result{}, err
	}
	defer stream.Close()

	var (
		b   strings.Builder
		res generation.Result
	)
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return generation.Result{}, err
		}
		res.Chunks++
		for _, choice := range chunk.Choices {
			b.WriteString(choice.Delta.Content)
		}
		if chunk.Usage != nil {
			res.Usage = metrics.TokenUsage{
				PromptTokens:     chunk.Usage.PromptTokens,
				CompletionTokens: chunk.Usage.CompletionTokens,
				TotalTokens:      chunk.Usage.TotalTokens,
			}
		}
	}
	res.Text = b.String()
	return res, nil
}

// Ready reports whether a client is attached.
func (g *Generator) Ready() bool {
	return g != nil && g.client != nil
}

// Provider names the backend.
func (g *Generator) Provider() string {
	return ProviderName
}
