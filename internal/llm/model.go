// Package llm provides the external generative-AI collaborators: a
// provider-switched model plus the Forecaster and Classifier built on it.
package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/karibuclean/instock/internal/config"
)

// Default model names per provider, used when the config leaves the model
// unset.
const (
	defaultOllamaModel    = "llama3.1"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-3-5-sonnet-20240620"
)

// Model wraps a langchaingo LLM for text and vision generation.
type Model struct {
	llm       llms.Model
	modelName string
}

// NewModel creates an LLM model based on configuration. A provider that
// needs an API key and has none returns ErrNoCredentials, so both external
// call sites surface the missing credential identically.
func NewModel(cfg config.Config) (*Model, error) {
	var model llms.Model
	var err error
	name := cfg.LLMModel

	switch cfg.LLMProvider {
	case config.ProviderOllama:
		if name == "" {
			name = defaultOllamaModel
		}
		model, err = ollama.New(
			ollama.WithModel(name),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai: %w", ErrNoCredentials)
		}
		if name == "" {
			name = defaultOpenAIModel
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(name),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("anthropic: %w", ErrNoCredentials)
		}
		if name == "" {
			name = defaultAnthropicModel
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(name),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	case config.ProviderBedrock:
		name = cfg.BedrockModelID
		model, err = newBedrockModel(context.Background(), name)
		if err != nil {
			return nil, fmt.Errorf("create bedrock model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}

	return &Model{
		llm:       model,
		modelName: name,
	}, nil
}

// NewModelFromLLM wraps an existing langchaingo model. Used by tests to
// substitute a stub.
func NewModelFromLLM(m llms.Model, name string) *Model {
	return &Model{llm: m, modelName: name}
}

// GenerateWithSystem generates text with a system prompt.
func (m *Model) GenerateWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	}

	response, err := m.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generate with system: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return response.Choices[0].Content, nil
}

// GenerateVision sends one JPEG image together with an instruction prompt.
func (m *Model) GenerateVision(ctx context.Context, prompt string, imageJPEG []byte) (string, error) {
	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart("image/jpeg", imageJPEG),
				llms.TextPart(prompt),
			},
		},
	}

	response, err := m.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generate vision: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return response.Choices[0].Content, nil
}

// Model returns the LLM model name.
func (m *Model) Model() string {
	return m.modelName
}
