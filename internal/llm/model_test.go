package llm

import (
	"errors"
	"testing"

	"github.com/karibuclean/instock/internal/config"
)

func TestNewModelMissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"openai without key", config.Config{LLMProvider: config.ProviderOpenAI}},
		{"anthropic without key", config.Config{LLMProvider: config.ProviderAnthropic}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewModel(tt.cfg)
			if !errors.Is(err, ErrNoCredentials) {
				t.Errorf("NewModel() err = %v, want ErrNoCredentials", err)
			}
		})
	}
}

func TestNewModelUnknownProvider(t *testing.T) {
	_, err := NewModel(config.Config{LLMProvider: "psychic"})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fence without language", "```\n[1,2]\n```", `[1,2]`},
		{"surrounding whitespace", "  \n[1]\n ", `[1]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.in); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
