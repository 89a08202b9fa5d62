package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/tmc/langchaingo/llms"
)

// bedrockModel adapts Anthropic models on AWS Bedrock to the langchaingo
// llms.Model interface, so the rest of the package treats Bedrock like any
// other provider. Credentials come from the standard AWS chain (env,
// profile, instance role).
type bedrockModel struct {
	client  *bedrockruntime.Client
	modelID string
}

var _ llms.Model = (*bedrockModel)(nil)

func newBedrockModel(ctx context.Context, modelID string) (*bedrockModel, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &bedrockModel{
		client:  bedrockruntime.NewFromConfig(awsCfg),
		modelID: modelID,
	}, nil
}

// Anthropic messages payload for InvokeModel.
type bedrockRequest struct {
	AnthropicVersion string           `json:"anthropic_version"`
	MaxTokens        int              `json:"max_tokens"`
	System           string           `json:"system,omitempty"`
	Messages         []bedrockMessage `json:"messages"`
}

type bedrockMessage struct {
	Role    string         `json:"role"`
	Content []bedrockBlock `json:"content"`
}

type bedrockBlock struct {
	Type   string              `json:"type"`
	Text   string              `json:"text,omitempty"`
	Source *bedrockImageSource `json:"source,omitempty"`
}

type bedrockImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type bedrockResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

// GenerateContent implements llms.Model.
func (b *bedrockModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2048
	}

	req := bedrockRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        maxTokens,
	}

	for _, msg := range messages {
		if msg.Role == llms.ChatMessageTypeSystem {
			for _, part := range msg.Parts {
				if t, ok := part.(llms.TextContent); ok {
					req.System += t.Text
				}
			}
			continue
		}

		role := "user"
		if msg.Role == llms.ChatMessageTypeAI {
			role = "assistant"
		}

		var blocks []bedrockBlock
		for _, part := range msg.Parts {
			switch p := part.(type) {
			case llms.TextContent:
				blocks = append(blocks, bedrockBlock{Type: "text", Text: p.Text})
			case llms.BinaryContent:
				blocks = append(blocks, bedrockBlock{
					Type: "image",
					Source: &bedrockImageSource{
						Type:      "base64",
						MediaType: p.MIMEType,
						Data:      base64.StdEncoding.EncodeToString(p.Data),
					},
				})
			default:
				return nil, fmt.Errorf("unsupported content part %T for bedrock", part)
			}
		}
		req.Messages = append(req.Messages, bedrockMessage{Role: role, Content: blocks})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal bedrock request: %w", err)
	}

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("invoke bedrock model: %w", err)
	}

	var resp bedrockResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return nil, fmt.Errorf("decode bedrock response: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{
			{Content: text, StopReason: resp.StopReason},
		},
	}, nil
}

// Call implements the deprecated single-prompt path of llms.Model.
func (b *bedrockModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	resp, err := b.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}, options...)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}
	return resp.Choices[0].Content, nil
}
