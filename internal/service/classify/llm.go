package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/mizusaki/kaiwa/backend/internal/model/analysis"
)

// LLMClient 使用大模型实现分类后端，输出受提示词约束为严格 JSON。
// It never raises the unsupported-language condition: the model handles any
// input language, so the adapter's fallback retry simply never fires.
type LLMClient struct {
	sentiment compose.Runnable[map[string]any, *schema.Message]
	language  compose.Runnable[map[string]any, *schema.Message]
}

// NewLLMClient compiles the sentiment and language chains over chatModel.
func NewLLMClient(ctx context.Context, chatModel model.ChatModel) (*LLMClient, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}

	sentiment, err := compileChain(ctx, chatModel, sentimentSystemPrompt, sentimentUserPrompt)
	if err != nil {
		return nil, fmt.Errorf("compile sentiment chain: %w", err)
	}

	language, err := compileChain(ctx, chatModel, languageSystemPrompt, languageUserPrompt)
	if err != nil {
		return nil, fmt.Errorf("compile language chain: %w", err)
	}

	return &LLMClient{sentiment: sentiment, language: language}, nil
}

func compileChain(ctx context.Context, chatModel model.ChatModel, system, user string) (compose.Runnable[map[string]any, *schema.Message], error) {
	template := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(system),
		schema.UserMessage(user),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(template)
	chain.AppendChatModel(chatModel)

	return chain.Compile(ctx)
}

type sentimentPayload struct {
	Sentiment string  `json:"sentiment"`
	Positive  float64 `json:"positive"`
	Negative  float64 `json:"negative"`
	Neutral   float64 `json:"neutral"`
	Mixed     float64 `json:"mixed"`
}

type languagePayload struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// ClassifySentiment runs the sentiment chain and parses its JSON reply.
func (c *LLMClient) ClassifySentiment(ctx context.Context, text, languageHint string) (SentimentResult, error) {
	msg, err := c.sentiment.Invoke(ctx, map[string]any{
		"text":          text,
		"language_hint": languageHint,
	})
	if err != nil {
		return SentimentResult{}, fmt.Errorf("sentiment chain invoke: %w", err)
	}

	var payload sentimentPayload
	if err := parseJSONReply(msg, &payload); err != nil {
		return SentimentResult{}, fmt.Errorf("parse sentiment reply: %w", err)
	}

	label := analysis.Sentiment(strings.ToUpper(strings.TrimSpace(payload.Sentiment)))
	return SentimentResult{
		Sentiment: label,
		Scores: analysis.Scores{
			Positive: payload.Positive,
			Negative: payload.Negative,
			Neutral:  payload.Neutral,
			Mixed:    payload.Mixed,
		},
	}, nil
}

// DetectLanguage runs the language chain and parses its JSON reply.
func (c *LLMClient) DetectLanguage(ctx context.Context, text string) (LanguageResult, error) {
	msg, err := c.language.Invoke(ctx, map[string]any{"text": text})
	if err != nil {
		return LanguageResult{}, fmt.Errorf("language chain invoke: %w", err)
	}

	var payload languagePayload
	if err := parseJSONReply(msg, &payload); err != nil {
		return LanguageResult{}, fmt.Errorf("parse language reply: %w", err)
	}

	confidence := payload.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return LanguageResult{
		Language:   strings.ToLower(strings.TrimSpace(payload.Language)),
		Confidence: confidence,
	}, nil
}

// parseJSONReply extracts the first JSON object from a model reply. Models
// occasionally wrap the object in prose despite the prompt.
func parseJSONReply(msg *schema.Message, out any) error {
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return fmt.Errorf("empty model reply")
	}

	trimmed := strings.TrimSpace(msg.Content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return fmt.Errorf("missing json object")
	}

	return json.Unmarshal([]byte(trimmed[start:end+1]), out)
}

const sentimentSystemPrompt = "你是一个情感分析引擎。阅读给定文本，判断其整体情感倾向。" +
	"只返回一个 JSON 对象，字段：sentiment (POSITIVE/NEGATIVE/NEUTRAL/MIXED 之一)、" +
	"positive、negative、neutral、mixed (各为 0~1 的小数，总和不超过 1)。不得输出多余文本。"

const sentimentUserPrompt = "语言提示：{language_hint}\n\n文本：\n{text}\n\n请返回 JSON。"

const languageSystemPrompt = "你是一个语言检测引擎。判断给定文本的主要语言。" +
	"只返回一个 JSON 对象，字段：language (ISO 639-1 代码，如 ja/en/zh)、confidence (0~1 的小数)。不得输出多余文本。"

const languageUserPrompt = "文本：\n{text}\n\n请返回 JSON。"
