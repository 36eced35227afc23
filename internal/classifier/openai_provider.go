package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"

	"github.com/hitoshi/kokoro/internal/model"
)

// openaiInstructions はスコアリング用のシステム指示。
// 全ラベルのスコアを独立した確信度として返させる（分布の正規化は要求しない）。
const openaiInstructions = `You are an emotion scoring service for a journaling app.
Given a user's free text, score how strongly each emotion is expressed.
Each score is an independent confidence in [0,1]; scores need not sum to 1.
Score every field. Return JSON only.`

// emotionScoresResponse は構造化出力のスキーマ。
// ラベル語彙の全カテゴリを必須フィールドとして持つ。
type emotionScoresResponse struct {
	Joy      float64 `json:"joy" jsonschema:"minimum=0,maximum=1"`
	Love     float64 `json:"love" jsonschema:"minimum=0,maximum=1"`
	Surprise float64 `json:"surprise" jsonschema:"minimum=0,maximum=1"`
	Anger    float64 `json:"anger" jsonschema:"minimum=0,maximum=1"`
	Sadness  float64 `json:"sadness" jsonschema:"minimum=0,maximum=1"`
	Fear     float64 `json:"fear" jsonschema:"minimum=0,maximum=1"`
}

var emotionScoresSchema = generateSchema[emotionScoresResponse]()

// OpenAIProvider はOpenAIの構造化出力で感情スコアを取得するScoreProvider実装。
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider はOpenAIProviderの新しいインスタンスを生成する。
func NewOpenAIProvider(client *openai.Client, modelName string) *OpenAIProvider {
	return &OpenAIProvider{
		client: client,
		model:  modelName,
	}
}

// Scores はOpenAIに全ラベルのスコアリングを依頼する。
// リトライは行わない（1回の送信につき1回の分類試行）。
// 失敗はエラーとして返し、フォールバック判断はAdapterが行う。
func (p *OpenAIProvider) Scores(ctx context.Context, text string) ([]model.LabelScore, error) {
	if p.client == nil {
		return nil, errors.New("OpenAIProvider: client is nil")
	}
	if p.model == "" {
		return nil, errors.New("OpenAIProvider: model is empty")
	}

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "EmotionScores",
			Schema:      emotionScoresSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Per-emotion confidence scores"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           p.model,
		MaxOutputTokens: openai.Int(200),
		Instructions:    openai.String(openaiInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(text, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := p.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("OpenAI APIの呼び出しに失敗しました: %w", err)
	}

	output := strings.TrimSpace(resp.OutputText())
	if output == "" {
		return nil, errors.New("OpenAI APIが空のレスポンスを返しました")
	}

	var out emotionScoresResponse
	if err := json.Unmarshal([]byte(output), &out); err != nil {
		return nil, fmt.Errorf("スコアJSONのパースに失敗しました: %w", err)
	}

	return []model.LabelScore{
		{Label: model.LabelJoy, Score: out.Joy},
		{Label: model.LabelLove, Score: out.Love},
		{Label: model.LabelSurprise, Score: out.Surprise},
		{Label: model.LabelAnger, Score: out.Anger},
		{Label: model.LabelSadness, Score: out.Sadness},
		{Label: model.LabelFear, Score: out.Fear},
	}, nil
}

// generateSchema は型TのOpenAI互換JSONスキーマを生成する。
// strictモードはadditionalProperties=falseと全プロパティのrequired指定を要求する。
func generateSchema[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)

	b, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}

	m["additionalProperties"] = false
	if properties, ok := m["properties"].(map[string]interface{}); ok {
		required := make([]string, 0, len(properties))
		for name := range properties {
			required = append(required, name)
		}
		m["required"] = required
	}

	return m
}
