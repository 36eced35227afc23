package reply

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/hitoshi/kokoro/internal/model"
)

const replyInstructions = `あなたは感情日記アプリの優しい聞き役です。
ユーザーが今日の気持ちを記録しました。1〜2文の短い共感リプライを日本語で返してください。
アドバイスの押し付けや医療的な助言はしないでください。`

// OpenAIReplier はOpenAI Responses APIで共感リプライを生成する。
type OpenAIReplier struct {
	client *openai.Client
	model  string
}

// NewOpenAIReplier はOpenAIReplierの新しいインスタンスを生成する。
func NewOpenAIReplier(apiKey, model string) *OpenAIReplier {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIReplier{
		client: &client,
		model:  model,
	}
}

// Reply はユーザーのテキストと判定ラベルからリプライを生成する。
// リトライはしない。失敗時は呼び出し元が定型文にフォールバックする。
func (r *OpenAIReplier) Reply(ctx context.Context, text string, label model.EmotionLabel) (string, error) {
	input := fmt.Sprintf("今日の気持ち: %s\n判定された感情: %s", text, label)

	resp, err := r.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           r.model,
		MaxOutputTokens: openai.Int(120),
		Instructions:    openai.String(replyInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(input, responses.EasyInputMessageRoleUser),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai reply failed: %w", err)
	}

	out := strings.TrimSpace(resp.OutputText())
	if out == "" {
		return "", fmt.Errorf("openai returned empty reply")
	}
	return out, nil
}
