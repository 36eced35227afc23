package classifier

import (
	"context"
	"testing"

	"github.com/hitoshi/kokoro/internal/model"
)

// TestEmotionScoresSchema_StrictMode は生成されたスキーマがOpenAIの
// strictモード要件（additionalProperties=false、全フィールドrequired）を
// 満たすことを検証する。
func TestEmotionScoresSchema_StrictMode(t *testing.T) {
	schema := emotionScoresSchema

	if ap, ok := schema["additionalProperties"].(bool); !ok || ap {
		t.Errorf("additionalProperties = %v, want false", schema["additionalProperties"])
	}

	properties, ok := schema["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("propertiesがありません")
	}
	// Unknown以外の全ラベルがスコアフィールドとして存在する
	for _, label := range model.LabelPriority {
		if label == model.LabelUnknown {
			continue
		}
		if _, exists := properties[string(label)]; !exists {
			t.Errorf("properties に %s がありません", label)
		}
	}

	required, ok := schema["required"].([]string)
	if !ok {
		t.Fatal("requiredがありません")
	}
	if len(required) != len(properties) {
		t.Errorf("len(required) = %d, want %d（全フィールド必須）", len(required), len(properties))
	}
}

// TestOpenAIProvider_NilClient はクライアント未設定でエラーが返ることを検証する。
func TestOpenAIProvider_NilClient(t *testing.T) {
	p := NewOpenAIProvider(nil, "gpt-4o-mini")
	if _, err := p.Scores(context.Background(), "text"); err == nil {
		t.Error("nilクライアントでエラーが返りません")
	}
}
