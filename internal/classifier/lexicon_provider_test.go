package classifier

import (
	"context"
	"testing"

	"github.com/hitoshi/kokoro/internal/model"
)

// scoreOf はスコアリストから指定ラベルのスコアを取り出す。
func scoreOf(t *testing.T, scores []model.LabelScore, label model.EmotionLabel) float64 {
	t.Helper()
	for _, s := range scores {
		if s.Label == label {
			return s.Score
		}
	}
	t.Fatalf("label %s not found in scores", label)
	return 0
}

// TestLexiconProvider_CoversFullVocabulary は全ラベルのスコアが返ることを検証する。
func TestLexiconProvider_CoversFullVocabulary(t *testing.T) {
	p := NewLexiconProvider()

	scores, err := p.Scores(context.Background(), "I am happy today")
	if err != nil {
		t.Fatalf("Scores returned error: %v", err)
	}
	if len(scores) != len(model.LabelPriority) {
		t.Errorf("len(scores) = %d, want %d", len(scores), len(model.LabelPriority))
	}
}

// TestLexiconProvider_KeywordMatch はキーワード一致でスコアが付くことを検証する。
func TestLexiconProvider_KeywordMatch(t *testing.T) {
	p := NewLexiconProvider()

	scores, err := p.Scores(context.Background(), "今日はとても嬉しい。最高の一日だった")
	if err != nil {
		t.Fatalf("Scores returned error: %v", err)
	}

	joy := scoreOf(t, scores, model.LabelJoy)
	anger := scoreOf(t, scores, model.LabelAnger)
	if joy <= anger {
		t.Errorf("joy(%v) <= anger(%v): 喜び語を含むテキストでjoyが優位になるべき", joy, anger)
	}
	if scoreOf(t, scores, model.LabelUnknown) != 0 {
		t.Errorf("感情語があるのにUnknownが正のスコアを持っています")
	}
}

// TestLexiconProvider_NoSignalFavorsUnknown は感情語を含まないテキストで
// Unknownが最高スコアになることを検証する。
func TestLexiconProvider_NoSignalFavorsUnknown(t *testing.T) {
	p := NewLexiconProvider()

	scores, err := p.Scores(context.Background(), "The meeting is at 3pm in room 204.")
	if err != nil {
		t.Fatalf("Scores returned error: %v", err)
	}

	result, ok := selectTop(scores)
	if !ok {
		t.Fatal("selectTop returned !ok")
	}
	if result.Label != model.LabelUnknown {
		t.Errorf("Label = %s, want unknown", result.Label)
	}
	if result.Confidence != noSignalScore {
		t.Errorf("Confidence = %v, want %v", result.Confidence, noSignalScore)
	}
}

// TestLexiconProvider_Deterministic は同一入力で常に同一の結果になることを検証する。
func TestLexiconProvider_Deterministic(t *testing.T) {
	p := NewLexiconProvider()
	text := "悲しいし不安だけど、少し嬉しいこともあった"

	first, err := p.Scores(context.Background(), text)
	if err != nil {
		t.Fatalf("Scores returned error: %v", err)
	}

	for i := 0; i < 20; i++ {
		got, err := p.Scores(context.Background(), text)
		if err != nil {
			t.Fatalf("Scores returned error: %v", err)
		}
		for j := range first {
			if got[j] != first[j] {
				t.Fatalf("iteration %d: scores[%d] = %+v, want %+v", i, j, got[j], first[j])
			}
		}
	}
}
