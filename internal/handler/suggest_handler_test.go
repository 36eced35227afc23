package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/kokoro/internal/model"
	"github.com/hitoshi/kokoro/internal/suggest"
)

// mockSuggestService はSuggestServiceInterfaceのモック実装。
type mockSuggestService struct {
	forFn func(ctx context.Context, label model.EmotionLabel) []suggest.Suggestion
}

func (m *mockSuggestService) For(ctx context.Context, label model.EmotionLabel) []suggest.Suggestion {
	return m.forFn(ctx, label)
}

// TestSuggestHandler_Get は記録のある日のラベルでサジェストされることを検証する。
func TestSuggestHandler_Get(t *testing.T) {
	history := &mockHistoryService{
		getFn: func(ctx context.Context, username string, date model.Date) (*model.DayRecord, error) {
			return &model.DayRecord{Date: date, Label: model.LabelSadness}, nil
		},
	}
	service := &mockSuggestService{
		forFn: func(ctx context.Context, label model.EmotionLabel) []suggest.Suggestion {
			if label != model.LabelSadness {
				t.Errorf("label = %s, want sadness", label)
			}
			return []suggest.Suggestion{{Title: "深呼吸", URL: "https://example.com/breath"}}
		},
	}
	h := NewSuggestHandler(service, history)

	req := authedRequest(http.MethodGet, "/api/suggestions?date=2024-03-02", "")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body suggestResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("レスポンスのパースに失敗: %v", err)
	}
	if body.Label != "sadness" || len(body.Suggestions) != 1 {
		t.Errorf("body = %+v", body)
	}
}

// TestSuggestHandler_NoRecord は記録のない日がUnknown扱い（サジェストなし）に
// なることを検証する。
func TestSuggestHandler_NoRecord(t *testing.T) {
	history := &mockHistoryService{
		getFn: func(ctx context.Context, username string, date model.Date) (*model.DayRecord, error) {
			return nil, model.NewRecordNotFoundError(date)
		},
	}
	service := &mockSuggestService{
		forFn: func(ctx context.Context, label model.EmotionLabel) []suggest.Suggestion {
			if label != model.LabelUnknown {
				t.Errorf("label = %s, want unknown", label)
			}
			return []suggest.Suggestion{}
		},
	}
	h := NewSuggestHandler(service, history)

	req := authedRequest(http.MethodGet, "/api/suggestions?date=2024-03-02", "")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body suggestResponse
	json.NewDecoder(rec.Body).Decode(&body)
	if len(body.Suggestions) != 0 {
		t.Errorf("Suggestions = %+v, want empty", body.Suggestions)
	}
}

// TestSuggestHandler_InvalidDate は不正な日付パラメータが400になることを検証する。
func TestSuggestHandler_InvalidDate(t *testing.T) {
	history := &mockHistoryService{}
	service := &mockSuggestService{}
	h := NewSuggestHandler(service, history)

	req := authedRequest(http.MethodGet, "/api/suggestions?date=bad", "")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
