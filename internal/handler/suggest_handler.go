package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/kokoro/internal/middleware"
	"github.com/hitoshi/kokoro/internal/model"
	"github.com/hitoshi/kokoro/internal/suggest"
)

// SuggestServiceInterface はサジェストハンドラーが必要とするサービスインターフェース。
type SuggestServiceInterface interface {
	For(ctx context.Context, label model.EmotionLabel) []suggest.Suggestion
}

// SuggestHandler はセルフケア記事サジェストのHTTPハンドラー。
type SuggestHandler struct {
	service SuggestServiceInterface
	history HistoryServiceInterface
}

// NewSuggestHandler はSuggestHandlerを生成する。
func NewSuggestHandler(service SuggestServiceInterface, history HistoryServiceInterface) *SuggestHandler {
	return &SuggestHandler{
		service: service,
		history: history,
	}
}

// suggestResponse はサジェストのAPIレスポンス。
type suggestResponse struct {
	Date        string               `json:"date"`
	Label       string               `json:"label"`
	Suggestions []suggest.Suggestion `json:"suggestions"`
}

// Get は指定日（省略時は今日）の気分に応じたサジェストを返す。
// 記録のない日やポジティブな気分の日はサジェストなし。
// GET /api/suggestions?date=2024-03-01
func (h *SuggestHandler) Get(w http.ResponseWriter, r *http.Request) {
	username, err := middleware.UsernameFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	date := model.Today(time.Local)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, parseErr := model.ParseDate(raw)
		if parseErr != nil {
			writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidDateError(raw))
			return
		}
		date = parsed
	}

	label := model.LabelUnknown
	record, err := h.history.Get(r.Context(), username, date)
	if err == nil && record != nil {
		label = record.Label
	}

	items := h.service.For(r.Context(), label)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(suggestResponse{
		Date:        date.String(),
		Label:       string(label),
		Suggestions: items,
	})
}
