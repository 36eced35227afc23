package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/kokoro/internal/middleware"
	"github.com/hitoshi/kokoro/internal/model"
)

// HistoryServiceInterface は履歴ハンドラーが必要とするサービスインターフェース。
type HistoryServiceInterface interface {
	Get(ctx context.Context, username string, date model.Date) (*model.DayRecord, error)
	List(ctx context.Context, username string) ([]model.DayRecord, error)
}

// HistoryHandler は感情履歴のHTTPハンドラー。
type HistoryHandler struct {
	service HistoryServiceInterface
}

// NewHistoryHandler はHistoryHandlerを生成する。
func NewHistoryHandler(service HistoryServiceInterface) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// historyResponse は履歴一覧のAPIレスポンス。
type historyResponse struct {
	Records []dayRecordResponse `json:"records"`
}

// List はユーザーの全履歴を日付昇順で返す。
// GET /api/history
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	username, err := middleware.UsernameFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	records, err := h.service.List(r.Context(), username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := historyResponse{Records: make([]dayRecordResponse, 0, len(records))}
	for i := range records {
		resp.Records = append(resp.Records, toDayRecordResponse(&records[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Get は指定日のレコードを返す。
// GET /api/history/{date}
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	username, err := middleware.UsernameFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	raw := chi.URLParam(r, "date")
	date, err := model.ParseDate(raw)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidDateError(raw))
		return
	}

	record, err := h.service.Get(r.Context(), username, date)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toDayRecordResponse(record))
}
