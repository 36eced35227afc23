package handler

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/hitoshi/kokoro/internal/emotion"
	"github.com/hitoshi/kokoro/internal/middleware"
	"github.com/hitoshi/kokoro/internal/model"
)

// EmotionServiceInterface は感情記録ハンドラーが必要とするサービスインターフェース。
type EmotionServiceInterface interface {
	Submit(ctx context.Context, username, text, journal string, date model.Date) (*emotion.SubmitResult, error)
}

// EmotionHandler は感情記録のHTTPハンドラー。
type EmotionHandler struct {
	service EmotionServiceInterface
}

// NewEmotionHandler はEmotionHandlerを生成する。
func NewEmotionHandler(service EmotionServiceInterface) *EmotionHandler {
	return &EmotionHandler{service: service}
}

// submitRequest は感情記録リクエストのボディ。
// dateを省略した場合は今日の日付が使われる。
type submitRequest struct {
	Text    string `json:"text"`
	Journal string `json:"journal,omitempty"`
	Date    string `json:"date,omitempty"`
}

// journalResponse は日記のAPIレスポンス。
type journalResponse struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// dayRecordResponse は1日分の感情レコードのAPIレスポンス。
// Confidenceはここで初めて小数2桁に丸められる。内部では丸めない。
type dayRecordResponse struct {
	Date       string           `json:"date"`
	Label      string           `json:"label"`
	Emoji      string           `json:"emoji"`
	Color      string           `json:"color"`
	Confidence float64          `json:"confidence"`
	Journal    *journalResponse `json:"journal,omitempty"`
}

// submitResponse は感情記録のAPIレスポンス。
type submitResponse struct {
	Record      dayRecordResponse `json:"record"`
	Reply       string            `json:"reply"`
	ReplySource string            `json:"reply_source"`
}

// toDayRecordResponse はDayRecordをAPIレスポンス形式に変換する。
func toDayRecordResponse(record *model.DayRecord) dayRecordResponse {
	resp := dayRecordResponse{
		Date:       record.Date.String(),
		Label:      string(record.Label),
		Emoji:      record.Label.Emoji(),
		Color:      record.Label.Color(),
		Confidence: roundConfidence(record.Confidence),
	}
	if record.Journal != nil {
		resp.Journal = &journalResponse{
			Text:  record.Journal.Text,
			Label: string(record.Journal.Label),
		}
	}
	return resp
}

// roundConfidence は確信度を表示用に小数2桁へ丸める。
func roundConfidence(v float64) float64 {
	return math.Round(v*100) / 100
}

// Submit は今日（または指定日）の気持ちを記録する。
// POST /api/emotions
func (h *EmotionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	username, err := middleware.UsernameFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "リクエストボディの解析に失敗しました。",
			Category: "validation",
			Action:   "正しいJSON形式でリクエストしてください。",
		})
		return
	}

	date := model.Today(time.Local)
	if req.Date != "" {
		parsed, parseErr := model.ParseDate(req.Date)
		if parseErr != nil {
			writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidDateError(req.Date))
			return
		}
		date = parsed
	}

	result, err := h.service.Submit(r.Context(), username, req.Text, req.Journal, date)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(submitResponse{
		Record:      toDayRecordResponse(result.Record),
		Reply:       result.ReplyText,
		ReplySource: result.ReplySource,
	})
}
