package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/hitoshi/kokoro/internal/heatmap"
	"github.com/hitoshi/kokoro/internal/middleware"
	"github.com/hitoshi/kokoro/internal/model"
)

// HeatmapHistoryLister はヒートマップ構築に必要な履歴取得インターフェース。
type HeatmapHistoryLister interface {
	List(ctx context.Context, username string) ([]model.DayRecord, error)
}

// HeatmapHandler は月次ヒートマップのHTTPハンドラー。
type HeatmapHandler struct {
	history HeatmapHistoryLister
}

// NewHeatmapHandler はHeatmapHandlerを生成する。
func NewHeatmapHandler(history HeatmapHistoryLister) *HeatmapHandler {
	return &HeatmapHandler{history: history}
}

// heatmapCellResponse はグリッドセルのAPIレスポンス。
// stateは "outside" / "no_data" / "value" のいずれか。
// intensityはstateが"value"の場合のみ存在する。
type heatmapCellResponse struct {
	Day       int    `json:"day,omitempty"`
	State     string `json:"state"`
	Intensity *int   `json:"intensity,omitempty"`
	Label     string `json:"label,omitempty"`
	Emoji     string `json:"emoji,omitempty"`
	Color     string `json:"color,omitempty"`
}

// heatmapLegendResponse は凡例1項目のAPIレスポンス。
type heatmapLegendResponse struct {
	Label     string `json:"label"`
	Intensity *int   `json:"intensity"`
	Emoji     string `json:"emoji"`
	Color     string `json:"color"`
}

// heatmapResponse は月次ヒートマップのAPIレスポンス。
type heatmapResponse struct {
	Year   int                     `json:"year"`
	Month  int                     `json:"month"`
	Weeks  [][]heatmapCellResponse `json:"weeks"`
	Legend []heatmapLegendResponse `json:"legend"`
}

// cellStateNames はCellStateのワイヤ表現。
var cellStateNames = map[heatmap.CellState]string{
	heatmap.CellOutside: "outside",
	heatmap.CellNoData:  "no_data",
	heatmap.CellValue:   "value",
}

// Get は指定年月のヒートマップを返す。
// GET /api/heatmap?year=2024&month=3
func (h *HeatmapHandler) Get(w http.ResponseWriter, r *http.Request) {
	username, err := middleware.UsernameFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	year, yearErr := strconv.Atoi(r.URL.Query().Get("year"))
	month, monthErr := strconv.Atoi(r.URL.Query().Get("month"))
	if yearErr != nil || monthErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidMonthError(year, month))
		return
	}

	records, err := h.history.List(r.Context(), username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	grid, err := heatmap.BuildMonthGrid(records, year, time.Month(month))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toHeatmapResponse(grid))
}

// toHeatmapResponse はGridをAPIレスポンス形式に変換する。
func toHeatmapResponse(grid *heatmap.Grid) heatmapResponse {
	resp := heatmapResponse{
		Year:  grid.Year,
		Month: int(grid.Month),
		Weeks: make([][]heatmapCellResponse, 0, len(grid.Weeks)),
	}

	for _, week := range grid.Weeks {
		row := make([]heatmapCellResponse, 0, len(week))
		for _, cell := range week {
			cellResp := heatmapCellResponse{
				Day:   cell.Day,
				State: cellStateNames[cell.State],
			}
			if cell.State == heatmap.CellValue {
				intensity := cell.Intensity
				cellResp.Intensity = &intensity
				cellResp.Label = string(cell.Label)
				cellResp.Emoji = cell.Label.Emoji()
				cellResp.Color = cell.Label.Color()
			}
			row = append(row, cellResp)
		}
		resp.Weeks = append(resp.Weeks, row)
	}

	for _, entry := range heatmap.Legend() {
		legendResp := heatmapLegendResponse{
			Label: string(entry.Label),
			Emoji: entry.Label.Emoji(),
			Color: entry.Label.Color(),
		}
		if entry.HasValue {
			intensity := entry.Intensity
			legendResp.Intensity = &intensity
		}
		resp.Legend = append(resp.Legend, legendResp)
	}

	return resp
}
