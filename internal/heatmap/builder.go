// Package heatmap は感情履歴から月次ヒートマップグリッドを構築する。
// 構築は純粋な読み取り側の変換であり、同一の履歴と年月に対して
// 常に同一のグリッドを返す。状態もI/Oも持たない。
package heatmap

import (
	"time"

	"github.com/hitoshi/kokoro/internal/model"
)

// CellState はグリッドセルの種別を表す。
type CellState int

const (
	// CellOutside は月外の日（グリッドの余白）を示す。
	CellOutside CellState = iota
	// CellNoData は月内だが記録が無い日を示す。
	// 強度0（Surpriseの中立値）とは別物であり、描画まで区別が保たれる。
	CellNoData
	// CellValue は記録があり強度を持つ日を示す。
	CellValue
)

// Cell はグリッドの1セルを表す。
type Cell struct {
	// Day は月内の日番号（1〜末日）。月外セルは0。
	Day int
	// State はセル種別。IntensityはStateがCellValueの場合のみ有効。
	State     CellState
	Intensity int
	Label     model.EmotionLabel
}

// Grid は1ヶ月分のヒートマップを表す。
// 行は週（月曜始まり）、列は7曜日。描画層が必要とする情報のみを持つ。
// 呼び出しごとに再構築され、構築後に変更されることはない。
type Grid struct {
	Year  int
	Month time.Month
	// Weeks[w][d] は第w週のd番目の曜日（0=月曜, 6=日曜）のセル。
	Weeks [][7]Cell
}

// IntensityFor はラベルを符号付き強度に写像する。
// この対応はプロダクト定義の固定スケールであり、ラベル列挙の全域関数である
// （すべてのラベルが整数またはNoDataに写る。黙って落ちるラベルは無い）。
// Unknownのみ (0, false) = NoData を返す。
func IntensityFor(label model.EmotionLabel) (int, bool) {
	switch label {
	case model.LabelSadness:
		return -2, true
	case model.LabelAnger:
		return -1, true
	case model.LabelFear:
		return -1, true
	case model.LabelSurprise:
		return 0, true
	case model.LabelLove:
		return 1, true
	case model.LabelJoy:
		return 2, true
	default:
		// Unknown および未定義ラベルはNoData
		return 0, false
	}
}

// LegendEntry は凡例の1項目を表す。
type LegendEntry struct {
	Label     model.EmotionLabel
	Intensity int
	HasValue  bool
}

// Legend はラベルの固定優先順位で並んだ凡例を返す。
// 表示順がmapのイテレーション順に依存しないよう、LabelPriorityを使用する。
func Legend() []LegendEntry {
	entries := make([]LegendEntry, 0, len(model.LabelPriority))
	for _, label := range model.LabelPriority {
		intensity, ok := IntensityFor(label)
		entries = append(entries, LegendEntry{
			Label:     label,
			Intensity: intensity,
			HasValue:  ok,
		})
	}
	return entries
}

// BuildMonthGrid は履歴スナップショットから指定年月のグリッドを構築する。
// 履歴のうち対象月のレコードのみが使用される。
// 月内の全日（1〜末日）に必ずセルが割り当てられ、記録の無い日はNoData、
// 月外の日はOutsideとなる。
// 不正な年月は呼び出し元の検証漏れでありエラーを返す。
func BuildMonthGrid(records []model.DayRecord, year int, month time.Month) (*Grid, error) {
	if year < 1 || month < time.January || month > time.December {
		return nil, model.NewInvalidMonthError(year, int(month))
	}

	days := model.DaysInMonth(year, month)

	// 対象月のレコードを日番号で引けるようにする
	byDay := make(map[int]model.DayRecord, len(records))
	for _, record := range records {
		if record.Date.Year == year && record.Date.Month == month {
			byDay[record.Date.Day] = record
		}
	}

	// 月曜始まり: time.Weekdayは日曜=0なので月曜=0に写し替える
	firstWeekday := model.NewDate(year, month, 1).Weekday()
	offset := (int(firstWeekday) + 6) % 7

	weekCount := (offset + days + 6) / 7
	weeks := make([][7]Cell, weekCount)

	for day := 1; day <= days; day++ {
		pos := offset + day - 1
		cell := Cell{Day: day, State: CellNoData}

		if record, ok := byDay[day]; ok {
			if intensity, hasValue := IntensityFor(record.Label); hasValue {
				cell = Cell{Day: day, State: CellValue, Intensity: intensity, Label: record.Label}
			} else {
				// Unknownラベルの記録はNoDataとして描画されるが、ラベル自体は保持する
				cell = Cell{Day: day, State: CellNoData, Label: record.Label}
			}
		}

		weeks[pos/7][pos%7] = cell
	}

	return &Grid{Year: year, Month: month, Weeks: weeks}, nil
}
