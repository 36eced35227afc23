package heatmap

import (
	"testing"
	"time"

	"github.com/hitoshi/kokoro/internal/model"
)

// findCell は日番号からセルを探すテストヘルパー。
func findCell(t *testing.T, grid *Grid, day int) Cell {
	t.Helper()
	for _, week := range grid.Weeks {
		for _, cell := range week {
			if cell.Day == day {
				return cell
			}
		}
	}
	t.Fatalf("day %d のセルが見つかりません", day)
	return Cell{}
}

// TestBuildMonthGrid_MarchScenario は記録のある日が強度を持ち、
// 記録のない月内の日がNoDataになることを検証する。
func TestBuildMonthGrid_MarchScenario(t *testing.T) {
	records := []model.DayRecord{
		{Date: model.NewDate(2024, time.March, 1), Label: model.LabelJoy, Confidence: 0.9},
		{Date: model.NewDate(2024, time.March, 2), Label: model.LabelSadness, Confidence: 0.8},
	}

	grid, err := BuildMonthGrid(records, 2024, time.March)
	if err != nil {
		t.Fatalf("BuildMonthGrid returned error: %v", err)
	}

	day1 := findCell(t, grid, 1)
	if day1.State != CellValue || day1.Intensity != 2 {
		t.Errorf("day1 = %+v, want CellValue intensity 2", day1)
	}
	day2 := findCell(t, grid, 2)
	if day2.State != CellValue || day2.Intensity != -2 {
		t.Errorf("day2 = %+v, want CellValue intensity -2", day2)
	}

	// 残りの月内セルはすべてNoData
	for day := 3; day <= 31; day++ {
		cell := findCell(t, grid, day)
		if cell.State != CellNoData {
			t.Errorf("day%d State = %d, want CellNoData", day, cell.State)
		}
	}
}

// TestBuildMonthGrid_NoDataIsDistinctFromZero はNoDataが強度0（Surprise）と
// 区別されることを検証する。
func TestBuildMonthGrid_NoDataIsDistinctFromZero(t *testing.T) {
	records := []model.DayRecord{
		{Date: model.NewDate(2024, time.March, 10), Label: model.LabelSurprise},
	}

	grid, err := BuildMonthGrid(records, 2024, time.March)
	if err != nil {
		t.Fatalf("BuildMonthGrid returned error: %v", err)
	}

	surprise := findCell(t, grid, 10)
	if surprise.State != CellValue || surprise.Intensity != 0 {
		t.Errorf("surprise cell = %+v, want CellValue intensity 0", surprise)
	}
	empty := findCell(t, grid, 11)
	if empty.State != CellNoData {
		t.Errorf("empty cell State = %d, want CellNoData", empty.State)
	}
	if surprise.State == empty.State {
		t.Error("強度0とNoDataが区別されていません")
	}
}

// TestBuildMonthGrid_UnknownRendersAsNoData はUnknownラベルの記録が
// NoData扱いになることを検証する。
func TestBuildMonthGrid_UnknownRendersAsNoData(t *testing.T) {
	records := []model.DayRecord{
		{Date: model.NewDate(2024, time.March, 5), Label: model.LabelUnknown},
	}

	grid, err := BuildMonthGrid(records, 2024, time.March)
	if err != nil {
		t.Fatalf("BuildMonthGrid returned error: %v", err)
	}

	cell := findCell(t, grid, 5)
	if cell.State != CellNoData {
		t.Errorf("unknown cell State = %d, want CellNoData", cell.State)
	}
	if cell.Label != model.LabelUnknown {
		t.Errorf("unknown cell Label = %s, want unknown", cell.Label)
	}
}

// TestBuildMonthGrid_OutsideCellsAreBlank は月外セルがOutsideのままで
// 日番号を持たないことを検証する。
func TestBuildMonthGrid_OutsideCellsAreBlank(t *testing.T) {
	// 2024年3月1日は金曜。月曜始まりなら先頭週の月〜木がOutside。
	grid, err := BuildMonthGrid(nil, 2024, time.March)
	if err != nil {
		t.Fatalf("BuildMonthGrid returned error: %v", err)
	}

	firstWeek := grid.Weeks[0]
	for i := 0; i < 4; i++ {
		if firstWeek[i].State != CellOutside || firstWeek[i].Day != 0 {
			t.Errorf("firstWeek[%d] = %+v, want Outside", i, firstWeek[i])
		}
	}
	if firstWeek[4].Day != 1 {
		t.Errorf("firstWeek[4].Day = %d, want 1（金曜始まり）", firstWeek[4].Day)
	}
}

// TestBuildMonthGrid_AllInMonthDaysPresent は月内の全日がグリッドに
// 1度ずつ現れることを検証する。うるう年の2月を含む。
func TestBuildMonthGrid_AllInMonthDaysPresent(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tc := range cases {
		grid, err := BuildMonthGrid(nil, tc.year, tc.month)
		if err != nil {
			t.Fatalf("BuildMonthGrid(%d, %d) returned error: %v", tc.year, tc.month, err)
		}
		seen := make(map[int]int)
		for _, week := range grid.Weeks {
			for _, cell := range week {
				if cell.Day != 0 {
					seen[cell.Day]++
				}
			}
		}
		if len(seen) != tc.days {
			t.Errorf("%d-%d: %d days present, want %d", tc.year, tc.month, len(seen), tc.days)
		}
		for day, count := range seen {
			if count != 1 {
				t.Errorf("%d-%d: day %d appears %d times", tc.year, tc.month, day, count)
			}
		}
	}
}

// TestBuildMonthGrid_IgnoresOtherMonths は対象月以外のレコードが
// グリッドに影響しないことを検証する。
func TestBuildMonthGrid_IgnoresOtherMonths(t *testing.T) {
	records := []model.DayRecord{
		{Date: model.NewDate(2024, time.February, 15), Label: model.LabelJoy},
		{Date: model.NewDate(2024, time.April, 15), Label: model.LabelJoy},
		{Date: model.NewDate(2023, time.March, 15), Label: model.LabelJoy},
	}

	grid, err := BuildMonthGrid(records, 2024, time.March)
	if err != nil {
		t.Fatalf("BuildMonthGrid returned error: %v", err)
	}

	cell := findCell(t, grid, 15)
	if cell.State != CellNoData {
		t.Errorf("day15 State = %d, want CellNoData（他月のレコードが混入）", cell.State)
	}
}

// TestBuildMonthGrid_InvalidMonth は不正な年月がエラーになることを検証する。
func TestBuildMonthGrid_InvalidMonth(t *testing.T) {
	if _, err := BuildMonthGrid(nil, 2024, time.Month(13)); err == nil {
		t.Error("month=13でエラーが返りません")
	}
	if _, err := BuildMonthGrid(nil, 2024, time.Month(0)); err == nil {
		t.Error("month=0でエラーが返りません")
	}
	if _, err := BuildMonthGrid(nil, 0, time.March); err == nil {
		t.Error("year=0でエラーが返りません")
	}
}

// TestIntensityFor_FixedScale は強度スケールがプロダクト定義通りであることを検証する。
func TestIntensityFor_FixedScale(t *testing.T) {
	cases := []struct {
		label     model.EmotionLabel
		intensity int
		hasValue  bool
	}{
		{model.LabelSadness, -2, true},
		{model.LabelAnger, -1, true},
		{model.LabelFear, -1, true},
		{model.LabelSurprise, 0, true},
		{model.LabelLove, 1, true},
		{model.LabelJoy, 2, true},
		{model.LabelUnknown, 0, false},
	}
	for _, tc := range cases {
		intensity, ok := IntensityFor(tc.label)
		if intensity != tc.intensity || ok != tc.hasValue {
			t.Errorf("IntensityFor(%s) = (%d, %v), want (%d, %v)",
				tc.label, intensity, ok, tc.intensity, tc.hasValue)
		}
	}
}

// TestLegend_CoversAllLabels は凡例が全ラベルを固定順で含むことを検証する。
func TestLegend_CoversAllLabels(t *testing.T) {
	legend := Legend()
	if len(legend) != len(model.LabelPriority) {
		t.Fatalf("len(legend) = %d, want %d", len(legend), len(model.LabelPriority))
	}
	for i, entry := range legend {
		if entry.Label != model.LabelPriority[i] {
			t.Errorf("legend[%d].Label = %s, want %s", i, entry.Label, model.LabelPriority[i])
		}
	}
}
