package model

import (
	"fmt"
	"time"
)

// dateLayout は日付の文字列表現のフォーマット。
const dateLayout = "2006-01-02"

// Date は時刻成分を持たない暦日を表す。
// 履歴ストアのキーとして使用され、1ユーザー・1日につき最大1レコードという
// 不変条件の基盤となる。
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate は年・月・日からDateを生成する。妥当性検証は行わない。
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf はtime.Timeから時刻成分を落としたDateを生成する。
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today は指定ロケーションの今日の日付を返す。
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return DateOf(time.Now().In(loc))
}

// ParseDate はYYYY-MM-DD形式の文字列をDateに変換する。
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("日付の形式が不正です（YYYY-MM-DD形式が必要）: %w", err)
	}
	return DateOf(t), nil
}

// String はYYYY-MM-DD形式の文字列表現を返す。
func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

// Time は当日の00:00:00 UTCのtime.Timeを返す。
// 曜日計算など暦の演算に使用する。
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsValid は実在する暦日かを検証する。
// time.Dateは不正な日（2月30日等）を正規化してしまうため、
// 往復変換で一致するかどうかで判定する。
func (d Date) IsValid() bool {
	if d.Year < 1 || d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	t := d.Time()
	return t.Year() == d.Year && t.Month() == d.Month && t.Day() == d.Day
}

// Before はdがotherより前の日付かを返す。
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// Weekday は曜日を返す。
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// DaysInMonth は指定された年月の日数を返す。
func DaysInMonth(year int, month time.Month) int {
	// 翌月0日 = 当月末日
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
