package model

import "time"

// JournalEntry は1日分の日記テキストを表す。
// 付随するDayRecordが排他的に所有し、日付をまたいで共有されることはない。
type JournalEntry struct {
	Text  string
	Label EmotionLabel
}

// DayRecord は1ユーザー・1暦日の記録済み感情を表す。
// 不変条件: (username, date) ごとに最大1レコード。
// 同一日の再分類は追記ではなく上書き（last-write-wins）となる。
// Journalの有無は型付きの事実として表現する（nil = 日記なし）。
type DayRecord struct {
	Date       Date
	Label      EmotionLabel
	Confidence float64
	Journal    *JournalEntry
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
