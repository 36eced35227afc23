package model

import "time"

// User はサービス利用ユーザーを表す。
// 履歴のキーには安定した非空のusernameを使用する。
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
}

// Session はユーザーのログインセッションを表す。
type Session struct {
	ID        string
	UserID    string
	Username  string
	ExpiresAt time.Time
	CreatedAt time.Time
}
