// Package repository はデータアクセス層のインターフェースとインメモリ実装を提供する。
// 状態はプロセス寿命のみ（永続化は非対象）。全実装はスレッドセーフであること。
package repository

import (
	"context"

	"github.com/hitoshi/kokoro/internal/model"
)

// UserRepository はユーザーのデータアクセスインターフェース。
type UserRepository interface {
	// FindByUsername はユーザー名でユーザーを検索する。未登録の場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// FindByID はIDでユーザーを検索する。存在しない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)
	// Create はユーザーを登録する。
	Create(ctx context.Context, user *model.User) error
}

// SessionRepository はセッションのデータアクセスインターフェース。
type SessionRepository interface {
	// Create はセッションを保存する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID はセッションIDでセッションを検索する。
	// 存在しない、または期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID はセッションを削除する。存在しない場合も成功扱い。
	DeleteByID(ctx context.Context, id string) error
}

// HistoryRepository は感情履歴のデータアクセスインターフェース。
// キーは (username, date)。ユーザー履歴は初回Upsert時に遅延生成される。
type HistoryRepository interface {
	// Upsert は (username, date) のレコードを置き換える（last-write-wins）。
	// 同一キーのレコードは追記ではなく上書きされ、キーごとに最大1レコードを保つ。
	// record.Journalがnilの場合、既存レコードの日記は保持される（明示的な
	// 日記付き書き込みのみが日記を置き換える）。
	Upsert(ctx context.Context, username string, record *model.DayRecord) error
	// Find は指定日のレコードを返す。存在しない場合はnil（エラーではない）。
	Find(ctx context.Context, username string, date model.Date) (*model.DayRecord, error)
	// FindAllByUser は全レコードを日付昇順で返す。
	// 未登録ユーザーには空スライスを返す（エラーではない）。
	FindAllByUser(ctx context.Context, username string) ([]model.DayRecord, error)
}
