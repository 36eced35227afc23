// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, history, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeInvalidDate     = "INVALID_DATE"
	ErrCodeInvalidMonth    = "INVALID_MONTH"
	ErrCodeInvalidUsername = "INVALID_USERNAME"
	ErrCodeRecordNotFound  = "RECORD_NOT_FOUND"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
)

// NewInvalidInputError は空テキスト等の不正入力エラーを生成する。
// 分類器が呼び出される前に拒否され、履歴は変更されない。
func NewInvalidInputError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidInput,
		Message:  "テキストが空です。",
		Category: "validation",
		Action:   "今の気持ちを1文字以上入力してください。",
	}
}

// NewInvalidDateError は不正な暦日エラーを生成する。
func NewInvalidDateError(input string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidDate,
		Message:  fmt.Sprintf("無効な日付です: %s", input),
		Category: "validation",
		Action:   "YYYY-MM-DD形式の実在する日付を指定してください。",
	}
}

// NewInvalidMonthError はヒートマップ要求の年月が不正な場合のエラーを生成する。
func NewInvalidMonthError(year, month int) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidMonth,
		Message:  fmt.Sprintf("無効な年月です: %d-%d", year, month),
		Category: "validation",
		Action:   "yearに西暦、monthに1〜12を指定してください。",
	}
}

// NewInvalidUsernameError はユーザー名が不正な場合のエラーを生成する。
func NewInvalidUsernameError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidUsername,
		Message:  fmt.Sprintf("無効なユーザー名です: %s", reason),
		Category: "validation",
		Action:   "1〜64文字のユーザー名を入力してください。",
	}
}

// NewRecordNotFoundError は指定日の記録が存在しない場合のエラーを生成する。
// 履歴一覧やヒートマップではデータ無しはエラーではなく空結果として扱うため、
// このエラーは日付指定の単体取得でのみ使用する。
func NewRecordNotFoundError(date Date) *APIError {
	return &APIError{
		Code:     ErrCodeRecordNotFound,
		Message:  fmt.Sprintf("指定された日付の記録が見つかりません: %s", date),
		Category: "history",
		Action:   "記録済みの日付を指定してください。",
	}
}

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}
