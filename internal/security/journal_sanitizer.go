// Package security はアプリケーションのセキュリティ機能を提供する。
//
// JournalSanitizerService は日記テキストを保存前にサニタイズし、
// 履歴表示時のXSSからユーザーを保護する。
// SSRFGuardService は外部サービス（分類器・瞑想フィード）への
// アウトバウンドHTTPリクエストを安全なクライアントに限定する。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// JournalSanitizerService は日記テキストのサニタイズ機能のインターフェースを定義する。
// 履歴ストアへの保存前に使用される。
type JournalSanitizerService interface {
	// Sanitize は日記テキストからHTMLタグをすべて除去したプレーンテキストを返す。
	// 日記は自由入力のプレーンテキストであり、タグを許可する理由がないため
	// bluemondayのStrictPolicyを使用する。
	// 前後の空白は除去される。空入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// journalSanitizer はJournalSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type journalSanitizer struct {
	policy *bluemonday.Policy
}

// NewJournalSanitizer はJournalSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyは全タグを除去し、テキストノードのみを残す。
func NewJournalSanitizer() *journalSanitizer {
	return &journalSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は日記テキストからHTMLタグをすべて除去したプレーンテキストを返す。
func (s *journalSanitizer) Sanitize(raw string) string {
	return strings.TrimSpace(s.policy.Sanitize(raw))
}
