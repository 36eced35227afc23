// Package emotion は気持ちの記録フローを統括するサービス層を提供する。
// 分類 → 履歴保存 → リプライ生成のフローをひとつの操作として束ねる。
package emotion

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hitoshi/kokoro/internal/classifier"
	"github.com/hitoshi/kokoro/internal/history"
	"github.com/hitoshi/kokoro/internal/model"
	"github.com/hitoshi/kokoro/internal/reply"
)

// Service は感情記録サービス。
type Service struct {
	adapter    *classifier.Adapter
	historySvc *history.Service
	replySvc   *reply.Service
	logger     *slog.Logger
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(adapter *classifier.Adapter, historySvc *history.Service, replySvc *reply.Service, logger *slog.Logger) *Service {
	return &Service{
		adapter:    adapter,
		historySvc: historySvc,
		replySvc:   replySvc,
		logger:     logger,
	}
}

// SubmitResult は記録操作の結果。
type SubmitResult struct {
	Record      *model.DayRecord
	ReplyText   string
	ReplySource string
}

// Submit はテキストを分類し、指定日のレコードとして保存してリプライを返す。
// テキストが空の場合はバリデーションエラーとなり、履歴は変更されない。
// 分類器の失敗はここには届かない（AdapterがUnknownへフォールバック済み）。
func (s *Service) Submit(ctx context.Context, username, text, journal string, date model.Date) (*SubmitResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, model.NewInvalidInputError()
	}
	if !date.IsValid() {
		return nil, model.NewInvalidDateError(date.String())
	}

	result := s.adapter.Classify(ctx, text)

	record, err := s.historySvc.Record(ctx, username, date, result, journal)
	if err != nil {
		return nil, err
	}

	generated := s.replySvc.Generate(ctx, text, result.Label, date)

	return &SubmitResult{
		Record:      record,
		ReplyText:   generated.Text,
		ReplySource: generated.Source,
	}, nil
}
