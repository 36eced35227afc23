// Package history は感情履歴の読み書きを担うサービス層を提供する。
// ストレージの詳細はrepositoryに委ね、ここでは入力検証と
// 日記テキストのサニタイズを行う。
package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/hitoshi/kokoro/internal/model"
	"github.com/hitoshi/kokoro/internal/repository"
)

// JournalSanitizer は日記テキストの無害化を行うインターフェース。
type JournalSanitizer interface {
	Sanitize(raw string) string
}

// MetricsRecorder は履歴書き込みのメトリクスを記録するインターフェース。
type MetricsRecorder interface {
	RecordUpsert()
}

// Service は感情履歴サービス。
type Service struct {
	repo      repository.HistoryRepository
	sanitizer JournalSanitizer
	metrics   MetricsRecorder
	logger    *slog.Logger
}

// NewService はServiceの新しいインスタンスを生成する。
// metricsはnil可（テストや計測なしの構成向け）。
func NewService(repo repository.HistoryRepository, sanitizer JournalSanitizer, metrics MetricsRecorder, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
		metrics:   metrics,
		logger:    logger,
	}
}

// Record は分類結果を指定日のレコードとして保存する。
// journalが空文字列の場合は日記なしとして扱い、既存の日記は保持される。
// 同一 (username, date) への再保存は後勝ちの上書きとなる。
func (s *Service) Record(ctx context.Context, username string, date model.Date, result model.ClassificationResult, journal string) (*model.DayRecord, error) {
	record := &model.DayRecord{
		Date:       date,
		Label:      result.Label,
		Confidence: result.Confidence,
		CreatedAt:  time.Now(),
	}

	if journal != "" {
		clean := s.sanitizer.Sanitize(journal)
		if clean != "" {
			record.Journal = &model.JournalEntry{
				Text:  clean,
				Label: result.Label,
			}
		}
	}

	if err := s.repo.Upsert(ctx, username, record); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordUpsert()
	}
	s.logger.Info("感情記録を保存しました",
		"username", username,
		"date", date.String(),
		"label", string(result.Label),
	)

	return s.repo.Find(ctx, username, date)
}

// Get は指定日のレコードを返す。記録が無い日はRecordNotFoundエラー。
func (s *Service) Get(ctx context.Context, username string, date model.Date) (*model.DayRecord, error) {
	record, err := s.repo.Find(ctx, username, date)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, model.NewRecordNotFoundError(date)
	}
	return record, nil
}

// List はユーザーの全履歴を日付昇順で返す。
// 未登録ユーザーはエラーではなく空の履歴として扱う。
func (s *Service) List(ctx context.Context, username string) ([]model.DayRecord, error) {
	return s.repo.FindAllByUser(ctx, username)
}
