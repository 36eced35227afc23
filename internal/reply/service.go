package reply

import (
	"context"
	"log/slog"

	"github.com/hitoshi/kokoro/internal/model"
)

// ソース種別。レスポンスとメトリクスで使用する。
const (
	SourceExternal = "external"
	SourceCanned   = "canned"
)

// ExternalReplier は外部LLMによるリプライ生成のインターフェース。
type ExternalReplier interface {
	Reply(ctx context.Context, text string, label model.EmotionLabel) (string, error)
}

// MetricsRecorder はリプライ生成のメトリクスを記録するインターフェース。
type MetricsRecorder interface {
	RecordReply(source string)
}

// Service はリプライ生成サービス。
// externalがnilの場合は常に定型文を返す。
type Service struct {
	external ExternalReplier
	metrics  MetricsRecorder
	logger   *slog.Logger
}

// NewService はServiceの新しいインスタンスを生成する。
// externalとmetricsはnil可。
func NewService(external ExternalReplier, metrics MetricsRecorder, logger *slog.Logger) *Service {
	return &Service{
		external: external,
		metrics:  metrics,
		logger:   logger,
	}
}

// Result はリプライ生成の結果。
type Result struct {
	Text   string
	Source string
}

// Generate はリプライを生成する。外部LLMが使える場合はそちらを優先し、
// 失敗したら定型文に切り替える。この関数がエラーを返すことはない。
func (s *Service) Generate(ctx context.Context, text string, label model.EmotionLabel, date model.Date) Result {
	if s.external != nil {
		out, err := s.external.Reply(ctx, text, label)
		if err == nil {
			if s.metrics != nil {
				s.metrics.RecordReply(SourceExternal)
			}
			return Result{Text: out, Source: SourceExternal}
		}
		s.logger.Warn("外部リプライ生成に失敗したため定型文を使用します", "error", err)
	}

	if s.metrics != nil {
		s.metrics.RecordReply(SourceCanned)
	}
	return Result{Text: CannedReply(label, date), Source: SourceCanned}
}
