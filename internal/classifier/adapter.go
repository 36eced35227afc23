// Package classifier は外部感情分類器の出力を正規化するアダプタを提供する。
// 外部分類器はブラックボックスとして扱い、その生スコア群を
// 単一の (ラベル, 確信度) ペアへ決定的に変換する。
package classifier

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/hitoshi/kokoro/internal/model"
)

// ScoreProvider は外部分類器のインターフェース。
// 全ラベル語彙を覆う (ラベル, 生スコア) ペアの順不同リストを返す。
// スコアは独立した確信度として扱い、正規化された分布である必要はない。
type ScoreProvider interface {
	Scores(ctx context.Context, text string) ([]model.LabelScore, error)
}

// MetricsRecorder は分類メトリクスの記録インターフェース。
type MetricsRecorder interface {
	RecordClassifySuccess(label string)
	RecordClassifyFallback()
	RecordClassifyLatency(duration time.Duration)
}

// Adapter は外部分類器の生スコアを正規化済みのClassificationResultに変換する。
// 状態を持たず、同一の入力スコア群に対して常に同一の結果を返す。
type Adapter struct {
	provider ScoreProvider
	logger   *slog.Logger
	metrics  MetricsRecorder
}

// NewAdapter はAdapterの新しいインスタンスを生成する。
// metricsはnil可（記録しない）。
func NewAdapter(provider ScoreProvider, logger *slog.Logger, metrics MetricsRecorder) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		provider: provider,
		logger:   logger,
		metrics:  metrics,
	}
}

// Classify はテキストを分類し、正規化済みの結果を返す。
// textは空でないことを呼び出し元が保証する（空入力はハンドラーで拒否済み）。
//
// 選択規則: 生スコアの降順ソート。同スコアのタイブレークは
// model.LabelPriorityの固定順で行い、実行ごとに結果が変わらないことを保証する。
// Confidenceは選択されたラベルのスコアであり、丸めずに全精度を保持する。
//
// 外部呼び出しの失敗（タイムアウト・不正レスポンス・サービス停止）は
// すべてここで回復し、{LabelUnknown, 0.0} を返す。エラーは伝播しない。
func (a *Adapter) Classify(ctx context.Context, text string) model.ClassificationResult {
	start := time.Now()

	scores, err := a.provider.Scores(ctx, text)
	if a.metrics != nil {
		a.metrics.RecordClassifyLatency(time.Since(start))
	}
	if err != nil {
		a.logger.Warn("分類器の呼び出しに失敗しました。Unknownにフォールバックします",
			slog.String("error", err.Error()),
		)
		if a.metrics != nil {
			a.metrics.RecordClassifyFallback()
		}
		return model.ClassificationResult{Label: model.LabelUnknown, Confidence: 0.0}
	}

	result, ok := selectTop(scores)
	if !ok {
		a.logger.Warn("分類器が空のスコアリストを返しました。Unknownにフォールバックします")
		if a.metrics != nil {
			a.metrics.RecordClassifyFallback()
		}
		return model.ClassificationResult{Label: model.LabelUnknown, Confidence: 0.0}
	}

	if a.metrics != nil {
		a.metrics.RecordClassifySuccess(string(result.Label))
	}
	return result
}

// selectTop はスコア降順 + 固定優先順位タイブレークで先頭のペアを選択する。
// スコアリストが空の場合は (ゼロ値, false) を返す。
func selectTop(scores []model.LabelScore) (model.ClassificationResult, bool) {
	if len(scores) == 0 {
		return model.ClassificationResult{}, false
	}

	sorted := make([]model.LabelScore, len(scores))
	copy(sorted, scores)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return model.PriorityRank(sorted[i].Label) < model.PriorityRank(sorted[j].Label)
	})

	top := sorted[0]
	return model.ClassificationResult{Label: top.Label, Confidence: top.Score}, true
}
