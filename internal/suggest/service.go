// Package suggest はネガティブな気分の日に向けた
// セルフケア記事のサジェストを提供する。
// 記事は外部のRSS/Atomフィードから取得し、一定時間キャッシュする。
// フィード取得に失敗してもエラーは返さず空のサジェストに縮退する。
package suggest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/hitoshi/kokoro/internal/heatmap"
	"github.com/hitoshi/kokoro/internal/model"
)

// SSRFValidator はSSRF検証のインターフェース。
// security.SSRFGuardServiceを抽象化してテスタビリティを向上させる。
type SSRFValidator interface {
	ValidateURL(rawURL string) error
	NewSafeClient(timeout time.Duration, maxResponseSize int64) *http.Client
}

// Suggestion はサジェスト記事1件を表す。
type Suggestion struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Service はサジェストサービス。
// フィードの取得結果をTTL付きでキャッシュし、取得先への負荷を抑える。
type Service struct {
	feedURL  string
	client   *http.Client
	guard    SSRFValidator
	logger   *slog.Logger
	cacheTTL time.Duration
	maxItems int

	mu        sync.Mutex
	cached    []Suggestion
	fetchedAt time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
// feedURLが空の場合、サジェストは常に空になる。
func NewService(feedURL string, guard SSRFValidator, logger *slog.Logger, timeout time.Duration, maxBodySize int64, cacheTTL time.Duration, maxItems int) *Service {
	return &Service{
		feedURL:  feedURL,
		client:   guard.NewSafeClient(timeout, maxBodySize),
		guard:    guard,
		logger:   logger,
		cacheTTL: cacheTTL,
		maxItems: maxItems,
	}
}

// WantsSuggestion はそのラベルにサジェストを出すべきかを返す。
// ヒートマップの強度スケールで負の値を持つラベルが対象。
func WantsSuggestion(label model.EmotionLabel) bool {
	intensity, ok := heatmap.IntensityFor(label)
	return ok && intensity < 0
}

// For は指定ラベル向けのサジェストを返す。
// 対象外のラベル、フィード未構成、取得失敗のいずれでも空スライスを返し、
// エラーにはしない。サジェストは本体機能を妨げない付加機能であるため。
func (s *Service) For(ctx context.Context, label model.EmotionLabel) []Suggestion {
	if !WantsSuggestion(label) || s.feedURL == "" {
		return []Suggestion{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && time.Since(s.fetchedAt) < s.cacheTTL {
		return s.cached
	}

	items, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("サジェストフィードの取得に失敗しました",
			"feed_url", s.feedURL,
			"error", err.Error(),
		)
		// 失敗時は古いキャッシュがあればそれを返す
		if s.cached != nil {
			return s.cached
		}
		return []Suggestion{}
	}

	s.cached = items
	s.fetchedAt = time.Now()
	return items
}

// fetch はフィードを取得してパースする。呼び出し元でロック済み。
func (s *Service) fetch(ctx context.Context) ([]Suggestion, error) {
	if err := s.guard.ValidateURL(s.feedURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	parser := gofeed.NewParser()
	parsedFeed, err := parser.ParseString(string(body))
	if err != nil {
		return nil, err
	}

	items := make([]Suggestion, 0, s.maxItems)
	for _, item := range parsedFeed.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}
		items = append(items, Suggestion{Title: item.Title, URL: item.Link})
		if len(items) >= s.maxItems {
			break
		}
	}
	return items, nil
}
