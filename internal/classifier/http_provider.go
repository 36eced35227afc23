package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/kokoro/internal/model"
)

// SSRFValidator はSSRF検証のインターフェース。
type SSRFValidator interface {
	ValidateURL(rawURL string) error
	NewSafeClient(timeout time.Duration, maxResponseSize int64) *http.Client
}

// HTTPProvider は外部スコアサービスを呼び出すScoreProvider実装。
// POST {endpoint} に {"text": "..."} を送信し、
// [{"label": "joy", "score": 0.82}, ...] 形式のレスポンスを期待する。
type HTTPProvider struct {
	endpoint    string
	httpClient  *http.Client
	logger      *slog.Logger
	maxBodySize int64
}

// NewHTTPProvider はHTTPProviderの新しいインスタンスを生成する。
// エンドポイントはSSRF検証済みである必要があり、不正な場合はエラーを返す。
// HTTPクライアントはSSRFガード付きで生成される。
func NewHTTPProvider(endpoint string, guard SSRFValidator, logger *slog.Logger, timeout time.Duration, maxBodySize int64) (*HTTPProvider, error) {
	if err := guard.ValidateURL(endpoint); err != nil {
		return nil, fmt.Errorf("分類器エンドポイントの検証に失敗しました: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPProvider{
		endpoint:    endpoint,
		httpClient:  guard.NewSafeClient(timeout, maxBodySize),
		logger:      logger,
		maxBodySize: maxBodySize,
	}, nil
}

// scoresRequest は外部スコアサービスへのリクエストボディ。
type scoresRequest struct {
	Text string `json:"text"`
}

// scoreEntry は外部スコアサービスのレスポンス要素。
type scoreEntry struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Scores は外部スコアサービスを呼び出し、ラベルスコアのリストを返す。
// 語彙に含まれないラベル文字列は警告を出してスキップする。
// 失敗はエラーとして返し、Unknownへのフォールバック判断は呼び出し元
// （Adapter）が行う。
func (p *HTTPProvider) Scores(ctx context.Context, text string) ([]model.LabelScore, error) {
	body, err := json.Marshal(scoresRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("リクエストボディの生成に失敗しました: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Kokoro/1.0 Emotion Journal")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("分類器サービスの呼び出しに失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("分類器サービスがステータス %d を返しました", resp.StatusCode)
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	var entries []scoreEntry
	if err := json.Unmarshal(respBody, &entries); err != nil {
		return nil, fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}

	scores := make([]model.LabelScore, 0, len(entries))
	for _, e := range entries {
		label, ok := model.ParseLabel(e.Label)
		if !ok {
			p.logger.Warn("語彙外のラベルをスキップします",
				slog.String("label", e.Label),
			)
			continue
		}
		scores = append(scores, model.LabelScore{Label: label, Score: e.Score})
	}

	return scores, nil
}
