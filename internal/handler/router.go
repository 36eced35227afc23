package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/kokoro/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionFinder     middleware.SessionFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger
	StatusMetrics     middleware.StatusRecorder // nil可

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// 感情記録
	EmotionService EmotionServiceInterface

	// 履歴・ヒートマップ
	HistoryService HistoryServiceInterface

	// サジェスト
	SuggestService SuggestServiceInterface

	// Prometheusスクレイプ用ハンドラー（nil可）
	MetricsHandler http.Handler
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Logging → Recovery → (Session → RateLimit(General))
//
// 認証ルート（/auth/*）と/healthはセッションミドルウェアの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// 全ルートに効くミドルウェア
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.StatusMetrics))
	r.Use(middleware.NewRecoveryMiddleware())

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	emotionHandler := NewEmotionHandler(deps.EmotionService)
	historyHandler := NewHistoryHandler(deps.HistoryService)
	heatmapHandler := NewHeatmapHandler(deps.HistoryService)
	suggestHandler := NewSuggestHandler(deps.SuggestService, deps.HistoryService)

	// --- 認証不要のルート ---

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// 感情記録（分類を伴うため専用レート制限を追加）
		r.With(deps.RateLimiter.ClassifyMiddleware()).Post("/api/emotions", emotionHandler.Submit)

		// 履歴
		r.Route("/api/history", func(r chi.Router) {
			r.Get("/", historyHandler.List)
			r.Get("/{date}", historyHandler.Get)
		})

		// ヒートマップ
		r.Get("/api/heatmap", heatmapHandler.Get)

		// サジェスト
		r.Get("/api/suggestions", suggestHandler.Get)
	})

	return r
}
