// Package app はアプリケーションの起動と依存関係のワイヤリングを行う。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/hitoshi/kokoro/internal/auth"
	"github.com/hitoshi/kokoro/internal/classifier"
	"github.com/hitoshi/kokoro/internal/config"
	"github.com/hitoshi/kokoro/internal/emotion"
	"github.com/hitoshi/kokoro/internal/handler"
	"github.com/hitoshi/kokoro/internal/history"
	"github.com/hitoshi/kokoro/internal/logger"
	"github.com/hitoshi/kokoro/internal/metrics"
	"github.com/hitoshi/kokoro/internal/middleware"
	"github.com/hitoshi/kokoro/internal/reply"
	"github.com/hitoshi/kokoro/internal/repository"
	"github.com/hitoshi/kokoro/internal/security"
	"github.com/hitoshi/kokoro/internal/suggest"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	return runServe(cfg)
}

// newScoreProvider は設定に応じた分類スコアプロバイダーを返す。
// 優先順位: 外部HTTP分類器 → OpenAI → 組み込みレキシコン。
// 上位のプロバイダーが構成不能な場合は下位に切り替える。
func newScoreProvider(cfg *config.Config, ssrfGuard security.SSRFGuardService, log *slog.Logger) classifier.ScoreProvider {
	if cfg.ClassifierURL != "" {
		provider, err := classifier.NewHTTPProvider(
			cfg.ClassifierURL, ssrfGuard, log,
			cfg.ClassifierTimeout, cfg.ClassifierMaxSize,
		)
		if err != nil {
			slog.Warn("外部分類器のURLが不正なため別のプロバイダーを使用します",
				slog.String("classifier_url", cfg.ClassifierURL),
				slog.String("error", err.Error()),
			)
		} else {
			slog.Info("using HTTP classifier provider", slog.String("endpoint", cfg.ClassifierURL))
			return provider
		}
	}

	if cfg.OpenAIAPIKey != "" {
		client := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
		slog.Info("using OpenAI classifier provider", slog.String("model", cfg.ReplyModel))
		return classifier.NewOpenAIProvider(&client, cfg.ReplyModel)
	}

	slog.Info("using built-in lexicon classifier provider")
	return classifier.NewLexiconProvider()
}

// runServe はAPIサーバーモードで起動する。
// 全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	log := slog.Default()

	// 1. リポジトリの初期化（インメモリ）
	userRepo := repository.NewMemoryUserRepo()
	sessionRepo := repository.NewMemorySessionRepo()
	historyRepo := repository.NewMemoryHistoryRepo()

	// 2. セキュリティサービスの初期化
	ssrfGuard := security.NewSSRFGuard()
	sanitizer := security.NewJournalSanitizer()

	// 3. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 4. ドメインサービスの初期化
	authService := auth.NewService(
		userRepo, sessionRepo,
		auth.ServiceConfig{SessionMaxAge: cfg.SessionMaxAge},
	)

	adapter := classifier.NewAdapter(newScoreProvider(cfg, ssrfGuard, log), log, collector)
	historyService := history.NewService(historyRepo, sanitizer, collector, log)

	var external reply.ExternalReplier
	if cfg.OpenAIAPIKey != "" {
		external = reply.NewOpenAIReplier(cfg.OpenAIAPIKey, cfg.ReplyModel)
	}
	replyService := reply.NewService(external, collector, log)

	emotionService := emotion.NewService(adapter, historyService, replyService, log)

	suggestService := suggest.NewService(
		cfg.MeditationFeedURL, ssrfGuard, log,
		cfg.ClassifierTimeout, cfg.ClassifierMaxSize,
		cfg.SuggestCacheTTL, cfg.SuggestMaxItems,
	)

	// 5. レート制限の初期化（configはreq/min単位、rate.Limitはreq/sec単位）
	rateLimiterCfg := middleware.RateLimiterConfig{
		GeneralRate:     rate.Limit(float64(cfg.RateLimitGeneral) / 60.0),
		GeneralBurst:    cfg.RateLimitGeneral,
		ClassifyRate:    rate.Limit(float64(cfg.RateLimitClassify) / 60.0),
		ClassifyBurst:   cfg.RateLimitClassify,
		CleanupInterval: 5 * time.Minute,
	}
	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	// 6. ルーターの構築
	deps := &handler.RouterDeps{
		SessionFinder:     sessionRepo,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		Logger:            log,
		StatusMetrics:     collector,

		AuthService: authService,
		AuthConfig: handler.AuthHandlerConfig{
			CookieDomain:  cfg.CookieDomain,
			CookieSecure:  cfg.CookieSecure,
			SessionMaxAge: cfg.SessionMaxAge,
		},

		EmotionService: emotionService,
		HistoryService: historyService,
		SuggestService: suggestService,

		MetricsHandler: metrics.Handler(registry),
	}

	router := handler.NewRouter(deps)

	// 7. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}
