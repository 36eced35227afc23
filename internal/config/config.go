// Package config はアプリケーション設定の読み込みを提供する。
package config

import (
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
// 状態はすべてインメモリのため、外部サービスなしでも起動できるよう
// 全項目にデフォルト値を持つ。
type Config struct {
	// Server
	ServerPort string

	// Session
	SessionMaxAge int

	// Classifier
	// ClassifierURLが設定されている場合は外部スコアサービスを使用する。
	// 未設定でOpenAIAPIKeyがある場合はOpenAIプロバイダ、
	// どちらも無い場合は内蔵の語彙ベース分類を使用する。
	ClassifierURL     string
	ClassifierTimeout time.Duration
	ClassifierMaxSize int64

	// Reply
	// OpenAIAPIKeyが設定されている場合のみ外部生成リプライを試行する。
	OpenAIAPIKey string
	ReplyModel   string

	// Suggest
	MeditationFeedURL string
	SuggestCacheTTL   time.Duration
	SuggestMaxItems   int

	// Rate Limit（req/min単位）
	RateLimitGeneral  int
	RateLimitClassify int

	// CORS
	CORSAllowedOrigin string

	// Cookie
	CookieSecure bool
	CookieDomain string
}

// Load は環境変数からConfigを読み込む。
// 必須の環境変数は無く、未設定の項目にはデフォルト値が適用される。
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.SessionMaxAge = getEnvInt("SESSION_MAX_AGE", 86400)

	cfg.ClassifierURL = os.Getenv("CLASSIFIER_URL")
	cfg.ClassifierTimeout = getEnvDuration("CLASSIFIER_TIMEOUT", 10*time.Second)
	cfg.ClassifierMaxSize = getEnvInt64("CLASSIFIER_MAX_SIZE", 1048576)

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.ReplyModel = getEnvString("REPLY_MODEL", "gpt-4o-mini")

	cfg.MeditationFeedURL = os.Getenv("MEDITATION_FEED_URL")
	cfg.SuggestCacheTTL = getEnvDuration("SUGGEST_CACHE_TTL", 30*time.Minute)
	cfg.SuggestMaxItems = getEnvInt("SUGGEST_MAX_ITEMS", 5)

	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitClassify = getEnvInt("RATE_LIMIT_CLASSIFY", 20)

	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")
	cfg.CookieSecure = getEnvBool("COOKIE_SECURE", false)
	cfg.CookieDomain = getEnvString("COOKIE_DOMAIN", "")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
