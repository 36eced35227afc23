package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hitoshi/kokoro/internal/model"
)

// MemorySessionRepo はSessionRepositoryのインメモリ実装。
// 期限切れセッションはFindByID時に削除される（遅延クリーンアップ）。
type MemorySessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
}

// NewMemorySessionRepo はMemorySessionRepoの新しいインスタンスを生成する。
func NewMemorySessionRepo() *MemorySessionRepo {
	return &MemorySessionRepo{
		sessions: make(map[string]*model.Session),
	}
}

// Create はセッションを保存する。
func (r *MemorySessionRepo) Create(ctx context.Context, session *model.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("session ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c := *session
	r.sessions[session.ID] = &c
	return nil
}

// FindByID はセッションIDでセッションを検索する。
// 存在しない、または期限切れの場合はnilを返す。
func (r *MemorySessionRepo) FindByID(ctx context.Context, id string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	if time.Now().After(session.ExpiresAt) {
		delete(r.sessions, id)
		return nil, nil
	}

	c := *session
	return &c, nil
}

// DeleteByID はセッションを削除する。存在しない場合も成功扱い。
func (r *MemorySessionRepo) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}
