package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/hitoshi/kokoro/internal/model"
)

// MemoryUserRepo はUserRepositoryのインメモリ実装。
type MemoryUserRepo struct {
	mu         sync.RWMutex
	byID       map[string]*model.User
	byUsername map[string]*model.User
}

// NewMemoryUserRepo はMemoryUserRepoの新しいインスタンスを生成する。
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{
		byID:       make(map[string]*model.User),
		byUsername: make(map[string]*model.User),
	}
}

// FindByUsername はユーザー名でユーザーを検索する。未登録の場合はnilを返す。
func (r *MemoryUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byUsername[username]
	if !ok {
		return nil, nil
	}
	c := *user
	return &c, nil
}

// FindByID はIDでユーザーを検索する。存在しない場合はnilを返す。
func (r *MemoryUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	c := *user
	return &c, nil
}

// Create はユーザーを登録する。ユーザー名の重複はエラー。
func (r *MemoryUserRepo) Create(ctx context.Context, user *model.User) error {
	if user == nil || user.ID == "" || user.Username == "" {
		return fmt.Errorf("user ID and username are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[user.Username]; exists {
		return fmt.Errorf("username already exists: %s", user.Username)
	}

	c := *user
	r.byID[user.ID] = &c
	r.byUsername[user.Username] = &c
	return nil
}
