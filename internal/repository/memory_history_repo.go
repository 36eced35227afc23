package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hitoshi/kokoro/internal/model"
)

// MemoryHistoryRepo はHistoryRepositoryのインメモリ実装。
// RWMutexで保護され、複数セッションが同一ストアを共有しても
// (username, date) キー単位のUpsertは原子的に行われる。
type MemoryHistoryRepo struct {
	mu sync.RWMutex
	// users はusername → (date → record) の二段マップ。
	// ユーザーエントリは初回Upsert時に遅延生成される。
	users map[string]map[model.Date]*model.DayRecord
}

// NewMemoryHistoryRepo はMemoryHistoryRepoの新しいインスタンスを生成する。
func NewMemoryHistoryRepo() *MemoryHistoryRepo {
	return &MemoryHistoryRepo{
		users: make(map[string]map[model.Date]*model.DayRecord),
	}
}

// Upsert は (username, date) のレコードを置き換える。
// 後勝ち（last-write-wins）の置換であり、マージではない。
// 例外は日記のみ: record.Journalがnilの場合は既存の日記を保持する。
// 不正なusername/dateはプログラマエラーとしてエラーを返す
// （呼び出し元で検証済みであるべき）。
func (r *MemoryHistoryRepo) Upsert(ctx context.Context, username string, record *model.DayRecord) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if record == nil {
		return fmt.Errorf("record is required")
	}
	if !record.Date.IsValid() {
		return fmt.Errorf("invalid calendar date: %+v", record.Date)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	history, ok := r.users[username]
	if !ok {
		history = make(map[model.Date]*model.DayRecord)
		r.users[username] = history
	}

	now := time.Now()
	stored := *record
	stored.UpdatedAt = now

	if existing, ok := history[record.Date]; ok {
		stored.CreatedAt = existing.CreatedAt
		// 日記保持ポリシー: 新しい書き込みが日記を省略した場合は既存を維持する
		if stored.Journal == nil {
			stored.Journal = existing.Journal
		}
	} else {
		stored.CreatedAt = now
	}

	history[record.Date] = &stored
	return nil
}

// Find は指定日のレコードのコピーを返す。存在しない場合はnil。
func (r *MemoryHistoryRepo) Find(ctx context.Context, username string, date model.Date) (*model.DayRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	record, ok := history[date]
	if !ok {
		return nil, nil
	}

	c := cloneRecord(record)
	return &c, nil
}

// FindAllByUser は全レコードのコピーを日付昇順で返す。
// 未登録ユーザーには空スライスを返す。
func (r *MemoryHistoryRepo) FindAllByUser(ctx context.Context, username string) ([]model.DayRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history, ok := r.users[username]
	if !ok {
		return []model.DayRecord{}, nil
	}

	records := make([]model.DayRecord, 0, len(history))
	for _, record := range history {
		records = append(records, cloneRecord(record))
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	return records, nil
}

// cloneRecord はレコードの独立したコピーを作る。
// 呼び出し元にストア内部の構造体を共有させないため。
func cloneRecord(record *model.DayRecord) model.DayRecord {
	c := *record
	if record.Journal != nil {
		j := *record.Journal
		c.Journal = &j
	}
	return c
}
