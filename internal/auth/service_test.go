package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/hitoshi/kokoro/internal/model"
	"github.com/hitoshi/kokoro/internal/repository"
)

func newTestService() *Service {
	return NewService(
		repository.NewMemoryUserRepo(),
		repository.NewMemorySessionRepo(),
		ServiceConfig{SessionMaxAge: 3600},
	)
}

// TestService_LoginCreatesUser は初回ログインでユーザーが自動登録されることを検証する。
func TestService_LoginCreatesUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	session, err := svc.Login(ctx, "alice")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if session.Username != "alice" {
		t.Errorf("Username = %q, want alice", session.Username)
	}
	if session.ID == "" || session.UserID == "" {
		t.Errorf("session fields missing: %+v", session)
	}
	// 32バイトのhexエンコード
	if len(session.ID) != 64 {
		t.Errorf("len(session.ID) = %d, want 64", len(session.ID))
	}

	user, err := svc.GetCurrentUser(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetCurrentUser returned error: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("user.Username = %q, want alice", user.Username)
	}
}

// TestService_LoginExistingUserKeepsID は再ログインでユーザーIDが
// 変わらないことを検証する。
func TestService_LoginExistingUserKeepsID(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Login(ctx, "alice")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	second, err := svc.Login(ctx, "alice")
	if err != nil {
		t.Fatalf("second Login returned error: %v", err)
	}

	if first.UserID != second.UserID {
		t.Errorf("UserID changed: %s -> %s", first.UserID, second.UserID)
	}
	if first.ID == second.ID {
		t.Error("セッションIDが再利用されています")
	}
}

// TestService_LoginTrimsWhitespace はユーザー名の前後空白が
// 除去されることを検証する。
func TestService_LoginTrimsWhitespace(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	session, err := svc.Login(ctx, "  alice  ")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if session.Username != "alice" {
		t.Errorf("Username = %q, want alice", session.Username)
	}
}

// TestService_LoginInvalidUsername は不正なユーザー名がエラーになることを検証する。
func TestService_LoginInvalidUsername(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
	}{
		{"空文字列", ""},
		{"空白のみ", "   "},
		{"長すぎる", strings.Repeat("a", 65)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tc.username)
			if err == nil {
				t.Fatal("エラーが返りません")
			}
			apiErr, ok := err.(*model.APIError)
			if !ok {
				t.Fatalf("err = %T, want *model.APIError", err)
			}
			if apiErr.Code != model.ErrCodeInvalidUsername {
				t.Errorf("Code = %s, want %s", apiErr.Code, model.ErrCodeInvalidUsername)
			}
		})
	}
}

// TestService_LogoutInvalidatesSession はログアウト後のセッションが
// 無効になることを検証する。
func TestService_LogoutInvalidatesSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	session, err := svc.Login(ctx, "alice")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if err := svc.Logout(ctx, session.ID); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	if _, err := svc.GetCurrentUser(ctx, session.ID); err == nil {
		t.Error("ログアウト後もセッションが有効です")
	}
}

// TestService_GetCurrentUserUnknownSession は不明なセッションIDが
// Unauthorizedになることを検証する。
func TestService_GetCurrentUserUnknownSession(t *testing.T) {
	svc := newTestService()

	_, err := svc.GetCurrentUser(context.Background(), "no-such-session")
	if err == nil {
		t.Fatal("エラーが返りません")
	}
	apiErr, ok := err.(*model.APIError)
	if !ok {
		t.Fatalf("err = %T, want *model.APIError", err)
	}
	if apiErr.Code != model.ErrCodeUnauthorized {
		t.Errorf("Code = %s, want %s", apiErr.Code, model.ErrCodeUnauthorized)
	}
}
