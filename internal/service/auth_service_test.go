package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"ansxtra/internal/repository"
	"ansxtra/internal/store"
)

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.auth.Login(ctx, "650123@student.amnuaysilpa.ac.th")
	if err != nil {
		t.Fatalf("Login err = %v", err)
	}
	if res.Session.Email != "650123@student.amnuaysilpa.ac.th" {
		t.Errorf("session email = %q", res.Session.Email)
	}
	if res.Session.FullName != "Suphansa Chareonsuk" || res.Session.StudentID != "650123" {
		t.Errorf("session = %+v, want roster record", res.Session)
	}
	if !res.Session.IsAuthenticated {
		t.Error("session not authenticated")
	}
	if res.Tokens == nil || res.Tokens.AccessToken == "" || res.Tokens.RefreshToken == "" {
		t.Error("token pair missing")
	}

	// 登录之后可以恢复会话
	restored, err := env.auth.Restore(ctx, res.Session.Email)
	if err != nil || restored == nil {
		t.Fatalf("Restore = %+v, %v", restored, err)
	}
	if *restored != *res.Session {
		t.Errorf("Restore = %+v, want %+v", restored, res.Session)
	}
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		email string
		want  error
	}{
		{"", ErrEmailRequired},
		{"   ", ErrEmailRequired},
		{"foo@gmail.com", ErrInvalidDomain},
		{"teacher@amnuaysilpa.ac.th", ErrInvalidDomain},
		{"ghost@student.amnuaysilpa.ac.th", ErrStudentNotFound},
	}
	for _, c := range cases {
		_, err := env.auth.Login(ctx, c.email)
		if !errors.Is(err, c.want) {
			t.Errorf("Login(%q) err = %v, want %v", c.email, err, c.want)
		}
	}

	// 域名错误的提示里要带上要求的后缀
	_, err := env.auth.Login(ctx, "foo@gmail.com")
	if !strings.Contains(err.Error(), StudentEmailSuffix) {
		t.Errorf("domain error %q does not mention %q", err, StudentEmailSuffix)
	}
}

// 名册开关关闭时，显示名由邮箱本地部分推导
func TestLoginWithoutRoster(t *testing.T) {
	kv := store.NewMemory()
	cat := loadTestCatalog(t)
	auth := NewAuthService(repository.NewSessionRepository(kv), cat, false)

	res, err := auth.Login(context.Background(), "somchai.p@student.amnuaysilpa.ac.th")
	if err != nil {
		t.Fatalf("Login err = %v", err)
	}
	if res.Session.FullName != "Somchai P" {
		t.Errorf("derived name = %q, want %q", res.Session.FullName, "Somchai P")
	}
	if res.Session.StudentID != "somchai.p" {
		t.Errorf("studentId = %q, want local part", res.Session.StudentID)
	}
}

// logout 后回到未登录态，再次 logout 也不报错
func TestLogoutRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.auth.Login(ctx, "650123@student.amnuaysilpa.ac.th")
	if err != nil {
		t.Fatalf("Login err = %v", err)
	}

	if err := env.auth.Logout(ctx, res.Session.StudentID, res.Session.Email); err != nil {
		t.Fatalf("Logout err = %v", err)
	}

	restored, err := env.auth.Restore(ctx, res.Session.Email)
	if err != nil {
		t.Fatalf("Restore err = %v", err)
	}
	if restored != nil {
		t.Fatalf("Restore after logout = %+v, want nil", restored)
	}

	if err := env.auth.Logout(ctx, res.Session.StudentID, res.Session.Email); err != nil {
		t.Fatalf("Logout(again) err = %v", err)
	}
}

// 损坏的会话记录按未登录处理，并被清掉
func TestRestoreCorruptSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	email := "650123@student.amnuaysilpa.ac.th"

	key := fmt.Sprintf("%s:%s", repository.SessionPrefix, email)
	_ = env.kv.Put(ctx, key, []byte("{half a record"), 0)

	restored, err := env.auth.Restore(ctx, email)
	if err != nil {
		t.Fatalf("Restore err = %v", err)
	}
	if restored != nil {
		t.Fatalf("Restore of corrupt record = %+v, want nil", restored)
	}
	if _, err := env.kv.Get(ctx, key); !errors.Is(err, store.ErrNotFound) {
		t.Error("corrupt session record not cleared")
	}
}

func TestRefreshRotatesStoredToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.auth.Login(ctx, "650123@student.amnuaysilpa.ac.th")
	if err != nil {
		t.Fatalf("Login err = %v", err)
	}

	tokens, err := env.auth.Refresh(ctx, res.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh err = %v", err)
	}
	if tokens.AccessToken == "" {
		t.Fatal("Refresh returned empty access token")
	}

	sessions := repository.NewSessionRepository(env.kv)
	stored, err := sessions.GetToken(ctx, res.Session.StudentID)
	if err != nil {
		t.Fatalf("GetToken err = %v", err)
	}
	if stored != tokens.AccessToken {
		t.Error("stored token not rotated to the refreshed access token")
	}

	_, err = env.auth.Refresh(ctx, "not-a-token")
	if err == nil {
		t.Fatal("Refresh(garbage) err = nil, want error")
	}
}
