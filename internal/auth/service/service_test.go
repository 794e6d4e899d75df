package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/capstore/capstore/internal/auth/domain"
	"github.com/capstore/capstore/internal/auth/repository"
	"github.com/capstore/capstore/internal/clock"
)

func newTestService(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&domain.User{}, &domain.Session{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	svc := NewService(Params{
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       clk,
		Repo:        repository.NewRepository(gdb),
		SessionRepo: repository.NewSessionRepository(gdb),
	})
	return svc, clk
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, domain.RegisterRequest{
		Email:       "Jane@Example.com",
		DisplayName: "Jane",
		Password:    "correct horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "jane@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}

	result, err := svc.Login(ctx, domain.LoginRequest{Email: "jane@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.RawToken == "" {
		t.Fatal("expected a session token")
	}

	session, err := svc.Authenticate(ctx, result.RawToken)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if session.UserID != user.ID {
		t.Fatalf("session user = %v, want %v", session.UserID, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := domain.RegisterRequest{Email: "dup@example.com", Password: "password1"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, req); err != domain.ErrUserExists {
		t.Fatalf("err = %v, want ErrUserExists", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{Email: "a@b.com", Password: "short"})
	if err != domain.ErrPasswordTooShort {
		t.Fatalf("err = %v, want ErrPasswordTooShort", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, domain.RegisterRequest{Email: "a@b.com", Password: "password1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Login(ctx, domain.LoginRequest{Email: "a@b.com", Password: "password2"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, domain.LoginRequest{Email: "nobody@b.com", Password: "password1"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticateExpiredSession(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, domain.RegisterRequest{Email: "a@b.com", Password: "password1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	result, err := svc.Login(ctx, domain.LoginRequest{Email: "a@b.com", Password: "password1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	clk.Advance(8 * 24 * time.Hour)
	if _, err := svc.Authenticate(ctx, result.RawToken); err != domain.ErrSessionExpired {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, domain.RegisterRequest{Email: "a@b.com", Password: "password1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	result, err := svc.Login(ctx, domain.LoginRequest{Email: "a@b.com", Password: "password1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(ctx, result.RawToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Authenticate(ctx, result.RawToken); err != domain.ErrSessionRevoked {
		t.Fatalf("err = %v, want ErrSessionRevoked", err)
	}

	// Logging out an unknown token is a no-op.
	if err := svc.Logout(ctx, "bogus"); err != nil {
		t.Fatalf("logout unknown token: %v", err)
	}
}
