package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	authdomain "github.com/capstore/capstore/internal/auth/domain"
	"github.com/capstore/capstore/internal/auth/session"
	"github.com/capstore/capstore/internal/config"
)

type fakeAuthService struct {
	registerCalls int
	loginCalls    int
	logoutCalls   int
	loginErr      error
	authErr       error
	lastLoginReq  authdomain.LoginRequest
}

func (f *fakeAuthService) Register(ctx context.Context, req authdomain.RegisterRequest) (*authdomain.User, error) {
	f.registerCalls++
	_ = ctx
	return &authdomain.User{
		ID:          snowflake.ID(200),
		Email:       req.Email,
		DisplayName: req.DisplayName,
	}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	f.loginCalls++
	f.lastLoginReq = req
	_ = ctx
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &authdomain.LoginResult{
		UserID:    snowflake.ID(200),
		SessionID: snowflake.ID(300),
		RawToken:  "session-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, rawToken string) error {
	f.logoutCalls++
	_ = ctx
	_ = rawToken
	return nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, rawToken string) (*authdomain.Session, error) {
	_ = ctx
	_ = rawToken
	if f.authErr != nil {
		return nil, f.authErr
	}
	return &authdomain.Session{
		ID:     snowflake.ID(300),
		UserID: snowflake.ID(200),
	}, nil
}

func (f *fakeAuthService) GetUser(ctx context.Context, id snowflake.ID) (*authdomain.User, error) {
	_ = ctx
	return &authdomain.User{
		ID:          id,
		Email:       "alice@example.com",
		DisplayName: "Alice",
	}, nil
}

func newAuthTestServer(svc *fakeAuthService) (*Server, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	srv := &Server{
		cfg:      config.Config{},
		authsvc:  svc,
		sessions: session.NewManager(config.Config{}),
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/auth/register", srv.Register)
	router.POST("/auth/login", srv.Login)
	router.POST("/auth/logout", srv.Logout)
	router.GET("/auth/me", srv.AuthRequired(), srv.Me)

	return srv, router
}

func TestLoginHandlerSetsSessionCookie(t *testing.T) {
	svc := &fakeAuthService{}
	_, router := newAuthTestServer(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":"alice@example.com","password":"hunter22"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.loginCalls != 1 {
		t.Fatalf("expected one login call, got %d", svc.loginCalls)
	}

	var cookie *http.Cookie
	for _, c := range resp.Result().Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected session cookie to be set")
	}
	if cookie.Value != "session-token" {
		t.Fatalf("expected raw token in cookie, got %q", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Fatal("expected HttpOnly session cookie")
	}
}

func TestLoginHandlerInvalidCredentialsReturns401(t *testing.T) {
	svc := &fakeAuthService{loginErr: authdomain.ErrInvalidCredentials}
	_, router := newAuthTestServer(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":"alice@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d: %s", resp.Code, resp.Body.String())
	}

	var body errorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Type != "unauthorized" {
		t.Fatalf("expected unauthorized error type, got %q", body.Error.Type)
	}
}

func TestRegisterHandlerRejectsMalformedBody(t *testing.T) {
	svc := &fakeAuthService{}
	_, router := newAuthTestServer(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(`{"email":`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if svc.registerCalls != 0 {
		t.Fatal("expected register service not to be called")
	}
}

func TestAuthRequiredRejectsMissingCookie(t *testing.T) {
	_, router := newAuthTestServer(&fakeAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestAuthRequiredExpiredSessionReturns401(t *testing.T) {
	svc := &fakeAuthService{authErr: authdomain.ErrSessionExpired}
	_, router := newAuthTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "stale-token"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestMeReturnsAuthenticatedUser(t *testing.T) {
	_, router := newAuthTestServer(&fakeAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "session-token"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Data userResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data.Email != "alice@example.com" {
		t.Fatalf("expected authenticated user's email, got %q", body.Data.Email)
	}
}

func TestLogoutWithoutSessionIsNoOp(t *testing.T) {
	svc := &fakeAuthService{}
	_, router := newAuthTestServer(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if svc.logoutCalls != 0 {
		t.Fatal("expected logout service not to be called without a cookie")
	}
}
