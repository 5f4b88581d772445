package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bucketchat/api/internal/core/domain"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, username, password string) (string, error)
	loginFn  func(ctx context.Context, username, password string) (string, error)
}

func (s *stubAuthService) Signup(ctx context.Context, username, password string) (string, error) {
	return s.signupFn(ctx, username, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func assertHTTPError(t *testing.T, err error, code int, msg string) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d", code, he.Code)
	}
	if he.Message != msg {
		t.Fatalf("expected message %q, got %v", msg, he.Message)
	}
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, password string) (string, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/signup", `{"username":"alice","password":"secret"}`)
	if err := handler.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Signup_FormBody(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, password string) (string, error) {
			if username != "carol" || password != "pw" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "tok", nil
		},
	}
	handler := NewAuthHandler(stub)

	e := echo.New()
	e.Validator = NewValidator()
	form := url.Values{"username": {"carol"}, "password": {"pw"}}
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	if err := handler.Signup(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svcErr   error
		wantCode int
		wantMsg  string
	}{
		{"missing password", `{"username":"alice"}`, nil, http.StatusBadRequest, "Missing username or password."},
		{"not json", `not-json`, nil, http.StatusBadRequest, "Missing username or password."},
		{"offensive", `{"username":"x","password":"y"}`, domain.ErrOffensiveContent, http.StatusBadRequest, "Invalid username."},
		{"exists", `{"username":"x","password":"y"}`, domain.ErrUserExists, http.StatusConflict, "User already exists."},
		{"store failure", `{"username":"x","password":"y"}`, errors.New("bucket down"), http.StatusInternalServerError, "Unable to create user."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubAuthService{
				signupFn: func(ctx context.Context, username, password string) (string, error) {
					if tt.svcErr == nil {
						t.Fatalf("should not be called")
					}
					return "", tt.svcErr
				},
			}
			c, _ := newTestContext(http.MethodPost, "/signup", tt.body)
			assertHTTPError(t, NewAuthHandler(stub).Signup(c), tt.wantCode, tt.wantMsg)
		})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/login", `{"username":"alice","password":"secret"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svcErr   error
		wantCode int
		wantMsg  string
	}{
		{"missing username", `{"password":"pwd"}`, nil, http.StatusBadRequest, "Missing username or password."},
		{"not found", `{"username":"ghost","password":"pwd"}`, domain.ErrUserNotFound, http.StatusNotFound, "User not found."},
		{"bad password", `{"username":"alice","password":"bad"}`, domain.ErrInvalidCredentials, http.StatusUnauthorized, "Incorrect username or password."},
		{"corrupt record", `{"username":"alice","password":"pwd"}`, domain.ErrCorruptRecord, http.StatusInternalServerError, "Unable to retrieve user."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubAuthService{
				loginFn: func(ctx context.Context, username, password string) (string, error) {
					if tt.svcErr == nil {
						t.Fatalf("should not be called")
					}
					return "", tt.svcErr
				},
			}
			c, _ := newTestContext(http.MethodPost, "/login", tt.body)
			assertHTTPError(t, NewAuthHandler(stub).Login(c), tt.wantCode, tt.wantMsg)
		})
	}
}
