package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arklim/social-platform-accounts/internal/core/domain"
	"github.com/arklim/social-platform-accounts/internal/usecase"
)

type stubAccountService struct {
	registerFn       func(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error)
	authenticateFn   func(ctx context.Context, email, password string) (*domain.Account, error)
	editProfileFn    func(ctx context.Context, input usecase.ProfileEditInput) (*domain.Account, error)
	changePasswordFn func(ctx context.Context, email, currentPassword, newPassword string) error
	deleteFn         func(ctx context.Context, id int64) (*domain.Account, error)
}

func (s *stubAccountService) Register(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAccountService) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	return s.authenticateFn(ctx, email, password)
}

func (s *stubAccountService) EditProfile(ctx context.Context, input usecase.ProfileEditInput) (*domain.Account, error) {
	return s.editProfileFn(ctx, input)
}

func (s *stubAccountService) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	return s.changePasswordFn(ctx, email, currentPassword, newPassword)
}

func (s *stubAccountService) Delete(ctx context.Context, id int64) (*domain.Account, error) {
	return s.deleteFn(ctx, id)
}

func sampleAccount() *domain.Account {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Account{
		ID:           1,
		FullName:     "Jordan Reyes",
		Username:     "jordanr",
		Email:        "jordan@example.com",
		Phone:        "01712345678",
		PasswordHash: "argon2id$v=19$m=65536,t=3,p=2$salt$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func accountRouter(service AccountOperations) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAccountHandler(service, nil)
	handler.RegisterRoutes(router.Group("/api/v1/user"))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func validSignUp() map[string]any {
	return map[string]any{
		"full_name": "Jordan Reyes",
		"username":  "jordanr",
		"email":     "jordan@example.com",
		"phone":     "01712345678",
		"password":  "Abc123!@#",
	}
}

func TestSignUp_Created(t *testing.T) {
	service := &stubAccountService{
		registerFn: func(_ context.Context, input usecase.RegisterInput) (*domain.Account, error) {
			if input.Password != "Abc123!@#" {
				t.Fatalf("unexpected password: %q", input.Password)
			}
			return sampleAccount(), nil
		},
	}

	rr := doJSON(t, accountRouter(service), http.MethodPost, "/api/v1/user/sign-up", validSignUp())

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp SignUpResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Account.Username != "jordanr" {
		t.Fatalf("unexpected username: %q", resp.Account.Username)
	}
	if bytes.Contains(rr.Body.Bytes(), []byte("argon2id")) {
		t.Fatal("response must not leak the password hash")
	}
}

func TestSignUp_DuplicateListsAllFields(t *testing.T) {
	service := &stubAccountService{
		registerFn: func(_ context.Context, _ usecase.RegisterInput) (*domain.Account, error) {
			return nil, &usecase.DuplicateIdentifierError{Fields: []string{"username", "email", "phone"}}
		},
	}

	rr := doJSON(t, accountRouter(service), http.MethodPost, "/api/v1/user/sign-up", validSignUp())

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Fields) != 3 || resp.Fields[0] != "username" || resp.Fields[2] != "phone" {
		t.Fatalf("expected ordered conflict fields, got %v", resp.Fields)
	}
}

func TestSignUp_RejectsWeakPassword(t *testing.T) {
	called := false
	service := &stubAccountService{
		registerFn: func(_ context.Context, _ usecase.RegisterInput) (*domain.Account, error) {
			called = true
			return sampleAccount(), nil
		},
	}

	body := validSignUp()
	body["password"] = "weak"
	rr := doJSON(t, accountRouter(service), http.MethodPost, "/api/v1/user/sign-up", body)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if called {
		t.Fatal("service must not run for a rejected password")
	}
}

func TestSignUp_RejectsBadShape(t *testing.T) {
	service := &stubAccountService{}
	router := accountRouter(service)

	cases := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{name: "missing full_name", mutate: func(m map[string]any) { delete(m, "full_name") }},
		{name: "long username", mutate: func(m map[string]any) {
			m["username"] = "a-very-long-username-that-exceeds-the-fifty-five-character-limit"
		}},
		{name: "bad email", mutate: func(m map[string]any) { m["email"] = "not-an-email" }},
		{name: "short phone", mutate: func(m map[string]any) { m["phone"] = "12345" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := validSignUp()
			tc.mutate(body)
			rr := doJSON(t, router, http.MethodPost, "/api/v1/user/sign-up", body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rr.Code)
			}
		})
	}
}

func TestSignIn_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "unknown email", serviceErr: usecase.ErrAccountNotFound, wantStatus: http.StatusNotFound},
		{name: "wrong password", serviceErr: usecase.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "storage down", serviceErr: usecase.ErrUnavailable, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := &stubAccountService{
				authenticateFn: func(_ context.Context, _, _ string) (*domain.Account, error) {
					return nil, tc.serviceErr
				},
			}

			rr := doJSON(t, accountRouter(service), http.MethodPost, "/api/v1/user/sign-in", map[string]any{
				"email":    "jordan@example.com",
				"password": "Abc123!@#",
			})
			if rr.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rr.Code)
			}
		})
	}
}

func TestSignIn_ReturnsOnlineAccount(t *testing.T) {
	service := &stubAccountService{
		authenticateFn: func(_ context.Context, email, _ string) (*domain.Account, error) {
			account := sampleAccount()
			account.Online = true
			return account, nil
		},
	}

	rr := doJSON(t, accountRouter(service), http.MethodPost, "/api/v1/user/sign-in", map[string]any{
		"email":    "jordan@example.com",
		"password": "Abc123!@#",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp SignInResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Account.Online {
		t.Fatal("expected online account in response")
	}
}

func TestChangePassword_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "email not found", serviceErr: usecase.ErrAccountNotFound, wantStatus: http.StatusNotFound},
		{name: "current mismatch", serviceErr: usecase.ErrPasswordMismatch, wantStatus: http.StatusUnauthorized},
		{name: "unchanged", serviceErr: usecase.ErrPasswordUnchanged, wantStatus: http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := &stubAccountService{
				changePasswordFn: func(_ context.Context, _, _, _ string) error {
					return tc.serviceErr
				},
			}

			rr := doJSON(t, accountRouter(service), http.MethodPost, "/api/v1/user/password/change", map[string]any{
				"email":            "jordan@example.com",
				"current_password": "Abc123!@#",
				"new_password":     "Xyz789!@#",
			})
			if rr.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rr.Code)
			}
		})
	}
}

func TestDelete_Statuses(t *testing.T) {
	deletedAt := time.Now().UTC()

	service := &stubAccountService{
		deleteFn: func(_ context.Context, id int64) (*domain.Account, error) {
			switch id {
			case 1:
				account := sampleAccount()
				account.DeletedAt = &deletedAt
				return account, nil
			case 2:
				return nil, usecase.ErrAlreadyDeleted
			default:
				return nil, usecase.ErrAccountNotFound
			}
		},
	}
	router := accountRouter(service)

	rr := doJSON(t, router, http.MethodDelete, "/api/v1/user/1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp DeleteResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Account.IsDeleted {
		t.Fatal("expected is_deleted true in response")
	}

	if rr := doJSON(t, router, http.MethodDelete, "/api/v1/user/2", nil); rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for repeat delete, got %d", rr.Code)
	}
	if rr := doJSON(t, router, http.MethodDelete, "/api/v1/user/99", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", rr.Code)
	}
	if rr := doJSON(t, router, http.MethodDelete, "/api/v1/user/abc", nil); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rr.Code)
	}
}

func TestEditProfile_PartialBody(t *testing.T) {
	service := &stubAccountService{
		editProfileFn: func(_ context.Context, input usecase.ProfileEditInput) (*domain.Account, error) {
			if input.FullName != nil {
				t.Fatal("absent full_name must stay nil")
			}
			if input.Country == nil || *input.Country != "BD" {
				t.Fatalf("expected country BD, got %v", input.Country)
			}
			account := sampleAccount()
			account.Country = input.Country
			return account, nil
		},
	}

	rr := doJSON(t, accountRouter(service), http.MethodPatch, "/api/v1/user/profile", map[string]any{
		"id":      1,
		"country": "BD",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
}
