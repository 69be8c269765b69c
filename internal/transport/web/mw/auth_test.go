package mw

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/EgorLis/doc-gateway/internal/auth/token"
	"github.com/EgorLis/doc-gateway/internal/domain"
)

type fakeUsers struct {
	users map[string]domain.User
}

func (f *fakeUsers) UserByLogin(_ context.Context, login string) (domain.User, error) {
	u, ok := f.users[login]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

type fakeBlacklist struct {
	revoked map[string]bool
}

func (f *fakeBlacklist) Revoke(_ context.Context, jti string, _ time.Time) error {
	f.revoked[jti] = true
	return nil
}

func (f *fakeBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	return f.revoked[jti], nil
}

func testDeps(t *testing.T) (AuthDeps, domain.User, domain.Token) {
	t.Helper()
	u := domain.User{ID: uuid.New(), Login: "testuser", Role: "analyst", Enabled: true}
	tm := token.New("test-secret", "doc-gateway", 30*time.Minute)
	raw, _, err := tm.Issue(context.Background(), u)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	deps := AuthDeps{
		Tokens:    tm,
		Blacklist: &fakeBlacklist{revoked: map[string]bool{}},
		Users:     &fakeUsers{users: map[string]domain.User{u.Login: u}},
	}
	return deps, u, raw
}

func authedStatus(deps AuthDeps, req *http.Request) (int, bool) {
	var gotUser bool
	h := RequireAuth(deps, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotUser = UserFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code, gotUser
}

// Токен принимается одинаково из заголовка и из query-параметра.
func TestRequireAuth_ChannelInvariant(t *testing.T) {
	deps, _, raw := testDeps(t)

	viaHeader := httptest.NewRequest(http.MethodGet, "/api/file?doc_id=x", nil)
	viaHeader.Header.Set("Authorization", "Bearer "+string(raw))

	viaQuery := httptest.NewRequest(http.MethodGet, "/api/file?doc_id=x&token="+string(raw), nil)

	for name, req := range map[string]*http.Request{"header": viaHeader, "query": viaQuery} {
		code, gotUser := authedStatus(deps, req)
		if code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", name, code)
		}
		if !gotUser {
			t.Errorf("%s: пользователь не попал в контекст", name)
		}
	}
}

// При наличии обоих каналов побеждает заголовок.
func TestRequireAuth_HeaderPrecedence(t *testing.T) {
	deps, _, raw := testDeps(t)

	req := httptest.NewRequest(http.MethodGet, "/api/file?token=garbage", nil)
	req.Header.Set("Authorization", "Bearer "+string(raw))

	if code, _ := authedStatus(deps, req); code != http.StatusOK {
		t.Errorf("status = %d, want 200 (заголовок должен перекрывать query)", code)
	}
}

func TestRequireAuth_Failures(t *testing.T) {
	deps, _, _ := testDeps(t)

	expired := token.New("test-secret", "doc-gateway", -time.Minute)
	expiredRaw, _, _ := expired.Issue(context.Background(), domain.User{ID: uuid.New(), Login: "testuser"})

	otherKey := token.New("other-secret", "doc-gateway", 30*time.Minute)
	forgedRaw, _, _ := otherKey.Issue(context.Background(), domain.User{ID: uuid.New(), Login: "testuser"})

	unknownUser, _, _ := token.New("test-secret", "doc-gateway", 30*time.Minute).
		Issue(context.Background(), domain.User{ID: uuid.New(), Login: "ghost"})

	tests := []struct {
		name  string
		token string
	}{
		{"без токена", ""},
		{"мусор", "not.a.jwt"},
		{"истёкший", string(expiredRaw)},
		{"чужая подпись", string(forgedRaw)},
		{"неизвестный subject", string(unknownUser)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/file", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			code, gotUser := authedStatus(deps, req)
			// любой отказ — единый 401
			if code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", code)
			}
			if gotUser {
				t.Error("пользователь не должен попадать в контекст")
			}
		})
	}
}

// Отозванный токен отклоняется до истечения exp.
func TestRequireAuth_Revoked(t *testing.T) {
	deps, _, raw := testDeps(t)

	claims, err := deps.Tokens.Parse(context.Background(), raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := deps.Blacklist.Revoke(context.Background(), claims.JTI, claims.ExpiresAt); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/file", nil)
	req.Header.Set("Authorization", "Bearer "+string(raw))
	if code, _ := authedStatus(deps, req); code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 для отозванного токена", code)
	}
}

// Выключенный пользователь получает тот же 401, что и все отказы.
func TestRequireAuth_DisabledUser(t *testing.T) {
	deps, u, raw := testDeps(t)
	u.Enabled = false
	deps.Users = &fakeUsers{users: map[string]domain.User{u.Login: u}}

	req := httptest.NewRequest(http.MethodGet, "/api/file", nil)
	req.Header.Set("Authorization", "Bearer "+string(raw))
	if code, _ := authedStatus(deps, req); code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 для выключенного пользователя", code)
	}
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?token=qtoken", nil)
	if got := TokenFromRequest(r); got != "qtoken" {
		t.Errorf("query: got %q", got)
	}

	r.Header.Set("Authorization", "Bearer htoken")
	if got := TokenFromRequest(r); got != "htoken" {
		t.Errorf("приоритет заголовка: got %q", got)
	}

	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := TokenFromRequest(r2); got != "" {
		t.Errorf("пустой запрос: got %q", got)
	}
}
