package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"

	"github.com/EgorLis/doc-gateway/internal/auth/password"
	"github.com/EgorLis/doc-gateway/internal/auth/token"
	"github.com/EgorLis/doc-gateway/internal/domain"
)

type fakeUsers struct {
	byLogin map[string]domain.User
}

func (f *fakeUsers) Close()                    {}
func (f *fakeUsers) Ping(context.Context) error { return nil }
func (f *fakeUsers) CreateUser(_ context.Context, login, passHash, role string) (domain.User, error) {
	u := domain.User{ID: uuid.New(), Login: login, Role: role, Enabled: true, PassHash: []byte(passHash)}
	f.byLogin[login] = u
	return u, nil
}
func (f *fakeUsers) UserByLogin(_ context.Context, login string) (domain.User, error) {
	u, ok := f.byLogin[login]
	if !ok {
		return domain.User{}, fmt.Errorf("%w: %s", domain.ErrNotFound, login)
	}
	return u, nil
}
func (f *fakeUsers) UserByID(context.Context, domain.UserID) (domain.User, error) {
	return domain.User{}, domain.ErrNotFound
}

func newTokenHandler(t *testing.T) (*HandlerToken, *token.Manager) {
	t.Helper()
	hash, err := argon2id.CreateHash("Correct1Pass", argon2id.DefaultParams)
	if err != nil {
		t.Fatal(err)
	}
	users := &fakeUsers{byLogin: map[string]domain.User{
		"alice": {ID: uuid.New(), Login: "alice", Role: "user", Enabled: true, PassHash: []byte(hash)},
		"mallory": {ID: uuid.New(), Login: "mallory", Role: "user", Enabled: false, PassHash: []byte(hash)},
	}}
	tm := token.New("test-secret", "doc-gateway", 30*time.Minute)
	h := &HandlerToken{
		Log:    log.New(io.Discard, "", 0),
		Users:  users,
		Hasher: password.NewDefault(),
		Tokens: tm,
	}
	return h, tm
}

func postForm(h *HandlerToken, username, pass string) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {pass}}
	r := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.Token(w, r)
	return w
}

func TestToken_ValidCredentials(t *testing.T) {
	h, tm := newTokenHandler(t)

	w := postForm(h, "alice", "Correct1Pass")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.TokenType != "bearer" {
		t.Errorf("token_type = %q, want bearer", resp.TokenType)
	}

	// выданный токен должен проходить нашу же валидацию
	claims, err := tm.Parse(context.Background(), domain.Token(resp.AccessToken))
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Login != "alice" || claims.Role != "user" {
		t.Errorf("claims = %+v", claims)
	}
	if ttl := time.Until(claims.ExpiresAt); ttl < 29*time.Minute || ttl > 30*time.Minute {
		t.Errorf("ttl = %v, want ~30m", ttl)
	}
}

func TestToken_JSONBody(t *testing.T) {
	h, _ := newTokenHandler(t)

	body := `{"username":"alice","password":"Correct1Pass"}`
	r := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Token(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body.String())
	}
}

// Неизвестный логин, неверный пароль и выключенный пользователь наружу
// неразличимы: одинаковый 401
func TestToken_Rejections(t *testing.T) {
	h, _ := newTokenHandler(t)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "nobody", "Correct1Pass"},
		{"wrong password", "alice", "WrongPass99"},
		{"disabled user", "mallory", "Correct1Pass"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postForm(h, tc.username, tc.password)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestToken_EmptyFields(t *testing.T) {
	h, _ := newTokenHandler(t)

	w := postForm(h, "", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
