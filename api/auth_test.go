package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillsphere/backend/api"
	"github.com/skillsphere/backend/pkg/models"
	"github.com/skillsphere/backend/pkg/repository/mock"
)

func TestAuthHandlers(t *testing.T) {
	secret := "testsecret"
	tokenDur := 1 * time.Hour

	checkToken := func(t *testing.T, b []byte) {
		var ar struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(b, &ar); err != nil {
			t.Fatalf("unmarshal token: %v", err)
		}
		if ar.Token == "" {
			t.Fatalf("empty token")
		}
		if _, err := jwt.Parse(ar.Token, func(token *jwt.Token) (any, error) { return []byte(secret), nil }); err != nil {
			t.Fatalf("invalid token: %v", err)
		}
	}

	tests := []struct {
		name       string
		path       string
		body       any
		prepare    func(m *mock.Mocks)
		wantStatus int
		checkBody  func(t *testing.T, body []byte)
	}{
		{
			name:       "Signup_InvalidRequest",
			path:       "/signup",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signup_MissingFields_Email",
			path:       "/signup",
			body:       map[string]string{"password": "longenough"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signup_MissingFields_Password",
			path:       "/signup",
			body:       map[string]string{"email": "alice@example.com"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signup_InvalidEmail",
			path:       "/signup",
			body:       map[string]string{"email": "not-an-email", "password": "longenough"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signup_ShortPassword",
			path:       "/signup",
			body:       map[string]string{"email": "alice@example.com", "password": "short"},
			wantStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, b []byte) {
				if !bytes.Contains(b, []byte("at least 8 characters")) {
					t.Fatalf("unexpected body: %s", string(b))
				}
			},
		},
		{
			name:       "Signup_Success",
			path:       "/signup",
			body:       map[string]string{"email": "alice@example.com", "password": "longenough"},
			wantStatus: http.StatusCreated,
			checkBody:  checkToken,
		},
		{
			name: "Signup_DuplicateEmail",
			path: "/signup",
			body: map[string]string{"email": "dup@example.com", "password": "longenough"},
			prepare: func(m *mock.Mocks) {
				m.Users.Stored = &models.User{ID: 1, Email: "dup@example.com"}
			},
			wantStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, b []byte) {
				if !bytes.Contains(b, []byte("already registered")) {
					t.Fatalf("unexpected body: %s", string(b))
				}
			},
		},
		{
			name:       "Signin_InvalidRequest",
			path:       "/signin",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signin_MissingFields",
			path:       "/signin",
			body:       map[string]string{"email": "missing@example.com"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signin_MissingUser",
			path:       "/signin",
			body:       map[string]string{"email": "missing@example.com", "password": "nop"},
			wantStatus: http.StatusUnauthorized,
			checkBody: func(t *testing.T, b []byte) {
				if !bytes.Contains(b, []byte("Incorrect email or password")) {
					t.Fatalf("unexpected body: %s", string(b))
				}
			},
		},
		{
			name: "Signin_WrongPassword",
			path: "/signin",
			body: map[string]string{"email": "c@example.com", "password": "wrongpw"},
			prepare: func(m *mock.Mocks) {
				hash, _ := bcrypt.GenerateFromPassword([]byte("rightpw"), bcrypt.DefaultCost)
				m.Users.Stored = &models.User{ID: 3, Email: "c@example.com", PasswordHash: string(hash)}
			},
			wantStatus: http.StatusUnauthorized,
			checkBody: func(t *testing.T, b []byte) {
				// same message as unknown email, no account probing
				if !bytes.Contains(b, []byte("Incorrect email or password")) {
					t.Fatalf("unexpected body: %s", string(b))
				}
			},
		},
		{
			name: "Signin_Success",
			path: "/signin",
			body: map[string]string{"email": "bob@example.com", "password": "hunter22"},
			prepare: func(m *mock.Mocks) {
				hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)
				m.Users.Stored = &models.User{ID: 2, Email: "bob@example.com", PasswordHash: string(hash)}
			},
			wantStatus: http.StatusOK,
			checkBody:  checkToken,
		},
		{
			name:       "Signout_OK",
			path:       "/signout",
			wantStatus: http.StatusOK,
			checkBody: func(t *testing.T, b []byte) {
				if !bytes.Contains(b, []byte("signed out")) {
					t.Fatalf("unexpected body: %s", string(b))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			if tt.prepare != nil {
				tt.prepare(mocks)
			}
			handler := api.NewAuthHandler(mocks.Users, secret, tokenDur)

			var bodyReader io.Reader
			if tt.body != nil {
				b, _ := json.Marshal(tt.body)
				bodyReader = bytes.NewReader(b)
			}
			req := httptest.NewRequest(http.MethodPost, tt.path, bodyReader)
			w := httptest.NewRecorder()

			switch tt.path {
			case "/signup":
				handler.Signup(w, req)
			case "/signin":
				handler.Signin(w, req)
			case "/signout":
				handler.Signout(w, req)
			default:
				t.Fatalf("unknown path %s", tt.path)
			}

			resp := w.Result()
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", resp.StatusCode, tt.wantStatus, string(body))
			}
			if tt.checkBody != nil {
				tt.checkBody(t, body)
			}
		})
	}
}

func TestSignupTokenCarriesUserID(t *testing.T) {
	mocks := mock.NewMocks()
	handler := api.NewAuthHandler(mocks.Users, "testsecret", time.Hour)

	b, _ := json.Marshal(map[string]string{"email": "alice@example.com", "password": "longenough"})
	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(b))
	w := httptest.NewRecorder()
	handler.Signup(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d", w.Code)
	}

	var ar struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &ar); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	tok, err := jwt.Parse(ar.Token, func(token *jwt.Token) (any, error) { return []byte("testsecret"), nil })
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("claims type %T", tok.Claims)
	}
	if id, ok := claims["user_id"].(float64); !ok || int64(id) != 1 {
		t.Fatalf("user_id claim = %v", claims["user_id"])
	}
	if claims["email"] != "alice@example.com" {
		t.Fatalf("email claim = %v", claims["email"])
	}
}
