package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpctrl "github.com/hutarka-ai/hutarka/pkg/controller/http"
	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/hutarka-ai/hutarka/pkg/repository/memory"
	"github.com/hutarka-ai/hutarka/pkg/service/history"
	"github.com/hutarka-ai/hutarka/pkg/service/token"
	"github.com/hutarka-ai/hutarka/pkg/usecase"
	"github.com/m-mizutani/gt"
)

type stubChatClient struct {
	reply string
}

func (x *stubChatClient) Complete(ctx context.Context, msgs []model.Message) (string, error) {
	return x.reply, nil
}

func newServer(t *testing.T) *httpctrl.Server {
	t.Helper()

	mgr, err := token.New("test-secret", time.Hour)
	gt.NoError(t, err).Required()

	uc := usecase.New(memory.New(), mgr, &stubChatClient{reply: "здравствуйте"}, history.NewMemoryStore(10))
	return httpctrl.New(uc)
}

type initResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

func initSession(t *testing.T, srv *httpctrl.Server, bearer string) initResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/auth/init", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp initResponse
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	return resp
}

func TestAuthInitEndpoint(t *testing.T) {
	t.Run("no credential returns a fresh session", func(t *testing.T) {
		srv := newServer(t)

		resp := initSession(t, srv, "")
		gt.String(t, resp.Token).NotEqual("")
		gt.String(t, resp.UserID).NotEqual("")
	})

	t.Run("valid credential is returned unchanged", func(t *testing.T) {
		srv := newServer(t)

		first := initSession(t, srv, "")
		second := initSession(t, srv, first.Token)
		gt.Value(t, second.Token).Equal(first.Token)
		gt.Value(t, second.UserID).Equal(first.UserID)
	})

	t.Run("malformed credential still returns a session", func(t *testing.T) {
		srv := newServer(t)

		resp := initSession(t, srv, "garbage")
		gt.String(t, resp.Token).NotEqual("")
		gt.String(t, resp.Token).NotEqual("garbage")
	})
}

func TestChatEndpoint(t *testing.T) {
	chatReq := func(bearer, body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		return req
	}

	t.Run("returns model reply for authenticated request", func(t *testing.T) {
		srv := newServer(t)
		session := initSession(t, srv, "")

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, chatReq(session.Token, `{"message": "привет"}`))

		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Reply string `json:"reply"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Value(t, resp.Reply).Equal("здравствуйте")
	})

	t.Run("rejects request without credential", func(t *testing.T) {
		srv := newServer(t)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, chatReq("", `{"message": "привет"}`))

		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("rejects request with malformed credential", func(t *testing.T) {
		srv := newServer(t)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, chatReq("garbage", `{"message": "привет"}`))

		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("rejects empty message", func(t *testing.T) {
		srv := newServer(t)
		session := initSession(t, srv, "")

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, chatReq(session.Token, `{"message": "  "}`))

		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("rejects invalid JSON body", func(t *testing.T) {
		srv := newServer(t)
		session := initSession(t, srv, "")

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, chatReq(session.Token, `{broken`))

		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestStatsEndpoint(t *testing.T) {
	srv := newServer(t)

	initSession(t, srv, "")
	initSession(t, srv, "")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		TotalUsers int64 `json:"total_users"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	gt.Value(t, resp.TotalUsers).Equal(int64(2))
}

func TestHealthEndpoint(t *testing.T) {
	srv := newServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp map[string]string
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	gt.Value(t, resp["status"]).Equal("ok")
}
