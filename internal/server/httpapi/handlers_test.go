package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Janxz01/PersonalNoteHub/internal/logging"
	"github.com/Janxz01/PersonalNoteHub/internal/server/config"
	"github.com/Janxz01/PersonalNoteHub/internal/server/models"
	"github.com/Janxz01/PersonalNoteHub/internal/server/repositories/repomanager"
	"github.com/Janxz01/PersonalNoteHub/internal/server/services"
)

func newTestServer() *httptest.Server {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m := repomanager.NewMemoryRepositoryManager()

	srv := NewServer(cfg.EndpointAddrHTTP, logger,
		services.NewUserService(m, cfg, logger),
		services.NewNoteService(m, nil, time.Second, logger),
		services.NewLabelService(m, logger),
		services.NewAvatarService(cfg))

	return httptest.NewServer(srv.routes())
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any, out any) *http.Response {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, srv.URL+path, buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func registerUser(t *testing.T, srv *httptest.Server, name, email string) string {
	t.Helper()

	var auth authResponse
	resp := doJSON(t, srv, http.MethodPost, "/api/register", "", registerRequest{
		Name: name, Email: email, Password: "correct horse",
	}, &auth)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, auth.Token)
	return auth.Token
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	registerUser(t, srv, "Ann", "ann@example.test")

	var auth authResponse
	resp := doJSON(t, srv, http.MethodPost, "/api/login", "", loginRequest{
		Email: "ann@example.test", Password: "correct horse",
	}, &auth)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, "Ann", auth.User.Name)
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	registerUser(t, srv, "Ann", "ann@example.test")

	resp := doJSON(t, srv, http.MethodPost, "/api/register", "", registerRequest{
		Name: "Other", Email: "ann@example.test", Password: "battery staple",
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegisterValidationStatus(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	var errResp errorResponse
	resp := doJSON(t, srv, http.MethodPost, "/api/register", "", registerRequest{
		Name: "Ann", Email: "not-an-address", Password: "correct horse",
	}, &errResp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "email", errResp.Field)
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	registerUser(t, srv, "Ann", "ann@example.test")

	resp := doJSON(t, srv, http.MethodPost, "/api/login", "", loginRequest{
		Email: "ann@example.test", Password: "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp := doJSON(t, srv, http.MethodGet, "/api/notes", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodGet, "/api/notes", "garbage-token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestNoteLifecycle(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	token := registerUser(t, srv, "Ann", "ann@example.test")

	var note models.Note
	resp := doJSON(t, srv, http.MethodPost, "/api/notes", token,
		map[string]string{"title": "shopping", "content": "milk"}, &note)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, note.ID)
	assert.Equal(t, models.DefaultNoteColor, note.Color)

	var patched models.Note
	resp = doJSON(t, srv, http.MethodPatch, "/api/notes/"+note.ID, token,
		map[string]string{"title": "groceries"}, &patched)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "groceries", patched.Title)
	assert.Equal(t, "milk", patched.Content)

	var pinned models.Note
	resp = doJSON(t, srv, http.MethodPost, "/api/notes/"+note.ID+"/pin", token, nil, &pinned)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, pinned.Pinned)

	var list []models.Note
	resp = doJSON(t, srv, http.MethodGet, "/api/notes", token, nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)

	resp = doJSON(t, srv, http.MethodDelete, "/api/notes/"+note.ID, token, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodGet, "/api/notes/"+note.ID, token, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNoteIsolationBetweenUsers(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	annToken := registerUser(t, srv, "Ann", "ann@example.test")
	bobToken := registerUser(t, srv, "Bob", "bob@example.test")

	var note models.Note
	resp := doJSON(t, srv, http.MethodPost, "/api/notes", annToken,
		map[string]string{"title": "private", "content": "c"}, &note)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodGet, "/api/notes/"+note.ID, bobToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var list []models.Note
	resp = doJSON(t, srv, http.MethodGet, "/api/notes", bobToken, nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, list)
}

func TestLabelRoutes(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	token := registerUser(t, srv, "Ann", "ann@example.test")

	var label models.Label
	resp := doJSON(t, srv, http.MethodPost, "/api/labels", token,
		map[string]string{"name": "work"}, &label)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, models.DefaultLabelColor, label.Color)

	var note models.Note
	resp = doJSON(t, srv, http.MethodPost, "/api/notes", token,
		map[string]string{"title": "t", "content": "c"}, &note)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var tagged models.Note
	resp = doJSON(t, srv, http.MethodPut, "/api/notes/"+note.ID+"/labels/"+label.ID, token, nil, &tagged)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, tagged.LabelIDs, label.ID)

	var filtered []models.Note
	resp = doJSON(t, srv, http.MethodGet, "/api/notes?label="+label.ID, token, nil, &filtered)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, filtered, 1)

	resp = doJSON(t, srv, http.MethodDelete, "/api/labels/"+label.ID, token, nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// the deleted label is gone from the note
	var got models.Note
	resp = doJSON(t, srv, http.MethodGet, "/api/notes/"+note.ID, token, nil, &got)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, got.LabelIDs, label.ID)
}

func TestSummaryUnavailableWithoutSummarizer(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	token := registerUser(t, srv, "Ann", "ann@example.test")

	var note models.Note
	resp := doJSON(t, srv, http.MethodPost, "/api/notes", token,
		map[string]string{"title": "t", "content": "c"}, &note)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/api/notes/"+note.ID+"/summary", token, nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestFormatEndpoint(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	token := registerUser(t, srv, "Ann", "ann@example.test")

	var out formatResponse
	resp := doJSON(t, srv, http.MethodPost, "/api/format", token,
		formatRequest{Text: "# Title\n- item"}, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, out.Blocks, 2)
	assert.Equal(t, "Title", out.Blocks[0].Text)
	assert.Equal(t, 1, out.Blocks[0].Level)
}

func TestAvatarURLUnavailableWithoutStorage(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	token := registerUser(t, srv, "Ann", "ann@example.test")

	resp := doJSON(t, srv, http.MethodGet, "/api/avatar-upload-url", token, nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestPingIsPublic(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp := doJSON(t, srv, http.MethodGet, "/api/ping", "", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
