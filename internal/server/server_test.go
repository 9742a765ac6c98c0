package server_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-formbind/internal/config"
	"github.com/goliatone/go-formbind/internal/server"
	"github.com/goliatone/go-formbind/pkg/render"
	"github.com/goliatone/go-formbind/pkg/schema"
	"github.com/goliatone/go-formbind/pkg/submit"
)

func newServer(t *testing.T, csrf bool, logger *zap.Logger) http.Handler {
	t.Helper()
	cfg := config.Default()
	cfg.CSRF = csrf
	if logger == nil {
		logger = zap.NewNop()
	}
	orch, err := server.NewOrchestrator(cfg, logger)
	require.NoError(t, err)
	srv, err := server.New(cfg, orch, logger)
	require.NoError(t, err)
	return srv.Handler()
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func postJSON(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHealthz(t *testing.T) {
	h := newServer(t, false, nil)
	rec := do(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got server.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, []string{"sign-in", "sign-up"}, got.Forms)
	assert.Equal(t, []string{"json", "vanilla"}, got.Renderers)
}

func TestRootRedirectsToSignIn(t *testing.T) {
	h := newServer(t, false, nil)
	rec := do(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/sign-in", rec.Header().Get("Location"))
}

func TestShowForm_RendersDocument(t *testing.T) {
	h := newServer(t, false, nil)
	rec := do(h, httptest.NewRequest(http.MethodGet, "/sign-up?variant=dark", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, `data-form="sign-up"`)
	assert.Contains(t, body, `href="/assets/formbind.css"`)
	assert.Contains(t, body, `data-variant="dark"`)
	assert.NotContains(t, body, `name="_csrf"`)
}

func TestShowForm_NegotiatesJSONView(t *testing.T) {
	h := newServer(t, false, nil)
	req := httptest.NewRequest(http.MethodGet, "/sign-in", nil)
	req.Header.Set("Accept", "application/json")
	rec := do(h, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got render.FormView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "sign-in", got.Name)
	require.Len(t, got.Fields, 2)
	assert.Equal(t, "email", got.Fields[0].Path)

	bad := postForm("/sign-in", url.Values{"email": {"nope"}, "password": {"12345678"}})
	bad.Header.Set("Accept", "application/json")
	rec = do(h, bad)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Invalid)
	assert.Equal(t, "Invalid email", got.Fields[0].Message.Body)
}

func TestShowForm_UnknownTheme(t *testing.T) {
	h := newServer(t, false, nil)
	rec := do(h, httptest.NewRequest(http.MethodGet, "/sign-in?theme=missing", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmit_InvalidRerendersWith422(t *testing.T) {
	h := newServer(t, false, nil)
	rec := do(h, postForm("/sign-up", url.Values{
		"username":        {"johndoe"},
		"email":           {"john@example.com"},
		"password":        {"password1"},
		"confirmPassword": {"password2"},
	}))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Password do not match")
	assert.Contains(t, body, `value="johndoe"`)
	assert.NotContains(t, body, "password1")
	assert.NotContains(t, body, "password2")
}

func TestSubmit_ValidRedirectsAndLogsMaskedValues(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := newServer(t, false, zap.New(core))

	rec := do(h, postForm("/sign-in", url.Values{
		"email":    {"ada@example.com"},
		"password": {"correct horse"},
		"extra":    {"ignored"},
	}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	entries := logs.FilterMessage("form submitted").All()
	require.Len(t, entries, 1)
	values, ok := entries[0].ContextMap()["values"].(schema.Values)
	require.True(t, ok, "values field has type %T", entries[0].ContextMap()["values"])
	assert.Equal(t, submit.Mask, values["password"])
	assert.NotContains(t, values, "extra")

	requests := logs.FilterMessage("request").All()
	require.Len(t, requests, 1)
	fields := requests[0].ContextMap()
	assert.Equal(t, "/sign-in", fields["route"])
	assert.EqualValues(t, http.StatusSeeOther, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

var csrfInput = regexp.MustCompile(`name="_csrf" value="([^"]+)"`)

func TestSubmit_CSRF(t *testing.T) {
	h := newServer(t, true, nil)

	get := do(h, httptest.NewRequest(http.MethodGet, "/sign-in", nil))
	require.Equal(t, http.StatusOK, get.Code)
	match := csrfInput.FindStringSubmatch(get.Body.String())
	require.Len(t, match, 2, "csrf hidden field missing")
	cookies := get.Result().Cookies()
	require.NotEmpty(t, cookies)

	values := url.Values{"email": {"ada@example.com"}, "password": {"correct horse"}}

	missing := do(h, postForm("/sign-in", values))
	assert.GreaterOrEqual(t, missing.Code, 400)
	assert.Less(t, missing.Code, 500)

	values.Set(server.CSRFField, match[1])
	req := postForm("/sign-in", values)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	ok := do(h, req)
	assert.Equal(t, http.StatusSeeOther, ok.Code)
}

func TestAPI_Validate(t *testing.T) {
	h := newServer(t, true, nil)
	rec := do(h, postJSON(http.MethodPost, "/api/forms/sign-in/validate", `{"email":"nope"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var got server.ValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.Valid)
	assert.Equal(t, map[string]string{
		"email":    "Invalid email",
		"password": "Password is required",
	}, got.Errors)

	rec = do(h, postJSON(http.MethodPost, "/api/forms/sign-in/validate",
		`{"email":"ada@example.com","password":"12345678"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	var valid server.ValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &valid))
	assert.True(t, valid.Valid)
	assert.NotNil(t, valid.Errors)
	assert.Empty(t, valid.Errors)
}

func TestAPI_ValidateMalformedBody(t *testing.T) {
	h := newServer(t, false, nil)
	rec := do(h, postJSON(http.MethodPost, "/api/forms/sign-in/validate", `{"email":`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var got server.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEmpty(t, got.Message)
	assert.NotEmpty(t, got.RequestID)
}

func TestAPI_PatchState(t *testing.T) {
	h := newServer(t, false, nil)
	rec := do(h, postJSON(http.MethodPatch, "/api/forms/sign-up/state", `{
		"values": {"username": "johndoe"},
		"patch": [
			{"op": "replace", "path": "/password", "value": "password1"},
			{"op": "replace", "path": "/confirmPassword", "value": "password1"}
		]
	}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var got server.StateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"password", "confirmPassword"}, got.Changed)
	assert.Equal(t, "johndoe", got.Values["username"])
	assert.Equal(t, submit.Mask, got.Values["password"])
	assert.Equal(t, submit.Mask, got.Values["confirmPassword"])
	require.Len(t, got.Fields, 4)
	assert.Equal(t, "username", got.Fields[0].Path)
	assert.True(t, got.Fields[0].Dirty)
	assert.False(t, got.Fields[0].Touched)
	assert.Equal(t, "email", got.Fields[1].Path)
	assert.False(t, got.Fields[1].Dirty)
}

func TestAPI_PatchStateRejectsBadPatch(t *testing.T) {
	h := newServer(t, false, nil)
	rec := do(h, postJSON(http.MethodPatch, "/api/forms/sign-in/state",
		`{"patch":[{"op":"test","path":"/email","value":"someone"}]}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_Schema(t *testing.T) {
	h := newServer(t, false, nil)
	rec := do(h, httptest.NewRequest(http.MethodGet, "/api/forms/sign-in/schema", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Type       any            `json:"type"`
		Required   []string       `json:"required"`
		Properties map[string]any `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.ElementsMatch(t, []string{"email", "password"}, got.Required)
	assert.Contains(t, got.Properties, "email")
	assert.Contains(t, got.Properties, "password")

	rec = do(h, httptest.NewRequest(http.MethodGet, "/api/forms/forgot-password/schema", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_ListForms(t *testing.T) {
	h := newServer(t, false, nil)
	rec := do(h, httptest.NewRequest(http.MethodGet, "/api/forms", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"forms":["sign-in","sign-up"]}`, rec.Body.String())
}

func TestAssets(t *testing.T) {
	h := newServer(t, false, nil)
	rec := do(h, httptest.NewRequest(http.MethodGet, "/assets/formbind.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".fb-form")
}
