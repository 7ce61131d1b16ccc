package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vortex/composer-api/internal/handler"
	"github.com/vortex/composer-api/internal/service"
)

var errUnknownSession = errors.New("service: unknown session")

// mockSessionService implements service.SessionService for handler tests.
type mockSessionService struct {
	createFn func() string
	applyFn  func(string, []service.Command) (*service.CommandResult, error)
	contentFn func(string) (*service.ContentSnapshot, error)
	deleted  []string
}

func (m *mockSessionService) Create() string {
	if m.createFn != nil {
		return m.createFn()
	}
	return "session-1"
}

func (m *mockSessionService) Apply(id string, commands []service.Command) (*service.CommandResult, error) {
	if m.applyFn != nil {
		return m.applyFn(id, commands)
	}
	return &service.CommandResult{HTML: "<p>hi</p>"}, nil
}

func (m *mockSessionService) Content(id string) (*service.ContentSnapshot, error) {
	if m.contentFn != nil {
		return m.contentFn(id)
	}
	return &service.ContentSnapshot{HTML: "<p>hi</p>", Markdown: "hi", PlainText: "hi"}, nil
}

func (m *mockSessionService) Delete(id string) {
	m.deleted = append(m.deleted, id)
}

func TestHealth(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	handler.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status=ok, got %s", body["status"])
	}
}

func TestSessionHandler_Create(t *testing.T) {
	t.Parallel()
	svc := &mockSessionService{createFn: func() string { return "abc123" }}
	h := handler.NewSessionHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["session_id"] != "abc123" {
		t.Errorf("expected session_id=abc123, got %s", body["session_id"])
	}
}

func TestSessionHandler_Apply_Success(t *testing.T) {
	t.Parallel()
	var gotID string
	var gotCommands []service.Command
	svc := &mockSessionService{
		applyFn: func(id string, commands []service.Command) (*service.CommandResult, error) {
			gotID, gotCommands = id, commands
			return &service.CommandResult{HTML: "<p>hello</p>", SelectionStart: 5, SelectionEnd: 5}, nil
		},
	}
	h := handler.NewSessionHandler(svc)

	body := bytes.NewBufferString(`{"commands":[{"type":"replace_text","text":"hello"}]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/abc123/commands", body)
	req.SetPathValue("id", "abc123")
	rec := httptest.NewRecorder()

	h.Apply(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotID != "abc123" {
		t.Errorf("expected session id abc123, got %s", gotID)
	}
	if len(gotCommands) != 1 || gotCommands[0].Type != "replace_text" {
		t.Errorf("commands not decoded correctly: %+v", gotCommands)
	}

	var result service.CommandResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.HTML != "<p>hello</p>" {
		t.Errorf("unexpected HTML in response: %q", result.HTML)
	}
}

func TestSessionHandler_Apply_InvalidBody(t *testing.T) {
	t.Parallel()
	h := handler.NewSessionHandler(&mockSessionService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/abc123/commands", bytes.NewBufferString("not json"))
	req.SetPathValue("id", "abc123")
	rec := httptest.NewRecorder()

	h.Apply(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestSessionHandler_Apply_ServiceError(t *testing.T) {
	t.Parallel()
	svc := &mockSessionService{
		applyFn: func(string, []service.Command) (*service.CommandResult, error) {
			return nil, errUnknownSession
		},
	}
	h := handler.NewSessionHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/missing/commands", bytes.NewBufferString(`{"commands":[]}`))
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()

	h.Apply(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestSessionHandler_Content(t *testing.T) {
	t.Parallel()
	svc := &mockSessionService{
		contentFn: func(id string) (*service.ContentSnapshot, error) {
			return &service.ContentSnapshot{HTML: "<p>x</p>", Markdown: "x", PlainText: "x"}, nil
		},
	}
	h := handler.NewSessionHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/abc123/content", nil)
	req.SetPathValue("id", "abc123")
	rec := httptest.NewRecorder()

	h.Content(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var snap service.ContentSnapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if snap.HTML != "<p>x</p>" {
		t.Errorf("unexpected HTML: %q", snap.HTML)
	}
}

func TestSessionHandler_Content_NotFound(t *testing.T) {
	t.Parallel()
	svc := &mockSessionService{
		contentFn: func(string) (*service.ContentSnapshot, error) { return nil, errUnknownSession },
	}
	h := handler.NewSessionHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/missing/content", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()

	h.Content(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestSessionHandler_Delete(t *testing.T) {
	t.Parallel()
	svc := &mockSessionService{}
	h := handler.NewSessionHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/abc123", nil)
	req.SetPathValue("id", "abc123")
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != "abc123" {
		t.Errorf("expected Delete called with abc123, got %v", svc.deleted)
	}
}
