package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	admin "github.com/goliatone/go-admin"
	"github.com/goliatone/go-admin/internal/identity"
	"github.com/goliatone/go-admin/internal/jsonutil"
	"github.com/goliatone/go-admin/internal/logging"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := admin.DefaultConfig()
	cfg.Storage.Driver = "sqlite3"
	cfg.Storage.DSN = "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"

	a, db, err := buildAdmin(context.Background(), cfg)
	if err != nil {
		t.Fatalf("build admin: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if !a.Frozen() {
		t.Fatalf("expected registry to be frozen")
	}
	return newRouter(a, logging.NoOp())
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload map[string]any
	if err := jsonutil.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode %s %s response: %v (%s)", method, target, err, rec.Body.String())
	}
	return rec, payload
}

func TestDashboardListsResources(t *testing.T) {
	h := newTestServer(t)

	rec, payload := doRequest(t, h, http.MethodGet, "/admin/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if payload["title"] != "Admin Panel" {
		t.Fatalf("expected title, got %v", payload["title"])
	}
	resources, ok := payload["resources"].([]any)
	if !ok || len(resources) != 2 {
		t.Fatalf("expected two resources, got %v", payload["resources"])
	}
}

func TestMembersCreateAndFetch(t *testing.T) {
	h := newTestServer(t)

	rec, payload := doRequest(t, h, http.MethodPost, "/admin/members", "name=Tom")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("HX-Redirect"); got != "/admin/members" {
		t.Fatalf("expected HX-Redirect to list, got %q", got)
	}
	if payload["id"] != "2" {
		t.Fatalf("expected second member id, got %v", payload["id"])
	}

	rec, payload = doRequest(t, h, http.MethodGet, "/admin/members/2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, _ := payload["data"].(map[string]any)
	if data["name"] != "Tom" || data["is_adult"] != false {
		t.Fatalf("unexpected member data %v", data)
	}
}

func TestItemErrorsUseProblemDetails(t *testing.T) {
	h := newTestServer(t)

	rec, payload := doRequest(t, h, http.MethodGet, "/admin/members/99", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != problemContentType {
		t.Fatalf("expected problem content type, got %q", ct)
	}
	if payload["text_code"] != "ITEM_NOT_FOUND" {
		t.Fatalf("expected ITEM_NOT_FOUND, got %v", payload["text_code"])
	}

	rec, _ = doRequest(t, h, http.MethodGet, "/admin/members/abc", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unparsable id, got %d", rec.Code)
	}

	rec, _ = doRequest(t, h, http.MethodGet, "/admin/ghosts", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown resource, got %d", rec.Code)
	}
}

func TestNotesBackedBySQLite(t *testing.T) {
	h := newTestServer(t)

	welcome := identity.ItemUUID("notes", "welcome").String()
	rec, payload := doRequest(t, h, http.MethodGet, "/admin/notes/"+welcome, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected seeded note, got %d: %s", rec.Code, rec.Body.String())
	}
	rendered, _ := payload["fields"].([]any)
	if len(rendered) != 5 {
		t.Fatalf("expected 5 rendered fields, got %d", len(rendered))
	}

	rec, _ = doRequest(t, h, http.MethodPost, "/admin/notes", "title=Second&priority=high&pinned=on")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec, _ = doRequest(t, h, http.MethodPost, "/admin/notes", "title=Bad&priority=urgent")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected invalid choice to fail, got %d", rec.Code)
	}

	rec, payload = doRequest(t, h, http.MethodGet, "/admin/notes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	items, _ := payload["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(items))
	}
}

func TestCreateFormDescribesWritableFields(t *testing.T) {
	h := newTestServer(t)

	rec, payload := doRequest(t, h, http.MethodGet, "/admin/notes/create", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	formFields, _ := payload["fields"].([]any)
	if len(formFields) != 4 {
		t.Fatalf("expected 4 writable fields, got %d", len(formFields))
	}
	if payload["schema"] == nil {
		t.Fatalf("expected schema in form view")
	}
}
