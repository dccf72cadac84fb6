package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"adscribe-server/logger"
	"adscribe-server/models"
	"adscribe-server/store"
)

type memStore struct {
	projects map[string]*models.Project
	units    map[string][]models.Unit
}

func newMemStore() *memStore {
	return &memStore{
		projects: make(map[string]*models.Project),
		units:    make(map[string][]models.Unit),
	}
}

func (s *memStore) CreateProject(ctx context.Context, p *models.Project) error {
	s.projects[p.ID] = p
	return nil
}

func (s *memStore) GetProject(ctx context.Context, id string) (*models.Project, error) {
	p, ok := s.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s not found", id)
	}
	copied := *p
	return &copied, nil
}

func (s *memStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	for _, p := range s.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (s *memStore) DeleteProject(ctx context.Context, id string) error {
	delete(s.projects, id)
	delete(s.units, id)
	return nil
}

func (s *memStore) CreateUnits(ctx context.Context, units []models.Unit) error {
	for _, u := range units {
		s.units[u.ProjectID] = append(s.units[u.ProjectID], u)
	}
	return nil
}

func (s *memStore) GetUnits(ctx context.Context, projectID string) ([]models.Unit, error) {
	return s.units[projectID], nil
}

func (s *memStore) UpdateProject(ctx context.Context, id string, upd store.Update) error {
	return nil
}

func newTestRouter(st *memStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{Store: st, Log: logger.New("error")}

	r := gin.New()
	r.GET("/v1/api/projects/:project_id", h.GetProject)
	r.GET("/v1/api/projects/:project_id/progress", h.GetProgress)
	r.GET("/v1/api/projects/:project_id/units", h.GetUnits)
	r.GET("/v1/api/projects/:project_id/script", h.DownloadScript)
	r.GET("/v1/api/projects/:project_id/srt", h.DownloadSRT)
	r.DELETE("/v1/api/projects/:project_id", h.DeleteProject)
	return r
}

func seedCompleted(st *memStore) {
	st.projects["proj-1"] = &models.Project{
		ID:              "proj-1",
		Title:           "Test video",
		Status:          models.ProjectStatusCompleted,
		Progress:        100,
		ProgressMessage: "Completed",
		ScriptData:      `[{"kind":"intro_note"}]`,
	}
	st.units["proj-1"] = []models.Unit{
		{ID: "u0", ProjectID: "proj-1", Timestamp: 0, Kind: models.UnitKindIntroNote, Text: "Intro note.", Order: 0},
		{ID: "u1", ProjectID: "proj-1", Timestamp: 15, Kind: models.UnitKindDescription, Text: "A scene.", Order: 1},
	}
}

func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetProgress(t *testing.T) {
	st := newMemStore()
	seedCompleted(st)
	r := newTestRouter(st)

	w := doRequest(r, http.MethodGet, "/v1/api/projects/proj-1/progress")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, frag := range []string{`"progress":100`, `"status":"completed"`} {
		if !strings.Contains(body, frag) {
			t.Errorf("body %s missing %s", body, frag)
		}
	}
}

func TestGetProgressNotFound(t *testing.T) {
	r := newTestRouter(newMemStore())
	if w := doRequest(r, http.MethodGet, "/v1/api/projects/nope/progress"); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDownloadSRT(t *testing.T) {
	st := newMemStore()
	seedCompleted(st)
	r := newTestRouter(st)

	w := doRequest(r, http.MethodGet, "/v1/api/projects/proj-1/srt")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "1\n00:00:00,000 --> ") {
		t.Errorf("unexpected srt body:\n%s", body)
	}
	if !strings.Contains(body, "A scene.") {
		t.Errorf("srt missing description text:\n%s", body)
	}
}

func TestDownloadSRTNoUnits(t *testing.T) {
	st := newMemStore()
	st.projects["proj-1"] = &models.Project{ID: "proj-1", Status: models.ProjectStatusProcessing}
	r := newTestRouter(st)

	if w := doRequest(r, http.MethodGet, "/v1/api/projects/proj-1/srt"); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDownloadScript(t *testing.T) {
	st := newMemStore()
	seedCompleted(st)
	r := newTestRouter(st)

	w := doRequest(r, http.MethodGet, "/v1/api/projects/proj-1/script")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != `[{"kind":"intro_note"}]` {
		t.Errorf("script body = %s", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
}

func TestDownloadScriptUnavailable(t *testing.T) {
	st := newMemStore()
	st.projects["proj-1"] = &models.Project{ID: "proj-1", Status: models.ProjectStatusProcessing}
	r := newTestRouter(st)

	if w := doRequest(r, http.MethodGet, "/v1/api/projects/proj-1/script"); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDeleteProject(t *testing.T) {
	st := newMemStore()
	seedCompleted(st)
	r := newTestRouter(st)

	if w := doRequest(r, http.MethodDelete, "/v1/api/projects/proj-1"); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if _, ok := st.projects["proj-1"]; ok {
		t.Error("project should be deleted")
	}
	if len(st.units["proj-1"]) != 0 {
		t.Error("units should be deleted with the project")
	}
}
