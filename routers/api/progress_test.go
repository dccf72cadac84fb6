package api

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"adscribe-server/logger"
	"adscribe-server/models"
)

// countingStore counts project reads so tests can tell whether the websocket
// handler is still polling.
type countingStore struct {
	*memStore
	mu    sync.Mutex
	reads int
}

func (s *countingStore) GetProject(ctx context.Context, id string) (*models.Project, error) {
	s.mu.Lock()
	s.reads++
	s.mu.Unlock()
	return s.memStore.GetProject(ctx, id)
}

func (s *countingStore) readCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func TestProgressWebSocketStopsOnDisconnect(t *testing.T) {
	st := &countingStore{memStore: newMemStore()}
	st.projects["proj-1"] = &models.Project{
		ID:              "proj-1",
		Status:          models.ProjectStatusProcessing,
		Progress:        20,
		ProgressMessage: "Extracting frames...",
	}

	gin.SetMode(gin.TestMode)
	h := &Handler{Store: st, Log: logger.New("error")}
	r := gin.New()
	r.GET("/projects/:project_id/ws", h.ProjectProgressWebSocket)

	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/projects/proj-1/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if resp != nil {
		resp.Body.Close()
	}

	var ev progressEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read initial event: %v", err)
	}
	if ev.Progress != 20 || ev.Status != models.ProjectStatusProcessing {
		t.Errorf("initial event = %+v", ev)
	}

	// The project never advances, so only the disconnect can end the loop.
	conn.Close()

	time.Sleep(1500 * time.Millisecond)
	before := st.readCount()
	time.Sleep(2500 * time.Millisecond)
	if after := st.readCount(); after != before {
		t.Errorf("store polled %d more times after the client disconnected", after-before)
	}
}
