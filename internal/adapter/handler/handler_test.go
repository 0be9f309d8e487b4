package handler

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-notes/internal/adapter/repository/memory"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	actionItemUsecase "github.com/johnquangdev/meeting-notes/internal/usecase/actionitem"
	chatUsecase "github.com/johnquangdev/meeting-notes/internal/usecase/chat"
	meetingUsecase "github.com/johnquangdev/meeting-notes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-notes/internal/usecase/watcher"
	"github.com/johnquangdev/meeting-notes/pkg/ai"
	"github.com/johnquangdev/meeting-notes/pkg/config"
	pkgvalidator "github.com/johnquangdev/meeting-notes/pkg/validator"
)

type stubProcessor struct {
	outcome watcher.Outcome
}

func (s *stubProcessor) ProcessNow(_ context.Context, id uuid.UUID, _ string) (*watcher.Result, error) {
	return &watcher.Result{TranscriptID: id, Outcome: s.outcome}, nil
}

type stubStreamer struct {
	deltas []string
	err    error
}

func (s *stubStreamer) Stream(_ context.Context, _ []ai.Message, onDelta func(string) error, _ ...ai.Option) error {
	for _, d := range s.deltas {
		if err := onDelta(d); err != nil {
			return err
		}
	}
	return s.err
}

type testServer struct {
	e        *echo.Echo
	store    *memory.Store
	meeting  *entities.Transcript
	streamer *stubStreamer
}

func newTestServer(t *testing.T, checks map[string]HealthCheck) *testServer {
	t.Helper()
	store := memory.NewStore()
	tr := entities.NewTranscript("session-9")
	tr.Title = "Retro"
	tr.Status = entities.TranscriptStatusCompleted
	tr.TranscriptText = "Dana will update the runbook."
	tr.SummaryText = "Runbook needs work."
	item := entities.NewActionItem(tr.ID, "Update runbook")
	item.Assignee = "Dana"
	tr.ActionItemIDs = append(tr.ActionItemIDs, item.ID)
	store.Seed([]*entities.Transcript{tr}, []*entities.ActionItem{item})

	streamer := &stubStreamer{deltas: []string{"Dana ", "owns it."}}
	cfg, err := config.FromEnv()
	require.NoError(t, err)

	router := NewRouter(cfg,
		NewMeetingHandler(meetingUsecase.NewMeetingService(store.Transcripts(), store.ActionItems(), &stubProcessor{outcome: watcher.OutcomeDone}, nil), nil),
		NewActionItemHandler(actionItemUsecase.NewActionItemService(store.ActionItems(), store.Transcripts(), nil), nil),
		NewChatHandler(chatUsecase.NewChatService(store.Transcripts(), store.ActionItems(), streamer, "", nil, nil), nil),
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("# metrics")) }),
		checks,
	)

	e := echo.New()
	e.Validator = pkgvalidator.New()
	router.Setup(e)
	return &testServer{e: e, store: store, meeting: tr, streamer: streamer}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestMeetingRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("list", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/v1/meetings?status=completed", "")
		require.Equal(t, http.StatusOK, rec.Code)
		env := decode(t, rec)
		assert.True(t, env.Success)
		require.NotNil(t, env.Count)
		assert.Equal(t, 1, *env.Count)

		var meetings []map[string]interface{}
		require.NoError(t, json.Unmarshal(env.Data, &meetings))
		assert.Equal(t, "Retro", meetings[0]["title"])
		assert.Equal(t, "Runbook needs work.", meetings[0]["summary"])
		assert.Contains(t, meetings[0], "date")
		assert.Equal(t, float64(0), meetings[0]["duration"])
	})

	t.Run("list bad status", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/v1/meetings?status=partial", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, decode(t, rec).Success)
	})

	t.Run("get", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/v1/meetings/"+s.meeting.ID.String(), "")
		require.Equal(t, http.StatusOK, rec.Code)
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &m))
		items := m["items"].([]interface{})
		require.Len(t, items, 1)
		assert.Equal(t, "Update runbook", items[0].(map[string]interface{})["text"])
	})

	t.Run("get malformed id", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/v1/meetings/not-a-uuid", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "MEETING_NOT_FOUND", decode(t, rec).Code)
	})

	t.Run("stats", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/v1/meetings/stats", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var stats entities.MeetingStats
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &stats))
		assert.Equal(t, int64(1), stats.Completed)
	})

	t.Run("create update delete", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/v1/meetings", `{"title":"Standup","transcriptText":"hi","participants":["Ann"]}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var created map[string]interface{}
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))
		id := created["_id"].(string)
		assert.Equal(t, "pending", created["status"])

		rec = s.do(http.MethodPatch, "/v1/meetings/"+id, `{"status":"completed","duration":15}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = s.do(http.MethodPatch, "/v1/meetings/"+id, `{"duration":-1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = s.do(http.MethodDelete, "/v1/meetings/"+id, "")
		require.Equal(t, http.StatusOK, rec.Code)
		rec = s.do(http.MethodDelete, "/v1/meetings/"+id, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("process", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/v1/meetings/"+s.meeting.ID.String()+"/process", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var out map[string]interface{}
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &out))
		assert.Equal(t, "done", out["outcome"])
	})
}

func TestActionItemRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	meetingID := s.meeting.ID.String()

	rec := s.do(http.MethodPost, "/v1/action-items",
		`{"meetingId":"`+meetingID+`","text":"Book room","priority":"High","dueDate":"2024-09-01T00:00:00Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))
	itemID := created["_id"].(string)

	t.Run("linked to meeting", func(t *testing.T) {
		got, err := s.store.Transcripts().FindByID(context.Background(), s.meeting.ID)
		require.NoError(t, err)
		assert.Len(t, got.ActionItemIDs, 2)
		assert.Equal(t, itemID, got.ActionItemIDs[1].String())
	})

	t.Run("invalid priority", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/v1/action-items", `{"meetingId":"`+meetingID+`","text":"x","priority":"Urgent"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("filters", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/v1/action-items?priority=High&dueDateBefore=2024-12-31", "")
		require.Equal(t, http.StatusOK, rec.Code)
		env := decode(t, rec)
		assert.Equal(t, 1, *env.Count)

		rec = s.do(http.MethodGet, "/v1/action-items?dueDateAfter=tomorrow", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("by meeting", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/v1/action-items/meeting/"+meetingID, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 2, *decode(t, rec).Count)
	})

	t.Run("stats", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/v1/action-items/stats?meetingId="+meetingID, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var stats entities.ActionItemStats
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &stats))
		assert.Equal(t, int64(2), stats.Total)
		assert.Equal(t, int64(1), stats.High)
	})

	t.Run("update and delete", func(t *testing.T) {
		rec := s.do(http.MethodPatch, "/v1/action-items/"+itemID, `{"status":"Completed","clearDueDate":true}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var updated map[string]interface{}
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &updated))
		assert.Equal(t, "Completed", updated["status"])
		assert.NotContains(t, updated, "dueDate")

		rec = s.do(http.MethodDelete, "/v1/action-items/"+itemID, "")
		require.Equal(t, http.StatusOK, rec.Code)

		got, err := s.store.Transcripts().FindByID(context.Background(), s.meeting.ID)
		require.NoError(t, err)
		assert.Len(t, got.ActionItemIDs, 1)

		rec = s.do(http.MethodGet, "/v1/action-items/"+itemID, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "ACTION_ITEM_NOT_FOUND", decode(t, rec).Code)
	})
}

func TestChatStream(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("streams plain text", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/v1/chat/stream",
			`{"meetingId":"session-9","messages":[{"role":"user","content":"Who owns the runbook?"}]}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Dana owns it.", rec.Body.String())
		assert.Equal(t, echo.MIMETextPlainCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
		assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/v1/chat/stream", `{"meetingId":"session-9"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, decode(t, rec).Success)
	})

	t.Run("unknown meeting", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/v1/chat/stream",
			`{"meetingId":"nope","messages":[{"role":"user","content":"hi"}]}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("model failure before first chunk", func(t *testing.T) {
		s.streamer.deltas = nil
		s.streamer.err = &ai.StatusError{StatusCode: http.StatusInternalServerError}
		rec := s.do(http.MethodPost, "/v1/chat/stream",
			`{"meetingId":"`+s.meeting.ID.String()+`","messages":[{"role":"user","content":"hi"}]}`)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "LLM_REQUEST_FAILED", decode(t, rec).Code)
	})
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, map[string]HealthCheck{
		"database": func(context.Context) error { return nil },
	})
	rec := s.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"ok"`)

	rec = s.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# metrics", rec.Body.String())

	failing := newTestServer(t, map[string]HealthCheck{
		"storage": func(context.Context) error { return stdErrors.New("bucket unreachable") },
	})
	rec = failing.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "bucket unreachable")
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(http.MethodGet, "/v1/agendas", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Code)
	assert.Equal(t, "route GET /v1/agendas not found", env.Error)
}

func TestHandleError_PlainErrorIsInternal(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, HandleError(nil, c, stdErrors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	env := decode(t, rec)
	assert.Equal(t, "INTERNAL", env.Code)
	assert.Equal(t, "Internal server error", env.Error)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
