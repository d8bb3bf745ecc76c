package status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padview/padview/api/types/v1alpha1"
	"github.com/padview/padview/internal/padviewd/colorblend"
	"github.com/padview/padview/internal/padviewd/countdown"
	"github.com/padview/padview/internal/padviewd/cycle"
	"github.com/padview/padview/internal/padviewd/history"
	"github.com/padview/padview/internal/padviewd/launch"
)

type stubController struct {
	snap     cycle.Snapshot
	refreshs int
}

func (s *stubController) Status() cycle.Snapshot { return s.snap }
func (s *stubController) Refresh()               { s.refreshs++ }

type stubHistory struct {
	entries []history.Entry
	limit   int
}

func (s *stubHistory) Recent(_ context.Context, limit int) ([]history.Entry, error) {
	s.limit = limit
	return s.entries, nil
}

func activeSnapshot() cycle.Snapshot {
	view := countdown.View{Days: 0, Hours: 1, Minutes: 2, Seconds: 3, Regime: countdown.RegimeAmbient}
	return cycle.Snapshot{
		State: cycle.StateSessionActive,
		Event: &launch.Event{
			Name:     "Starship Flight 12",
			Net:      time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
			Provider: "SpaceX",
			Location: "Starbase, TX",
			Image:    launch.ImageURL("https://img.example.com/s12.jpg"),
		},
		View:         &view,
		SessionID:    uuid.New(),
		SessionStart: time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC),
	}
}

func newTestHandler(ctrl *stubController, hist HistoryReader, zones *ZoneStream) *Handler {
	return NewHandler(ctrl, hist, zones, zerolog.Nop(), "test")
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(&stubController{}, nil, nil)
	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStatusReportsActiveSession(t *testing.T) {
	zones := NewZoneStream(3)
	zones.SetColor(0, colorblend.RGB{R: 255})
	zones.Show()

	ctrl := &stubController{snap: activeSnapshot()}
	h := newTestHandler(ctrl, nil, zones)
	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1alpha1/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status v1alpha1.DaemonStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))

	assert.Equal(t, "SESSION_ACTIVE", status.State)
	require.NotNil(t, status.Event)
	assert.Equal(t, "Starship Flight 12", status.Event.Name)
	assert.Equal(t, "https://img.example.com/s12.jpg", status.Event.ImageURL)
	require.NotNil(t, status.Countdown)
	assert.Equal(t, 1, status.Countdown.Hours)
	assert.Equal(t, "AMBIENT", status.Countdown.Regime)
	require.NotNil(t, status.Session)
	require.Len(t, status.Zones, 3)
	assert.Equal(t, uint8(255), status.Zones[0].R)
	assert.Equal(t, "test", status.Version)
}

func TestStatusOmitsSessionWhileFetching(t *testing.T) {
	ctrl := &stubController{snap: cycle.Snapshot{State: cycle.StateFetching}}
	h := newTestHandler(ctrl, nil, nil)
	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1alpha1/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	var status v1alpha1.DaemonStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "FETCHING", status.State)
	assert.Nil(t, status.Event)
	assert.Nil(t, status.Countdown)
	assert.Nil(t, status.Session)
}

func TestRefreshForwardsToController(t *testing.T) {
	ctrl := &stubController{}
	h := newTestHandler(ctrl, nil, nil)
	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v1alpha1/refresh", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, 1, ctrl.refreshs)
}

func TestHistoryListing(t *testing.T) {
	ended := time.Date(2026, 8, 29, 13, 0, 0, 0, time.UTC)
	hist := &stubHistory{entries: []history.Entry{{
		ID:        uuid.New(),
		EventName: "Falcon 9 GTO-7",
		EventNet:  time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		Provider:  "SpaceX",
		HadImage:  true,
		StartedAt: time.Date(2026, 8, 29, 11, 0, 0, 0, time.UTC),
		EndedAt:   &ended,
		Outcome:   "expired",
	}}}

	h := newTestHandler(&stubController{}, hist, nil)
	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1alpha1/history?limit=5")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out v1alpha1.HistoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Falcon 9 GTO-7", out.Items[0].Name)
	assert.Equal(t, "expired", out.Items[0].Outcome)
	assert.Equal(t, 5, hist.limit)
}

func TestHistoryRejectsBadLimit(t *testing.T) {
	h := newTestHandler(&stubController{}, &stubHistory{}, nil)
	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1alpha1/history?limit=zero")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHistoryDisabled(t *testing.T) {
	h := newTestHandler(&stubController{}, nil, nil)
	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1alpha1/history")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStreamDeliversStateTransitions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl := &stubController{snap: activeSnapshot()}
	h := newTestHandler(ctrl, nil, nil)
	go h.Run(ctx)

	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1alpha1/status/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// Give the hub a moment to register the subscriber before publishing.
	require.Eventually(t, func() bool {
		h.PublishState(ctrl.snap)
		conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		_, data, err := conn.ReadMessage()
		if err != nil {
			return false
		}
		var msg v1alpha1.StreamMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return false
		}
		return msg.Type == v1alpha1.StreamMessageState && msg.Status != nil &&
			msg.Status.State == "SESSION_ACTIVE"
	}, 2*time.Second, 50*time.Millisecond)
}

func TestZoneStreamRecordsCommittedColors(t *testing.T) {
	z := NewZoneStream(2)
	z.SetColor(0, colorblend.RGB{R: 10, G: 20, B: 30})
	z.SetColor(1, colorblend.RGB{R: 40})

	// Staged but not committed.
	colors := z.ZoneColors()
	assert.Equal(t, uint8(0), colors[0].R)

	z.Show()
	colors = z.ZoneColors()
	assert.Equal(t, v1alpha1.ZoneColor{Zone: 0, R: 10, G: 20, B: 30}, colors[0])
	assert.Equal(t, v1alpha1.ZoneColor{Zone: 1, R: 40}, colors[1])
}
