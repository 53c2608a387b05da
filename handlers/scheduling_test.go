package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"leadpilot/services/scheduling"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSchedulingService struct {
	availability *scheduling.AvailabilityResult
	booking      *scheduling.BookingResult
	err          error
}

func (s *stubSchedulingService) CheckAvailability(ctx context.Context, agentID string, horizonDays int) (*scheduling.AvailabilityResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.availability, nil
}

func (s *stubSchedulingService) CreateMeeting(ctx context.Context, req scheduling.BookingRequest) (*scheduling.BookingResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.booking, nil
}

func newTestRouter(svc scheduling.SchedulingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSchedulingHandler(svc, zap.NewNop())
	r := gin.New()
	r.GET("/api/scheduling/availability/:agentID", h.CheckAvailabilityHandler)
	r.POST("/api/scheduling/meetings", h.CreateMeetingHandler)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestCheckAvailabilityHandler_Success(t *testing.T) {
	start := time.Date(2026, time.September, 7, 10, 0, 0, 0, time.UTC)
	r := newTestRouter(&stubSchedulingService{
		availability: &scheduling.AvailabilityResult{
			Slots:           []scheduling.Slot{{Start: start, End: start.Add(30 * time.Minute)}},
			Timezone:        "UTC",
			DurationMinutes: 30,
			WorkHours:       "09:00-17:00",
		},
	})

	w, body := doJSON(t, r, http.MethodGet, "/api/scheduling/availability/agent-1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "UTC", body["timezone"])
	assert.Equal(t, "09:00-17:00", body["workHours"])
	assert.Len(t, body["slots"], 1)
}

func TestCheckAvailabilityHandler_BadDaysParam(t *testing.T) {
	r := newTestRouter(&stubSchedulingService{})
	w, _ := doJSON(t, r, http.MethodGet, "/api/scheduling/availability/agent-1?days=soon", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateMeetingHandler_Success(t *testing.T) {
	r := newTestRouter(&stubSchedulingService{
		booking: &scheduling.BookingResult{
			MeetingID:      "meeting-1",
			ConferenceLink: "https://meet.example/abc",
		},
	})

	w, body := doJSON(t, r, http.MethodPost, "/api/scheduling/meetings",
		`{"conversationId":"conv-1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	meeting := body["meeting"].(map[string]any)
	assert.Equal(t, "meeting-1", meeting["meetingId"])
}

func TestCreateMeetingHandler_MissingConversation(t *testing.T) {
	r := newTestRouter(&stubSchedulingService{})
	w, _ := doJSON(t, r, http.MethodPost, "/api/scheduling/meetings", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSchedulingErrorMapping(t *testing.T) {
	tests := []struct {
		code       string
		wantStatus int
	}{
		{scheduling.CodeInvalidDate, http.StatusBadRequest},
		{scheduling.CodeSchedulingDisabled, http.StatusOK},
		{scheduling.CodeCalendarNotConnected, http.StatusOK},
		{scheduling.CodeNoAvailableSlots, http.StatusOK},
		{scheduling.CodeTokenExpired, http.StatusUnauthorized},
		{scheduling.CodeProviderInsertFailed, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			r := newTestRouter(&stubSchedulingService{
				err: scheduling.NewSchedulingError(tc.code, "test condition"),
			})
			w, body := doJSON(t, r, http.MethodPost, "/api/scheduling/meetings",
				`{"conversationId":"conv-1"}`)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.code, body["error"])
		})
	}
}

func TestSchedulingErrorMapping_UntypedError(t *testing.T) {
	r := newTestRouter(&stubSchedulingService{err: errors.New("mongo timeout")})
	w, _ := doJSON(t, r, http.MethodPost, "/api/scheduling/meetings",
		`{"conversationId":"conv-1"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
