package notification

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"WashroomMonitor/internal/clock"
	"WashroomMonitor/internal/washroom"
	"WashroomMonitor/pkg/validate"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClock(t *testing.T) *clock.Clock {
	t.Helper()
	kl, err := time.LoadLocation("Asia/Kuala_Lumpur")
	require.NoError(t, err)
	now := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	return clock.New(kl, time.UTC).WithNow(func() time.Time { return now })
}

func report(hex, desc, floor, toiletType, ts string, read bool) washroom.ProblemReport {
	return washroom.ProblemReport{
		ID:          washroom.DocID(hex),
		Description: desc,
		Floor:       floor,
		ToiletType:  toiletType,
		Timestamp:   washroom.TextStamp(ts),
		Read:        read,
	}
}

const (
	id1 = "65e1a0000000000000000001"
	id2 = "65e1a0000000000000000002"
	id3 = "65e1a0000000000000000003"
	id4 = "65e1a0000000000000000004"
)

func sampleReports() []washroom.ProblemReport {
	return []washroom.ProblemReport{
		report(id1, "No tissue", "1F", "Male", "2024-03-01 08:00:00", false),
		report(id2, "Wet floor", "1F", "Male", "2024-03-01 10:00:00", true),
		report(id3, "No tissue", "1F", "Male", "2024-03-01 12:00:00", false),
		report(id4, "No tissue", "2F", "Female", "2024-03-01 09:00:00", false),
	}
}

type fakeStore struct {
	reports []washroom.ProblemReport
	err     error
	filters []washroom.Filter
	read    map[string]bool
	failOn  string
}

func (f *fakeStore) Problems(_ context.Context, filter washroom.Filter) ([]washroom.ProblemReport, error) {
	f.filters = append(f.filters, filter)
	return f.reports, f.err
}

func (f *fakeStore) MarkRead(_ context.Context, id string) (bool, error) {
	if id == f.failOn {
		return false, washroom.ErrStoreUnavailable
	}
	wasRead, ok := f.read[id]
	if !ok || wasRead {
		return false, nil
	}
	f.read[id] = true
	return true, nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (n *fakeNotifier) Channel() string { return "fake" }

func (n *fakeNotifier) Send(_ context.Context, text string) (string, error) {
	if n.err != nil {
		return "", n.err
	}
	n.sent = append(n.sent, text)
	return "SM0001", nil
}

func TestDedupKeepsFirstOccurrence(t *testing.T) {
	c := testClock(t)
	got := Dedup(sampleReports(), c)

	require.Len(t, got, 3)
	assert.Equal(t, Problem{ID: id1, Description: "No tissue", Floor: "1F", ToiletType: "Male", Timestamp: "2024-03-01 16:00:00"}, got[0])
	assert.Equal(t, "Wet floor", got[1].Description)
	assert.Equal(t, "2F", got[2].Floor)

	again := Dedup(append(sampleReports(), sampleReports()...), c)
	assert.Equal(t, got, again)
}

func TestDedupDefaults(t *testing.T) {
	got := Dedup([]washroom.ProblemReport{{}}, testClock(t))
	require.Len(t, got, 1)
	assert.Equal(t, "N/A", got[0].Description)
	assert.Equal(t, "N/A", got[0].Floor)
	assert.Equal(t, "UNKNOWN", got[0].ToiletType)
	assert.Equal(t, "N/A", got[0].Timestamp)
}

func TestDedupTreatsMissingAsDefault(t *testing.T) {
	got := Dedup([]washroom.ProblemReport{
		report(id1, "", "1F", "Male", "2024-03-01 08:00:00", false),
		report(id2, "N/A", "1F", "Male", "2024-03-01 09:00:00", false),
		report(id3, "Wet floor", "1F", "", "2024-03-01 10:00:00", false),
		report(id4, "Wet floor", "1F", "UNKNOWN", "2024-03-01 11:00:00", false),
	}, testClock(t))

	require.Len(t, got, 2)
	assert.Equal(t, id1, got[0].ID)
	assert.Equal(t, "N/A", got[0].Description)
	assert.Equal(t, id3, got[1].ID)
	assert.Equal(t, "UNKNOWN", got[1].ToiletType)
}

func TestProblemIDsNeedNotBeObjectIDs(t *testing.T) {
	got := Dedup([]washroom.ProblemReport{{ID: "sensor-42", Description: "Wet floor"}}, testClock(t))
	require.Len(t, got, 1)
	assert.Equal(t, "sensor-42", got[0].ID)
}

func TestBuildNotificationsNewestFirst(t *testing.T) {
	got := BuildNotifications(sampleReports(), testClock(t))

	require.Len(t, got, 4)
	ids := make([]string, 0, len(got))
	for _, n := range got {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{id3, id2, id4, id1}, ids)
	assert.True(t, got[1].Read)
	assert.Equal(t, "2024-03-01 20:00:00", got[0].Timestamp)

	blank := BuildNotifications([]washroom.ProblemReport{{Description: "x"}}, testClock(t))
	assert.Equal(t, "N/A", blank[0].ToiletType)
}

func TestServiceQueriesTodaysUnsolved(t *testing.T) {
	store := &fakeStore{reports: sampleReports()}
	s := NewService(store, &fakeNotifier{}, testClock(t), zap.NewNop())

	_, err := s.ActiveProblems(context.Background())
	require.NoError(t, err)
	_, err = s.Notifications(context.Background())
	require.NoError(t, err)

	require.Len(t, store.filters, 2)
	for _, f := range store.filters {
		assert.True(t, f.Unsolved)
		assert.Equal(t, "2024-03-01 00:00:00", f.Window.From())
		assert.Equal(t, "2024-03-02 00:00:00", f.Window.Until())
	}
	assert.True(t, store.filters[1].NewestFirst)
}

func TestMarkRead(t *testing.T) {
	store := &fakeStore{read: map[string]bool{id1: false, id2: false}}
	s := NewService(store, &fakeNotifier{}, testClock(t), zap.NewNop())

	n, err := s.MarkRead(context.Background(), []string{id1, "not-an-id", id3, id2})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.MarkRead(context.Background(), []string{id1, id2})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, map[string]bool{id1: true, id2: true}, store.read)
}

func TestMarkReadStopsOnStoreError(t *testing.T) {
	store := &fakeStore{read: map[string]bool{id1: false, id2: false}, failOn: id3}
	s := NewService(store, &fakeNotifier{}, testClock(t), zap.NewNop())

	n, err := s.MarkRead(context.Background(), []string{id1, id3, id2})
	assert.ErrorIs(t, err, washroom.ErrStoreUnavailable)
	assert.Equal(t, 1, n)
	assert.False(t, store.read[id2])
}

func TestDigestAndScheduler(t *testing.T) {
	store := &fakeStore{reports: sampleReports()}
	notifier := &fakeNotifier{}
	s := NewService(store, notifier, testClock(t), zap.NewNop())
	sched := NewScheduler(s, time.Minute, zap.NewNop())

	digest, err := s.Digest(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "2 unread washroom problem(s):"))
	assert.Contains(t, digest, "- 1F Male: No tissue (2024-03-01 16:00:00)")
	assert.NotContains(t, digest, "Wet floor")

	assert.True(t, sched.Tick(context.Background()))
	assert.False(t, sched.Tick(context.Background()))
	require.Len(t, notifier.sent, 1)

	store.reports = append(store.reports, report(id2, "Bad smell", "3F", "Female", "2024-03-01 13:00:00", false))
	assert.True(t, sched.Tick(context.Background()))
	assert.Len(t, notifier.sent, 2)

	store.reports = nil
	assert.False(t, sched.Tick(context.Background()))
	assert.Len(t, notifier.sent, 2)
}

func TestSchedulerRetriesAfterSendFailure(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("provider down")}
	s := NewService(&fakeStore{reports: sampleReports()}, notifier, testClock(t), zap.NewNop())
	sched := NewScheduler(s, time.Minute, zap.NewNop())

	assert.False(t, sched.Tick(context.Background()))
	notifier.err = nil
	assert.True(t, sched.Tick(context.Background()))
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validate.New()
	return e
}

func serve(e *echo.Echo, h echo.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	_ = h(e.NewContext(req, rec))
	return rec
}

func TestHandlers(t *testing.T) {
	store := &fakeStore{reports: sampleReports()[:1], read: map[string]bool{id1: false}}
	notifier := &fakeNotifier{}
	h := NewHandler(NewService(store, notifier, testClock(t), zap.NewNop()), zap.NewNop())
	e := newEcho()

	rec := serve(e, h.Problems, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"`+id1+`","description":"No tissue","floor":"1F","toiletType":"Male","timestamp":"2024-03-01 16:00:00","solved":false}]`, rec.Body.String())

	rec = serve(e, h.Notifications, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"`+id1+`","description":"No tissue","floor":"1F","toiletType":"Male","timestamp":"2024-03-01 16:00:00","read":false}]`, rec.Body.String())

	rec = serve(e, h.MarkRead, http.MethodPost, `{"ids":["`+id1+`","bogus"]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Notifications marked as read"}`, rec.Body.String())
	assert.True(t, store.read[id1])

	rec = serve(e, h.SendAction, http.MethodPost, `{"message":"Please clean 1F Male"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message_sid":"SM0001"}`, rec.Body.String())
	assert.Equal(t, []string{"Please clean 1F Male"}, notifier.sent)

	rec = serve(e, h.SendAction, http.MethodPost, `{"message":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"message is required"}`, rec.Body.String())
}

func TestHandlerFailures(t *testing.T) {
	store := &fakeStore{err: washroom.ErrStoreUnavailable, failOn: id1}
	notifier := &fakeNotifier{err: errors.New("twilio: 401")}
	h := NewHandler(NewService(store, notifier, testClock(t), zap.NewNop()), zap.NewNop())
	e := newEcho()

	assert.Equal(t, http.StatusServiceUnavailable, serve(e, h.Problems, http.MethodGet, "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(e, h.Notifications, http.MethodGet, "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(e, h.MarkRead, http.MethodPost, `{"ids":["`+id1+`"]}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(e, h.MarkRead, http.MethodPost, `{"ids":`).Code)

	rec := serve(e, h.SendAction, http.MethodPost, `{"message":"hi"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Failed to send message"}`, rec.Body.String())
}
