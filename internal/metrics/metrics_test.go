package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(cacheLookupsTotal.WithLabelValues("report", "hit"))
	misses := testutil.ToFloat64(cacheLookupsTotal.WithLabelValues("report", "miss"))

	RecordCacheLookup("report", true)
	RecordCacheLookup("report", false)
	RecordCacheLookup("report", false)

	assert.Equal(t, hits+1, testutil.ToFloat64(cacheLookupsTotal.WithLabelValues("report", "hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(cacheLookupsTotal.WithLabelValues("report", "miss")))
}

func TestRecordNotification(t *testing.T) {
	before := testutil.ToFloat64(notificationsSentTotal.WithLabelValues("log", "failure"))
	RecordNotification("log", errors.New("x"))
	assert.Equal(t, before+1, testutil.ToFloat64(notificationsSentTotal.WithLabelValues("log", "failure")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordHTTPRequest(http.MethodGet, "/report", http.StatusOK, 15*time.Millisecond)
	RecordMarkedRead(2)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{endpoint="/report",method="GET",status="200"}`)
	assert.Contains(t, string(body), "notifications_marked_read_total")
}
