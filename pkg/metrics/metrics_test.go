package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/tags/:id", "200"))
	RecordHTTPRequest("GET", "/api/tags/:id", 200, 10*time.Millisecond)
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/tags/:id", "200"))
	assert.Equal(t, before+1, after)
}

func TestTrackInFlight(t *testing.T) {
	done := TrackInFlight()
	assert.Equal(t, 1.0, testutil.ToFloat64(httpInFlight))
	done()
	assert.Equal(t, 0.0, testutil.ToFloat64(httpInFlight))
}

func TestHandler(t *testing.T) {
	RecordArticleEvent("created", true)
	SetLiveClients(2)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fu_news_pipeline_article_events_total")
	assert.Contains(t, rec.Body.String(), "fu_news_live_connected_clients 2")
}
