package metrics

import (
	"io/ioutil"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Run(t *testing.T) {
	before := testutil.ToFloat64(Observer.prometheus.Runs.WithLabelValues("random", Success))
	Observer.Run("random", Success)
	Observer.Run("random", Success)
	Observer.Run("random", Invalid)
	after := testutil.ToFloat64(Observer.prometheus.Runs.WithLabelValues("random", Success))
	assert.Equal(t, before+2, after)
}

func TestHandler(t *testing.T) {
	Observer.Run("manual", Success)
	Observer.Iterations("manual", 3)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	b, err := ioutil.ReadAll(rec.Body)
	require.NoError(t, err)

	body := string(b)
	assert.True(t, strings.Contains(body, `cluster_runs_total{method="manual",outcome="success"}`))
	assert.True(t, strings.Contains(body, `cluster_iterations_count{method="manual"}`))
}
