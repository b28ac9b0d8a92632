package obs

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"httpcore/internal/httperr"
)

func TestMetrics_RecordsSessionsAndErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.SessionAccepted()
	m.RequestHandled("GET", 0.01)
	m.ErrorObserved(httperr.New(httperr.BadMethod, "bad method"))

	families, err := reg.Gather()
	require.NoError(t, err)

	var found, foundErrors bool
	for _, f := range families {
		if f.GetName() == "httpcore_sessions_total" {
			found = true
			require.Len(t, f.Metric, 1)
			require.Equal(t, float64(1), f.Metric[0].GetCounter().GetValue())
		}
		if f.GetName() == "httpcore_errors_total" {
			foundErrors = true
			require.Len(t, f.Metric, 1)
			require.Equal(t, float64(1), f.Metric[0].GetCounter().GetValue())
		}
	}
	require.True(t, found)
	require.True(t, foundErrors)
}

func TestMetrics_ErrorObserved_UnknownKind(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ErrorObserved(assertError{})

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}

type assertError struct{}

func (assertError) Error() string { return "boom" }
