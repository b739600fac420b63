package probe

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/-/ready", probeURL(":8080", "/-/ready"))
	assert.Equal(t, "http://localhost:8080/-/ready", probeURL("0.0.0.0:8080", "/-/ready"))
	assert.Equal(t, "http://127.0.0.1:9000/-/healthy", probeURL("127.0.0.1:9000", "/-/healthy"))
	assert.Equal(t, "http://[::1]:8080/-/ready", probeURL("[::1]:8080", "/-/ready"))
}

func TestRunProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/-/ready" {
			_, _ = w.Write([]byte("Ready."))
			return
		}
		w.WriteHeader(521)
		_, _ = w.Write([]byte("Not ready."))
	}))
	defer srv.Close()

	address := strings.TrimPrefix(srv.URL, "http://")

	body, err := runProbe(t.Context(), address, "/-/ready")
	require.NoError(t, err)
	assert.Equal(t, "Ready.", body)

	body, err = runProbe(t.Context(), address, "/-/healthy")
	require.Error(t, err)
	assert.Equal(t, "Not ready.", body)
}
