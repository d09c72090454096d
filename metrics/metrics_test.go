package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := NewRecorder()
	r.BlockRead(10, false, nil)
	r.BlockRead(3, true, nil)
	r.BlockRead(0, true, errors.New("seek"))
	r.KernelCall(true, 45, 0, time.Millisecond)
	r.KernelCall(false, 99, 1, 2*time.Millisecond)
	r.KernelCall(false, 1, 0, time.Millisecond)

	assert.Equal(t, 3.0, testutil.ToFloat64(r.blocksRead))
	assert.Equal(t, 13.0, testutil.ToFloat64(r.pointsDecoded))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.partialBlocks))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.readErrors))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.kernelCalls.WithLabelValues("self")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.kernelCalls.WithLabelValues("cross")))
	assert.Equal(t, 145.0, testutil.ToFloat64(r.pairsBinned))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.pairsDropped))
	assert.Equal(t, 1, testutil.CollectAndCount(r.kernelDuration))
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	r.BlockRead(1, true, nil)
	r.KernelCall(true, 1, 1, time.Second)
	assert.Nil(t, r.Registry())
	assert.NoError(t, r.Push("http://unused", "job"))
}

func TestRecorder_Push(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := NewRecorder()
	r.BlockRead(5, false, nil)
	require.NoError(t, r.Push(srv.URL, "pairhist"))
	assert.Equal(t, "/metrics/job/pairhist", gotPath)
}

func TestRecorder_PushFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	assert.Error(t, NewRecorder().Push(srv.URL, ""))
}
