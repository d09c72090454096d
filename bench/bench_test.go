package bench

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ic-timon/pairdist/engine"
	"github.com/ic-timon/pairdist/gen"
)

func TestSweep(t *testing.T) {
	const n = 300
	var buf bytes.Buffer
	require.NoError(t, gen.Write(&buf, n, 5))
	src := bytes.NewReader(buf.Bytes())

	rows, err := Sweep(src, n, SweepConfig{BlockSizes: []int{300, 64, 7}, Workers: []int{1, 3}})
	require.NoError(t, err)
	require.Len(t, rows, 6)
	for _, r := range rows {
		assert.Equal(t, rows[0].Digest, r.Digest)
		assert.Equal(t, uint64(n), r.Points)
		assert.Len(t, r.Digest, 16)
	}
	assert.Equal(t, 1, rows[0].BlockPairs)
	assert.Equal(t, 3, rows[1].Workers)
	assert.Equal(t, 15, rows[2].BlockPairs) // 5 blocks of 64
}

func TestSweep_InvalidConfig(t *testing.T) {
	_, err := Sweep(bytes.NewReader(nil), 0, SweepConfig{BlockSizes: []int{-1}, Workers: []int{1}})
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)
}

func TestSweep_RejectsZeroBlockSize(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gen.Write(&buf, 20, 5))
	rows, err := Sweep(bytes.NewReader(buf.Bytes()), 20, SweepConfig{BlockSizes: []int{0}, Workers: []int{1}})
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)
	assert.Empty(t, rows)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteRows_WriterError(t *testing.T) {
	rows := []Row{{BlockSize: 1, Workers: 1, Digest: "0000000000000000"}}
	assert.EqualError(t, writeRows(failingWriter{}, rows), "disk full")
}

func TestWriteCSV_BadPath(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, WriteCSV(nil, dir)) // a directory cannot be created as a file
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sweep.csv")
	rows := []Row{
		{BlockSize: 100, Workers: 2, Points: 1000, BlockPairs: 55, ElapsedMs: 1.5, PairsPerSec: 333000, Digest: "00000000deadbeef"},
		{BlockSize: 200, Workers: 4, Points: 1000, BlockPairs: 15, ElapsedMs: 0.75, Digest: "00000000deadbeef"},
	}
	require.NoError(t, WriteCSV(rows, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, csvHeader, recs[0])
	assert.Equal(t, []string{"100", "2", "1000", "55", "1.50", "333000", "0.00", "0", "0.00", "00000000deadbeef"}, recs[1])
	assert.Equal(t, "200", recs[2][0])
}

func TestReportPath(t *testing.T) {
	p := ReportPath("sweep_")
	assert.Equal(t, ReportDir, filepath.Dir(p))
	assert.Equal(t, "sweep_"+time.Now().Format("20060102")+".csv", filepath.Base(p))
}

func TestDiff(t *testing.T) {
	now := time.Now()
	before := Snapshot{TS: now, TotalAlloc: 1000, NumGC: 3}
	after := Snapshot{TS: now.Add(time.Second), TotalAlloc: 3000, NumGC: 5}
	rate, gc := Diff(before, after)
	assert.InDelta(t, 2000.0, rate, 1e-9)
	assert.Equal(t, uint32(2), gc)

	rate, gc = Diff(after, after)
	assert.Zero(t, rate)
	assert.Zero(t, gc)
}

func TestTake(t *testing.T) {
	GC()
	s := Take()
	assert.NotZero(t, s.HeapSys)
	assert.Positive(t, s.NumGoroutine)
}
