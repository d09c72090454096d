package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
)

// Row 单个 (BlockSize, Workers) 组合的结果
type Row struct {
	BlockSize   int
	Workers     int
	Points      uint64
	BlockPairs  int
	ElapsedMs   float64
	PairsPerSec float64
	AllocMBps   float64
	NumGC       uint32
	HeapAllocMB float64
	Digest      string
}

var csvHeader = []string{"BlockSize", "Workers", "Points", "BlockPairs", "ElapsedMs", "PairsPerSec", "AllocMBps", "NumGC", "HeapAllocMB", "Digest"}

// WriteCSV 写入扫描报告，必要时创建父目录
func WriteCSV(rows []Row, path string) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	return writeRows(f, rows)
}

func writeRows(out io.Writer, rows []Row) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		err := w.Write([]string{
			fmt.Sprintf("%d", r.BlockSize),
			fmt.Sprintf("%d", r.Workers),
			fmt.Sprintf("%d", r.Points),
			fmt.Sprintf("%d", r.BlockPairs),
			fmt.Sprintf("%.2f", r.ElapsedMs),
			fmt.Sprintf("%.0f", r.PairsPerSec),
			fmt.Sprintf("%.2f", r.AllocMBps),
			fmt.Sprintf("%d", r.NumGC),
			fmt.Sprintf("%.2f", r.HeapAllocMB),
			r.Digest,
		})
		if err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReportDir 报告输出目录
const ReportDir = "report"

// ReportPath 生成 report/ 目录下带日期的报告路径
func ReportPath(prefix string) string {
	return filepath.Join(ReportDir, prefix+time.Now().Format("20060102")+".csv")
}
