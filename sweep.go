package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gosuri/uilive"

	"raidcalc/capacity"
	"raidcalc/logger"
)

var sweepHeader = []string{"scheme", "drives", "size_tb", "usable_tib", "raw_tib", "efficiency", "wasted_tib", "error"}

// sweepOptions describe the planning grid: every scheme × size × drive count.
type sweepOptions struct {
	Sizes     []float64
	MaxDrives int
}

func (o sweepOptions) rows(reg *capacity.Registry) int {
	return len(reg.IDs()) * len(o.Sizes) * o.MaxDrives
}

// writeSweep writes one CSV row per grid point. Rejected combinations keep
// their validation message in the error column. progress is called after
// every row with the number of rows written so far.
func writeSweep(w io.Writer, reg *capacity.Registry, opts sweepOptions, progress func(rows int)) (int, error) {
	if opts.MaxDrives <= 0 {
		return 0, fmt.Errorf("max drives must be positive, got %d", opts.MaxDrives)
	}
	if len(opts.Sizes) == 0 {
		return 0, fmt.Errorf("no drive sizes to sweep")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(sweepHeader); err != nil {
		return 0, err
	}

	var rows int
	for _, id := range reg.IDs() {
		for _, size := range opts.Sizes {
			for n := 1; n <= opts.MaxDrives; n++ {
				record := []string{id, strconv.Itoa(n), formatFloat(size), "", "", "", "", ""}
				res, err := reg.Calculate(id, uniformDrives(n, size), nil)
				if err != nil {
					record[7] = err.Error()
				} else {
					record[3] = formatFloat(res.Usable)
					record[4] = formatFloat(res.Raw)
					record[5] = formatFloat(res.Efficiency)
					record[6] = formatFloat(res.Wasted)
				}
				if err := cw.Write(record); err != nil {
					return rows, err
				}
				rows++
				if progress != nil {
					progress(rows)
				}
			}
		}
	}

	cw.Flush()
	return rows, cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// exportSweep writes the sweep to outputfile plus the algorithm's extension.
// With live set, progress is redrawn in place on status.
func exportSweep(status io.Writer, live bool, outputfile, algorithm string, opts sweepOptions) (string, error) {
	extension, err := getCompressionExtension(algorithm)
	if err != nil {
		return "", err
	}
	outputfile += extension

	output, err := os.Create(outputfile)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		_ = output.Close()
	}()

	cw := &countingWriter{w: output}
	entryName := strings.TrimSuffix(filepath.Base(outputfile), extension)
	if filepath.Ext(entryName) == "" {
		entryName += ".csv"
	}
	compressed, err := createCompressionWriter(algorithm, cw, entryName)
	if err != nil {
		return "", fmt.Errorf("failed to create compression writer: %w", err)
	}

	fmt.Fprintf(status, "Writing sweep: %s\n", outputfile)
	logger.Info("sweep started", "file", outputfile, "compression", algorithm, "rows", opts.rows(capacity.Default))

	start := time.Now()
	total := opts.rows(capacity.Default)

	var writer *uilive.Writer
	stopLive := func() {}
	if live {
		writer = uilive.New()
		writer.Out = status
		writer.Start()
		stopLive = writer.Stop
	}

	lastUpdate := time.Now()
	progress := func(rows int) {
		if writer == nil || (time.Since(lastUpdate) < 100*time.Millisecond && rows != total) {
			return
		}
		_, _ = fmt.Fprintf(writer, "Rows: %d/%d\n", rows, total)
		_, _ = fmt.Fprintf(writer, "Written: %s (%d bytes)\n", formatBytes(cw.count), cw.count)
		_, _ = fmt.Fprintf(writer, "Elapsed Time: %s\n", time.Since(start).Truncate(time.Millisecond))
		_ = writer.Flush()
		lastUpdate = time.Now()
	}

	rows, err := writeSweep(compressed, capacity.Default, opts, progress)
	stopLive()
	if err != nil {
		_ = compressed.Close()
		return "", fmt.Errorf("failed to write sweep: %w", err)
	}
	if err := compressed.Close(); err != nil {
		return "", fmt.Errorf("failed to finish %s stream: %w", algorithm, err)
	}
	if err := output.Sync(); err != nil {
		return "", fmt.Errorf("failed to sync output file: %w", err)
	}

	fmt.Fprintf(status, "Rows written: %d, file size: %s (%d bytes), took %s\n",
		rows, formatBytes(cw.count), cw.count, time.Since(start).Truncate(time.Millisecond))
	logger.Info("sweep finished", "file", outputfile, "rows", rows, "bytes", cw.count)
	return outputfile, nil
}

// formatBytes renders n with the largest binary unit it reaches.
func formatBytes(n int64) string {
	for _, u := range units {
		if n >= u.Threshold && u.Threshold > 1 {
			return fmt.Sprintf("%.2f %s", float64(n)/float64(u.Threshold), u.Name)
		}
	}
	return fmt.Sprintf("%d bytes", n)
}
