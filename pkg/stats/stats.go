package stats

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	BYTE = 1 << (10 * iota)
	KILOBYTE
	MEGABYTE
	GIGABYTE
	TERABYTE
)

// DumpFile is the name of the file, under the dump dir, where the
// prometheus metrics are appended at shutdown.
const DumpFile = "metrics"

// EnableMemoryStatistics starts a goroutine that periodically logs the memory
// usage of the process and the activity of the pool. When the context is
// done, the metrics are dumped to the given dir, if not empty.
func EnableMemoryStatistics(
	ctx context.Context, interval time.Duration, dumpDir string,
) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				PrintMemoryStatistics()
				PrintNumOfRoutines()
				PrintPoolStatistics()
			case <-ctx.Done():
				if len(dumpDir) <= 0 {
					return
				}
				if err := DumpPrometheusDefaults(dumpDir); err != nil {
					log.WithError(err).Warn("failed to dump metrics")
				}
				return
			}
		}
	}()
}

// toGigabytes returns given memory in bytes to gigabytes.
func toGigabytes(bytes uint64) float64 {
	return float64(bytes) / GIGABYTE
}

// PrintMemoryStatistics prints memory statistics using go runtime library.
func PrintMemoryStatistics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	log.Infof(
		"Total allocated: %.3fGB, Heap allocated: %.3fGB, "+
			"Allocated objects count: %v, Freed objects count: %v",
		toGigabytes(memStats.TotalAlloc),
		toGigabytes(memStats.HeapAlloc),
		memStats.Mallocs,
		memStats.Frees,
	)
}

// PrintNumOfRoutines prints number of go routines currently running
func PrintNumOfRoutines() {
	log.Infof("Num of go routines: %v", runtime.NumGoroutine())
}

// PrintPoolStatistics prints the number of swaps and the latest reserves
// collected by the pool metrics.
func PrintPoolStatistics() {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		log.WithError(err).Warn("failed to gather metrics")
		return
	}

	for _, family := range families {
		switch family.GetName() {
		case fmt.Sprintf("%s_swaps_total", namespace),
			fmt.Sprintf("%s_failed_operations_total", namespace),
			fmt.Sprintf("%s_reserve", namespace):
		default:
			continue
		}

		for _, m := range family.GetMetric() {
			labels := make(log.Fields, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}

			value := m.GetCounter().GetValue()
			if m.GetGauge() != nil {
				value = m.GetGauge().GetValue()
			}
			log.WithFields(labels).Infof("%s: %.0f", family.GetName(), value)
		}
	}
}

// DumpPrometheusDefaults appends the default Prometheus metrics to the
// DumpFile under the given dir.
func DumpPrometheusDefaults(dir string) error {
	file, err := os.OpenFile(
		filepath.Join(dir, DumpFile),
		os.O_APPEND|os.O_CREATE|os.O_RDWR,
		0644,
	)
	if err != nil {
		return err
	}
	defer file.Close()

	metricFamily, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(file)
	if _, err := fmt.Fprintf(
		writer, "# %s\n", time.Now().Format(time.RFC3339),
	); err != nil {
		return err
	}
	for _, v := range metricFamily {
		if _, err := writer.WriteString(v.String() + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}
