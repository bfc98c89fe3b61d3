package stats

import (
	"bufio"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	BYTE = 1 << (10 * iota)
	KILOBYTE
	MEGABYTE
	GIGABYTE
)

const namespace = "walletsync"

// Result labels
const (
	ResultSuccess = "success"
	ResultSkipped = "skipped"
	ResultFailure = "failure"
)

var (
	// SyncTotal counts the wallet sync pipelines by result
	SyncTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_total",
			Help:      "Number of wallet sync pipelines run, by result.",
		},
		[]string{"result"},
	)
	// UpgradeStepsTotal counts the upgrade workflows visited by version and
	// result
	UpgradeStepsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upgrade_steps_total",
			Help:      "Number of upgrade workflows visited, by version and result.",
		},
		[]string{"version", "result"},
	)
)

// Register adds the wallet collectors to the given registerer
func Register(registerer prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{SyncTotal, UpgradeStepsTotal} {
		if err := registerer.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveSync ...
func ObserveSync(result string) {
	SyncTotal.WithLabelValues(result).Inc()
}

// ObserveUpgradeStep ...
func ObserveUpgradeStep(version, result string) {
	UpgradeStepsTotal.WithLabelValues(version, result).Inc()
}

// EnableMemoryStatistics enables go routine that periodically prints memory
// usage of the go process. The returned function stops it and dumps the
// metrics gathered by gatherer to dumpPath.
func EnableMemoryStatistics(
	interval time.Duration, gatherer prometheus.Gatherer, dumpPath string,
) (stop func()) {
	ticker := time.NewTicker(interval)
	quit := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				PrintMemoryStatistics()
				PrintNumOfRoutines()
			case <-quit:
				if err := DumpMetrics(gatherer, dumpPath); err != nil {
					log.WithError(err).Warn("failed to dump metrics")
				}
				return
			}
		}
	}()

	once := &sync.Once{}
	return func() {
		once.Do(func() {
			close(quit)
			<-done
		})
	}
}

func toMegabytes(bytes uint64) float64 {
	return float64(bytes) / MEGABYTE
}

// PrintMemoryStatistics prints memory statistics using go runtime library.
func PrintMemoryStatistics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	log.Debugf(
		"Total allocated: %.3fMB, Heap allocated: %.3fMB, "+
			"Allocated objects count: %v, Freed objects count: %v",
		toMegabytes(memStats.TotalAlloc),
		toMegabytes(memStats.HeapAlloc),
		memStats.Mallocs,
		memStats.Frees,
	)
}

// DumpMetrics appends the metrics gathered by gatherer to the file at path
func DumpMetrics(gatherer prometheus.Gatherer, path string) error {
	metricFamilies, err := gatherer.Gather()
	if err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, v := range metricFamilies {
		if _, err := writer.WriteString(v.String() + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}

// PrintNumOfRoutines prints number of go routines currently running
func PrintNumOfRoutines() {
	log.Debugf("Num of go routines: %v", runtime.NumGoroutine())
}
