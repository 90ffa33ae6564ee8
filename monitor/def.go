package monitor

import (
	"math"
	"os"
	"time"

	"NamesConv/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"
)

// Recorder keeps per-run metrics. They are written once at exit in the text exposition
// format, suitable for a node_exporter textfile collector.
type Recorder struct {
	registry   *prometheus.Registry
	namesCount prometheus.Gauge
	extracts   *prometheus.CounterVec
	exports    *prometheus.CounterVec
	exportSecs prometheus.Gauge
	memUsage   prometheus.Gauge
	cpuUsage   prometheus.Gauge
	pid        *process.Process
}

func New(tool string) *Recorder {
	labels := prometheus.Labels{"tool": tool, "run": logger.RunID()}
	r := &Recorder{registry: prometheus.NewRegistry()}
	r.namesCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "names_extracted",
		Help:        "Number of class names in the last extracted list",
		ConstLabels: labels,
	})
	r.extracts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "names_extract_total",
		Help:        "Extraction attempts by shape and result",
		ConstLabels: labels,
	}, []string{"shape", "result"})
	r.exports = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "model_export_total",
		Help:        "Model exports by format and result",
		ConstLabels: labels,
	}, []string{"format", "result"})
	r.exportSecs = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "model_export_seconds",
		Help:        "Wall time of the last model export",
		ConstLabels: labels,
	})
	r.memUsage = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "memory_usage_Megabytes",
		Help:        "Memory usage in Megabytes",
		ConstLabels: labels,
	})
	r.cpuUsage = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "cpu_usage_percent",
		Help:        "CPU usage in percent",
		ConstLabels: labels,
	})
	r.registry.MustRegister(r.namesCount, r.extracts, r.exports, r.exportSecs, r.memUsage, r.cpuUsage)

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logger.Log().Warn("process info unavailable", zap.Error(err))
	} else {
		r.pid = p
	}
	return r
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (r *Recorder) ObserveExtract(shape string, count int, err error) {
	r.extracts.WithLabelValues(shape, result(err)).Inc()
	r.namesCount.Set(float64(count))
}

func (r *Recorder) ObserveExport(format string, took time.Duration, err error) {
	r.exports.WithLabelValues(format, result(err)).Inc()
	r.exportSecs.Set(took.Seconds())
}

// CheckProcessInfo samples RSS and CPU of the current process.
func (r *Recorder) CheckProcessInfo() {
	if r.pid == nil {
		return
	}
	if memInfo, err := r.pid.MemoryInfo(); err == nil {
		r.memUsage.Set(float64(memInfo.RSS / 1024 / 1024))
	}
	if cpuPercent, err := r.pid.CPUPercent(); err == nil {
		r.cpuUsage.Set(math.Round(cpuPercent*100) / 100)
	}
}

func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteFile samples process info and writes all metrics to path. An empty path is a no-op.
func (r *Recorder) WriteFile(path string) error {
	if path == "" {
		return nil
	}
	r.CheckProcessInfo()
	return prometheus.WriteToTextfile(path, r.registry)
}
