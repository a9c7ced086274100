package telemetry

import (
	"sort"
	"strings"
	"time"

	"github.com/armon/go-metrics"
	"github.com/rs/zerolog"
)

// retention covers a whole run; a run never outlives a single interval.
const retention = time.Hour

// Metric keys recorded during a run.
var (
	KeyLinesValid     = []string{"lines", "valid"}
	KeyLinesInvalid   = []string{"lines", "invalid"}
	KeyValuesRejected = []string{"values", "rejected"}
	KeyTokens         = []string{"tokens"}
	KeyStageParse     = []string{"stage", "parse"}
	KeyStageCompute   = []string{"stage", "compute"}
)

// Recorder collects the counters and stage timings of one run in memory.
type Recorder struct {
	sink    *metrics.InmemSink
	metrics *metrics.Metrics
}

// New returns a Recorder whose keys are prefixed with service.
func New(service string) (*Recorder, error) {
	sink := metrics.NewInmemSink(retention, retention)

	cfg := metrics.DefaultConfig(service)
	cfg.EnableHostname = false
	cfg.EnableRuntimeMetrics = false
	cfg.TimerGranularity = time.Microsecond

	m, err := metrics.New(cfg, sink)
	if err != nil {
		return nil, err
	}

	return &Recorder{
		sink:    sink,
		metrics: m,
	}, nil
}

// Add increments the counter key by n.
func (r *Recorder) Add(key []string, n int) {
	r.metrics.IncrCounter(key, float32(n))
}

// MeasureSince records the time elapsed since start under key.
func (r *Recorder) MeasureSince(key []string, start time.Time) {
	r.metrics.MeasureSince(key, start)
}

// Counter returns the accumulated value of the counter key.
func (r *Recorder) Counter(key []string) float64 {
	suffix := strings.Join(key, ".")

	var total float64
	for _, interval := range r.sink.Data() {
		for name, v := range interval.Counters {
			if name == suffix || strings.HasSuffix(name, "."+suffix) {
				total += v.Sum
			}
		}
	}
	return total
}

// Log writes every recorded counter and timing at debug level.
func (r *Recorder) Log(logger zerolog.Logger) {
	if logger.GetLevel() > zerolog.DebugLevel {
		return
	}

	for _, interval := range r.sink.Data() {
		for _, name := range sortedKeys(interval.Counters) {
			logger.Debug().
				Str("metric", name).
				Float64("value", interval.Counters[name].Sum).
				Msg("run counter")
		}
		for _, name := range sortedKeys(interval.Samples) {
			sample := interval.Samples[name]
			logger.Debug().
				Str("metric", name).
				Float64("us", sample.Sum).
				Msg("run timing")
		}
	}
}

func sortedKeys(m map[string]metrics.SampledValue) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
