package monitoring

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cloudretro/retrofront/pkg/config"
	"github.com/cloudretro/retrofront/pkg/logger"
)

var (
	// Frames counts frames emulated since the start.
	Frames = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "retrofront",
		Name:      "frames_total",
		Help:      "Total number of emulated frames.",
	})
	// FrameTime tracks the wall time of single retro_run calls.
	FrameTime = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "retrofront",
		Name:      "frame_time_seconds",
		Help:      "Time spent running one frame.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	})
)

type Monitoring struct {
	conf   config.Monitoring
	server *http.Server
	log    *logger.Logger
}

// New creates a monitoring HTTP service with optional pprof and
// Prometheus endpoints.
func New(conf config.Monitoring, log *logger.Logger) *Monitoring {
	addr := fmt.Sprintf(":%d", conf.Port)
	h := http.NewServeMux()

	if conf.ProfilingEnabled {
		prefix := conf.URLPrefix + "/debug/pprof"
		log.Info().Msgf("Profiling is enabled at %v", addr+prefix)
		h.HandleFunc(prefix+"/", pprof.Index)
		h.HandleFunc(prefix+"/cmdline", pprof.Cmdline)
		h.HandleFunc(prefix+"/profile", pprof.Profile)
		h.HandleFunc(prefix+"/symbol", pprof.Symbol)
		h.HandleFunc(prefix+"/trace", pprof.Trace)
		// custom pprof paths need their handlers registered one by one
		h.Handle(prefix+"/allocs", pprof.Handler("allocs"))
		h.Handle(prefix+"/block", pprof.Handler("block"))
		h.Handle(prefix+"/goroutine", pprof.Handler("goroutine"))
		h.Handle(prefix+"/heap", pprof.Handler("heap"))
		h.Handle(prefix+"/mutex", pprof.Handler("mutex"))
		h.Handle(prefix+"/threadcreate", pprof.Handler("threadcreate"))
	}

	if conf.MetricEnabled {
		metricPath := conf.URLPrefix + "/metrics"
		log.Info().Msgf("Prometheus metrics are enabled at %v", addr+metricPath)
		h.Handle(metricPath, promhttp.Handler())
	}

	return &Monitoring{
		conf:   conf,
		server: &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second},
		log:    log,
	}
}

// Enabled reports whether the config turns any endpoint on.
func (m *Monitoring) Enabled() bool { return m.conf.ProfilingEnabled || m.conf.MetricEnabled }

func (m *Monitoring) Run() {
	m.log.Info().Msgf("Starting monitoring server at %v", m.server.Addr)
	if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		m.log.Error().Err(err).Msg("monitoring server")
	}
}

func (m *Monitoring) Shutdown(ctx context.Context) error {
	m.log.Info().Msg("Shutting down monitoring server")
	return m.server.Shutdown(ctx)
}

func (m *Monitoring) String() string {
	return fmt.Sprintf("monitoring::%s:%d", m.conf.URLPrefix, m.conf.Port)
}
