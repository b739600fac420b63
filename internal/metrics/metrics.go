package metrics

import (
	"net/http"
	"time"

	"github.com/iamshubha/roy-dex-sub005/internal/config"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/allnetwork"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/hardware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Bucket labels of the accounts found counter.
const (
	BucketAccountsInfo          = "accounts_info"
	BucketAllAccountsInfo       = "all_accounts_info"
	BucketBackendIndexed        = "backend_indexed"
	BucketBackendNotIndexed     = "backend_not_indexed"
	statusSuccess               = "success"
	statusError                 = "error"
	discoveryDurationBucketBase = 0.005
)

// Service collects the discovery and hardware batch metrics on its own registry.
type Service struct {
	registry *prometheus.Registry

	discoveryDuration *prometheus.HistogramVec
	accountsFound     *prometheus.CounterVec
	workersInFlight   prometheus.Gauge
	deliveries        *prometheus.CounterVec
	poisoned          prometheus.Counter
}

var (
	_ allnetwork.Observer = (*Service)(nil)
	_ hardware.Observer   = (*Service)(nil)
)

func New(config config.Server) (*Service, error) {
	ns := config.Metrics.Namespace

	s := &Service{
		registry: prometheus.NewRegistry(),
		discoveryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: "discovery",
			Name:      "duration_seconds",
			Help:      "Duration of all networks account discovery runs.",
			Buckets:   prometheus.ExponentialBuckets(discoveryDurationBucketBase, 2, 12),
		}, []string{"status"}),
		accountsFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "discovery",
			Name:      "accounts_found_total",
			Help:      "Accounts reported by discovery, by result bucket.",
		}, []string{"bucket"}),
		workersInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Subsystem: "discovery",
			Name:      "network_workers_in_flight",
			Help:      "Networks currently being processed.",
		}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "hardware",
			Name:      "deliveries_total",
			Help:      "Device response items delivered to correlation tables, by outcome.",
		}, []string{"outcome"}),
		poisoned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "hardware",
			Name:      "tables_poisoned_total",
			Help:      "Correlation tables failed as a whole.",
		}),
	}

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		s.discoveryDuration,
		s.accountsFound,
		s.workersInFlight,
		s.deliveries,
		s.poisoned,
	} {
		if err := s.registry.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register metrics collector")
		}
	}

	return s, nil
}

// Registry exposes the registry, e.g. for tests gathering metrics.
func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}

// Handler serves the registry in the prometheus exposition format.
func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}

func (s *Service) NetworkWorkerStarted() {
	s.workersInFlight.Inc()
}

func (s *Service) NetworkWorkerFinished() {
	s.workersInFlight.Dec()
}

func (s *Service) DiscoveryFinished(duration time.Duration, result *allnetwork.Result, err error) {
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	s.discoveryDuration.WithLabelValues(status).Observe(duration.Seconds())

	if result == nil {
		return
	}

	s.accountsFound.WithLabelValues(BucketAccountsInfo).Add(float64(len(result.AccountsInfo)))
	s.accountsFound.WithLabelValues(BucketAllAccountsInfo).Add(float64(len(result.AllAccountsInfo)))
	s.accountsFound.WithLabelValues(BucketBackendIndexed).Add(float64(len(result.AccountsInfoBackendIndexed)))
	s.accountsFound.WithLabelValues(BucketBackendNotIndexed).Add(float64(len(result.AccountsInfoBackendNotIndexed)))
}

func (s *Service) ItemDelivered(outcome string) {
	s.deliveries.WithLabelValues(outcome).Inc()
}

func (s *Service) TablePoisoned() {
	s.poisoned.Inc()
}
