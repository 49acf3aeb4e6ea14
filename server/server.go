package server

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/hoardcache/hoard/api"
	"github.com/hoardcache/hoard/cache/hittrack"
	"github.com/hoardcache/hoard/cache/namedcache"
	"github.com/hoardcache/hoard/config"
	"github.com/hoardcache/hoard/evt"
	"github.com/hoardcache/hoard/log"
	"github.com/hoardcache/hoard/metrics"
	"github.com/hoardcache/hoard/oplog"
	"github.com/hoardcache/hoard/redis"
	"github.com/hoardcache/hoard/socket"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/net/netutil"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const (
	maxConnsPerListener = 512
)

// Server controls the HTTP endpoints for the cache registry
type Server struct {
	service        *cacheService
	httpListeners  []net.Listener
	httpsListeners []net.Listener
	cfg            *config.Config
	httpMux        *chi.Mux
}

func logger() *logrus.Entry {
	return log.PrefixedLog("server")
}

func tlsCipherSuites() []uint16 {
	tlsCipherSuites := []uint16{
		tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
		tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
		tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
		tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
		tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305,
		tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305,
	}

	return tlsCipherSuites
}

func getServerAddress(addr string) string {
	if !strings.Contains(addr, ":") {
		addr = fmt.Sprintf(":%s", addr)
	}

	return addr
}

// NewServer creates new server instance with passed config
func NewServer(cfg *config.Config) (server *Server, err error) {
	log.ConfigureLogger(cfg.Log)

	router := createRouter(cfg)

	httpListeners, httpsListeners, err := createHTTPListeners(cfg)
	if err != nil {
		return nil, err
	}

	if len(httpListeners) != 0 || len(httpsListeners) != 0 {
		metrics.Start(router, cfg.Prometheus)
	}

	metrics.RegisterEventListeners()

	redisClient, redisErr := redis.New(&cfg.Redis)
	if redisErr != nil && cfg.Redis.Required {
		return nil, redisErr
	}

	service := createCacheService(cfg, redisClient)

	server = &Server{
		service:        service,
		cfg:            cfg,
		httpListeners:  httpListeners,
		httpsListeners: httpsListeners,
		httpMux:        router,
	}

	server.printConfiguration()

	api.RegisterEndpoint(router, service)

	return server, err
}

func createCacheService(cfg *config.Config, redisClient *redis.Client) *cacheService {
	registry := namedcache.NewRegistry(namedcache.Options[string, []byte]{
		SweepEvery: cfg.Registry.SweepEvery,
		Equal:      bytes.Equal,
		OnCacheHitFn: func(cacheName string, _ string) {
			evt.Bus().Publish(evt.CacheHit, cacheName)
		},
		OnCacheMissFn: func(cacheName string, _ string) {
			evt.Bus().Publish(evt.CacheMiss, cacheName)
		},
		OnAfterPutFn: func(cacheName string, newSize int) {
			evt.Bus().Publish(evt.CacheEntryCountChanged, cacheName, newSize)
		},
		OnSweptFn: func(removed int) {
			evt.Bus().Publish(evt.CacheSweepDone, removed)
		},
	})

	var tracker *hittrack.Tracker

	if cfg.HotKeys.Enable {
		tracker = hittrack.NewTracker(
			hittrack.WithCapacity(cfg.HotKeys.Capacity),
			hittrack.WithWindow(cfg.HotKeys.Window.ToDuration()),
			hittrack.WithThreshold(cfg.HotKeys.Threshold),
			hittrack.WithOnCountChanged(func(count int) {
				evt.Bus().Publish(evt.HotKeyCountChanged, count)
			}))
	}

	service := newCacheService(cfg, registry, tracker, oplog.NewLogger(cfg.Oplog), redisClient)

	if redisClient != nil {
		go service.applyRedisCache(redisClient)

		redisClient.GetRedisCache()
	}

	return service
}

func createHTTPListeners(cfg *config.Config) (httpListeners []net.Listener, httpsListeners []net.Listener, err error) {
	httpListeners, err = newListeners("http", cfg.Ports.HTTP)
	if err != nil {
		return nil, nil, err
	}

	httpsListeners, err = newListeners("https", cfg.Ports.HTTPS)
	if err != nil {
		return nil, nil, err
	}

	return httpListeners, httpsListeners, nil
}

func newListeners(proto string, addresses config.ListenConfig) ([]net.Listener, error) {
	listeners := make([]net.Listener, 0, len(addresses))

	for _, address := range addresses {
		listener, err := socket.Listen(getServerAddress(address))
		if err != nil {
			return nil, fmt.Errorf("start %s listener on %s failed: %w", proto, address, err)
		}

		listeners = append(listeners, netutil.LimitListener(listener, maxConnsPerListener))
	}

	return listeners, nil
}

func (s *Server) printConfiguration() {
	logger().Info("current configuration:")

	s.cfg.LogConfig(logger())

	logger().Info("runtime information:")

	// force garbage collector
	runtime.GC()
	debug.FreeOSMemory()

	// gather memory stats
	var m runtime.MemStats

	runtime.ReadMemStats(&m)

	logger().Infof("MEM Alloc =        %10v MB", toMB(m.Alloc))
	logger().Infof("MEM HeapAlloc =    %10v MB", toMB(m.HeapAlloc))
	logger().Infof("MEM Sys =          %10v MB", toMB(m.Sys))
	logger().Infof("MEM NumGC =        %10v", m.NumGC)
	logger().Infof("RUN NumCPU =       %10d", runtime.NumCPU())
	logger().Infof("RUN NumGoroutine = %10d", runtime.NumGoroutine())
}

func toMB(b uint64) uint64 {
	const bytesInKB = 1024

	return b / bytesInKB / bytesInKB
}

// Start starts the server
func (s *Server) Start(errCh chan<- error) {
	logger().Info("Starting server")

	for i, listener := range s.httpListeners {
		listener := listener
		address := s.cfg.Ports.HTTP[i]

		go func() {
			logger().Infof("http server is up and running on addr/port %s", address)

			srv := newHTTPServer("http", s.httpMux)

			if err := srv.Serve(listener); err != nil && !errors.Is(err, net.ErrClosed) {
				errCh <- fmt.Errorf("start %s listener failed: %w", srv, err)
			}
		}()
	}

	for i, listener := range s.httpsListeners {
		listener := listener
		address := s.cfg.Ports.HTTPS[i]

		go func() {
			logger().Infof("https server is up and running on addr/port %s", address)

			srv := newHTTPSServer("https", s.httpMux)

			if err := srv.ServeTLS(listener, s.cfg.CertFile, s.cfg.KeyFile); err != nil && !errors.Is(err, net.ErrClosed) {
				errCh <- fmt.Errorf("start %s listener failed: %w", srv, err)
			}
		}()
	}

	registerPrintConfigurationTrigger(s)
}

// Stop stops the server
func (s *Server) Stop() error {
	logger().Info("Stopping server")

	var err *multierror.Error

	for _, listener := range s.httpListeners {
		err = multierror.Append(err, listener.Close())
	}

	for _, listener := range s.httpsListeners {
		err = multierror.Append(err, listener.Close())
	}

	return err.ErrorOrNil()
}
