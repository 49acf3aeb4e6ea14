package server

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

type httpServer struct {
	inner http.Server

	name string
}

func newHTTPServer(name string, handler http.Handler) *httpServer {
	const (
		readHeaderTimeout = 20 * time.Second
		readTimeout       = 20 * time.Second
		writeTimeout      = 20 * time.Second
	)

	return &httpServer{
		inner: http.Server{
			ReadTimeout:       readTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,

			Handler: handler,
		},

		name: name,
	}
}

func newHTTPSServer(name string, handler http.Handler) *httpServer {
	srv := newHTTPServer(name, handler)

	srv.inner.TLSConfig = &tls.Config{
		MinVersion:   tls.VersionTLS12,
		CipherSuites: tlsCipherSuites(),
	}

	return srv
}

func (s *httpServer) String() string {
	return s.name
}

func (s *httpServer) Serve(l net.Listener) error {
	return s.inner.Serve(l)
}

func (s *httpServer) ServeTLS(l net.Listener, certFile, keyFile string) error {
	return s.inner.ServeTLS(l, certFile, keyFile)
}
