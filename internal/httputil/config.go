package httputil

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

type Config struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	TLS               TLSConfig     `mapstructure:"tls"`
}

type Server struct {
	*http.Server
	cfg *Config
}

// Setup registers defaults. The control API listens on loopback unless told
// otherwise since it drives the device's microphone.
func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("addr"), "127.0.0.1:7880")
	v.SetDefault(p("read_header_timeout"), 5*time.Second)
	v.SetDefault(p("shutdown_timeout"), 5*time.Second)
	v.SetDefault(p("tls.enabled"), false)
	v.SetDefault(p("tls.cert_file"), "")
	v.SetDefault(p("tls.key_file"), "")
}

func NewServer(cfg *Config, handler http.Handler) *Server {
	return &Server{
		Server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
		cfg: cfg,
	}
}

// Listen serves until the server is stopped. A stop via Stop is not an error.
func (s *Server) Listen() error {
	cfg := s.cfg
	var err error
	if !cfg.TLS.Enabled {
		err = s.ListenAndServe()
	} else {
		if cfg.TLS.CertFile == "" || cfg.TLS.KeyFile == "" {
			return errors.New("TLS is enabled but cert_file or key_file is not set")
		}
		err = s.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop drains in-flight requests, bounded by the configured shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
	}
	return s.Shutdown(ctx)
}
