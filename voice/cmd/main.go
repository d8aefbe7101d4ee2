package main

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/viper"

	"github.com/imtaco/voicelink/internal/config"
	"github.com/imtaco/voicelink/internal/httputil"
	"github.com/imtaco/voicelink/internal/log"
	"github.com/imtaco/voicelink/internal/otel"
	"github.com/imtaco/voicelink/internal/workflow"
	"github.com/imtaco/voicelink/voice/lifecycle"
	"github.com/imtaco/voicelink/voice/rtc"
	"github.com/imtaco/voicelink/voice/session"
	"github.com/imtaco/voicelink/voice/token"
	"github.com/imtaco/voicelink/voice/transport"
)

type Config struct {
	App       config.App       `mapstructure:"app"`
	HTTP      httputil.Config  `mapstructure:"http"`
	Otel      otel.Config      `mapstructure:"otel"`
	Token     token.Config     `mapstructure:"token"`
	Session   session.Config   `mapstructure:"session"`
	Lifecycle lifecycle.Config `mapstructure:"lifecycle"`
	RTC       rtc.Config       `mapstructure:"rtc"`
	Control   transport.Config `mapstructure:"control"`
}

func loadConfig() (*Config, error) {
	return config.Load(&Config{}, func(v *viper.Viper) {
		config.Setup(v, "app")
		httputil.Setup(v, "http")
		otel.Setup(v, "otel")
		token.Setup(v, "token")
		session.Setup(v, "session")
		lifecycle.Setup(v, "lifecycle")
		rtc.Setup(v, "rtc")
		transport.Setup(v, "control")
	})
}

func main() {
	config, err := loadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration", err)
	}

	logger, err := log.NewLogger(config.App.LogConfigFile)
	if err != nil {
		log.Fatal("Failed to create logger", err)
	}
	defer func() { _ = logger.Sync() }()

	// global background context
	ctx := context.Background()

	config.Otel.InstanceID = config.App.Instance()
	otelShutdown, err := otel.Init(ctx, &config.Otel, logger)
	if err != nil {
		logger.Fatal("Failed to initialize OTEL provider", log.Error(err))
	}

	logger.Info("Starting voicelink",
		log.String("instance", config.App.Instance()),
		log.String("addr", config.HTTP.Addr),
		log.String("tokenBackend", config.Token.BaseURL))

	// token path: session -> issuer -> cache -> source
	sessionStore := token.NewSessionStore(config.Token.AuthToken)
	issuer := token.NewIssuer(&config.Token, sessionStore, logger.Module("Issuer"))
	cache := token.NewCache(clockwork.NewRealClock(), config.Token.TTL)
	source := token.NewSource(cache, issuer, &config.Token, logger.Module("Tokens"))
	sessionStore.OnChange(source.Invalidate)

	dialer := rtc.NewDialer(&config.RTC, logger.Module("RTC"))

	manager, err := session.NewManager(source, dialer, &config.Session, logger.Module("Session"))
	if err != nil {
		logger.Fatal("Failed to create session manager", log.Error(err))
	}

	controller, err := lifecycle.NewController(
		manager,
		lifecycle.NewStaticPermissions(&config.Lifecycle),
		&config.Lifecycle,
		logger.Module("Lifecycle"),
	)
	if err != nil {
		logger.Fatal("Failed to create lifecycle controller", log.Error(err))
	}

	hub := transport.NewEventHub(config.Control.WSOrigins, controller.Snapshot, logger.Module("Events"))
	controller.SetCallbacks(hub.Callbacks())

	router := transport.NewRouter(controller, sessionStore, hub, &config.Control, logger.Module("Router"))
	server := httputil.NewServer(&config.HTTP, router.Handler())

	go func() {
		logger.Info("Starting HTTP server", log.String("addr", config.HTTP.Addr))
		if err := server.Listen(); err != nil {
			logger.Fatal("Failed to start HTTP server", log.Error(err))
		}
	}()

	logger.Info("voicelink started")

	cleanup := func(ctx context.Context) {
		hub.Close()
		if err := server.Stop(ctx); err != nil {
			logger.Error("Failed to stop HTTP server", log.Error(err))
		}

		controller.Disconnect(ctx)
		controller.Close()
		manager.Close()

		if err := otelShutdown(ctx); err != nil {
			logger.Error("Failed to shutdown OTEL", log.Error(err))
		}
	}
	workflow.WaitGracefulShutdown(ctx, logger.Module("CleanUp"), cleanup, config.App.ShutdownTimeout)
}
