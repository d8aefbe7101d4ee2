package transport

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/imtaco/voicelink/internal/log"
	"github.com/imtaco/voicelink/internal/validation"
	"github.com/imtaco/voicelink/voice"
)

const serviceName = "voicelink"

// Router is the local control API a UI process uses to drive the session.
type Router struct {
	ctrl   voice.Controller
	auth   voice.AuthStore
	hub    *EventHub
	engine *gin.Engine
	logger *log.Logger
}

func NewRouter(
	ctrl voice.Controller,
	auth voice.AuthStore,
	hub *EventHub,
	cfg *Config,
	logger *log.Logger,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(otelgin.Middleware(serviceName))
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	r := &Router{
		ctrl:   ctrl,
		auth:   auth,
		hub:    hub,
		engine: engine,
		logger: logger,
	}

	r.engine.Use(func(c *gin.Context) {
		r.logger.Debug("Incoming request",
			log.String("method", c.Request.Method),
			log.String("url", c.Request.URL.String()))
		c.Next()
	})

	r.setupRoutes()
	return r
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func (r *Router) setupRoutes() {
	api := r.engine.Group("/api")

	api.POST("/session", r.signIn)
	api.DELETE("/session", r.signOut)

	api.POST("/room", r.updateRoom)
	api.POST("/connect", r.connect)
	api.POST("/disconnect", r.disconnect)
	api.POST("/mute", r.mute)
	api.POST("/unmute", r.unmute)
	api.POST("/app-state", r.setAppState)
	api.PUT("/silence-timeout", r.setSilenceTimeout)

	api.GET("/status", r.status)
	api.GET("/speaking/:participantId", r.speaking)
	api.GET("/events", r.events)

	r.engine.GET("/health", r.healthCheck)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "Validation failed",
		"details": validation.FormatValidationError(err),
	})
}

func (r *Router) signIn(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	r.auth.SetAuthToken(req.AuthToken)
	r.logger.Info("Session signed in")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// signOut drops the session and leaves voice; credentials issued for it are
// no longer usable.
func (r *Router) signOut(c *gin.Context) {
	r.auth.Clear()
	r.ctrl.Disconnect(c.Request.Context())
	r.logger.Info("Session signed out")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (r *Router) updateRoom(c *gin.Context) {
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	r.ctrl.Update(c.Request.Context(), req.RoomID, req.ParticipantCount)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"state":   r.ctrl.Snapshot(),
	})
}

func (r *Router) connect(c *gin.Context) {
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if !r.ctrl.Connect(c.Request.Context(), req.RoomID) {
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "Failed to connect",
			"status":  r.ctrl.ConnectionStatus(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  r.ctrl.ConnectionStatus(),
	})
}

func (r *Router) disconnect(c *gin.Context) {
	r.ctrl.Disconnect(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  r.ctrl.ConnectionStatus(),
	})
}

func (r *Router) mute(c *gin.Context) {
	r.ctrl.Mute(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"microphoneEnabled": r.ctrl.IsMicrophoneEnabled(),
	})
}

// unmute reports refusal as a conflict; the reason arrives on the event
// stream.
func (r *Router) unmute(c *gin.Context) {
	if !r.ctrl.Unmute(c.Request.Context()) {
		c.JSON(http.StatusConflict, gin.H{
			"success":           false,
			"error":             "Microphone not enabled",
			"microphoneEnabled": r.ctrl.IsMicrophoneEnabled(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"microphoneEnabled": true,
	})
}

func (r *Router) setAppState(c *gin.Context) {
	var req AppStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	r.ctrl.SetAppState(c.Request.Context(), voice.AppState(req.State))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (r *Router) setSilenceTimeout(c *gin.Context) {
	var req SilenceTimeoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if (req.Preset == "") == (req.TimeoutMs == nil) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Exactly one of preset and timeoutMs is required",
		})
		return
	}

	var d time.Duration
	if req.TimeoutMs != nil {
		d = time.Duration(*req.TimeoutMs) * time.Millisecond
	} else {
		// the binding tag only admits known presets
		d, _ = voice.SilencePreset(req.Preset).Timeout()
	}

	r.ctrl.SetSilenceTimeout(d)
	r.logger.Info("Silence timeout set", log.Duration("timeout", d))
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"timeoutMs": d.Milliseconds(),
	})
}

func (r *Router) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"state":   r.ctrl.Snapshot(),
	})
}

func (r *Router) speaking(c *gin.Context) {
	var req SpeakingRequest
	if err := c.ShouldBindUri(&req); err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"participantId": req.ParticipantID,
		"speaking":      r.ctrl.IsParticipantSpeaking(req.ParticipantID),
	})
}

func (r *Router) events(c *gin.Context) {
	r.hub.Serve(c.Writer, c.Request)
}

func (r *Router) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   serviceName,
		"timestamp": time.Now().Unix(),
	})
}
