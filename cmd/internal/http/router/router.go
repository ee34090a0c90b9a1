package router

import (
	"cloudnotes/cmd/internal/http/handler"
	appmw "cloudnotes/cmd/internal/http/middleware"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const DefaultBodyLimit = "2M"

type Config struct {
	AuthService  handler.AuthService
	NoteService  handler.NoteService
	ShareService handler.ShareService
	Tokens       appmw.TokenValidator

	AllowedOrigins []string
	BodyLimit      string

	// Per client IP, applied to /api/auth/* only. Zero disables limiting.
	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
}

// New wires every route of the API onto a fresh echo instance.
func New(cfg *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = appmw.HTTPErrorHandler

	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = DefaultBodyLimit
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Infof("%s %s %d %s id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
	e.Use(appmw.NewCORS(cfg.AllowedOrigins))
	e.Use(middleware.BodyLimit(bodyLimit))

	requireAuth := appmw.NewAuthMiddleware(&appmw.AuthMiddlewareConfig{Tokens: cfg.Tokens})
	var authLimit []echo.MiddlewareFunc
	if cfg.AuthRateLimitRPS > 0 {
		authLimit = append(authLimit, appmw.NewRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst))
	}

	authRoutes := handler.NewAuthDefault(cfg.AuthService)
	noteRoutes := handler.NewNoteDefault(cfg.NoteService)
	shareRoutes := handler.NewShareDefault(cfg.ShareService)

	// Auth
	e.POST("/api/auth/register", authRoutes.Register, authLimit...)
	e.POST("/api/auth/login", authRoutes.Login, authLimit...)

	// Notes
	e.GET("/api/notes", noteRoutes.GetNotes, requireAuth)
	e.POST("/api/notes", noteRoutes.CreateNote, requireAuth)
	e.GET("/api/notes/:id", noteRoutes.GetNote, requireAuth)
	e.PUT("/api/notes/:id", noteRoutes.UpdateNote, requireAuth)
	e.DELETE("/api/notes/:id", noteRoutes.DeleteNote, requireAuth)

	// Shares
	e.POST("/api/shares/link/:noteId", shareRoutes.CreateLink, requireAuth)
	e.GET("/api/shares/link/:token", shareRoutes.ResolveLink, requireAuth)
	e.POST("/api/shares/email/:noteId", shareRoutes.CreateEmailShare, requireAuth)
	e.GET("/api/shares/public/:token", shareRoutes.ResolvePublic)

	e.GET("/api/health", handler.Health)

	return e
}
