package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"podpoints/internal/auth"
	"podpoints/internal/award"
	"podpoints/internal/backup"
	"podpoints/internal/config"
	"podpoints/internal/directory"
	"podpoints/internal/handler"
	"podpoints/internal/middleware"
	"podpoints/internal/push"
	"podpoints/internal/store"
	ws "podpoints/internal/websocket"
)

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	awardH        *handler.AwardHandler
	eventH        *handler.EventHandler
	pointsH       *handler.PointsHandler
	authH         *handler.AuthHandler
	pushH         *handler.PushHandler
	backupH       *handler.BackupHandler
	memberStore   *store.MemberStore
	issuer        *auth.TokenIssuer
	rateLimiter   *middleware.RateLimiter
	backupManager *backup.Manager
	logger        *slog.Logger
}

func New(db *sql.DB, cfg *config.Config, logger *slog.Logger) *Server {
	memberStore := store.NewMemberStore(db)
	awardStore := store.NewAwardStore(db)
	eventStore := store.NewEventStore(db)
	pushStore := store.NewPushStore(db)
	backupStore := store.NewBackupStore(db)

	engine := award.NewEngine(memberStore, awardStore, eventStore)

	dirClient := directory.NewClient(directory.Config{
		ClientID:      cfg.Discord.ClientID,
		ClientSecret:  cfg.Discord.ClientSecret,
		RedirectURI:   cfg.Discord.RedirectURI,
		BotToken:      cfg.Discord.BotToken,
		GuildID:       cfg.Discord.GuildID,
		CurrentCohort: cfg.Discord.CurrentCohort,
	})

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	hub := ws.NewHub(logger.With("component", "websocket"))

	// Push notifications are optional; the award path works without them.
	var pushH *handler.PushHandler
	var notifier *push.Notifier
	if cfg.VAPIDPublicKey != "" && cfg.VAPIDPrivateKey != "" {
		pushSvc := push.NewService(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey)
		notifier = push.NewNotifier(pushSvc, pushStore, logger.With("component", "push"))
		pushH = handler.NewPushHandler(pushStore, pushSvc, logger.With("component", "push_handler"))
	}

	backupMgr := backup.NewManager(backup.Config{
		S3: backup.S3Config{
			Endpoint:  cfg.S3.Endpoint,
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		},
		DBPath:     cfg.DBPath,
		Passphrase: cfg.S3.Passphrase,
		Interval:   cfg.BackupInterval,
	}, db, backupStore, logger.With("component", "backup"))

	return &Server{
		db:            db,
		hub:           hub,
		awardH:        handler.NewAwardHandler(engine, memberStore, hub, notifier, logger.With("component", "award")),
		eventH:        handler.NewEventHandler(eventStore, logger.With("component", "event")),
		pointsH:       handler.NewPointsHandler(engine, logger.With("component", "points")),
		authH:         handler.NewAuthHandler(dirClient, memberStore, issuer, cfg.FrontendURL, logger.With("component", "auth")),
		pushH:         pushH,
		backupH:       handler.NewBackupHandler(backupMgr, backupStore, logger.With("component", "backup_handler")),
		memberStore:   memberStore,
		issuer:        issuer,
		rateLimiter:   middleware.NewRateLimiter(),
		backupManager: backupMgr,
		logger:        logger,
	}
}

// BackupManager returns the backup manager for the scheduler goroutine.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes
	outerMux.HandleFunc("GET /auth/discord", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /auth/discord/callback", s.rateLimitedHandler(s.authH.Callback))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.issuer, s.memberStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/awards", s.awardH.Create)

	mux.HandleFunc("GET /api/points/me", s.pointsH.Member)
	mux.HandleFunc("GET /api/points/member", s.pointsH.Member)
	mux.HandleFunc("GET /api/pods/{pod}/points", s.pointsH.Pod)

	mux.Handle("POST /api/events", middleware.RequireAdmin(http.HandlerFunc(s.eventH.Create)))

	mux.Handle("POST /api/backups", middleware.RequireAdmin(http.HandlerFunc(s.backupH.Trigger)))
	mux.Handle("GET /api/backups/latest", middleware.RequireAdmin(http.HandlerFunc(s.backupH.Latest)))

	if s.pushH != nil {
		mux.HandleFunc("GET /api/push/key", s.pushH.PublicKey)
		mux.HandleFunc("POST /api/push/subscriptions", s.pushH.Subscribe)
		mux.HandleFunc("DELETE /api/push/subscriptions/{id}", s.pushH.Unsubscribe)
	}

	mux.HandleFunc("GET /ws", ws.HandleFeed(s.hub, s.logger.With("component", "websocket")))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
