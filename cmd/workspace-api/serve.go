package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimitrije/workspace-api/internal/config"
	"github.com/dimitrije/workspace-api/internal/database"
	"github.com/dimitrije/workspace-api/internal/handlers"
	"github.com/dimitrije/workspace-api/internal/middleware"
	"github.com/dimitrije/workspace-api/internal/ratelimit"
	"github.com/dimitrije/workspace-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Migrates the database and serves the REST API until SIGINT or SIGTERM.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			return err
		}

		limiter, closeLimiter, err := newLimiter(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeLimiter()

		var tokens middleware.TokenValidator
		if cfg.GatewayJWTSecret != "" {
			tokens = services.NewGatewayTokenService(cfg.GatewayJWTSecret, cfg.GatewayTokenExpiry)
		}

		router := handlers.NewRouter(handlers.RouterConfig{
			Release: cfg.IsProduction(),
			Public: []drift.HandlerFunc{
				driftmw.Recovery(),
				driftmw.CORSWithConfig(driftmw.CORSConfig{
					AllowOrigins: cfg.CORSAllowOrigins,
					AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
					AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.UserIDHeader},
					MaxAge:       86400,
				}),
				driftmw.BodyParser(),
				middleware.RequestLogger(log),
			},
			Protected: []drift.HandlerFunc{
				middleware.Identity(tokens),
				middleware.RateLimit(limiter, log),
			},
		}, buildHandlers(cfg, db, log))

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serveErr := make(chan error, 1)
		go func() {
			log.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()

		select {
		case err := <-serveErr:
			if err != nil {
				return err
			}
		case <-ctx.Done():
		}

		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func buildHandlers(cfg *config.Config, db *database.DB, log *zap.Logger) handlers.Handlers {
	workspaceService := services.NewWorkspaceService(db)
	assignmentService := services.NewAssignmentService(db)
	taskService := services.NewTaskService(db)
	taskAssignmentService := services.NewTaskAssignmentService(db)
	tagService := services.NewTagService(db)
	commentService := services.NewCommentService(db)
	groupService := services.NewGroupService(db)
	roadmapService := services.NewRoadmapService(db)
	activityService := services.NewActivityService(db, log)

	pager := handlers.Pager{DefaultSize: cfg.DefaultPageSize, MaxSize: cfg.MaxPageSize}

	return handlers.Handlers{
		Health:         handlers.NewHealthHandler(db),
		Workspace:      handlers.NewWorkspaceHandler(workspaceService, activityService, log),
		Assignment:     handlers.NewAssignmentHandler(assignmentService, workspaceService, activityService, pager, log),
		Task:           handlers.NewTaskHandler(taskService, workspaceService, activityService, pager, log),
		TaskAssignment: handlers.NewTaskAssignmentHandler(taskAssignmentService, taskService, workspaceService, activityService, log),
		Tag:            handlers.NewTagHandler(tagService, workspaceService, activityService, log),
		Comment:        handlers.NewCommentHandler(commentService, taskService, workspaceService),
		Group:          handlers.NewGroupHandler(groupService),
		Roadmap:        handlers.NewRoadmapHandler(roadmapService, activityService, log),
		Activity:       handlers.NewActivityHandler(activityService, workspaceService, pager),
	}
}

// newLimiter uses Redis when REDIS_ADDR is set so replicas share counters,
// and an in-process limiter otherwise.
func newLimiter(ctx context.Context, cfg *config.Config, log *zap.Logger) (ratelimit.Limiter, func(), error) {
	if cfg.RedisAddr != "" {
		client, err := ratelimit.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using redis rate limiter", zap.String("addr", cfg.RedisAddr))
		return ratelimit.NewRedisLimiter(client, "ratelimit:", cfg.RateLimitPerMinute, time.Minute), client.Close, nil
	}

	limiter := ratelimit.NewMemoryLimiter(cfg.RateLimitPerMinute, time.Minute)
	go limiter.Cleanup(ctx, 5*time.Minute)
	return limiter, func() {}, nil
}
