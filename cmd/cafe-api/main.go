// Command cafe-api serves the café REST API and the embedded auth gate.
//
// @title                       Cafe Love API
// @version                     1.0
// @description                 Menu, orders and profiles of the café.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/MikeMC777/cafelove/internal/auth"
	"github.com/MikeMC777/cafelove/internal/config"
	"github.com/MikeMC777/cafelove/internal/db"
	"github.com/MikeMC777/cafelove/internal/logging"
	"github.com/MikeMC777/cafelove/internal/menu"
	"github.com/MikeMC777/cafelove/internal/notify"
	"github.com/MikeMC777/cafelove/internal/order"
	"github.com/MikeMC777/cafelove/internal/user"
)

func main() {
	cfg := config.Load()
	log := logging.New("cafe-api", cfg.LogLevel)
	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("cafe-api stopped")
	}
}

func run(cfg config.Config, log *logrus.Entry) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.PostgresDSN, log)
	if err != nil {
		return err
	}
	defer pool.Close()
	if cfg.AutoMigrate {
		if err := db.Migrate(ctx, pool, log); err != nil {
			return err
		}
	}

	menuRepo := menu.NewPGRepo(pool)
	seedItems := menu.DefaultItems(cfg.AssetBaseURL)
	seeded, err := menu.SeedIfEmpty(ctx, menuRepo, seedItems)
	if err != nil {
		return err
	}
	if seeded {
		log.WithField("count", len(seedItems)).Info("menu seeded")
	}

	notifier, closeNotifier := buildNotifier(cfg, log)
	defer closeNotifier()

	tokens := auth.NewJWT(cfg.JWTSecret, cfg.TokenTTL)
	var verifier auth.Verifier = tokens
	if cfg.AuthServiceAddr != "" {
		remote, conn, err := auth.DialRemoteVerifier(cfg.AuthServiceAddr)
		if err != nil {
			return err
		}
		defer conn.Close()
		verifier = remote
		log.WithField("addr", cfg.AuthServiceAddr).Info("verifying tokens via auth-service")
	}

	users := user.NewService(user.NewPGRepo(pool), tokens)
	orders := order.NewService(order.NewPGRepo(pool), menuRepo, notifier, log)

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: newRouter(routerDeps{
			Users:     users,
			Orders:    orders,
			Menu:      menuRepo,
			SeedItems: seedItems,
			Verifier:  verifier,
			AdminKey:  cfg.AdminKey,
			Origin:    cfg.AssetBaseURL,
			Log:       log,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	gs := grpc.NewServer()
	auth.RegisterGateServer(gs, tokens)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", cfg.HTTPAddr).Info("http listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		lis, err := net.Listen("tcp", cfg.AuthGRPCAddr)
		if err != nil {
			return err
		}
		log.WithField("addr", cfg.AuthGRPCAddr).Info("auth gate listening")
		return gs.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		gs.GracefulStop()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// buildNotifier enables the notifiers that are configured. Dial failures
// are logged and the notifier is skipped.
func buildNotifier(cfg config.Config, log *logrus.Entry) (order.Notifier, func()) {
	var (
		multi   notify.Multi
		closers []func() error
	)
	if cfg.RabbitMQURL != "" {
		p, err := notify.DialAMQP(cfg.RabbitMQURL)
		if err != nil {
			log.WithError(err).Warn("rabbitmq unavailable; order events disabled")
		} else {
			multi = append(multi, p)
			closers = append(closers, p.Close)
		}
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		t, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.WithError(err).Warn("telegram unavailable; admin notifications disabled")
		} else {
			multi = append(multi, t)
		}
	}
	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.WithError(err).Warn("close notifier")
			}
		}
	}
	if len(multi) == 0 {
		return notify.Nop{}, closeAll
	}
	return multi, closeAll
}
