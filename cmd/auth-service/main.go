// Command auth-service runs the auth gate on its own so other services can
// verify bearer tokens over gRPC.
package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/MikeMC777/cafelove/internal/auth"
	"github.com/MikeMC777/cafelove/internal/config"
	"github.com/MikeMC777/cafelove/internal/logging"
)

func main() {
	cfg := config.Load()
	log := logging.New("auth-service", cfg.LogLevel)
	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("auth-service stopped")
	}
}

func run(cfg config.Config, log *logrus.Entry) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lis, err := net.Listen("tcp", cfg.AuthGRPCAddr)
	if err != nil {
		return err
	}
	gs := grpc.NewServer()
	auth.RegisterGateServer(gs, auth.NewJWT(cfg.JWTSecret, cfg.TokenTTL))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", lis.Addr().String()).Info("auth gate listening")
		return gs.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		gs.GracefulStop()
		return nil
	})
	return g.Wait()
}
