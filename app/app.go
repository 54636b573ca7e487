package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/circulation-service/pkg/kafka"

	"github.com/Astemirdum/circulation-service/migrations"

	"github.com/Astemirdum/circulation-service/config"
	"github.com/Astemirdum/circulation-service/internal/handler"
	"github.com/Astemirdum/circulation-service/internal/repository"
	"github.com/Astemirdum/circulation-service/internal/server"
	"github.com/Astemirdum/circulation-service/internal/service"
	"github.com/Astemirdum/circulation-service/pkg/logger"
	"github.com/Astemirdum/circulation-service/pkg/postgres"
	"go.uber.org/zap"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "circulation")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, cfg.Policy.LockTimeout, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		log.Fatal("kafka.NewProducer", zap.Error(err))
	}
	svc := service.NewService(repo, cfg.Policy, producer, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.StatsConsumerGroup)
	if err != nil {
		log.Fatal("kafka.NewConsumer", zap.Error(err))
	}
	go kafka.Consume(ctx, consumer, handler.NewConsumer(svc.SaveEvent, log), kafka.CirculationTopic)

	go svc.RunSweeper(ctx, cfg.Policy.SweepInterval)

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer closeCancel()

	cancel()
	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if err = producer.Close(); err != nil {
		log.Error("producer.Close", zap.Error(err))
	}
	if err = consumer.Close(); err != nil {
		log.Error("consumer.Close", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
