package main

import (
	"fmt"
	"os"

	"ansxtra/internal/catalog"
	"ansxtra/internal/config"
	"ansxtra/internal/handler"
	"ansxtra/internal/pkg"
	"ansxtra/internal/repository"
	"ansxtra/internal/router"
	"ansxtra/internal/service"
	"ansxtra/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load(os.Getenv("ANSXTRA_CONFIG"))
	if err != nil {
		panic(err)
	}

	gin.SetMode(cfg.Server.Mode)
	pkg.InitSecrets(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret)

	kv, err := openStore(cfg)
	if err != nil {
		panic(err)
	}

	cat, err := catalog.Load(cfg.Catalog.ClubsPath, cfg.Catalog.StudentsPath, cfg.Catalog.MembershipsPath)
	if err != nil {
		panic(err)
	}

	var producer *pkg.KafkaProducer
	if cfg.Kafka.Enabled {
		producer, err = pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		if err != nil {
			panic(err)
		}
		defer producer.Close()
	}

	var notifier *service.NotifyService
	if cfg.SMTP.Enabled {
		notifier = service.NewNotifyService(pkg.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	sessions := repository.NewSessionRepository(kv)
	applications := repository.NewApplicationRepository(kv)

	authSvc := service.NewAuthService(sessions, cat, cfg.Auth.RequireRoster)
	appSvc := service.NewApplicationService(applications, cat, producer, notifier)
	clubSvc := service.NewClubService(cat)

	r := router.InitRouter(router.Deps{
		Auth:     handler.NewAuthHandler(authSvc),
		Club:     handler.NewClubHandler(clubSvc),
		App:      handler.NewApplicationHandler(appSvc, authSvc),
		Sessions: sessions,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	if err := r.Run(addr); err != nil {
		panic(err)
	}
}

func openStore(cfg *config.Config) (store.KV, error) {
	switch cfg.Storage.Backend {
	case "memory", "":
		return store.NewMemory(), nil
	case "redis":
		return store.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	case "database":
		g, err := store.OpenGorm(cfg.Storage.Driver, cfg.Storage.DSN, cfg.Storage.LogMode)
		if err != nil {
			return nil, err
		}
		// 自动建表（开发阶段 OK）
		if err := g.AutoMigrate(); err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
