package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/charging-platform/oicp-emp-gateway/internal/cache"
	"github.com/charging-platform/oicp-emp-gateway/internal/client"
	"github.com/charging-platform/oicp-emp-gateway/internal/config"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
	"github.com/charging-platform/oicp-emp-gateway/internal/gateway"
	"github.com/charging-platform/oicp-emp-gateway/internal/logger"
	"github.com/charging-platform/oicp-emp-gateway/internal/message"
	"github.com/charging-platform/oicp-emp-gateway/internal/metrics"
	"github.com/charging-platform/oicp-emp-gateway/internal/storage"
	"github.com/charging-platform/oicp-emp-gateway/internal/transport/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
		Async:  cfg.Log.Async,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()
	log.Infof("Starting %s %s (provider %s)", cfg.App.Name, cfg.App.Version, cfg.EMP.ProviderID)

	if err := run(cfg, log); err != nil {
		log.Fatalf("Gateway stopped with error: %v", err)
	}
	log.Info("Gateway stopped")
}

func run(cfg *config.Config, log *logger.Logger) error {
	// 3. 初始化会话存储
	var sessions storage.SessionStore
	if cfg.Redis.Enabled() {
		store, err := storage.NewRedisSessionStore(cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to initialize session store: %w", err)
		}
		sessions = store
		log.Infof("Redis session store initialized at %s", cfg.Redis.Addr)

		if cfg.Redis.CacheSize > 0 {
			cacheConfig := cache.DefaultConfig()
			cacheConfig.MaxSize = cfg.Redis.CacheSize
			if cfg.Redis.CacheTTL > 0 {
				cacheConfig.DefaultTTL = cfg.Redis.CacheTTL
			}
			cached, err := storage.NewCachedSessionStore(store, cacheConfig)
			if err != nil {
				return fmt.Errorf("failed to initialize session cache: %w", err)
			}
			sessions = cached
			log.Infof("Session cache enabled, %d entries, ttl %s", cacheConfig.MaxSize, cacheConfig.DefaultTTL)
		}
	} else {
		sessions = storage.NewMemorySessionStore()
		log.Warn("Redis not configured, sessions are kept in memory")
	}
	defer sessions.Close()

	// 4. 初始化事件生产者
	var producer message.EventProducer = message.LogProducer{}
	if cfg.Kafka.Enabled() {
		kafkaProducer, err := message.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.EventTopic)
		if err != nil {
			return fmt.Errorf("failed to initialize Kafka producer: %w", err)
		}
		producer = kafkaProducer
		log.Infof("Kafka producer initialized for topic %s", cfg.Kafka.EventTopic)
	} else {
		log.Warn("Kafka not configured, events are only logged")
	}
	defer producer.Close()

	// 5. Hubject 客户端、指令分发器和业务服务
	hubject := client.New(cfg.Hubject.BaseURL,
		client.WithLogger(log),
		client.WithPageSize(cfg.Hubject.PageSize))

	dispatcher := gateway.NewDefaultCommandDispatcher(&gateway.DispatcherConfig{
		CommandTimeout: cfg.Hubject.RequestTimeout,
		EnableStats:    true,
	}, nil, log)

	service, err := gateway.NewService(gateway.ServiceConfig{
		Source:                    cfg.PodID,
		ProviderID:                oicp.ProviderID(cfg.EMP.ProviderID),
		AuthorizedIdentifications: cfg.EMP.AuthorizedIdentifications,
		StopIdentifications:       cfg.EMP.StopIdentifications,
		SessionTTL:                cfg.Redis.SessionTTL,
	}, sessions, producer, hubject, dispatcher, log)
	if err != nil {
		return fmt.Errorf("failed to initialize EMP service: %w", err)
	}
	log.Infof("Remote commands registered: %v", dispatcher.GetRegisteredCommands())

	// 6. HTTP 服务器
	router := server.NewRouter(cfg.Server.BasePath, service, log)
	httpServer := server.NewHTTPServer(server.HTTPServerConfigFrom(cfg.Server), router, log)

	var metricsServer *server.HTTPServer
	if cfg.Metrics.Addr != "" {
		metricsConfig, err := listenConfig(cfg.Metrics.Addr)
		if err != nil {
			return fmt.Errorf("invalid metrics address: %w", err)
		}
		metricsServer = server.NewHTTPServer(metricsConfig, metrics.Handler(), log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(httpServer.Start)
	if metricsServer != nil {
		g.Go(metricsServer.Start)
	}

	// 7. 远程指令消费者
	var consumer *message.KafkaConsumer
	if cfg.Kafka.Enabled() {
		consumer, err = message.NewKafkaConsumer(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup, cfg.Kafka.CommandTopic, cfg.PodID, log)
		if err != nil {
			return fmt.Errorf("failed to initialize Kafka consumer: %w", err)
		}
		if err := consumer.Start(ctx, service.HandleCommand); err != nil {
			return fmt.Errorf("failed to start Kafka consumer: %w", err)
		}
		log.Infof("Kafka consumer started, group %s, topic %s", cfg.Kafka.ConsumerGroup, cfg.Kafka.CommandTopic)
	}

	// 8. 收到信号或任一服务失败后优雅关闭
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if consumer != nil {
			if err := consumer.Close(); err != nil {
				log.WarnWithErr(err, "Failed to close Kafka consumer")
			}
		}
		if metricsServer != nil {
			if err := metricsServer.Stop(shutdownCtx); err != nil {
				log.WarnWithErr(err, "Failed to stop metrics server")
			}
		}
		return httpServer.Stop(shutdownCtx)
	})

	return g.Wait()
}

// listenConfig 把 "host:port" 形式的地址转换为服务器配置
func listenConfig(addr string) (*server.HTTPServerConfig, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}
	cfg := server.DefaultHTTPServerConfig()
	cfg.Host = host
	cfg.Port = port
	return cfg, nil
}
