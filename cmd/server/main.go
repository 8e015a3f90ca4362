package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"pulse/pkg/api"
	"pulse/pkg/censor"
	"pulse/pkg/fixtures"
	"pulse/pkg/service"
	"pulse/pkg/storage/memdb"
)

func main() {
	var (
		configPath     string
		censorConfPath string
		fixturesDir    string
		httpAddr       string
		logLevel       string
		kafkaAddr      string
		kafkaTopic     string
		kafkaBatch     int
		failureRate    float64
	)

	flag.StringVar(&configPath, "servconf", "cmd/server/config.toml", "Path to TOML config file")
	flag.StringVar(&censorConfPath, "censconf", "", "Path to JSON banned words file")
	flag.StringVar(&fixturesDir, "fixtures", "", "Directory with posts.json, comments.json and users.json.")
	flag.StringVar(&httpAddr, "http", "", "HTTP server address in the form 'host:port'.")
	flag.StringVar(&logLevel, "log", "", "Log level: debug, info, warn, error.")
	flag.StringVar(&kafkaAddr, "kafka", "", "Kafka server address in the form 'host:port'.")
	flag.StringVar(&kafkaTopic, "topic", "", "Kafka topic.")
	flag.IntVar(&kafkaBatch, "batch", 0, "Kafka batch size.")
	flag.Float64Var(&failureRate, "fail", -1, "Fraction of calls that fail with a simulated error.")
	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatalf("[server] failed to load config file %s: %v", configPath, err)
	}

	// Override config with flags if set
	if censorConfPath != "" {
		cfg.CensorConfPath = censorConfPath
	}
	if fixturesDir != "" {
		cfg.FixturesDir = fixturesDir
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if kafkaAddr != "" {
		cfg.KafkaAddr = kafkaAddr
	}
	if kafkaTopic != "" {
		cfg.KafkaTopic = kafkaTopic
	}
	if kafkaBatch != 0 {
		cfg.KafkaBatch = kafkaBatch
	}
	if failureRate >= 0 {
		cfg.FailureRate = failureRate
	}

	if !strings.Contains(cfg.HTTPAddr, ":") {
		log.Warn("[server] use ':' before port number, e.g. ':8080'")
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	}

	ds, err := loadDataset(cfg.FixturesDir)
	if err != nil {
		log.Fatalf("[server] failed to load fixtures: %v", err)
	}
	posts, comments, users := memdb.New(ds)
	log.Infof("[server] loaded %d posts, %d comments, %d users", len(ds.Posts), len(ds.Comments), len(ds.Users))

	opts := []service.Option{service.WithLatency(cfg.Latency)}
	if cfg.FailureRate > 0 {
		rate := cfg.FailureRate
		opts = append(opts, service.WithFaults(func(service.Op) bool { return rand.Float64() < rate }))
		log.Warnf("[server] %.0f%% of calls will fail", rate*100)
	}

	var checker api.Checker
	if cfg.CensorConfPath != "" {
		c := censor.New()
		if err := c.LoadFromJSON(cfg.CensorConfPath); err != nil {
			log.Fatalf("[server] failed to load censor config file %s: %v", cfg.CensorConfPath, err)
		}
		checker = c
	}

	var kafkaWriter api.MessageWriter
	if cfg.KafkaAddr != "" && cfg.KafkaTopic != "" {
		kw := &kafka.Writer{
			Addr:      kafka.TCP(cfg.KafkaAddr),
			Topic:     cfg.KafkaTopic,
			BatchSize: cfg.KafkaBatch,
		}
		defer kw.Close()
		if err := createTopic(kw.Addr.String(), kw.Topic); err != nil {
			log.Warnf("[server] failed to create Kafka topic: %v", err)
		}
		kafkaWriter = kw
	} else {
		log.Warnf("[server] kafka was not configured, logs will not be sent to Kafka")
	}

	api := api.New(cfg.ServiceName, api.Services{
		Posts:    service.NewPostService(posts, opts...),
		Comments: service.NewCommentService(comments, opts...),
		Users:    service.NewUserService(users, opts...),
	}, checker, kafkaWriter)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: c.Handler(api.Router()),
	}

	go func() {
		log.Infof("[server] starting on %v", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[server] failed to start: %v", err)
			return
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownRelease()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("[server] HTTP server shutdown error: %v", err)
	} else {
		log.Info("[server] HTTP server shut down gracefully")
	}
}

func loadDataset(dir string) (fixtures.Dataset, error) {
	if dir == "" {
		return fixtures.Default()
	}
	return fixtures.Load(dir)
}

func createTopic(broker, topic string) error {
	conn, err := kafka.DialContext(context.Background(), "tcp", broker)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
}
