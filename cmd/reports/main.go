package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-pos.git/internal/config"
	kafkax "github.com/ariefcatur/go-pos.git/internal/kafka"
	"github.com/ariefcatur/go-pos.git/internal/pos"
	"github.com/ariefcatur/go-pos.git/internal/redisx"
	"github.com/ariefcatur/go-pos.git/internal/reports"
)

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &reports.Service{
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-reports",
	}

	group := getenv("REPORTS_GROUP", "reports-svc")
	workers := mustAtoi(os.Getenv("REPORTS_WORKERS"), "1")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, pos.TopicTransactionCompleted, workers)

	go func() {
		log.Printf("reports consumer started: group=%s topic=%s workers=%d", group, pos.TopicTransactionCompleted, workers)
		if err := cons.Start(ctx, svc.HandleTransactionCompleted); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
