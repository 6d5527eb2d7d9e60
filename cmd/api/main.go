package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-pos.git/internal/catalog"
	"github.com/ariefcatur/go-pos.git/internal/config"
	"github.com/ariefcatur/go-pos.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-pos.git/internal/kafka"
	"github.com/ariefcatur/go-pos.git/internal/pos"
	"github.com/ariefcatur/go-pos.git/internal/postgres"
	"github.com/ariefcatur/go-pos.git/internal/redisx"
	"github.com/ariefcatur/go-pos.git/internal/reports"
	"github.com/ariefcatur/go-pos.git/internal/session"
	"github.com/ariefcatur/go-pos.git/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, pos.TopicTransactionCompleted, 1024)
	prod.Start(ctx)

	// Image storage
	images, err := storage.New(cfg.ImageDir, cfg.ImageBaseURL)
	if err != nil {
		log.Fatalf("image storage: %v", err)
	}

	// Repo, cart store, cache, handlers
	repo := &pos.Repo{DB: db}
	carts := session.NewStore()
	cache := &catalog.Cache{Redis: rdb, Source: repo}

	router := httpx.NewRouter()
	ph := &httpx.PosHandler{
		Store:    repo,
		Carts:    carts,
		Catalog:  cache,
		Producer: prod,
		Redis:    rdb,
		Service:  cfg.ServiceName,
	}
	ph.Register(router)
	ah := &httpx.AdminHandler{Store: repo, Images: images, Catalog: cache}
	ah.Register(router)
	rh := &httpx.ReportsHandler{Reports: &reports.Service{Redis: rdb, ServiceName: cfg.ServiceName}}
	rh.Register(router)

	// serve gambar produk yang di-upload
	router.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.ImageDir))))

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // tutup inbox -> flush & close writer
	cancel()          // stop producer loop
	prod.WaitClosed() // drain
}
