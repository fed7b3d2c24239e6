package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/cardapioltdelima/cardapio-painel/internal/api/http"
	"github.com/cardapioltdelima/cardapio-painel/internal/auth"
	"github.com/cardapioltdelima/cardapio-painel/internal/config"
	"github.com/cardapioltdelima/cardapio-painel/internal/notify"
	"github.com/cardapioltdelima/cardapio-painel/internal/storage"
	"github.com/cardapioltdelima/cardapio-painel/internal/store"
)

func main() {
	cfg := config.Load()

	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	repo := storage.NewPostgresRepository(db)
	panelStore := store.New(repo)
	panelStore.LoadAll()

	reader := config.NewKafkaReader(cfg.ChangeTopic, cfg.ChangeGroupID)
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	consumer := notify.NewConsumer(reader, panelStore)
	go consumer.Start(ctx)

	session := auth.NewSession(rdb)
	uploads := storage.NewUploadStore(cfg.UploadDir, cfg.UploadBaseURL)

	handler := httpapi.NewHandler(panelStore, session, uploads)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpapi.NewRouter(handler, cfg.UploadDir),
	}

	go func() {
		log.Printf("Painel starting on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
