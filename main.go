package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/hsktutor/internal/config"
	"github.com/example/hsktutor/internal/database"
	"github.com/example/hsktutor/internal/importer"
	"github.com/example/hsktutor/internal/quiz"
	"github.com/example/hsktutor/internal/scheduler"
	"github.com/example/hsktutor/internal/server"
	"github.com/example/hsktutor/internal/vocabulary"
)

func main() {
	importPath := flag.String("import", "", "import vocabulary from a JSON, CSV or Excel file and exit")
	sheetName := flag.String("sheet", "Sheet1", "sheet name for Excel imports")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if *importPath != "" {
		runImport(log, *importPath, *sheetName)
		return
	}

	runServer(log, cfg)
}

// runImport loads a vocabulary file into the database and exits
func runImport(log *logrus.Logger, path, sheet string) {
	importConfig := importer.DefaultImportConfig()
	importConfig.FilePath = path
	importConfig.SheetName = sheet

	result, err := importer.ImportVocabulary(database.NewVocabularyRepository(), importConfig)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.WithFields(logrus.Fields{
		"processed": result.TotalProcessed,
		"created":   result.Created,
		"skipped":   result.Skipped,
		"errors":    len(result.Errors),
	}).Info("Vocabulary import finished")

	for _, message := range result.Errors {
		log.Warn(message)
	}
}

// runServer starts the HTTP tool server and blocks until shutdown
func runServer(log *logrus.Logger, cfg *config.Config) {
	vocabRepo := database.NewVocabularyRepository()
	progressRepo := database.NewProgressRepository()
	resultRepo := database.NewQuizResultRepository()

	store := quiz.NewSessionStore(cfg.SessionTTL)
	builder := quiz.NewBuilder(vocabRepo, store, nil)
	coordinator := quiz.NewCoordinator(store, progressRepo, resultRepo, log)
	manager := vocabulary.NewManager(vocabRepo, progressRepo, nil)

	sched := scheduler.New(store, cfg.SweepInterval, log)
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	srv := server.New(vocabRepo, progressRepo, resultRepo, manager, builder, coordinator, log)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Routes(),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		sig := <-sigChan
		log.WithField("signal", sig.String()).Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Error during shutdown")
		}
		close(done)
	}()

	log.WithField("addr", cfg.ListenAddr).Info("Server started. Press Ctrl+C to stop.")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	<-done
	log.Info("Server stopped")
}
