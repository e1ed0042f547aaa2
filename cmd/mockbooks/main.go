package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookmanager/internal/entity"
	"bookmanager/internal/mockstore"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	seed := flag.Bool("seed", false, "start with a demo user and books")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	store := mockstore.NewStore()
	if *seed {
		store.Seed(demoUser())
		logger.Info("seeded demo user", slog.String("id", "demo"))
	}

	server := &http.Server{
		Addr:         *addr,
		Handler:      mockstore.Handler(store),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("mock backend listening", slog.String("addr", *addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.Any("error", err))
	}
}

func demoUser() entity.User {
	five := 5
	three := 3
	return entity.User{
		ID:    "demo",
		Name:  "Demo User",
		Email: "demo@example.com",
		Books: []entity.Book{
			{
				ID:            "1",
				ISBN:          "9780134190440",
				Title:         "The Go Programming Language",
				Authors:       []string{"Alan A. A. Donovan", "Brian W. Kernighan"},
				Publisher:     "Addison-Wesley",
				PublishedDate: "2015-10-26",
				Rating:        &five,
				Reviews:       []entity.Review{},
			},
			{
				ID:            "2",
				ISBN:          "9781491941959",
				Title:         "Introducing Go",
				Authors:       []string{"Caleb Doxsey"},
				Publisher:     "O'Reilly Media",
				PublishedDate: "2016-01-22",
				Rating:        &three,
				Reviews:       []entity.Review{},
			},
			{
				ID:      "3",
				ISBN:    "9783836290494",
				Title:   "Angular - Das große Praxisbuch",
				Authors: []string{"Ferdinand Malcher", "Danny Koppenhagen", "Johannes Hoppe"},
				Reviews: []entity.Review{},
			},
		},
	}
}
