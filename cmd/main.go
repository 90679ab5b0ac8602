package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"

	"messenger-lab/domain"
	"messenger-lab/internal"
	"messenger-lab/moderation"
	"messenger-lab/observability"
	"messenger-lab/runtime"
	"messenger-lab/runtime/workers"
	"messenger-lab/search"
	"messenger-lab/services"
	"messenger-lab/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components and drives a two-tab demo session.
// The error-returning pattern keeps defers (database close) working and
// the entry point testable.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := internal.NewLogger(config.LogLevel)

	// 2. Shared store & search index
	store := storage.Open(config.BadgerFilepath, log)
	defer func() {
		log.Info("Closing store...")
		_ = store.Close()
	}()

	index, err := search.Open(config.BlugeFilepath, log)
	if err != nil {
		return fmt.Errorf("search index opening failed: %w", err)
	}
	defer index.Close()

	moderator, err := buildModerator(config)
	if err != nil {
		return fmt.Errorf("moderation setup failed: %w", err)
	}

	// 3. Bus, supervision, monitoring
	monitor := observability.NewMonitor()
	bus := runtime.NewBus(log, config.BusBufferSize, monitor)
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(workers.NewMonitorWorker(log, monitor, config.MonitorInterval))

	// 4. Two simulated tabs over the same store and bus
	opts := services.TabOptions{
		Store:         store,
		Bus:           bus,
		Index:         index,
		Moderator:     moderator,
		MessageCap:    config.MessageCap,
		TokenSecret:   []byte(config.SessionSecret),
		TokenDuration: config.SessionDuration,
	}
	tabA := services.NewTabSession(log, "tab-a", opts)
	tabB := services.NewTabSession(log, "tab-b", opts)
	sup.Add(tabA.Worker(), tabB.Worker())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sup.Run(ctx)

	if err := demo(log, tabA, tabB); err != nil {
		sup.Stop()
		return err
	}

	<-ctx.Done()
	log.Info("Shutting down gracefully...")
	sup.Stop()
	log.Info("Program stopped cleanly")
	return nil
}

// demo walks the end-to-end flow: two users on two tabs, a DM thread,
// one message, and the receiving tab's converged view.
func demo(log *slog.Logger, tabA, tabB *services.TabSession) error {
	alice, err := tabA.Auth.Register("alice", "Alice", "correct-horse")
	if err != nil {
		return err
	}
	bob, err := tabB.Auth.Register("bob_77", "Bob", "battery-staple")
	if err != nil {
		return err
	}

	thread, err := tabA.Chat.OpenDM(bob.User.ID)
	if err != nil {
		return err
	}
	tabA.Chat.StartTyping(thread.ID)
	if _, err := tabA.Chat.SendMessage(thread.ID, domain.RoomDM, "hello", nil); err != nil {
		return err
	}
	tabA.Chat.StopTyping(thread.ID)

	// Give tab B's dispatcher a turn.
	time.Sleep(100 * time.Millisecond)

	var lines []string
	for _, m := range tabB.Chat.RoomMessages(thread.ID) {
		lines = append(lines, m.Text)
	}
	log.Info("Tab B view",
		"thread", thread.ID,
		"messages", strings.Join(lines, " | "),
		"alice_online", tabB.Presence.IsOnline(alice.User.ID),
	)
	return nil
}

func buildModerator(config internal.Config) (*moderation.Moderator, error) {
	var words []string
	for _, w := range strings.Split(config.ModerationWords, ",") {
		if trimmed := strings.TrimSpace(w); trimmed != "" {
			words = append(words, trimmed)
		}
	}
	return moderation.NewModerator(words, internal.MaskedRune(config.ModerationMaskedChar))
}
