package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"

	"messenger-lab/observability"
	"messenger-lab/runtime"
	"messenger-lab/runtime/workers"
	"messenger-lab/services"
	"messenger-lab/storage"
)

type BaseSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
}

// Step prints a colorized header for a scenario step in logs
func (s *BaseSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// Harness is one running deployment of the sync engine: a shared store,
// a bus, and the tabs opened against them, each with its dispatch loop
// running under the supervisor.
type Harness struct {
	Store      storage.Store
	Bus        *runtime.Bus
	Monitor    *observability.Monitor
	supervisor *workers.Supervisor
	cancel     context.CancelFunc
	done       chan struct{}
	tabs       []*services.TabSession
}

// NewHarness builds a harness over an in-memory store, so the scenario
// exercises the degraded-storage path at the same time.
func (s *BaseSuite) NewHarness(tabNames ...string) *Harness {
	log := slog.Default()
	monitor := observability.NewMonitor()
	h := &Harness{
		Store:      storage.NewMemoryStore(),
		Bus:        runtime.NewBus(log, 64, monitor),
		Monitor:    monitor,
		supervisor: workers.NewSupervisor(log, 50*time.Millisecond),
		done:       make(chan struct{}),
	}

	for _, name := range tabNames {
		tab := services.NewTabSession(log, name, services.TabOptions{
			Store:         h.Store,
			Bus:           h.Bus,
			TokenSecret:   []byte("e2e-secret"),
			TokenDuration: time.Hour,
		})
		h.tabs = append(h.tabs, tab)
		h.supervisor.Add(tab.Worker())
	}

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() {
		defer close(h.done)
		h.supervisor.Run(ctx)
	}()

	s.T().Cleanup(h.Close)
	return h
}

func (h *Harness) Tab(i int) *services.TabSession {
	return h.tabs[i]
}

func (h *Harness) Close() {
	h.cancel()
	<-h.done
	for _, tab := range h.tabs {
		tab.Close()
	}
}
