package workers

import (
	"context"
	"log/slog"

	"messenger-lab/contract"
	"messenger-lab/runtime"
)

// TabDispatcher drains one tab's inbox and hands each envelope to the
// tab's sinks (presence aggregator, timeline, directory). Delivery is
// scheduled on this goroutine, never synchronously with the publish
// call, which gives tabs the asynchronous task-queue semantics the sync
// protocol assumes.
//
// Sinks are called in registration order; a failing sink is logged and
// does not block the others.
type TabDispatcher struct {
	log   *slog.Logger
	tab   *runtime.Tab
	sinks []contract.EventSink
}

func NewTabDispatcher(log *slog.Logger, tab *runtime.Tab, sinks ...contract.EventSink) *TabDispatcher {
	return &TabDispatcher{log: log, tab: tab, sinks: sinks}
}

func (w *TabDispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping tab dispatch", "tab", w.tab.Name())
			return nil
		case env := <-w.tab.Events():
			for _, sink := range w.sinks {
				if err := sink.Consume(ctx, env); err != nil {
					w.log.Error("Sink failed to consume envelope",
						"tab", w.tab.Name(), "kind", env.Kind, "error", err)
				}
			}
		}
	}
}
