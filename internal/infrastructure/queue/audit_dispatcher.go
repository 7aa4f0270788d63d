package queue

import (
	"context"
	"hash/fnv"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/kstrand/members-portal/internal/core/domain"
	"github.com/kstrand/members-portal/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AuditDispatcher fans audit events out to a fixed set of workers, sharded by
// username with consistent hashing so each account's trail is written in
// order. Emit never blocks a request: when a worker's buffer is full the
// event is counted as dropped instead.
type AuditDispatcher struct {
	workers  []chan domain.AuditEvent
	recorder ports.AuditRecorder
	dropped  atomic.Uint64
	log      zerolog.Logger
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, recorder ports.AuditRecorder, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers:  make([]chan domain.AuditEvent, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Emit implements ports.AuditSink.
func (d *AuditDispatcher) Emit(event domain.AuditEvent) {
	select {
	case d.workers[d.shardIndex(event.Username)] <- event:
	default:
		d.dropped.Add(1)
	}
}

// Dropped reports how many events have been discarded under backpressure.
func (d *AuditDispatcher) Dropped() uint64 {
	return d.dropped.Load()
}

// shardIndex maps a username deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.recorder.Record(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("event_type", event.EventType).
					Int("worker_id", id).
					Msg("audit event write failed")
			}
		}
	}
}
