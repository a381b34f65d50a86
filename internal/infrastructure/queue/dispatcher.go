package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/kko-site/backoffice/internal/metrics"
	"github.com/kko-site/backoffice/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes visit records to a fixed set of workers sharded by client
// address, keeping visit persistence off the request path. When a worker's
// buffer is full the visit is dropped rather than stalling the request.
type Dispatcher struct {
	workers []chan ports.VisitInput
	service ports.VisitService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.VisitService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.VisitInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.VisitInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a visit to the worker responsible for its client address
// without blocking the caller.
func (d *Dispatcher) Enqueue(visit ports.VisitInput) {
	i := d.shardIndex(visit.RemoteAddr)
	select {
	case d.workers[i] <- visit:
		metrics.VisitQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
	default:
		d.log.Warn().Str("page_url", visit.PageURL).Msg("visit queue full, dropping visit")
	}
}

// shardIndex maps a client address deterministically to a worker index.
func (d *Dispatcher) shardIndex(remoteAddr string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(remoteAddr))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.VisitInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case visit, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Record(ctx, visit); err != nil {
				d.log.Error().Err(err).
					Str("page_url", visit.PageURL).
					Int("worker_id", id).
					Msg("visit recording failed")
			}
			metrics.VisitQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
