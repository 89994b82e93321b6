package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/davixiao/MeetTheDev/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
	refreshTimeout = 15 * time.Second
)

// Refresher fetches fresh data for a GitHub username and stores it.
type Refresher interface {
	Refresh(ctx context.Context, username string) error
}

// Dispatcher warms the GitHub repository cache in the background. Usernames
// are sharded by hash so repeated requests for one user serialize on a
// single worker.
type Dispatcher struct {
	workers   []chan string
	refresher Refresher
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, refresher Refresher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan string, numWorkers),
		refresher: refresher,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a username to its worker. It never blocks: when the worker
// queue is full the request is dropped.
func (d *Dispatcher) Enqueue(username string) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return
	}

	idx := d.shardIndex(username)
	select {
	case d.workers[idx] <- username:
		metrics.WarmerQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.WarmerDroppedTotal.Inc()
		d.log.Warn().Str("github_user", username).Int("worker_id", idx).Msg("warmer queue full, dropping")
	}
}

// EnqueueBatch enqueues every username.
func (d *Dispatcher) EnqueueBatch(usernames []string) {
	for _, u := range usernames {
		d.Enqueue(u)
	}
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case username, ok := <-ch:
			if !ok {
				return
			}
			metrics.WarmerQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			refreshCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
			err := d.refresher.Refresh(refreshCtx, username)
			cancel()
			if err != nil {
				d.log.Warn().Err(err).
					Str("github_user", username).
					Int("worker_id", id).
					Msg("repo cache warm failed")
			}
		}
	}
}
