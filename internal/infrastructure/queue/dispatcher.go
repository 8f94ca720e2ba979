package queue

import (
	"context"
	"hash/fnv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/way2pg/way2pg-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// notificationsTotal counts delivery attempts by outcome ("sent" / "failed").
var notificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "way2pg",
		Name:      "notifications_total",
		Help:      "Total number of owner notification deliveries, by result.",
	},
	[]string{"result"},
)

// Dispatcher routes booking notifications to a fixed set of workers using
// consistent hashing on the booking id, guaranteeing per-booking delivery
// ordering.
type Dispatcher struct {
	workers []chan ports.BookingNotification
	service ports.NotificationService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.BookingNotification, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.BookingNotification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a notification to the worker responsible for its booking.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(n ports.BookingNotification) {
	d.workers[d.shardIndex(n.BookingID)] <- n
}

// shardIndex maps a booking id deterministically to a worker index.
func (d *Dispatcher) shardIndex(bookingID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(bookingID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.BookingNotification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, n); err != nil {
				notificationsTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Str("booking_id", n.BookingID).
					Int("worker_id", id).
					Msg("notification delivery failed")
				continue
			}
			notificationsTotal.WithLabelValues("sent").Inc()
		}
	}
}
