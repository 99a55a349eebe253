package analytics

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitcalc/internal/telemetry/metrics"
)

const DefaultWriteTimeout = 5 * time.Second

type RecorderParams struct {
	Async        bool
	QueueSize    int
	Workers      int
	WriteTimeout time.Duration
}

// Recorder is the best-effort write path in front of a Store: write failures
// are logged and counted, never returned. In async mode writes are queued and
// performed by a fixed set of workers; when the queue is full the record is
// dropped. There are no retries.
type Recorder struct {
	store        Store
	metrics      *metrics.Manager
	async        bool
	writeTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan writeJob
	wg     sync.WaitGroup
}

type writeJob struct {
	ctx   context.Context
	table string
	write func(ctx context.Context) error
}

func NewRecorder(store Store, metricsManager *metrics.Manager, params RecorderParams) *Recorder {
	r := &Recorder{
		store:        store,
		metrics:      metricsManager,
		async:        params.Async,
		writeTimeout: params.WriteTimeout,
	}
	if r.writeTimeout <= 0 {
		r.writeTimeout = DefaultWriteTimeout
	}
	if !r.async {
		return r
	}

	queueSize := max(params.QueueSize, 1)
	workers := max(params.Workers, 1)
	r.queue = make(chan writeJob, queueSize)
	for i := 0; i < workers; i++ {
		r.wg.Add(1)
		go r.work()
	}
	log.Debugf("analytics recorder: async, %d workers, queue size %d", workers, queueSize)

	return r
}

func (r *Recorder) RecordTdee(ctx context.Context, params TdeeParams) {
	r.record(ctx, TableTdee, func(ctx context.Context) error {
		rec, err := r.store.LogTdee(ctx, params)
		if err == nil {
			log.Tracef("tdee calculation logged: %d", rec.ID)
		}
		return err
	})
}

func (r *Recorder) RecordOneRepMax(ctx context.Context, params OneRepMaxParams) {
	r.record(ctx, TableOneRepMax, func(ctx context.Context) error {
		rec, err := r.store.LogOneRepMax(ctx, params)
		if err == nil {
			log.Tracef("one rep max calculation logged: %d", rec.ID)
		}
		return err
	})
}

func (r *Recorder) record(ctx context.Context, table string, write func(ctx context.Context) error) {
	if !r.async {
		writeCtx, cancel := context.WithTimeout(ctx, r.writeTimeout)
		defer cancel()
		r.write(writeCtx, table, write)
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		log.Warnf("analytics recorder closed, dropping %s record", table)
		r.metrics.CounterAnalyticsDroppedRecords.WithLabelValues(table).Inc()
		return
	}

	// the request context gets cancelled as soon as the response is written
	job := writeJob{
		ctx:   context.WithoutCancel(ctx),
		table: table,
		write: write,
	}
	select {
	case r.queue <- job:
		r.metrics.GaugeAnalyticsQueued.Inc()
	default:
		log.Warnf("analytics write queue full, dropping %s record", table)
		r.metrics.CounterAnalyticsDroppedRecords.WithLabelValues(table).Inc()
	}
}

func (r *Recorder) work() {
	defer r.wg.Done()
	for job := range r.queue {
		r.metrics.GaugeAnalyticsQueued.Dec()
		ctx, cancel := context.WithTimeout(job.ctx, r.writeTimeout)
		r.write(ctx, job.table, job.write)
		cancel()
	}
}

func (r *Recorder) write(ctx context.Context, table string, write func(ctx context.Context) error) {
	start := time.Now()
	err := write(ctx)
	r.metrics.HistogramAnalyticsWriteSeconds.WithLabelValues(table).Observe(time.Since(start).Seconds())
	if err != nil {
		log.Errorf("log %s: %s", table, err)
		r.metrics.CounterAnalyticsWriteFailures.WithLabelValues(table).Inc()
	}
}

// Close stops accepting new records and waits for queued ones to be written,
// or for ctx to be done. Safe to call more than once; every call waits.
func (r *Recorder) Close(ctx context.Context) error {
	if !r.async {
		return nil
	}

	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Debugln("analytics recorder drained")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
