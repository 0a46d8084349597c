// Package analytics writes search usage events to a capped stream,
// fire-and-forget: recording never blocks or fails a search response.
package analytics

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/usage"
)

// writeTimeout bounds a single stream append so a slow store cannot
// back up the worker indefinitely.
const writeTimeout = 2 * time.Second

// store is the consumer interface for the event stream (ISP).
type store interface {
	StreamAdd(ctx context.Context, stream string, maxLen int64, fields map[string]string) error
}

// StreamSink buffers usage events in a bounded queue and appends them to a
// capped stream from a background worker. When the queue is full, events are
// dropped and counted, never queued synchronously.
type StreamSink struct {
	store   store
	stream  string
	maxLen  int64
	queue   chan usage.Event
	dropped prometheus.Counter
	logger  *zap.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// NewStreamSink creates a sink and starts its worker goroutine.
// dropped may be nil (no metric).
func NewStreamSink(
	s store, stream string, maxLen int64, queueSize int,
	dropped prometheus.Counter, logger *zap.Logger,
) *StreamSink {
	if queueSize <= 0 {
		queueSize = 256
	}
	sink := &StreamSink{
		store:   s,
		stream:  stream,
		maxLen:  maxLen,
		queue:   make(chan usage.Event, queueSize),
		dropped: dropped,
		logger:  logger,
		done:    make(chan struct{}),
	}
	go sink.run()
	return sink
}

// Record enqueues an event without blocking. Events are dropped when the
// queue is full; a search must never wait on telemetry.
func (s *StreamSink) Record(ev usage.Event) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.At == 0 {
		ev.At = time.Now().UnixMilli()
	}

	select {
	case s.queue <- ev:
	default:
		if s.dropped != nil {
			s.dropped.Inc()
		}
		s.logger.Warn("telemetry queue full, dropping event", zap.String("event_id", ev.ID))
	}
}

// Close stops the worker after draining queued events.
func (s *StreamSink) Close() {
	s.closeOnce.Do(func() {
		close(s.queue)
		<-s.done
	})
}

func (s *StreamSink) run() {
	defer close(s.done)
	for ev := range s.queue {
		s.write(ev)
	}
}

func (s *StreamSink) write(ev usage.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := s.store.StreamAdd(ctx, s.stream, s.maxLen, eventFields(ev)); err != nil {
		// Telemetry failure is local: logged, never surfaced.
		s.logger.Warn("failed to record usage event",
			zap.String("event_id", ev.ID), zap.Error(err))
	}
}

func eventFields(ev usage.Event) map[string]string {
	fields := map[string]string{
		"id":           ev.ID,
		"query":        ev.Query,
		"strategy":     ev.Strategy,
		"result_count": strconv.Itoa(ev.ResultCount),
		"total_count":  strconv.Itoa(ev.TotalCount),
		"vault_scope":  ev.VaultScope,
		"duration_ms":  strconv.FormatInt(ev.DurationMS, 10),
		"at":           strconv.FormatInt(ev.At, 10),
	}
	if ev.Category != "" {
		fields["category"] = ev.Category
	}
	if ev.FileType != "" {
		fields["file_type"] = ev.FileType
	}
	if ev.HasDateRange {
		fields["has_date_range"] = "1"
	}
	return fields
}
