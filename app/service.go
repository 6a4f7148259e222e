// Package app wires the board engine to its store, event bus, metrics
// sinks and the fleet broker.
package app

import (
	"context"
	"fmt"

	"github.com/kvernberg/planboard/config"
	"github.com/kvernberg/planboard/core/board"
	"github.com/kvernberg/planboard/core/events"
	"github.com/kvernberg/planboard/core/grid"
	coremetrics "github.com/kvernberg/planboard/core/metrics"
	"github.com/kvernberg/planboard/core/store"
	"github.com/kvernberg/planboard/infra/logger"
	"github.com/kvernberg/planboard/infra/metrics"
	"github.com/kvernberg/planboard/infra/mqtt"
	"github.com/kvernberg/planboard/infra/store/memory"
	"github.com/kvernberg/planboard/infra/store/postgres"
	"github.com/kvernberg/planboard/internal/eventbus"
)

// Service orchestrates the board engine and its collaborators.
type Service struct {
	Engine      *board.Engine
	Store       store.Store
	bus         *eventbus.Bus
	publisher   mqtt.Publisher
	log         logger.Logger
	promEnabled bool
	promAddr    string
	closers     []func()
}

// New creates a Service from the configuration.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	st, closer, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	rng := grid.DayRange{Focus: cfg.Board.Focus, Week: cfg.Board.View == "week"}
	engine, err := board.New(ctx, st, rng, logger.New("board"),
		board.WithBus(bus), board.WithMetrics(sink))
	if err != nil {
		return nil, fmt.Errorf("board engine: %w", err)
	}

	svc := &Service{
		Engine:      engine,
		Store:       st,
		bus:         bus,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promAddr:    cfg.Metrics.PrometheusAddr,
	}
	if closer != nil {
		svc.closers = append(svc.closers, closer)
	}
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.publisher = pub
		svc.closers = append(svc.closers, pub.Close)
	}
	return svc, nil
}

func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, func(), error) {
	switch cfg.Driver {
	case "postgres":
		st, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres store: %w", err)
		}
		if cfg.InitSchema {
			if err := st.InitSchema(ctx); err != nil {
				return nil, nil, err
			}
		}
		return st, func() { _ = st.Close() }, nil
	default:
		return memory.New(store.Snapshot{}), nil, nil
	}
}

// Run starts the background forwarders and blocks until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) error {
	sub := s.bus.Subscribe()
	go s.forward(ctx, sub)
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	<-ctx.Done()
	return nil
}

// forward relays schedule events from the bus to the fleet broker.
func (s *Service) forward(ctx context.Context, sub <-chan eventbus.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			s.publishEvent(ev)
		}
	}
}

func (s *Service) publishEvent(ev eventbus.Event) {
	if s.publisher == nil {
		return
	}
	var topic string
	switch e := ev.(type) {
	case events.BookingMoved:
		topic = "moves/" + string(e.Target)
		if e.ResourceID != "" {
			topic += "/" + e.ResourceID
		}
	case events.BlockChanged:
		topic = "blocks/" + string(e.Op)
	case events.ResolutionSettled:
		topic = "resolutions/" + string(e.Outcome)
	default:
		return
	}
	if p, ok := s.publisher.(*mqtt.PahoPublisher); ok {
		topic = p.Topic(topic)
	}
	if err := s.publisher.Publish(topic, ev); err != nil {
		s.log.Errorf("publish %s: %v", topic, err)
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	for _, c := range s.closers {
		c()
	}
	return nil
}
