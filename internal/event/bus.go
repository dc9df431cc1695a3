package event

import (
	"context"
	"sync/atomic"

	"github.com/textloom/loom/internal/event/dispatch"
	"github.com/textloom/loom/internal/event/topic"
)

// Bus is the central event bus interface.
type Bus interface {
	// Publishing
	Publish(ctx context.Context, event any) error
	PublishSync(ctx context.Context, event any) error
	PublishAsync(ctx context.Context, event any) error

	// Subscription
	Subscribe(topicPattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error)
	SubscribeFunc(topicPattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error)
	Unsubscribe(sub Subscription) error

	// Lifecycle
	Start() error
	Stop(ctx context.Context) error
	Pause()
	Resume()

	// Status
	Stats() Stats
	IsRunning() bool
	IsPaused() bool
}

// bus is the default Bus implementation. Sync delivery runs on the
// publisher's goroutine in subscription-priority order; async delivery is
// queued to a worker pool. Both paths share matching, filtering, and
// sequence-stamping logic so a mixed sync/async subscriber set still
// observes a single, coherent publish sequence via Envelope.Seq.
type bus struct {
	registry *Registry

	syncDispatcher  *dispatch.SyncDispatcher
	asyncDispatcher *dispatch.AsyncDispatcher

	running atomic.Bool
	paused  atomic.Bool

	config busConfig

	// seq assigns each accepted Publish/PublishSync/PublishAsync call a
	// strictly increasing number, stamped into the event's Envelope (when
	// present) before dispatch. Handlers that care about publish order
	// across both delivery modes read Envelope.Seq rather than relying on
	// wall-clock arrival, which async queueing does not preserve.
	seq atomic.Uint64

	eventsPublished  atomic.Uint64
	eventsDelivered  atomic.Uint64
	eventsDropped    atomic.Uint64
	handlersExecuted atomic.Uint64
	handlerErrors    atomic.Uint64
	handlerPanics    atomic.Uint64
	totalDeliveryNs  atomic.Int64
}

// NewBus creates a new event bus with the given options.
func NewBus(opts ...BusOption) Bus {
	config := defaultBusConfig()
	for _, opt := range opts {
		opt(&config)
	}

	b := &bus{
		registry: NewRegistry(),
		config:   config,
	}

	// dispatch.PanicHandler carries the raw recover() value and stack;
	// event.PanicHandler additionally identifies which Handler panicked,
	// which the dispatch package has no notion of.
	onPanic := func(event any, panicValue any, _ []byte) {
		if b.config.panicHandler != nil {
			b.config.panicHandler(event, nil, panicValue)
		}
	}

	b.syncDispatcher = dispatch.NewSyncDispatcher(
		dispatch.WithPanicHandler(onPanic),
	)
	b.asyncDispatcher = dispatch.NewAsyncDispatcher(
		dispatch.WithQueueSize(config.asyncQueueSize),
		dispatch.WithWorkerCount(config.asyncWorkerCount),
		dispatch.WithAsyncTimeout(config.defaultTimeout),
		dispatch.WithAsyncPanicHandler(onPanic),
	)

	return b
}

func (b *bus) Start() error {
	if b.running.Load() {
		return ErrBusAlreadyRunning
	}
	if err := b.asyncDispatcher.Start(); err != nil {
		return err
	}
	b.running.Store(true)
	return nil
}

// Stop stops the event bus gracefully, waiting for pending async events to
// drain or for ctx to expire, whichever comes first.
func (b *bus) Stop(ctx context.Context) error {
	if !b.running.Swap(false) {
		return ErrBusNotRunning
	}
	return b.asyncDispatcher.Stop(ctx)
}

func (b *bus) Pause()  { b.paused.Store(true) }
func (b *bus) Resume() { b.paused.Store(false) }

func (b *bus) IsRunning() bool { return b.running.Load() }
func (b *bus) IsPaused() bool  { return b.paused.Load() }

// Publish sends an event using the default delivery mode (async).
func (b *bus) Publish(ctx context.Context, event any) error {
	return b.PublishAsync(ctx, event)
}

// matchForPublish validates bus state and resolves the subscriptions a
// published event could reach. A nil slice (with nil error) means the
// publish is a well-formed no-op: bus paused or no subscribers matched.
func (b *bus) matchForPublish(event any) ([]Subscription, error) {
	if !b.running.Load() {
		return nil, ErrBusNotRunning
	}
	if b.paused.Load() {
		return nil, nil
	}

	eventTopic := b.extractTopic(event)
	if eventTopic == "" {
		return nil, ErrInvalidEvent
	}

	subs := b.registry.MatchActive(eventTopic)
	if len(subs) == 0 {
		return nil, nil
	}

	b.stampSeq(event)
	b.eventsPublished.Add(1)
	return subs, nil
}

// stampSeq assigns the next publish sequence number to event, if it carries
// an Envelope that can hold one.
func (b *bus) stampSeq(event any) {
	if env, ok := event.(*Envelope); ok {
		env.Seq = b.seq.Add(1)
	}
}

// PublishSync sends an event synchronously. The call blocks until every
// matching sync handler, in subscription priority order, has completed.
func (b *bus) PublishSync(ctx context.Context, event any) error {
	subs, err := b.matchForPublish(event)
	if err != nil || subs == nil {
		return err
	}

	for _, sub := range subs {
		if sub.Config().DeliveryMode != DeliverySync || !sub.ShouldDeliver(event) {
			continue
		}
		b.runSync(ctx, event, sub)
	}
	return nil
}

func (b *bus) runSync(ctx context.Context, event any, sub Subscription) {
	result := b.syncDispatcher.Dispatch(ctx, event, sub.Handler())
	b.handlersExecuted.Add(1)

	switch {
	case result.Panicked:
		b.handlerPanics.Add(1)
	case result.Error != nil:
		b.handlerErrors.Add(1)
	case result.Success:
		b.eventsDelivered.Add(1)
	}
	b.totalDeliveryNs.Add(result.Duration.Nanoseconds())

	if sub.Config().Once && result.Success {
		sub.Cancel()
		b.registry.Remove(sub.ID())
	}
}

// PublishAsync queues an event for asynchronous delivery. A full worker
// queue drops the event for that one subscriber without failing the
// publish — other matching handlers still get a shot at it.
func (b *bus) PublishAsync(ctx context.Context, event any) error {
	subs, err := b.matchForPublish(event)
	if err != nil || subs == nil {
		return err
	}

	for _, sub := range subs {
		if sub.Config().DeliveryMode != DeliveryAsync || !sub.ShouldDeliver(event) {
			continue
		}
		if err := b.asyncDispatcher.Enqueue(ctx, event, sub.Handler()); err != nil {
			b.eventsDropped.Add(1)
		}
	}
	return nil
}

// Subscribe creates a new subscription for the given topic pattern. Safe
// for concurrent use.
func (b *bus) Subscribe(topicPattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if topicPattern == "" {
		return nil, ErrInvalidTopic
	}

	sub := newSubscription(generateID(), topicPattern, handler, opts...)
	b.registry.Add(sub)
	return sub, nil
}

// SubscribeFunc is a convenience method for subscribing with a function handler.
func (b *bus) SubscribeFunc(topicPattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	return b.Subscribe(topicPattern, fn, opts...)
}

// Unsubscribe removes a subscription. Safe for concurrent use.
func (b *bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}

	sub.Cancel()
	if !b.registry.Remove(sub.ID()) {
		return ErrSubscriptionNotFound
	}
	return nil
}

// Stats returns current bus statistics, combining counters owned directly
// by the bus (sync path) with the async dispatcher's own counters.
func (b *bus) Stats() Stats {
	asyncStats := b.asyncDispatcher.Stats()
	syncStats := b.syncDispatcher.Stats()

	handlersExecuted := b.handlersExecuted.Load() + asyncStats.Processed
	handlerErrors := b.handlerErrors.Load() + asyncStats.Failed
	handlerPanics := b.handlerPanics.Load() + asyncStats.Panicked + syncStats.Panicked

	totalDeliveryNs := b.totalDeliveryNs.Load() + int64(asyncStats.TotalDuration)
	var avgNs int64
	if handlersExecuted > 0 {
		avgNs = totalDeliveryNs / int64(handlersExecuted)
	}

	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		EventsDelivered:   b.eventsDelivered.Load() + asyncStats.Succeeded,
		EventsDropped:     b.eventsDropped.Load() + asyncStats.Dropped,
		HandlersExecuted:  handlersExecuted,
		HandlerErrors:     handlerErrors,
		HandlerPanics:     handlerPanics,
		AvgDeliveryTimeNs: avgNs,
		ActiveSubscribers: b.registry.CountActive(),
		QueueDepth:        asyncStats.QueueDepth,
	}
}

// extractTopic resolves the topic an event was published under.
func (b *bus) extractTopic(event any) topic.Topic {
	if tp, ok := event.(TopicProvider); ok {
		return tp.EventTopic()
	}
	if env, ok := event.(Envelope); ok {
		return env.Topic
	}
	if env, ok := event.(*Envelope); ok {
		return env.Topic
	}
	return ""
}
