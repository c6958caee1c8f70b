package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"p2p-delivery/internal/logx"
)

// Event is a single order transition event published to Kafka.
type Event struct {
	OrderID string    `json:"order_id"`
	Event   string    `json:"event"`
	At      time.Time `json:"at"`
}

// Producer publishes order transition events to a Kafka topic. It implements
// notify.Notifier. Publishing is asynchronous so transitions never wait on a
// broker round-trip; delivery failures surface on the producer error channel
// and are logged, never returned.
type Producer struct {
	prod   sarama.AsyncProducer
	topic  string
	logger logx.Logger
	now    func() time.Time
	done   chan struct{}
}

// NewProducer creates a Kafka-backed notifier. Returns (nil, nil) when
// brokers or topic are not configured, so callers can skip wiring it.
func NewProducer(brokers []string, topic string, logger logx.Logger) (*Producer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Errors = true
	cfg.Producer.RequiredAcks = sarama.WaitForLocal

	prod, err := sarama.NewAsyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	p := &Producer{
		prod:   prod,
		topic:  topic,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		done:   make(chan struct{}),
	}
	go p.drainErrors()
	return p, nil
}

// Notify queues the event for publishing and returns without waiting for the
// broker. Marshal errors are logged and swallowed.
func (p *Producer) Notify(_ context.Context, orderID, event string) {
	if p == nil {
		return
	}
	payload, err := json.Marshal(Event{OrderID: orderID, Event: event, At: p.now()})
	if err != nil {
		p.logger.Error("kafka: marshal event failed",
			logx.String("order_id", orderID),
			logx.Err(err),
		)
		return
	}

	p.prod.Input() <- &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(orderID),
		Value: sarama.ByteEncoder(payload),
	}
}

// drainErrors logs failed publishes until the producer shuts down.
func (p *Producer) drainErrors() {
	defer close(p.done)
	for perr := range p.prod.Errors() {
		fields := []logx.Field{logx.Err(perr.Err)}
		if key, err := perr.Msg.Key.Encode(); err == nil {
			fields = append(fields, logx.String("order_id", string(key)))
		}
		p.logger.Error("kafka: publish failed", fields...)
	}
}

// Close flushes pending messages, shuts the producer down and waits for the
// error drain to finish.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	err := p.prod.Close()
	<-p.done
	return err
}
