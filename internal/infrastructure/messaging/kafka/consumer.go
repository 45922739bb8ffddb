package kafka

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"

	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

var ErrAlreadyRunning = errors.New(errors.ErrCodeValidation, "consumer already running")

// RetryConfig bounds handler retries before a message is dead-lettered.
type RetryConfig struct {
	MaxRetries      int
	RetryBackoff    time.Duration
	MaxRetryBackoff time.Duration
	DeadLetterTopic string
}

// ConsumerConfig holds consumer-group settings.
type ConsumerConfig struct {
	Brokers        []string
	GroupID        string
	Topics         []string
	StartLatest    bool
	CommitInterval time.Duration
	Retry          RetryConfig
}

// ReaderInterface abstracts kafka.Reader for testing.
type ReaderInterface interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes dead-lettered messages.
type Publisher interface {
	Publish(ctx context.Context, msg *ProducerMessage) error
}

// ConsumeObserver is told about every handled message.
type ConsumeObserver interface {
	RecordMessageConsumed(topic string, ok bool)
}

// Consumer dispatches group messages to per-topic handlers. Every fetched
// message is committed once handled, retried out or dead-lettered.
type Consumer struct {
	reader     ReaderInterface
	cfg        ConsumerConfig
	logger     logging.Logger
	deadLetter Publisher
	observer   ConsumeObserver

	handlers map[string]MessageHandler
	mu       sync.RWMutex

	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	consumed     atomic.Int64
	deadLettered atomic.Int64
}

func ValidateConsumerConfig(cfg ConsumerConfig) error {
	if len(cfg.Brokers) == 0 {
		return errors.New(errors.ErrCodeValidation, "brokers required")
	}
	if cfg.GroupID == "" {
		return errors.New(errors.ErrCodeValidation, "group id required")
	}
	if len(cfg.Topics) == 0 {
		return errors.New(errors.ErrCodeValidation, "at least one topic required")
	}
	if cfg.Retry.MaxRetries < 0 {
		return errors.New(errors.ErrCodeValidation, "max retries must be >= 0")
	}
	return nil
}

// NewConsumer builds a group reader. deadLetter and observer may be nil.
func NewConsumer(cfg ConsumerConfig, deadLetter Publisher, observer ConsumeObserver, log logging.Logger) (*Consumer, error) {
	if err := ValidateConsumerConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.CommitInterval == 0 {
		cfg.CommitInterval = time.Second
	}

	rcfg := kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		GroupTopics:    cfg.Topics,
		MinBytes:       1,
		MaxBytes:       10 * 1024 * 1024,
		MaxWait:        500 * time.Millisecond,
		CommitInterval: cfg.CommitInterval,
		StartOffset:    kafka.FirstOffset,
	}
	if cfg.StartLatest {
		rcfg.StartOffset = kafka.LastOffset
	}

	return newConsumer(kafka.NewReader(rcfg), cfg, deadLetter, observer, log), nil
}

func newConsumer(r ReaderInterface, cfg ConsumerConfig, deadLetter Publisher, observer ConsumeObserver, log logging.Logger) *Consumer {
	if cfg.Retry.RetryBackoff == 0 {
		cfg.Retry.RetryBackoff = 500 * time.Millisecond
	}
	if cfg.Retry.MaxRetryBackoff == 0 {
		cfg.Retry.MaxRetryBackoff = 30 * time.Second
	}
	return &Consumer{
		reader:     r,
		cfg:        cfg,
		logger:     log,
		deadLetter: deadLetter,
		observer:   observer,
		handlers:   make(map[string]MessageHandler),
	}
}

func (c *Consumer) Subscribe(topic string, h MessageHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[topic] = h
	c.logger.Info("subscribed to topic", logging.String("topic", topic))
}

// Start launches the fetch loop and returns immediately.
func (c *Consumer) Start(ctx context.Context) error {
	if c.running.Swap(true) {
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.wg.Add(1)
	go c.loop(ctx)

	c.logger.Info("kafka consumer started",
		logging.String("group", c.cfg.GroupID),
		logging.Strings("topics", c.cfg.Topics))
	return nil
}

func (c *Consumer) loop(ctx context.Context) {
	defer c.wg.Done()
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("fetch failed", logging.Err(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}
		c.consumed.Add(1)
		c.dispatch(ctx, m)
		if ctx.Err() != nil {
			return
		}
		if err := c.reader.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
			c.logger.Error("commit failed", logging.String("topic", m.Topic), logging.Int64("offset", m.Offset), logging.Err(err))
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, m kafka.Message) {
	c.mu.RLock()
	h, ok := c.handlers[m.Topic]
	c.mu.RUnlock()
	if !ok {
		c.logger.Warn("no handler for topic", logging.String("topic", m.Topic))
		return
	}

	msg := fromKafkaMessage(m)
	err := c.handle(ctx, msg, h)
	if c.observer != nil {
		c.observer.RecordMessageConsumed(m.Topic, err == nil)
	}
	if err == nil || ctx.Err() != nil {
		return
	}

	c.logger.Error("message processing failed after retries",
		logging.String("topic", msg.Topic),
		logging.Int64("offset", msg.Offset),
		logging.Err(err))
	c.sendToDeadLetter(ctx, msg, err)
}

// handle runs h with exponential backoff. Errors marked with NonRetryable
// stop retrying at once.
func (c *Consumer) handle(ctx context.Context, msg *Message, h MessageHandler) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.cfg.Retry.RetryBackoff
	eb.MaxInterval = c.cfg.Retry.MaxRetryBackoff
	eb.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(c.cfg.Retry.MaxRetries)), ctx)
	return backoff.RetryNotify(func() error {
		return h(ctx, msg)
	}, policy, func(err error, wait time.Duration) {
		c.logger.Warn("retrying message",
			logging.String("topic", msg.Topic),
			logging.Int64("offset", msg.Offset),
			logging.Duration("wait", wait),
			logging.Err(err))
	})
}

// NonRetryable marks err as permanent so the consumer skips retries.
func NonRetryable(err error) error {
	return backoff.Permanent(err)
}

func (c *Consumer) sendToDeadLetter(ctx context.Context, msg *Message, cause error) {
	if c.deadLetter == nil || c.cfg.Retry.DeadLetterTopic == "" {
		return
	}
	headers := make(map[string]string, len(msg.Headers)+2)
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers["original_topic"] = msg.Topic
	headers["error_message"] = cause.Error()

	dl := &ProducerMessage{Topic: c.cfg.Retry.DeadLetterTopic, Key: msg.Key, Value: msg.Value, Headers: headers}
	if err := c.deadLetter.Publish(ctx, dl); err != nil {
		c.logger.Error("failed to dead-letter message", logging.Err(err))
		return
	}
	c.deadLettered.Add(1)
}

func fromKafkaMessage(m kafka.Message) *Message {
	msg := &Message{
		Topic:     m.Topic,
		Partition: m.Partition,
		Offset:    m.Offset,
		Key:       m.Key,
		Value:     m.Value,
		Timestamp: m.Time,
		Headers:   make(map[string]string, len(m.Headers)),
	}
	for _, h := range m.Headers {
		msg.Headers[h.Key] = string(h.Value)
	}
	return msg
}

func (c *Consumer) Consumed() int64     { return c.consumed.Load() }
func (c *Consumer) DeadLettered() int64 { return c.deadLettered.Load() }

// Close stops the loop and waits for the in-flight message.
func (c *Consumer) Close() error {
	if !c.running.CompareAndSwap(true, false) {
		return nil
	}
	c.cancel()
	c.wg.Wait()
	err := c.reader.Close()
	c.logger.Info("kafka consumer closed", logging.Int64("consumed", c.consumed.Load()))
	return err
}

//Personal.AI order the ending
