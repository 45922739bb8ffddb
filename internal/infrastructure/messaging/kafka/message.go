package kafka

import (
	"context"
	"time"
)

// Message is a record read from the broker.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// ProducerMessage is a record to write.
type ProducerMessage struct {
	Topic     string
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// MessageHandler processes one message. Returning an error triggers retry.
type MessageHandler func(ctx context.Context, msg *Message) error

//Personal.AI order the ending
