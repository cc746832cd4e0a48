package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Publisher puts a message body on a named queue.
type Publisher interface {
	Publish(queue string, body []byte) error
}

// Consumer delivers every message of a queue to handler. A handler error requeues the message.
type Consumer interface {
	Consume(queue string, handler func(body []byte) error) error
}

// QueueSender defers delivery by publishing messages to a queue.
type QueueSender struct {
	publisher Publisher
	queue     string
}

func NewQueueSender(publisher Publisher, queue string) *QueueSender {
	return &QueueSender{publisher: publisher, queue: queue}
}

func (s *QueueSender) Send(_ context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal mail message: %w", err)
	}
	if err := s.publisher.Publish(s.queue, body); err != nil {
		return fmt.Errorf("failed to enqueue %s mail: %w", msg.Template, err)
	}
	return nil
}

// Dispatcher drains the mail queue into a delegate sender.
type Dispatcher struct {
	consumer Consumer
	queue    string
	delegate Sender
}

func NewDispatcher(consumer Consumer, queue string, delegate Sender) *Dispatcher {
	return &Dispatcher{consumer: consumer, queue: queue, delegate: delegate}
}

// Start registers the dispatcher as the consumer of its queue.
func (d *Dispatcher) Start() error {
	log.Printf("Starting mail dispatcher on queue %s", d.queue)
	return d.consumer.Consume(d.queue, d.Handle)
}

// Handle delivers one queued message. Malformed bodies are dropped; delivery
// failures are returned so the message gets requeued.
func (d *Dispatcher) Handle(body []byte) error {
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		log.Printf("Dropping malformed mail message: %v", err)
		return nil
	}
	if err := d.delegate.Send(context.Background(), msg); err != nil {
		return fmt.Errorf("failed to deliver %s mail to %s: %w", msg.Template, msg.To, err)
	}
	return nil
}
