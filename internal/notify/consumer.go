package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/segmentio/kafka-go"
)

// ChangeEvent is the undifferentiated "something changed" notification for a
// remote table. The operation is carried but deliberately not acted upon:
// any event triggers a full reload of the affected collection.
type ChangeEvent struct {
	Table string `json:"table"`
	Op    string `json:"op,omitempty"`
}

// Reloader is the subset of the store the consumer drives.
type Reloader interface {
	LoadProducts() error
	LoadOrders() error
}

type Consumer struct {
	Reader *kafka.Reader
	Store  Reloader
}

func NewConsumer(reader *kafka.Reader, store Reloader) *Consumer {
	return &Consumer{Reader: reader, Store: store}
}

// Start blocks reading change events until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting change-notification consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var event ChangeEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling change event: %v", err)
			continue
		}

		c.Process(event)
	}
}

// Process reloads the collection named by the event. Unknown tables are
// ignored; a failed reload is already recorded by the store.
func (c *Consumer) Process(event ChangeEvent) {
	switch event.Table {
	case "products":
		if err := c.Store.LoadProducts(); err != nil {
			log.Printf("Error reloading products: %v", err)
		}
	case "orders":
		if err := c.Store.LoadOrders(); err != nil {
			log.Printf("Error reloading orders: %v", err)
		}
	}
}
