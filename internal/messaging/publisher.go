package messaging

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/streadway/amqp"
)

type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// PublishOrderEvent sends the event to the topic exchange using the event
// type as routing key. Callers treat failures as non-fatal: the order state
// is already committed when events go out.
func (p *Publisher) PublishOrderEvent(event OrderEvent) error {
	if !p.client.IsConnected() {
		return fmt.Errorf("no rabbitmq connection")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("event serialization error: %w", err)
	}

	err = p.client.Channel().Publish(
		p.client.Exchange(),
		string(event.Type), // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID.String(),
			Timestamp:    event.Timestamp,
			Headers: amqp.Table{
				"order_id": event.OrderID.String(),
				"user_id":  event.UserID.String(),
				"status":   string(event.Status),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("event publish error: %w", err)
	}

	log.Printf("event published: %s order=%s", event.Type, event.OrderID)
	return nil
}
