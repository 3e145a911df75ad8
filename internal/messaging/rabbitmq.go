package messaging

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

const (
	connectRetries = 3
	retryDelay     = 2 * time.Second
)

// Client wraps the AMQP connection and keeps it usable across drops.
type Client struct {
	url      string
	exchange string

	mu         sync.RWMutex
	connection *amqp.Connection
	channel    *amqp.Channel
	closing    bool
}

func NewClient(url, exchange string) *Client {
	return &Client{url: url, exchange: exchange}
}

func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	for i := 0; i < connectRetries; i++ {
		c.connection, err = amqp.Dial(c.url)
		if err != nil {
			log.Printf("rabbitmq connect error (attempt %d/%d): %v", i+1, connectRetries, err)
			if i < connectRetries-1 {
				time.Sleep(retryDelay)
				continue
			}
			return fmt.Errorf("rabbitmq connect error: %w", err)
		}

		c.channel, err = c.connection.Channel()
		if err != nil {
			c.connection.Close()
			return fmt.Errorf("rabbitmq channel error: %w", err)
		}

		err = c.channel.ExchangeDeclare(
			c.exchange, // name
			"topic",    // type
			true,       // durable
			false,      // auto-deleted
			false,      // internal
			false,      // no-wait
			nil,        // arguments
		)
		if err != nil {
			c.channel.Close()
			c.connection.Close()
			return fmt.Errorf("exchange declare error: %w", err)
		}

		log.Printf("connected to rabbitmq, exchange %q", c.exchange)

		go c.watchConnection()
		return nil
	}

	return err
}

func (c *Client) watchConnection() {
	notifyClose := make(chan *amqp.Error)
	c.connection.NotifyClose(notifyClose)

	if err := <-notifyClose; err != nil {
		c.mu.RLock()
		closing := c.closing
		c.mu.RUnlock()
		if closing {
			return
		}
		log.Printf("rabbitmq connection lost: %v, reconnecting", err)
		time.Sleep(retryDelay)
		if reconnectErr := c.Connect(); reconnectErr != nil {
			log.Printf("rabbitmq reconnect error: %v", reconnectErr)
		}
	}
}

func (c *Client) Channel() *amqp.Channel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.channel
}

func (c *Client) Exchange() string {
	return c.exchange
}

func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connection != nil && !c.connection.IsClosed()
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closing {
		return nil
	}
	c.closing = true

	var closeErr error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			closeErr = fmt.Errorf("channel close error: %w", err)
		}
	}
	if c.connection != nil {
		if err := c.connection.Close(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("connection close error: %w", err)
		}
	}
	return closeErr
}
