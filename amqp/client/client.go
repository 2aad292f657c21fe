// Package client submits check requests to workers over RabbitMQ.
package client

import (
	"context"
	"errors"

	"github.com/google/uuid"
	amqp2 "github.com/jt05610/petrisym/amqp"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var ErrClosed = errors.New("reply channel closed")

type Client struct {
	ch       *amqp.Channel
	q        *amqp.Queue
	replies  <-chan amqp.Delivery
	req      *amqp2.Service[amqp2.Request]
	res      *amqp2.Service[amqp2.Response]
	exchange string
	logger   *zap.Logger
}

// New declares an exclusive reply queue on conn.
func New(conn *amqp2.Connection, exchange string, logger *zap.Logger) (*Client, error) {
	q, err := conn.QueueDeclare(
		"",    // name
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	replies, err := conn.Consume(
		q.Name, // queue
		"",     // consumer
		true,   // auto-ack
		true,   // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		return nil, err
	}
	return &Client{
		ch:       conn.Channel,
		q:        &q,
		replies:  replies,
		req:      &amqp2.Service[amqp2.Request]{},
		res:      &amqp2.Service[amqp2.Response]{},
		exchange: exchange,
		logger:   logger,
	}, nil
}

// Call publishes req and waits for its response. Calls must not run
// concurrently on one Client.
func (c *Client) Call(ctx context.Context, req *amqp2.Request) (*amqp2.Response, error) {
	id := uuid.NewString()
	p, err := c.req.Flush(ctx, req, id, c.q.Name)
	if err != nil {
		return nil, err
	}
	err = c.ch.PublishWithContext(ctx,
		c.exchange,
		amqp2.RequestKey,
		false,
		false,
		p,
	)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("published request", zap.String("correlation", id))
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case d, ok := <-c.replies:
			if !ok {
				return nil, ErrClosed
			}
			if d.CorrelationId != id {
				c.logger.Warn("dropping stale reply", zap.String("correlation", d.CorrelationId))
				continue
			}
			return c.res.Load(ctx, d)
		}
	}
}
