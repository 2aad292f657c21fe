// Package amqp carries check requests and their results over RabbitMQ.
package amqp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jt05610/petrisym/env"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RequestKey is the routing key requests are published with.
const RequestKey = "check.request"

var ErrContentType = errors.New("unsupported content type")

// Request asks for the markings of a net satisfying a formula, or, when
// Marking is set, whether that marking satisfies it.
type Request struct {
	// Net is a v1 petrifile.
	Net     string         `json:"net"`
	Formula string         `json:"formula"`
	Marking map[string]int `json:"marking,omitempty"`
	// Canonicity, Saturated and Simplify override the worker's defaults.
	Canonicity string `json:"canonicity,omitempty"`
	Saturated  *bool  `json:"saturated,omitempty"`
	Simplify   *bool  `json:"simplify,omitempty"`
	// Reduce rewrites the formula before it is evaluated.
	Reduce bool `json:"reduce,omitempty"`
}

type Response struct {
	// Formula is the formula that was evaluated, after any reduction.
	Formula string `json:"formula"`
	Result  string `json:"result,omitempty"`
	Vectors int    `json:"vectors,omitempty"`
	Count   string `json:"count,omitempty"`
	Holds   *bool  `json:"holds,omitempty"`
	Error   string `json:"error,omitempty"`
	Cached  bool   `json:"cached,omitempty"`
}

// Service decodes deliveries into T and encodes T into publishings.
type Service[T any] struct{}

func (a *Service[T]) Load(_ context.Context, data amqp.Delivery) (*T, error) {
	if data.ContentType != "" && data.ContentType != "application/json" {
		return nil, ErrContentType
	}
	res := new(T)
	return res, json.Unmarshal(data.Body, res)
}

func (a *Service[T]) Flush(_ context.Context, v *T, correlationID string, replyTo ...string) (amqp.Publishing, error) {
	bytes, err := json.Marshal(v)
	if err != nil {
		return amqp.Publishing{}, err
	}
	p := amqp.Publishing{
		Body:          bytes,
		ContentType:   "application/json",
		CorrelationId: correlationID,
	}
	if len(replyTo) > 0 {
		p.ReplyTo = replyTo[0]
	}
	return p, nil
}

type Connection struct {
	*amqp.Connection
	*amqp.Channel
}

func (c *Connection) Close() error {
	if c.Channel != nil {
		err := c.Channel.Close()
		if err != nil {
			return err
		}
	}
	return c.Connection.Close()
}

// Dial opens a connection and a channel to the broker of environ and
// declares its exchange.
func Dial(environ *env.Environment) (*Connection, error) {
	conn, err := amqp.Dial(environ.URI)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	err = ch.ExchangeDeclare(
		environ.Exchange, // name
		"topic",          // type
		true,             // durable
		false,            // delete when unused
		false,            // internal
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Connection{conn, ch}, nil
}
