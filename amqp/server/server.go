// Package server consumes check requests from RabbitMQ and replies with
// their results.
package server

import (
	"context"
	"errors"

	amqp2 "github.com/jt05610/petrisym/amqp"
	"github.com/jt05610/petrisym/env"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var ErrClosed = errors.New("delivery channel closed")

type Server struct {
	ch       *amqp.Channel
	q        *amqp.Queue
	req      *amqp2.Service[amqp2.Request]
	res      *amqp2.Service[amqp2.Response]
	worker   *Worker
	exchange string
	logger   *zap.Logger
}

// New declares the request queue of environ and binds it to its exchange.
func New(conn *amqp2.Connection, environ *env.Environment, worker *Worker, logger *zap.Logger) (*Server, error) {
	q, err := conn.QueueDeclare(
		environ.Queue, // name
		true,          // durable
		false,         // delete when unused
		false,         // exclusive
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		return nil, err
	}
	err = conn.QueueBind(
		q.Name,           // queue name
		amqp2.RequestKey, // routing key
		environ.Exchange, // exchange
		false,
		nil)
	if err != nil {
		return nil, err
	}
	if err := conn.Qos(1, 0, false); err != nil {
		return nil, err
	}
	return &Server{
		ch:       conn.Channel,
		q:        &q,
		req:      &amqp2.Service[amqp2.Request]{},
		res:      &amqp2.Service[amqp2.Response]{},
		worker:   worker,
		exchange: environ.Exchange,
		logger:   logger.With(zap.String("queue", q.Name)),
	}, nil
}

func (s *Server) handle(ctx context.Context, d amqp.Delivery) error {
	s.logger.Debug("received request", zap.String("correlation", d.CorrelationId))
	var res *amqp2.Response
	req, err := s.req.Load(ctx, d)
	if err != nil {
		res = &amqp2.Response{Error: err.Error()}
	} else {
		res = s.worker.Handle(ctx, req)
	}
	if d.ReplyTo == "" {
		s.logger.Warn("request without reply queue", zap.String("formula", res.Formula))
		return nil
	}
	p, err := s.res.Flush(ctx, res, d.CorrelationId)
	if err != nil {
		return err
	}
	return s.ch.PublishWithContext(ctx, "", d.ReplyTo, false, false, p)
}

// Listen answers requests until ctx is done.
func (s *Server) Listen(ctx context.Context) error {
	msgs, err := s.ch.Consume(
		s.q.Name, // queue
		"",       // consumer
		false,    // auto-ack
		false,    // exclusive
		false,    // no-local
		false,    // no-wait
		nil,      // args
	)
	if err != nil {
		return err
	}
	s.logger.Info("listening")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("closing")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return ErrClosed
			}
			if err := s.handle(ctx, d); err != nil {
				s.logger.Error("failed to reply", zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}
			if err := d.Ack(false); err != nil {
				s.logger.Error("failed to ack", zap.Error(err))
			}
		}
	}
}
