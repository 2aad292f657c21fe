package amqp_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jt05610/petrisym/amqp"
	amqp091 "github.com/rabbitmq/amqp091-go"
)

func TestService(t *testing.T) {
	s := &amqp.Service[amqp.Request]{}
	saturated := false
	req := &amqp.Request{
		Net:       "name: x\n",
		Formula:   `EF(tokens("a") >= 1)`,
		Marking:   map[string]int{"a": 1},
		Saturated: &saturated,
	}
	p, err := s.Flush(context.Background(), req, "42", "replies")
	if err != nil {
		t.Fatal(err)
	}
	if p.CorrelationId != "42" || p.ReplyTo != "replies" || p.ContentType != "application/json" {
		t.Errorf("unexpected publishing %+v", p)
	}
	got, err := s.Load(context.Background(), amqp091.Delivery{Body: p.Body, ContentType: p.ContentType})
	if err != nil {
		t.Fatal(err)
	}
	if got.Formula != req.Formula || got.Marking["a"] != 1 || got.Saturated == nil || *got.Saturated {
		t.Errorf("expected %+v, got %+v", req, got)
	}
	_, err = s.Load(context.Background(), amqp091.Delivery{Body: []byte("<x/>"), ContentType: "text/xml"})
	if !errors.Is(err, amqp.ErrContentType) {
		t.Errorf("expected %v, got %v", amqp.ErrContentType, err)
	}
}
