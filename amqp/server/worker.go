package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/jt05610/petrisym/amqp"
	"github.com/jt05610/petrisym/couch"
	"github.com/jt05610/petrisym/ctl"
	"github.com/jt05610/petrisym/petrifile/v1/yaml"
	"github.com/jt05610/petrisym/symbolic"
	"go.uber.org/zap"
)

// Cache stores responses between requests. couch.Store is one.
type Cache interface {
	Load(ctx context.Context, key string, v any) (bool, error)
	Save(ctx context.Context, key string, v any) error
}

// Worker answers check requests. A nil Cache disables caching.
type Worker struct {
	Options []ctl.Option
	Cache   Cache
	Logger  *zap.Logger
}

func (w *Worker) logger() *zap.Logger {
	if w.Logger == nil {
		return zap.NewNop()
	}
	return w.Logger
}

func (w *Worker) options(req *amqp.Request) ([]ctl.Option, error) {
	opts := append([]ctl.Option{}, w.Options...)
	opts = append(opts, ctl.WithLogger(w.logger()))
	if req.Canonicity != "" {
		c, err := symbolic.ParseCanonicity(req.Canonicity)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ctl.WithCanonicity(c))
	}
	if req.Saturated != nil {
		opts = append(opts, ctl.WithSaturation(*req.Saturated))
	}
	if req.Simplify != nil {
		opts = append(opts, ctl.WithSimplify(*req.Simplify))
	}
	return opts, nil
}

func markingKey(m map[string]int) string {
	if m == nil {
		return ""
	}
	return fmt.Sprint(m)
}

// Handle evaluates req. Failures are reported in Response.Error.
func (w *Worker) Handle(ctx context.Context, req *amqp.Request) *amqp.Response {
	res, err := w.handle(ctx, req)
	if err != nil {
		w.logger().Warn("request failed", zap.String("formula", req.Formula), zap.Error(err))
		return &amqp.Response{Formula: req.Formula, Error: err.Error()}
	}
	return res
}

func (w *Worker) handle(ctx context.Context, req *amqp.Request) (*amqp.Response, error) {
	f, err := (&yaml.Service{}).Load(ctx, strings.NewReader(req.Net))
	if err != nil {
		return nil, err
	}
	net := f.Net
	formula, err := ctl.Parse(req.Formula)
	if err != nil {
		return nil, err
	}
	if req.Reduce {
		formula = ctl.Reduce(formula)
	}
	opts, err := w.options(req)
	if err != nil {
		return nil, err
	}
	ev := ctl.New(net, opts...)
	cfg := ev.Config()
	key := couch.Key(req.Net, formula.String(), cfg.Canonicity.String(),
		fmt.Sprint(cfg.Saturated, cfg.Simplify), markingKey(req.Marking))
	if w.Cache != nil {
		var cached amqp.Response
		found, err := w.Cache.Load(ctx, key, &cached)
		if err != nil {
			w.logger().Warn("cache load failed", zap.Error(err))
		} else if found {
			cached.Cached = true
			return &cached, nil
		}
	}
	res := &amqp.Response{Formula: formula.String()}
	if req.Marking != nil {
		m, err := net.NewMarking(req.Marking)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ctl.ErrMarking, err)
		}
		holds, err := ev.EvalMarking(ctx, formula, m)
		if err != nil {
			return nil, err
		}
		res.Holds = &holds
	} else {
		set, err := ev.Eval(ctx, formula)
		if err != nil {
			return nil, err
		}
		res.Result = set.String()
		res.Vectors = set.Len()
		res.Count = set.Count(net.Capacity()).String()
	}
	if w.Cache != nil {
		if err := w.Cache.Save(ctx, key, res); err != nil {
			w.logger().Warn("cache save failed", zap.Error(err))
		}
	}
	return res, nil
}
