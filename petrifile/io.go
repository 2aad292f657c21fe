package petrifile

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jt05610/petrisym"
	"github.com/jt05610/petrisym/ctl"
)

type Service interface {
	Load(ctx context.Context, r io.Reader) (*File, error)
	Save(ctx context.Context, w io.Writer, f *File) error
	Version() Version
}

type Version string

const (
	V1 Version = "v1"
)

var ErrVersion = errors.New("unsupported petrifile version")

// Query is a named CTL formula checked against the net of a file.
type Query struct {
	Name    string `yaml:"name" json:"name"`
	Formula string `yaml:"formula" json:"formula"`
}

// File is a net together with the queries to check on it.
type File struct {
	Net     *petri.Net
	Queries []Query
}

// Formulas parses and validates every query of f.
func (f *File) Formulas() ([]ctl.Formula, error) {
	ret := make([]ctl.Formula, len(f.Queries))
	for i, q := range f.Queries {
		formula, err := ctl.Parse(q.Formula)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", q.Name, err)
		}
		if err := ctl.Validate(formula, f.Net); err != nil {
			return nil, fmt.Errorf("query %s: %w", q.Name, err)
		}
		ret[i] = formula
	}
	return ret, nil
}
