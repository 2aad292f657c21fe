package yaml

import (
	"context"
	"io"

	pf "github.com/jt05610/petrisym/petrifile"
	"github.com/jt05610/petrisym/petrifile/v1"
	"gopkg.in/yaml.v3"
)

var _ pf.Service = (*Service)(nil)

type Service struct {
}

func (s *Service) Load(_ context.Context, r io.Reader) (*pf.File, error) {
	var f petrifile.Petrifile
	err := yaml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, err
	}
	net, err := f.Net()
	if err != nil {
		return nil, err
	}
	return &pf.File{Net: net, Queries: f.Queries}, nil
}

func (s *Service) Save(_ context.Context, w io.Writer, f *pf.File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(petrifile.FromFile(f)); err != nil {
		return err
	}
	return enc.Close()
}

func (s *Service) Version() pf.Version {
	return pf.V1
}
