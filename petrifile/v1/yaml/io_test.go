package yaml_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/jt05610/petrisym"
	"github.com/jt05610/petrisym/examples"
	pf "github.com/jt05610/petrisym/petrifile"
	"github.com/jt05610/petrisym/petrifile/v1/yaml"
)

func TestService_Read(t *testing.T) {
	r := &yaml.Service{}
	in, err := os.Open("testdata/mutex.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()
	f, err := r.Load(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	n := f.Net
	if n.Name != "mutex" {
		t.Error("wrong name")
	}
	want := examples.Mutex()
	if len(n.Places) != len(want.Places) || len(n.Transitions) != len(want.Transitions) || len(n.Arcs) != len(want.Arcs) {
		t.Fatalf("expected %d places, %d transitions and %d arcs, got %d, %d and %d",
			len(want.Places), len(want.Transitions), len(want.Arcs), len(n.Places), len(n.Transitions), len(n.Arcs))
	}
	for i := range want.Transitions {
		if !n.InputMarking(i).Equal(want.InputMarking(i)) || !n.OutputMarking(i).Equal(want.OutputMarking(i)) {
			t.Errorf("transition %s differs", n.Transitions[i])
		}
	}
	if !n.Initial().Equal(want.Initial()) || !n.Capacity().Equal(want.Capacity()) {
		t.Errorf("unexpected initial marking %s or capacity %s", n.Initial(), n.Capacity())
	}
	formulas, err := f.Formulas()
	if err != nil {
		t.Fatal(err)
	}
	if len(formulas) != 3 || f.Queries[2].Name != "no deadlock" {
		t.Errorf("unexpected queries %v", f.Queries)
	}
}

func TestService_Save(t *testing.T) {
	s := &yaml.Service{}
	f := &pf.File{
		Net:     examples.ProducerConsumer(),
		Queries: []pf.Query{{Name: "full output", Formula: `EF(tokens("out") == 2)`}},
	}
	var buf bytes.Buffer
	if err := s.Save(context.Background(), &buf, f); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"petri: v1", "name: producer-consumer", "buf: 2", "capacity: 3"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in\n%s", want, buf.String())
		}
	}
	first := buf.String()
	back, err := s.Load(context.Background(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	for i := range f.Net.Transitions {
		if !back.Net.InputMarking(i).Equal(f.Net.InputMarking(i)) || !back.Net.OutputMarking(i).Equal(f.Net.OutputMarking(i)) {
			t.Errorf("transition %s differs after a round trip", f.Net.Transitions[i])
		}
	}
	var again bytes.Buffer
	if err := s.Save(context.Background(), &again, back); err != nil {
		t.Fatal(err)
	}
	if again.String() != first {
		t.Errorf("saving twice differs:\n%s\n%s", first, again.String())
	}
}

func TestService_Errors(t *testing.T) {
	s := &yaml.Service{}
	cases := []struct {
		doc string
		err error
	}{
		{"petri: v2\nname: x\n", pf.ErrVersion},
		{"name: x\nplaces: [{name: a}]\ntransitions: [{name: t, inputs: b}]\n", petri.ErrUnknownNode},
		{"name: x\nplaces: [{name: a}, {name: a}]\n", petri.ErrDuplicateNode},
	}
	for _, c := range cases {
		if _, err := s.Load(context.Background(), strings.NewReader(c.doc)); !errors.Is(err, c.err) {
			t.Errorf("%q: expected %v, got %v", c.doc, c.err, err)
		}
	}
	f, err := s.Load(context.Background(), strings.NewReader("name: x\nplaces: [{name: a}]\nqueries: [{name: q, formula: 'EF(b >= 1)'}]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Formulas(); err == nil {
		t.Error("expected an unknown place")
	}
}
