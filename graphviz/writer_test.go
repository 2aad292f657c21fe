package graphviz_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jt05610/petrisym"
	"github.com/jt05610/petrisym/examples"
	"github.com/jt05610/petrisym/graphviz"
)

func TestWriter_Flush(t *testing.T) {
	net := examples.ProducerConsumer()
	w := graphviz.New(&graphviz.Config{
		Font:    graphviz.Helvetica,
		RankDir: graphviz.LeftToRight,
	})
	buf := new(bytes.Buffer)
	if err := w.Flush(buf, net); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"buf 0/3", "produce", "circle", "box"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in\n%s", want, buf.String())
		}
	}
}

// sameNet compares two nets by node name, ignoring declaration order.
func sameNet(t *testing.T, want, got *petri.Net) {
	t.Helper()
	if len(got.Places) != len(want.Places) || len(got.Transitions) != len(want.Transitions) {
		t.Fatalf("expected %d places and %d transitions, got %d and %d",
			len(want.Places), len(want.Transitions), len(got.Places), len(got.Transitions))
	}
	for _, p := range want.Places {
		q := got.Place(p.Name)
		if q == nil {
			t.Fatalf("place %s missing", p.Name)
		}
		if *q != *p {
			t.Errorf("expected %+v, got %+v", *p, *q)
		}
	}
	for _, tr := range want.Transitions {
		if got.Transition(tr.Name) == nil {
			t.Fatalf("transition %s missing", tr.Name)
		}
		for _, a := range want.Inputs(tr) {
			b := got.Arc(got.Place(a.Src.String()), got.Transition(tr.Name))
			if b == nil || b.Weight != a.Weight {
				t.Errorf("arc %s differs: %v", a, b)
			}
		}
		for _, a := range want.Outputs(tr) {
			b := got.Arc(got.Transition(tr.Name), got.Place(a.Dest.String()))
			if b == nil || b.Weight != a.Weight {
				t.Errorf("arc %s differs: %v", a, b)
			}
		}
	}
}

func TestE2E(t *testing.T) {
	for _, net := range []*petri.Net{examples.Mutex(), examples.ProducerConsumer(), examples.Interval()} {
		t.Run(net.Name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			wr := graphviz.New(&graphviz.Config{
				Font:    graphviz.Helvetica,
				RankDir: graphviz.LeftToRight,
			})
			if err := wr.Flush(buf, net); err != nil {
				t.Fatal(err)
			}
			read, err := graphviz.Loader().Load(buf)
			if err != nil {
				t.Fatal(err)
			}
			sameNet(t, net, read)
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"dot", "svg", "png", "jpg"} {
		if _, err := graphviz.ParseFormat(s); err != nil {
			t.Error(err)
		}
	}
	if _, err := graphviz.ParseFormat("pdf"); err == nil {
		t.Error("expected an unknown format")
	}
}
