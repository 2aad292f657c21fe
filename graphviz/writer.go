// Package graphviz renders nets with Graphviz and reads back the graphs it
// renders.
package graphviz

import (
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/jt05610/petrisym"
)

type Writer struct {
	*Config
	g       *cgraph.Graph
	mapping map[petri.Node]*cgraph.Node
}

// placeLabel shows the initial marking and the capacity after the name.
func placeLabel(p *petri.Place) string {
	return fmt.Sprintf("%s %d/%d", p.Name, p.Initial, p.Capacity)
}

func (w *Writer) writePlace(i int, p *petri.Place) error {
	name := fmt.Sprintf("p%d", i)
	node, err := w.g.CreateNode(name)
	if err != nil {
		return err
	}
	node.SetShape(cgraph.CircleShape)
	node.SetLabel(placeLabel(p))
	node.Set("fontname", string(w.Font))
	w.mapping[p] = node
	return nil
}

func (w *Writer) writeTransition(i int, t *petri.Transition) error {
	name := fmt.Sprintf("t%d", i)
	node, err := w.g.CreateNode(name)
	if err != nil {
		return err
	}
	w.mapping[t] = node
	node.SetShape(cgraph.BoxShape)
	node.SetLabel(t.Name)
	node.Set("fontname", string(w.Font))
	return nil
}

func (w *Writer) writeArc(i int, a *petri.Arc) error {
	src := w.mapping[a.Src]
	dst := w.mapping[a.Dest]
	name := fmt.Sprintf("a%d", i)
	e, err := w.g.CreateEdge(name, src, dst)
	if err != nil {
		return err
	}
	if a.Weight > 1 {
		e.SetLabel(strconv.Itoa(a.Weight))
	}
	return nil
}

func (w *Writer) Flush(out io.Writer, t *petri.Net) error {
	graph := graphviz.New()
	defer func() {
		_ = graph.Close()
	}()
	g, err := graph.Graph()
	if err != nil {
		return err
	}
	defer func() {
		_ = g.Close()
	}()
	g.SetRankDir(cgraph.RankDir(w.RankDir))
	w.g = g
	w.mapping = make(map[petri.Node]*cgraph.Node)
	for i, p := range t.Places {
		if err := w.writePlace(i, p); err != nil {
			return err
		}
	}
	for i, t := range t.Transitions {
		if err := w.writeTransition(i, t); err != nil {
			return err
		}
	}
	for i, a := range t.Arcs {
		if err := w.writeArc(i, a); err != nil {
			return err
		}
	}
	return graph.Render(w.g, w.Format, out)
}

type Font string

func (f Font) Or(other Font) Font {
	return f + "," + other
}

const (
	Helvetica  Font = "Helvetica"
	Arial      Font = "Arial"
	Roboto     Font = "Roboto"
	Montserrat Font = "Montserrat"
	SansSerif  Font = "sans-serif"
	Serif      Font = "Serif"
	Times      Font = "Times"
)

type RankDir string

const (
	LeftToRight RankDir = "LR"
	RightToLeft RankDir = "RL"
	TopToBottom RankDir = "TB"
	BottomToTop RankDir = "BT"
)

type Config struct {
	Name string
	Font
	RankDir
	// Format defaults to XDOT.
	Format graphviz.Format
}

// ParseFormat maps a file extension to an output format.
func ParseFormat(s string) (graphviz.Format, error) {
	switch s {
	case "dot", "xdot", "gv":
		return graphviz.XDOT, nil
	case "svg":
		return graphviz.SVG, nil
	case "png":
		return graphviz.PNG, nil
	case "jpg", "jpeg":
		return graphviz.JPG, nil
	}
	return "", fmt.Errorf("unknown graphviz format %q", s)
}

func New(config *Config) *Writer {
	if config.Name == "" {
		config.Name = "petri"
	}
	if config.Format == "" {
		config.Format = graphviz.XDOT
	}
	return &Writer{
		Config:  config,
		mapping: make(map[petri.Node]*cgraph.Node),
	}
}
