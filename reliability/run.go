// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package reliability

import (
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/junkawahara/reliability-tdzdd/bdd"
	"github.com/junkawahara/reliability-tdzdd/frontier"
)

type options struct {
	verify    bool
	edgeOnly  bool
	logger    *slog.Logger
	nodesize  int
	cachesize int
}

// Option configures a computation.
type Option func(*options)

// WithVerify checks the edge-vertex diagram against the one obtained by
// substitution (see AlgK) and by restriction (see Restriction).
func WithVerify() Option {
	return func(o *options) { o.verify = true }
}

// WithEdgeOnly stops after the edge diagram: vertices are perfect.
func WithEdgeOnly() Option {
	return func(o *options) { o.edgeOnly = true }
}

// WithLogger sets the logger used to report the phases of the computation.
// The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithNodesize sets the initial number of nodes of the diagrams.
func WithNodesize(size int) Option {
	return func(o *options) { o.nodesize = size }
}

// WithCachesize sets the initial size of the operation caches.
func WithCachesize(size int) Option {
	return func(o *options) { o.cachesize = size }
}

func makeoptions(opts []Option) *options {
	o := &options{logger: slog.Default()}
	for _, f := range opts {
		f(o)
	}
	return o
}

func (o *options) newBDD(varnum int) (*bdd.BDD, error) {
	return bdd.New(varnum, bdd.Nodesize(o.nodesize), bdd.Cachesize(o.cachesize))
}

// Diagram is a root node together with the BDD that owns it.
type Diagram struct {
	BDD  *bdd.BDD
	Root bdd.Node
}

// Size returns the number of vertices of the diagram.
func (d Diagram) Size() int {
	if d.BDD == nil {
		return 0
	}
	return d.BDD.Size(d.Root)
}

// Phase is the duration of one step of a computation.
type Phase struct {
	Name     string
	Duration time.Duration
}

// Result gathers the diagrams and figures of a computation. The edge-vertex
// fields are zero when the computation stops after the edge diagram, and the
// verification fields are only set when Verified is true.
type Result struct {
	RunID string

	Edge            Diagram
	EdgeNodes       int
	Solutions       *big.Int
	EdgeReliability float64

	EdgeVertex        Diagram
	VertexNodes       int
	VertexReliability float64

	Verified    bool
	AlgKNodes   int
	Match       bool
	Restriction bool

	Phases []Phase
}

func (res *Result) phase(name string, start time.Time) {
	res.Phases = append(res.Phases, Phase{Name: name, Duration: time.Since(start)})
}

// Reliability returns the reliability of the most detailed diagram computed.
func (res *Result) Reliability() float64 {
	if res.EdgeVertex.BDD != nil {
		return res.VertexReliability
	}
	return res.EdgeReliability
}

// Compute builds the edge diagram of net with a frontier-based search and
// continues with Run.
func Compute(net *Network, opts ...Option) (*Result, error) {
	o := makeoptions(opts)
	m := net.Graph.EdgeCount()
	if m == 0 {
		return nil, &ConfigurationError{Op: "compute", Err: ErrEmptyGraph}
	}
	b, err := o.newBDD(m)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	root, err := frontier.Build(net.Graph, b)
	if err != nil {
		return nil, err
	}
	b.AddRef(root)
	elapsed := time.Since(start)
	res, err := Run(net, b, root, opts...)
	if err != nil {
		return nil, err
	}
	res.Phases = append([]Phase{{Name: "frontier", Duration: elapsed}}, res.Phases...)
	return res, nil
}

// Run computes the reliability of net from the diagram root of edges, where
// edge i of the graph is the variable at level m-i. The edge-vertex diagram is
// obtained by moving the edge levels with Remap, then adding the vertex levels
// with Weave, in a new BDD.
func Run(net *Network, edges *bdd.BDD, root bdd.Node, opts ...Option) (*Result, error) {
	o := makeoptions(opts)
	m := net.Graph.EdgeCount()
	if m == 0 {
		return nil, &ConfigurationError{Op: "run", Err: ErrEmptyGraph}
	}
	if l := edges.Level(root); l < 0 || l > m {
		return nil, &ConfigurationError{Op: "run", Err: fmt.Errorf("%w: diagram of height %d for %d edges", bdd.ErrLevelMap, l, m)}
	}
	res := &Result{RunID: uuid.NewString(), Edge: Diagram{BDD: edges, Root: root}}
	log := o.logger.With("run_id", res.RunID)

	start := time.Now()
	res.EdgeNodes = edges.Size(root)
	res.Solutions = edges.Satcount(root)
	if d := edges.Varnum() - m; d > 0 {
		res.Solutions.Rsh(res.Solutions, uint(d))
	}
	p, err := edges.Probability(root, EdgeLevelProb(net))
	if err != nil {
		return nil, err
	}
	res.EdgeReliability = p
	res.phase("edge", start)
	log.Info("edge diagram", "nodes", res.EdgeNodes, "solutions", res.Solutions.String(), "prob", p)
	if o.edgeOnly {
		return res, nil
	}

	start = time.Now()
	lay, err := NewLayout(net)
	if err != nil {
		return nil, &ConfigurationError{Op: "layout", Err: err}
	}
	ev, err := o.newBDD(lay.Levels)
	if err != nil {
		return nil, err
	}
	shifted, err := Remap(ev, edges, root, lay.Shift)
	if err != nil {
		return nil, err
	}
	ev.AddRef(shifted)
	res.phase("remap", start)

	start = time.Now()
	w := ev.Weave(shifted, lay.Levels, lay.Inc)
	if ev.Errored() {
		return nil, ev.Err()
	}
	ev.AddRef(w)
	ev.GC()
	res.phase("weave", start)
	res.EdgeVertex = Diagram{BDD: ev, Root: w}
	res.VertexNodes = ev.Size(w)
	res.VertexReliability, err = ev.Probability(w, lay.Prob)
	if err != nil {
		return nil, err
	}
	log.Info("edge-vertex diagram", "levels", lay.Levels, "nodes", res.VertexNodes, "prob", res.VertexReliability)

	if !o.verify {
		return res, nil
	}
	start = time.Now()
	h := AlgK(ev, shifted, net, lay)
	if ev.Errored() {
		return nil, ev.Err()
	}
	res.AlgKNodes = ev.Size(h)
	res.Match = h == w
	res.Restriction = Restriction(ev, w, lay) == shifted
	if ev.Errored() {
		return nil, ev.Err()
	}
	res.Verified = true
	res.phase("alg_k", start)
	if res.Match && res.Restriction {
		log.Info("verification", "alg_k_nodes", res.AlgKNodes, "match", true)
	} else {
		log.Warn("verification failed", "alg_k_nodes", res.AlgKNodes, "match", res.Match, "restriction", res.Restriction)
	}
	return res, nil
}
