package cluster

import (
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// MarkerView is one marker inside a ClusterView snapshot: the resolved
// final position plus the original key and metadata.
type MarkerView struct {
	Key      string         `json:"key"`
	Position orb.Point      `json:"position"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// ClusterView is an immutable snapshot of one cluster, delivered to the
// observer after every relayout.
type ClusterView struct {
	Name     string       `json:"name"`
	Centroid orb.Point    `json:"centroid"`
	Real     bool         `json:"real"`
	Members  []MarkerView `json:"members"`
	Lines    []Segment    `json:"lines,omitempty"`
}

// Engine owns the full marker set and the current cluster partition. Every
// relayout discards the old clusters and rebuilds them with a greedy
// nearest-fit scan over all markers inside the extended viewport.
//
// All methods serialize on an internal mutex, so a relayout triggered
// after a marker change always sees the latest marker set and only one
// relayout runs at a time. The observer is invoked outside the lock with a
// snapshot, so it may call back into the engine.
type Engine struct {
	mu sync.Mutex

	id       string
	proj     Projector
	gridSize float64
	logger   Logger
	observer Observer

	markers []Marker
	byKey   map[string]int

	clusters  []*Cluster
	lastViews []ClusterView

	unbind func()
	seq    int
	closed bool
}

// NewEngine creates an engine over the given projector. The projector is
// the only required collaborator.
func NewEngine(proj Projector, opts ...Option) (*Engine, error) {
	if proj == nil {
		return nil, ErrProjectorRequired
	}

	o := engineOptions{
		gridSize: DefaultGridSize,
		logger:   nopLogger{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.gridSize <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGridSize, o.gridSize)
	}

	return &Engine{
		id:       uuid.NewString(),
		proj:     proj,
		gridSize: o.gridSize,
		logger:   o.logger,
		observer: o.observer,
		byKey:    make(map[string]int),
	}, nil
}

// ID returns the engine instance identifier, used only in logs.
func (e *Engine) ID() string { return e.id }

// GridSize returns the configured pixel radius.
func (e *Engine) GridSize() float64 { return e.gridSize }

// Bind subscribes the engine to a viewport watcher so that every pan-end
// or zoom-end notification triggers a relayout. A previous binding is
// released first.
func (e *Engine) Bind(w ViewportWatcher) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrEngineClosed
	}
	if e.unbind != nil {
		e.unbind()
	}
	e.unbind = w.Subscribe(e.Relayout)
	e.mu.Unlock()

	e.logger.Debug("engine bound to viewport watcher", "engine", e.id)
	return nil
}

// AddMarkers appends the given records to the marker set, silently
// discarding any whose key is already tracked, then relayouts. It returns
// the number of markers actually added.
func (e *Engine) AddMarkers(inputs []MarkerInput) int {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		e.logger.Error("add markers on closed engine", "engine", e.id)
		return 0
	}

	added := 0
	for _, in := range inputs {
		if _, dup := e.byKey[in.Key]; dup {
			continue
		}
		e.byKey[in.Key] = len(e.markers)
		e.markers = append(e.markers, newMarker(in))
		added++
	}
	e.logger.Debug("markers added",
		"engine", e.id, "added", added, "total", len(e.markers))

	views := e.relayoutLocked()
	e.mu.Unlock()

	e.emit(views)
	return added
}

// SetMarkers replaces the marker set wholesale, then relayouts. Records
// with duplicate keys collapse to the first occurrence.
func (e *Engine) SetMarkers(inputs []MarkerInput) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		e.logger.Error("set markers on closed engine", "engine", e.id)
		return
	}

	e.markers = e.markers[:0]
	e.byKey = make(map[string]int, len(inputs))
	for _, in := range inputs {
		if _, dup := e.byKey[in.Key]; dup {
			continue
		}
		e.byKey[in.Key] = len(e.markers)
		e.markers = append(e.markers, newMarker(in))
	}
	e.logger.Debug("marker set replaced", "engine", e.id, "total", len(e.markers))

	views := e.relayoutLocked()
	e.mu.Unlock()

	e.emit(views)
}

// MarkerCount returns the number of tracked markers, including markers
// currently outside the extended viewport.
func (e *Engine) MarkerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.markers)
}

// Relayout rebuilds the cluster partition against the projector's current
// viewport and emits the result to the observer.
func (e *Engine) Relayout() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		e.logger.Error("relayout on closed engine", "engine", e.id)
		return
	}
	views := e.relayoutLocked()
	e.mu.Unlock()

	e.emit(views)
}

// Clusters returns the snapshot produced by the most recent relayout.
func (e *Engine) Clusters() []ClusterView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastViews
}

// Close detaches from the viewport watcher and drops all owned state.
// Further use of the engine is a programming error: operations log and
// no-op, and Close itself returns ErrEngineClosed.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	e.closed = true
	if e.unbind != nil {
		e.unbind()
		e.unbind = nil
	}
	e.markers = nil
	e.byKey = nil
	e.clusters = nil
	e.lastViews = nil
	e.observer = nil

	e.logger.Info("engine closed", "engine", e.id)
	return nil
}

// relayoutLocked runs the core pass and returns the fresh snapshot.
// Callers must hold mu.
//
// Markers are scanned in stable insertion order. Each in-view marker joins
// the geographically nearest existing cluster whose grid region contains
// its home position, or starts a new cluster. Membership is therefore
// order-dependent (greedy nearest fit), while final displaced positions
// depend only on final membership because every push re-lays-out the whole
// cluster.
func (e *Engine) relayoutLocked() []ClusterView {
	for i := range e.markers {
		e.markers[i].displaced = nil
	}
	e.clusters = e.clusters[:0]

	ext := ExtendBounds(e.proj, e.proj.Bounds(), e.gridSize)

	skipped := 0
	for i := range e.markers {
		m := &e.markers[i]
		if !ext.Contains(m.home) {
			skipped++
			continue
		}

		var best *Cluster
		bestDist := math.Inf(1)
		for _, c := range e.clusters {
			if !c.ContainsHome(m) {
				continue
			}
			if d := e.proj.Distance(c.Centroid(), m.home); d < bestDist {
				bestDist = d
				best = c
			}
		}
		if best == nil {
			e.seq++
			best = newCluster(fmt.Sprintf("cluster-%d", e.seq),
				e.markers, e.proj, e.gridSize)
			e.clusters = append(e.clusters, best)
		}
		best.Push(i)
	}

	e.lastViews = e.snapshotLocked()
	e.logger.Debug("relayout complete",
		"engine", e.id,
		"markers", len(e.markers),
		"clusters", len(e.clusters),
		"out_of_view", skipped)
	return e.lastViews
}

// snapshotLocked builds an immutable view of the current partition.
// Callers must hold mu.
func (e *Engine) snapshotLocked() []ClusterView {
	views := make([]ClusterView, 0, len(e.clusters))
	for _, c := range e.clusters {
		v := ClusterView{
			Name:     c.name,
			Centroid: c.centroid,
			Real:     c.IsReal(),
			Members:  make([]MarkerView, 0, len(c.members)),
		}
		for _, id := range c.members {
			m := &e.markers[id]
			v.Members = append(v.Members, MarkerView{
				Key:      m.key,
				Position: m.FinalPosition(),
				Meta:     m.meta,
			})
		}
		if len(c.lines) > 0 {
			v.Lines = append([]Segment(nil), c.lines...)
		}
		views = append(views, v)
	}
	return views
}

func (e *Engine) emit(views []ClusterView) {
	e.mu.Lock()
	observer := e.observer
	e.mu.Unlock()

	if observer != nil {
		observer(views)
	}
}
