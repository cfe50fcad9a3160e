package cluster

// DefaultGridSize is the pixel radius used both for neighbor eligibility
// and for the extended-viewport margin when none is configured.
const DefaultGridSize = 60

// Observer receives the cluster list after every relayout. The slice and
// everything reachable from it is a fresh snapshot owned by the receiver;
// the engine never touches it again.
type Observer func(views []ClusterView)

// Option configures an Engine with optional dependencies.
type Option func(*engineOptions)

type engineOptions struct {
	gridSize float64
	logger   Logger
	observer Observer
}

// WithGridSize sets the pixel radius for cluster eligibility, the
// extended-viewport margin and the burst circle. Larger values merge more
// markers per cluster.
//
// Example:
//
//	eng, err := cluster.NewEngine(proj, cluster.WithGridSize(80))
func WithGridSize(px float64) Option {
	return func(o *engineOptions) {
		o.gridSize = px
	}
}

// WithLogger sets a structured logger. The engine logs relayout activity
// at Debug and lifecycle events at Info.
//
// Example:
//
//	logger := cluster.NewSlogLogger(slog.Default())
//	eng, err := cluster.NewEngine(proj, cluster.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithObserver registers the callback invoked with a fresh snapshot after
// every relayout.
func WithObserver(observer Observer) Option {
	return func(o *engineOptions) {
		o.observer = observer
	}
}
