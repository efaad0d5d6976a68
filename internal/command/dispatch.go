package command

import (
	"fmt"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/registry"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/logger"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/metrics"
)

// Overrides is the slice of the override resolver the dispatcher needs.
type Overrides interface {
	Set(key, rawText, sourceLabel string) (models.OverrideRecord, error)
	Clear(key string) error
}

// ChartSwitcher points the active chart at an entity.
type ChartSwitcher interface {
	SwitchTo(entity models.Entity)
}

// Result is the outcome of one dispatched command.
type Result struct {
	Kind     Kind                     `json:"kind"`
	Entity   *models.EntityDescriptor `json:"entity,omitempty"`
	Other    *models.EntityDescriptor `json:"other,omitempty"`
	Override *models.OverrideRecord   `json:"override,omitempty"`
	Notice   string                   `json:"notice,omitempty"`
}

// Dispatcher routes parsed commands to their collaborators.
type Dispatcher struct {
	registry  *registry.Registry
	overrides Overrides
	charts    ChartSwitcher
	logger    *logger.Logger
	metrics   *metrics.Recorder
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithCharts wires the chart switch target.
func WithCharts(c ChartSwitcher) DispatcherOption {
	return func(d *Dispatcher) { d.charts = c }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = l }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *metrics.Recorder) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = m }
}

// NewDispatcher creates a dispatcher over the registry and override resolver.
func NewDispatcher(reg *registry.Registry, overrides Overrides, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry:  reg,
		overrides: overrides,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch executes one parsed command. Lookup, explain and compare resolve
// entities; set and clear mutate overrides; graph switches the chart when the
// entity is chartable and returns a notice when it is not.
func (d *Dispatcher) Dispatch(cmd Command) (Result, error) {
	if d.metrics != nil {
		d.metrics.RecordCommand(string(cmd.Kind))
	}

	switch cmd.Kind {
	case KindNoop:
		return Result{Kind: KindNoop}, nil

	case KindLookup, KindExplain:
		desc, err := d.registry.Describe(cmd.Key)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: cmd.Kind, Entity: &desc}, nil

	case KindCompare:
		left, err := d.registry.Describe(cmd.Key)
		if err != nil {
			return Result{}, err
		}
		right, err := d.registry.Describe(cmd.OtherKey)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindCompare, Entity: &left, Other: &right}, nil

	case KindSet:
		if _, err := d.registry.Describe(cmd.Key); err != nil {
			return Result{}, err
		}
		rec, err := d.overrides.Set(cmd.Key, cmd.Value, "manual")
		if err != nil {
			return Result{}, err
		}
		d.logger.Info("command override set", logger.String("key", cmd.Key))
		return Result{Kind: KindSet, Override: &rec}, nil

	case KindClear:
		if _, err := d.registry.Describe(cmd.Key); err != nil {
			return Result{}, err
		}
		if err := d.overrides.Clear(cmd.Key); err != nil {
			return Result{}, err
		}
		return Result{Kind: KindClear}, nil

	case KindGraph:
		desc, err := d.registry.Describe(cmd.Key)
		if err != nil {
			return Result{}, err
		}
		if !desc.Chartable {
			return Result{
				Kind:   KindGraph,
				Entity: &desc,
				Notice: fmt.Sprintf("@%s is not chartable", desc.Key),
			}, nil
		}
		if d.charts != nil {
			d.charts.SwitchTo(desc.Entity)
		}
		return Result{Kind: KindGraph, Entity: &desc}, nil
	}

	return Result{}, fmt.Errorf("unhandled command kind %q", cmd.Kind)
}
