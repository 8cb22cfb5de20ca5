// Package model implements the parameter-dispatch and dual-mode execution
// core shared by MRI signal-simulation models.
//
// A concrete model supplies a pure per-sample kernel and declares its
// parameters in two groups:
//
//   - broadcastable properties (tissue parameters such as T1, T2, M0):
//     scalar or one value per sample, vectorized over the batch
//   - sequence parameters (flip-angle trains, TE, TR): shared by all samples
//
// The model splits user arguments into the two groups, fills defaults,
// broadcasts properties to a common sample count and builds evaluation
// plans: a forward plan producing the batched signal, and a Jacobian plan
// producing derivatives with respect to the configured diff targets, either
// by forward-mode dual arithmetic or through a hand-derived Jacobian kernel.
//
// # Usage
//
//	m, _ := model.New(bssfpKernel,
//	    model.WithProperties(model.Required("T1"), model.Required("T2")),
//	    model.WithSequence(model.Required("alpha"), model.Optional("TE", 0)),
//	    model.WithDiff("T1", "T2"),
//	)
//	sig, jac, _ := m.Run(model.Args{
//	    "alpha": model.Sweep(5, 60, 100),
//	    "TE":    model.Scalar(2),
//	    "T1":    model.Vector([]float64{200, 500, 1000}),
//	    "T2":    model.Scalar(100),
//	})
package model

import (
	"fmt"

	"github.com/INFN-MRI/mrsim/sim/core"
)

// Param declares a model parameter.
type Param struct {
	Name       string
	Default    float64
	HasDefault bool
}

// Required declares a parameter the caller must supply.
func Required(name string) Param {
	return Param{Name: name}
}

// Optional declares a parameter with a scalar default.
func Optional(name string, def float64) Param {
	return Param{Name: name, Default: def, HasDefault: true}
}

// Model binds a kernel to its parameter schema and evaluation settings.
type Model struct {
	kernel Kernel
	manual JacobianKernel

	props []Param
	seq   []Param
	diff  []string

	propIdx map[string]int
	seqIdx  map[string]int
	seats   []int // property position per diff target, in diff order

	cfg core.EvalConfig
}

// Option configures a Model.
type Option func(*Model)

// WithProperties declares the broadcastable properties, in kernel order.
func WithProperties(params ...Param) Option {
	return func(m *Model) {
		m.props = append(m.props, params...)
	}
}

// WithSequence declares the shared sequence parameters.
func WithSequence(params ...Param) Option {
	return func(m *Model) {
		m.seq = append(m.seq, params...)
	}
}

// WithDiff selects the properties to differentiate with respect to.
// Jacobian rows follow the order given here.
func WithDiff(names ...string) Option {
	return func(m *Model) {
		m.diff = append(m.diff, names...)
	}
}

// WithJacobianKernel installs a hand-derived Jacobian engine, replacing the
// forward-mode path.
func WithJacobianKernel(jk JacobianKernel) Option {
	return func(m *Model) {
		m.manual = jk
	}
}

// WithChunkSize sets the number of samples evaluated per chunk.
func WithChunkSize(n int) Option {
	return func(m *Model) {
		core.WithChunkSize(n)(&m.cfg)
	}
}

// WithWorkers sets the number of goroutines used to evaluate chunks.
func WithWorkers(n int) Option {
	return func(m *Model) {
		core.WithWorkers(n)(&m.cfg)
	}
}

// New builds a Model from a kernel and its declarations.
func New(kernel Kernel, opts ...Option) (*Model, error) {
	if kernel == nil {
		return nil, ErrNilKernel
	}

	m := &Model{
		kernel: kernel,
		cfg:    core.DefaultEvalConfig(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	m.propIdx = make(map[string]int, len(m.props))
	m.seqIdx = make(map[string]int, len(m.seq))

	for i, p := range m.props {
		if _, dup := m.propIdx[p.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateParam, p.Name)
		}

		m.propIdx[p.Name] = i
	}

	for i, p := range m.seq {
		if _, dup := m.propIdx[p.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateParam, p.Name)
		}

		if _, dup := m.seqIdx[p.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateParam, p.Name)
		}

		m.seqIdx[p.Name] = i
	}

	m.seats = make([]int, len(m.diff))
	for i, name := range m.diff {
		pos, ok := m.propIdx[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDiff, name)
		}

		m.seats[i] = pos
	}

	return m, nil
}

// Diff returns the configured diff targets in Jacobian row order.
func (m *Model) Diff() []string {
	out := make([]string, len(m.diff))
	copy(out, m.diff)

	return out
}

// Properties returns the declared broadcastable property names in order.
func (m *Model) Properties() []string {
	out := make([]string, len(m.props))
	for i, p := range m.props {
		out[i] = p.Name
	}

	return out
}
