package model

import (
	"fmt"
	"sync"

	"github.com/INFN-MRI/mrsim/sim/core"
)

// Signal is the batched forward output: Samples x Contrasts complex values
// in sample-major order.
type Signal struct {
	Data      []complex128
	Samples   int
	Contrasts int
}

// At returns the signal of one sample at one contrast.
func (s *Signal) At(sample, contrast int) complex128 {
	return s.Data[sample*s.Contrasts+contrast]
}

// Jacobian is the batched derivative output: Samples x Params x Contrasts
// complex values in sample-major order. Names holds the diff targets in
// row order.
type Jacobian struct {
	Data      []complex128
	Samples   int
	Params    int
	Contrasts int
	Names     []string
}

// At returns the derivative of one sample's signal at one contrast with
// respect to the param-th diff target.
func (j *Jacobian) At(sample, param, contrast int) complex128 {
	return j.Data[(sample*j.Params+param)*j.Contrasts+contrast]
}

// ForwardPlan is a prebuilt forward evaluation: arguments dispatched,
// properties broadcast, ready to run any number of times.
type ForwardPlan struct {
	m *Model
	b *binding
}

// Forward resolves args against the schema and returns a forward plan.
func (m *Model) Forward(args Args) (*ForwardPlan, error) {
	b, err := m.bind(args)
	if err != nil {
		return nil, err
	}

	return &ForwardPlan{m: m, b: b}, nil
}

// Samples returns the batch sample count of the plan.
func (p *ForwardPlan) Samples() int {
	return p.b.samples
}

// Evaluate runs the kernel over the batch with zero tangents.
func (p *ForwardPlan) Evaluate() (*Signal, error) {
	m, b := p.m, p.b
	rows := make([][]complex128, b.samples)

	err := forEachSample(b.samples, m.cfg, func(i int) error {
		out, err := m.kernel(m.atSample(b, i, 0), b.seq)
		if err != nil {
			return fmt.Errorf("model: kernel failed at sample %d: %w", i, err)
		}

		row := make([]complex128, len(out))
		for c, v := range out {
			row[c] = v.V
		}

		rows[i] = row

		return nil
	})
	if err != nil {
		return nil, err
	}

	contrasts := len(rows[0])
	data := make([]complex128, b.samples*contrasts)

	for i, row := range rows {
		if len(row) != contrasts {
			return nil, fmt.Errorf("%w: sample %d emitted %d, sample 0 emitted %d",
				ErrContrastMismatch, i, len(row), contrasts)
		}

		copy(data[i*contrasts:], row)
	}

	return &Signal{Data: data, Samples: b.samples, Contrasts: contrasts}, nil
}

// JacobianPlan is a prebuilt derivative evaluation with respect to the
// model's diff targets.
type JacobianPlan struct {
	m *Model
	b *binding
}

// Jacobian resolves args against the schema and returns a Jacobian plan.
// Models built without diff targets return ErrNoDiff.
func (m *Model) Jacobian(args Args) (*JacobianPlan, error) {
	if len(m.diff) == 0 {
		return nil, ErrNoDiff
	}

	b, err := m.bind(args)
	if err != nil {
		return nil, err
	}

	return &JacobianPlan{m: m, b: b}, nil
}

// Samples returns the batch sample count of the plan.
func (p *JacobianPlan) Samples() int {
	return p.b.samples
}

// Evaluate computes the batched Jacobian, through the manual kernel when one
// is installed and by forward-mode dual arithmetic otherwise.
func (p *JacobianPlan) Evaluate() (*Jacobian, error) {
	m, b := p.m, p.b
	width := len(m.diff)
	rows := make([][][]complex128, b.samples)

	eval := func(i int) ([][]complex128, error) {
		if m.manual != nil {
			out, err := m.manual(m.atSample(b, i, 0), b.seq)
			if err != nil {
				return nil, err
			}

			if len(out) != width {
				return nil, fmt.Errorf("%w: got %d rows, want %d",
					ErrDerivShape, len(out), width)
			}

			return out, nil
		}

		out, err := m.kernel(m.atSample(b, i, width), b.seq)
		if err != nil {
			return nil, err
		}

		jac := make([][]complex128, width)
		for k := range jac {
			jac[k] = make([]complex128, len(out))
			for c, v := range out {
				if k < len(v.D) {
					jac[k][c] = v.D[k]
				}
			}
		}

		return jac, nil
	}

	err := forEachSample(b.samples, m.cfg, func(i int) error {
		jac, err := eval(i)
		if err != nil {
			return fmt.Errorf("model: jacobian failed at sample %d: %w", i, err)
		}

		rows[i] = jac

		return nil
	})
	if err != nil {
		return nil, err
	}

	contrasts := len(rows[0][0])
	data := make([]complex128, b.samples*width*contrasts)

	for i, jac := range rows {
		for k, row := range jac {
			if len(row) != contrasts {
				return nil, fmt.Errorf("%w: sample %d row %d emitted %d, want %d",
					ErrContrastMismatch, i, k, len(row), contrasts)
			}

			copy(data[(i*width+k)*contrasts:], row)
		}
	}

	return &Jacobian{
		Data:      data,
		Samples:   b.samples,
		Params:    width,
		Contrasts: contrasts,
		Names:     m.Diff(),
	}, nil
}

// Run evaluates the forward signal and, when diff targets are configured,
// the Jacobian as well. The returned Jacobian is nil otherwise.
func (m *Model) Run(args Args) (*Signal, *Jacobian, error) {
	fp, err := m.Forward(args)
	if err != nil {
		return nil, nil, err
	}

	sig, err := fp.Evaluate()
	if err != nil {
		return nil, nil, err
	}

	if len(m.diff) == 0 {
		return sig, nil, nil
	}

	jp, err := m.Jacobian(args)
	if err != nil {
		return nil, nil, err
	}

	jac, err := jp.Evaluate()
	if err != nil {
		return nil, nil, err
	}

	return sig, jac, nil
}

// forEachSample runs fn for every sample index in chunks of cfg.ChunkSize,
// spreading chunks over cfg.Workers goroutines. Calls for distinct samples
// must touch disjoint state. The first error cancels remaining chunks.
func forEachSample(n int, cfg core.EvalConfig, fn func(i int) error) error {
	chunk := cfg.ChunkSize
	if chunk <= 0 || chunk > n {
		chunk = n
	}

	numChunks := (n + chunk - 1) / chunk

	workers := cfg.Workers
	if workers > numChunks {
		workers = numChunks
	}

	if workers <= 1 {
		for i := range n {
			if err := fn(i); err != nil {
				return err
			}
		}

		return nil
	}

	starts := make(chan int)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()

		return firstErr != nil
	}

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for start := range starts {
				if failed() {
					continue
				}

				end := start + chunk
				if end > n {
					end = n
				}

				for i := start; i < end; i++ {
					if err := fn(i); err != nil {
						fail(err)
						break
					}
				}
			}
		}()
	}

	for start := 0; start < n; start += chunk {
		starts <- start
	}

	close(starts)
	wg.Wait()

	return firstErr
}
