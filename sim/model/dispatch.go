package model

import (
	"fmt"

	"github.com/INFN-MRI/mrsim/sim/dual"
)

// binding is the result of resolving user arguments against the schema:
// defaults filled, groups split, properties broadcast to a common sample
// count, ready for plan execution.
type binding struct {
	samples int
	props   []Value
	seq     Seq
}

// bind merges args with the declared defaults, rejects unknown or missing
// parameters, splits the set into broadcastable and shared groups and
// determines the batch sample count.
func (m *Model) bind(args Args) (*binding, error) {
	for name := range args {
		_, isProp := m.propIdx[name]
		_, isSeq := m.seqIdx[name]

		if !isProp && !isSeq {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParam, name)
		}
	}

	props, err := m.resolve(m.props, args)
	if err != nil {
		return nil, err
	}

	seqVals, err := m.resolve(m.seq, args)
	if err != nil {
		return nil, err
	}

	samples := 1

	for i, v := range props {
		if v.IsScalar() {
			continue
		}

		n := v.Len()
		if n == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyValue, m.props[i].Name)
		}

		if samples == 1 {
			samples = n
			continue
		}

		if n != 1 && n != samples {
			return nil, fmt.Errorf("%w: %q has %d samples, batch has %d",
				ErrLengthMismatch, m.props[i].Name, n, samples)
		}
	}

	for i, v := range seqVals {
		if !v.IsScalar() && v.Len() == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyValue, m.seq[i].Name)
		}
	}

	return &binding{
		samples: samples,
		props:   props,
		seq:     Seq{vals: seqVals, index: m.seqIdx},
	}, nil
}

// resolve looks up each declared parameter in args, falling back to its
// default.
func (m *Model) resolve(params []Param, args Args) ([]Value, error) {
	out := make([]Value, len(params))

	for i, p := range params {
		if v, ok := args[p.Name]; ok {
			out[i] = v
			continue
		}

		if !p.HasDefault {
			return nil, fmt.Errorf("%w: %q", ErrMissingParam, p.Name)
		}

		out[i] = Scalar(p.Default)
	}

	return out, nil
}

// atSample materializes the properties of one sample as dual numbers of the
// given tangent width. Vector properties of length 1 broadcast like scalars.
func (m *Model) atSample(b *binding, sample, width int) Props {
	vals := make([]dual.Number, len(b.props))

	for j, v := range b.props {
		idx := sample
		if v.IsScalar() || v.Len() == 1 {
			idx = 0
		}

		vals[j] = dual.ConstReal(v.At(idx), width)
	}

	if width > 0 {
		for seat, pos := range m.seats {
			vals[pos].D[seat] = 1
		}
	}

	return Props{vals: vals, index: m.propIdx, width: width}
}
