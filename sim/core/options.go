package core

// EvalConfig defines common batch-evaluation settings.
type EvalConfig struct {
	ChunkSize int
	Workers   int
}

// EvalOption mutates an EvalConfig.
type EvalOption func(*EvalConfig)

// DefaultEvalConfig returns sensible defaults for offline simulation.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		ChunkSize: 1024,
		Workers:   1,
	}
}

// WithChunkSize sets the number of samples evaluated per chunk.
func WithChunkSize(chunkSize int) EvalOption {
	return func(cfg *EvalConfig) {
		if chunkSize > 0 {
			cfg.ChunkSize = chunkSize
		}
	}
}

// WithWorkers sets the number of goroutines used to evaluate chunks.
func WithWorkers(workers int) EvalOption {
	return func(cfg *EvalConfig) {
		if workers > 0 {
			cfg.Workers = workers
		}
	}
}

// ApplyEvalOptions applies zero or more options to the default config.
func ApplyEvalOptions(opts ...EvalOption) EvalConfig {
	cfg := DefaultEvalConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
