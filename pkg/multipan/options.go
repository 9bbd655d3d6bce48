package multipan

import (
	"fmt"
	"math"
	"time"

	"github.com/jabt/multipan/pkg/dsp/pan"
	"github.com/jabt/multipan/pkg/framework/debug"
	"github.com/jabt/multipan/pkg/framework/param"
)

// DefaultMaxBlockSize is the largest render block accepted unless
// WithMaxBlockSize says otherwise.
const DefaultMaxBlockSize = 4096

// Config holds the engine settings chosen at construction.
type Config struct {
	RampTime        time.Duration
	Smoothing       param.SmoothingType
	Law             pan.Law
	MaxBlockSize    int
	DefaultGain     float64
	DefaultLocation float64
	Logger          *debug.Logger
}

// Option mutates a Config.
type Option func(*Config) error

// DefaultConfig returns unity gain at the centre of the array with a
// 20ms linear ramp and the equal-power law.
func DefaultConfig() Config {
	return Config{
		RampTime:        param.DefaultRampTime,
		Smoothing:       param.LinearSmoothing,
		Law:             pan.EqualPower,
		MaxBlockSize:    DefaultMaxBlockSize,
		DefaultGain:     1,
		DefaultLocation: 0.5,
	}
}

// WithRampTime sets how long a parameter takes to reach a new target.
func WithRampTime(d time.Duration) Option {
	return func(cfg *Config) error {
		if d < 0 {
			return fmt.Errorf("ramp time %v: %w", d, ErrInvalidOption)
		}
		cfg.RampTime = d
		return nil
	}
}

// WithSmoothing selects linear or exponential parameter ramps.
func WithSmoothing(t param.SmoothingType) Option {
	return func(cfg *Config) error {
		if t != param.LinearSmoothing && t != param.ExponentialSmoothing {
			return fmt.Errorf("smoothing type %d: %w", t, ErrInvalidOption)
		}
		cfg.Smoothing = t
		return nil
	}
}

// WithLaw selects the pan law.
func WithLaw(law pan.Law) Option {
	return func(cfg *Config) error {
		if law != pan.EqualPower && law != pan.Linear {
			return fmt.Errorf("pan law %d: %w", law, ErrInvalidOption)
		}
		cfg.Law = law
		return nil
	}
}

// WithMaxBlockSize bounds the frame count accepted by Render. Scratch
// buffers are sized from it up front.
func WithMaxBlockSize(n int) Option {
	return func(cfg *Config) error {
		if n < 1 {
			return fmt.Errorf("max block size %d: %w", n, ErrInvalidOption)
		}
		cfg.MaxBlockSize = n
		return nil
	}
}

// WithDefaults sets the gain and location the parameters start at and
// reset to. Values are clamped to [0, 1].
func WithDefaults(gain, location float64) Option {
	return func(cfg *Config) error {
		if math.IsNaN(gain) || math.IsNaN(location) {
			return fmt.Errorf("defaults gain=%v location=%v: %w", gain, location, ErrInvalidOption)
		}
		cfg.DefaultGain = gain
		cfg.DefaultLocation = location
		return nil
	}
}

// WithLogger sets the logger used by control-thread operations.
func WithLogger(l *debug.Logger) Option {
	return func(cfg *Config) error {
		cfg.Logger = l
		return nil
	}
}

func applyOptions(opts []Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}
