package timewheel

// default is an 8-level, 256-wide wheel starting from a sentinel tick large
// enough that scheduledAt == 0 unambiguously means "inactive".
const (
	defaultWidth     = Width
	defaultLevels    = MaxLevels
	defaultStartTick = Tick(1) << 32
)

// Options is common options
type Options struct {
	Logger    Logger
	Width     int
	Levels    int
	StartTick Tick
}

// NewOptions creates options with defaults.
func NewOptions(opts ...Option) Options {
	var options = Options{
		Logger:    defaultLogger,
		Width:     defaultWidth,
		Levels:    defaultLevels,
		StartTick: defaultStartTick,
	}
	for _, opt := range opts {
		opt(&options)
	}

	return options
}

// Option is for setting options.
type Option func(*Options)

// WithLogger sets logger.
func WithLogger(logger Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithWidth sets the slot count per level, must be greater than 1.
// If not, it will be ignored.
func WithWidth(width int) Option {
	return func(o *Options) {
		if width > 1 {
			o.Width = width
		}
	}
}

// WithLevels sets the number of wheel levels, must be greater than 0.
// If not, it will be ignored.
func WithLevels(levels int) Option {
	return func(o *Options) {
		if levels > 0 {
			o.Levels = levels
		}
	}
}

// WithStartTick sets the wheel's initial tick. The default is a large
// sentinel so that an Event Node's zero-value scheduledAt is never
// confused with a legitimately scheduled tick.
func WithStartTick(t Tick) Option {
	return func(o *Options) {
		o.StartTick = t
	}
}
