package pagination

const (
	// DefaultPageSize is used when a request carries no page size.
	DefaultPageSize = 10

	defaultMaxSize = 1000
)

// Options configures pagination behavior.
type Options struct {
	// MaxPageSize caps the requested page size. Zero means the default cap.
	MaxPageSize int
}

// Option mutates Options.
type Option func(*Options)

// WithMaxPageSize overrides the page size cap.
func WithMaxPageSize(maxSize int) Option {
	return func(o *Options) { o.MaxPageSize = maxSize }
}

func defaultOptions() Options {
	return Options{MaxPageSize: defaultMaxSize}
}
