package cfgloader

// Options controls optional MustLoad behavior.
type Options struct {
	// Silent suppresses logging of the loaded config.
	Silent bool
}

// Option configures MustLoad.
type Option func(*Options)

// WithSilent suppresses logging of the loaded config.
func WithSilent() Option {
	return func(o *Options) {
		o.Silent = true
	}
}
