package sentinelwr

import "time"

// Config holds the connection settings for the Sentinel alerting service.
type Config struct {
	// Disable turns the provider into a no-op. Useful for local runs.
	Disable bool `yaml:"disable" default:"false"`

	// Host is the hostname or IP address of the Sentinel service.
	Host string `yaml:"host" validate:"required"`

	// Port is the port number of the Sentinel service.
	Port int `yaml:"port" validate:"required"`

	// SendTimeout bounds a single alert delivery.
	SendTimeout time.Duration `yaml:"send_timeout" default:"3s"`
}
