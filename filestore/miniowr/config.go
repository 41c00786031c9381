package miniowr

// Config holds the MinIO connection settings.
type Config struct {
	// Endpoint is the MinIO server address, e.g. "localhost:9000".
	Endpoint string `yaml:"endpoint" validate:"required"`

	// AccessKey authenticates the client.
	AccessKey string `yaml:"access_key" validate:"required"`

	// SecretKey authenticates the client.
	SecretKey string `yaml:"secret_key" validate:"required" mask:"true"`

	// Bucket is the bucket all operations run against.
	Bucket string `yaml:"bucket" validate:"required"`

	// UseSSL enables HTTPS towards the MinIO server.
	UseSSL bool `yaml:"use_ssl" default:"false"`
}
