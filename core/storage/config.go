package storage

const (
	// DriverMinio selects the minio-go backend.
	DriverMinio = "minio"
	// DriverS3 selects the aws-sdk-go-v2 backend.
	DriverS3 = "s3"
)

// Config holds configuration for the storage provider.
type Config struct {
	// Driver selects the client implementation (minio, s3).
	Driver string `mapstructure:"driver" default:"minio"`
	// Endpoint is the URL of the storage service. A scheme is optional.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	// When empty the provider's environment credentials are used.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:""`
	// SessionToken is an optional token for temporary credentials.
	SessionToken string `mapstructure:"session_token" default:""`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// PathStyle forces path-style addressing instead of virtual-host buckets.
	PathStyle bool `mapstructure:"path_style" default:"true"`
	// Bucket is the name of the bucket to synchronize with.
	Bucket string `mapstructure:"bucket" default:""`
	// Region is the location of the bucket (e.g., us-east-1, auto).
	Region string `mapstructure:"region" default:"auto"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// IsValidDriver checks if the configured driver is supported.
func (c Config) IsValidDriver() bool {
	switch c.Driver {
	case DriverMinio, DriverS3:
		return true
	default:
		return false
	}
}
