package database

const (
	// DriverSQLite stores the journal in a local file.
	DriverSQLite = "sqlite"
	// DriverMySQL stores the journal in a MySQL server.
	DriverMySQL = "mysql"
)

// Config holds configuration for the database connection.
type Config struct {
	// Enabled turns the database on. When false no connection is attempted.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Driver is the database driver (sqlite, mysql).
	Driver string `mapstructure:"driver" default:"sqlite"`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name, or the file path for sqlite.
	Name string `mapstructure:"name" default:"bucket-sync.db"`
	// TimeoutSeconds bounds connection setup and queries.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
