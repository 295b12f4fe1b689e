package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"bucket-sync/core/storage"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// CredentialsFile is the file name looked up inside a bucket directory.
const CredentialsFile = "credentials.toml"

// DefaultRegion is used when the credentials file names no region.
const DefaultRegion = "auto"

// ErrCredentials is wrapped by every credentials file error.
var ErrCredentials = errors.New("config: invalid credentials")

// Credentials is the content of a bucket directory's credentials.toml.
type Credentials struct {
	KeyID       string
	SecretKey   string
	EndpointURL string
	Region      string
}

// LoadCredentials reads <dir>/credentials.toml. key_id, secret_key and
// endpoint_url are required strings; region is optional.
func LoadCredentials(fsys afero.Fs, dir string) (Credentials, error) {
	path := filepath.Join(dir, CredentialsFile)

	if _, err := fsys.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, fmt.Errorf("%w: credentials file not found: %s", ErrCredentials, path)
		}
		return Credentials{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	v := viper.New()
	v.SetFs(fsys)
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return Credentials{}, fmt.Errorf("%w: error decoding %s: %v", ErrCredentials, path, err)
	}

	var creds Credentials
	var err error
	if creds.KeyID, err = requiredString(v, "key_id"); err != nil {
		return Credentials{}, err
	}
	if creds.SecretKey, err = requiredString(v, "secret_key"); err != nil {
		return Credentials{}, err
	}
	if creds.EndpointURL, err = requiredString(v, "endpoint_url"); err != nil {
		return Credentials{}, err
	}

	creds.Region = DefaultRegion
	if v.IsSet("region") {
		if creds.Region, err = requiredString(v, "region"); err != nil {
			return Credentials{}, err
		}
	}

	return creds, nil
}

func requiredString(v *viper.Viper, key string) (string, error) {
	if !v.IsSet(key) {
		return "", fmt.Errorf("%w: missing required key in credentials file: %s", ErrCredentials, key)
	}
	s, ok := v.Get(key).(string)
	if !ok {
		return "", fmt.Errorf("%w: key %q in credentials file must be a string, got %T", ErrCredentials, key, v.Get(key))
	}
	return s, nil
}

// Apply overlays the credentials onto a storage configuration. A custom
// endpoint implies path-style addressing, and an https scheme implies TLS.
func (c Credentials) Apply(cfg *storage.Config) {
	cfg.AccessKey = c.KeyID
	cfg.SecretKey = c.SecretKey
	cfg.Region = c.Region

	if c.EndpointURL != "" {
		cfg.Endpoint = c.EndpointURL
		cfg.PathStyle = true
		cfg.UseSSL = strings.HasPrefix(strings.ToLower(c.EndpointURL), "https://")
	}
}
