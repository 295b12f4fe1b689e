package config

import (
	"testing"

	"bucket-sync/core/storage"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCredentials(t *testing.T, content string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/buckets/site/credentials.toml", []byte(content), 0o600))
	return fs
}

func TestLoadCredentials(t *testing.T) {
	fs := writeCredentials(t, `
key_id = "AKIA123"
secret_key = "s3cr3t"
endpoint_url = "https://acct.r2.cloudflarestorage.com"
region = "weur"
`)

	creds, err := LoadCredentials(fs, "/buckets/site")
	require.NoError(t, err)
	assert.Equal(t, Credentials{
		KeyID:       "AKIA123",
		SecretKey:   "s3cr3t",
		EndpointURL: "https://acct.r2.cloudflarestorage.com",
		Region:      "weur",
	}, creds)
}

func TestLoadCredentials_DefaultRegion(t *testing.T) {
	fs := writeCredentials(t, `
key_id = "k"
secret_key = "s"
endpoint_url = "http://localhost:9000"
`)

	creds, err := LoadCredentials(fs, "/buckets/site")
	require.NoError(t, err)
	assert.Equal(t, DefaultRegion, creds.Region)
}

func TestLoadCredentials_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"Missing Key", `secret_key = "s"` + "\n" + `endpoint_url = "e"`, "key_id"},
		{"Missing Endpoint", `key_id = "k"` + "\n" + `secret_key = "s"`, "endpoint_url"},
		{"Wrong Type", `key_id = 42` + "\n" + `secret_key = "s"` + "\n" + `endpoint_url = "e"`, "must be a string"},
		{"Wrong Region Type", `key_id = "k"` + "\n" + `secret_key = "s"` + "\n" + `endpoint_url = "e"` + "\n" + `region = true`, "region"},
		{"Malformed", `key_id = "unterminated`, "error decoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCredentials(writeCredentials(t, tt.content), "/buckets/site")
			assert.ErrorIs(t, err, ErrCredentials)
			assert.ErrorContains(t, err, tt.want)
		})
	}

	t.Run("Missing File", func(t *testing.T) {
		_, err := LoadCredentials(afero.NewMemMapFs(), "/buckets/none")
		assert.ErrorIs(t, err, ErrCredentials)
		assert.ErrorContains(t, err, "not found")
	})
}

func TestCredentials_Apply(t *testing.T) {
	cfg := storage.Config{Driver: storage.DriverS3, Endpoint: "localhost:9000"}

	Credentials{
		KeyID:       "k",
		SecretKey:   "s",
		EndpointURL: "https://s3.us-west-002.backblazeb2.com",
		Region:      "us-west-002",
	}.Apply(&cfg)

	assert.Equal(t, storage.DriverS3, cfg.Driver)
	assert.Equal(t, "k", cfg.AccessKey)
	assert.Equal(t, "s", cfg.SecretKey)
	assert.Equal(t, "https://s3.us-west-002.backblazeb2.com", cfg.Endpoint)
	assert.Equal(t, "us-west-002", cfg.Region)
	assert.True(t, cfg.UseSSL)
	assert.True(t, cfg.PathStyle)

	Credentials{KeyID: "k", SecretKey: "s", EndpointURL: "http://localhost:9000", Region: "auto"}.Apply(&cfg)
	assert.False(t, cfg.UseSSL)
}
