package server_test

import (
	"testing"

	"bucket-sync/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Address(t *testing.T) {
	tests := []struct {
		name string
		host string
		port string
		want string
	}{
		{"All Interfaces", "", "8080", ":8080"},
		{"Loopback", "127.0.0.1", "9000", "127.0.0.1:9000"},
		{"IPv6", "::1", "8080", "[::1]:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Host: tt.host, Port: tt.port}
			assert.Equal(t, tt.want, c.Address())
		})
	}
}

func TestConfig_IsProtected(t *testing.T) {
	assert.False(t, server.Config{}.IsProtected())
	assert.True(t, server.Config{ApiKey: "secret"}.IsProtected())
}
