package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinioPutOptions(t *testing.T) {
	tests := []struct {
		name      string
		size      int64
		multipart bool
	}{
		{"Empty", 0, false},
		{"AbovePartSize", 64 << 20, false},
		{"SinglePutLimit", MaxSinglePutSize, false},
		{"OverLimit", MaxSinglePutSize + 1, true},
		{"UnknownSize", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := minioPutOptions(tt.size, PutOptions{ContentType: "text/html"})
			assert.Equal(t, "text/html", opts.ContentType)
			assert.Equal(t, !tt.multipart, opts.DisableMultipart)
		})
	}
}
