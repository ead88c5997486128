package server_test

import (
	"testing"

	"bucket-manager/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsSecured(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		want   bool
	}{
		{"WithKey", "secret", true},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{ApiKey: tt.apiKey}
			assert.Equal(t, tt.want, c.IsSecured())
		})
	}
}

func TestConfig_BodyLimit(t *testing.T) {
	assert.Equal(t, 512*1024*1024, server.Config{BodyLimitMB: 512}.BodyLimit())
	assert.Equal(t, 4*1024*1024, server.Config{}.BodyLimit(), "fiber default when unset")
}
