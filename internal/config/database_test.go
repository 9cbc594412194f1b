package config

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGormLogger(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		wantInfo bool
	}{
		{name: "development logs statements", env: "development", wantInfo: true},
		{name: "production logs warnings only", env: "production", wantInfo: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newGormLogger(&buf, tt.env)

			l.Info(context.Background(), "migrated %s", "submissions")
			assert.Equal(t, tt.wantInfo, bytes.Contains(buf.Bytes(), []byte("migrated submissions")))

			buf.Reset()
			l.Warn(context.Background(), "slow %s", "query")
			assert.Contains(t, buf.String(), "[gorm] ")
			assert.Contains(t, buf.String(), "slow query")
		})
	}
}
