package logsvc

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/masomo-admin/core/user"
)

func TestStdLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStdLogger(&buf, "", false)

	logger.Debug("hidden")
	logger.Error("boom", errors.New("connection refused"), map[string]interface{}{"endpoint": "/cursos"})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "ERROR: boom")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "/cursos")
}

func TestRollbarLogger_prepare(t *testing.T) {
	logger := NewStdLogger(&bytes.Buffer{}, "", true)
	extras := map[string]interface{}{"k": "v"}

	args := logger.prepare("msg", []interface{}{user.User{ID: "1", Username: "ana"}, extras, user.User{ID: "2"}})
	assert.Equal(t, []interface{}{"msg", extras}, args)
}
