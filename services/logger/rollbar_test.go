package logsvc

import (
	"bytes"
	"log"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/studentlogs/core"
)

func TestRollbarLogger_print(t *testing.T) {
	var buf bytes.Buffer
	logger := NewRollbarLogger(log.New(&buf, "API : ", 0), &core.Config{Env: "TEST"})
	logger.Enable(true) // no token: stays disabled

	req := httptest.NewRequest("POST", "/api/v1/logs", nil)
	logger.Error("Error creating log", errors.New("disk full"), req)

	out := buf.String()
	assert.Contains(t, out, "API : Error creating log\n")
	assert.Contains(t, out, "disk full")
	assert.Contains(t, out, "POST /api/v1/logs")
}
