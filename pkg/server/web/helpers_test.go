package web

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderJSON(t *testing.T) {
	w := httptest.NewRecorder()
	err := RenderJSON(w, map[string]string{"status": "ok"})
	require.NoError(t, err)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRenderJSONStatus(t *testing.T) {
	w := httptest.NewRecorder()
	err := RenderJSONStatus(w, 422, map[string]string{"field": "bad"})
	require.NoError(t, err)

	assert.Equal(t, 422, w.Code)
	assert.JSONEq(t, `{"field":"bad"}`, w.Body.String())
}
