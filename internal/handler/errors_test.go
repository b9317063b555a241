package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/omermarcel/renaltrack/pkg/errors"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, *Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondError(c, err)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, &body
}

func TestRespondErrorStatusMapping(t *testing.T) {
	w, body := respond(t, apperrors.NotFound("patient", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "error", body.Status)

	w, _ = respond(t, apperrors.Validation("invalid patient status", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = respond(t, apperrors.Persistence("put patients", errors.New("disk full")))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRespondErrorHidesUntypedDetail(t *testing.T) {
	w, body := respond(t, errors.New("dial tcp 10.0.0.5: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal error", body.Message)
	assert.NotContains(t, body.Message, "10.0.0.5")
}
