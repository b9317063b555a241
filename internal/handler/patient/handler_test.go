package patient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omermarcel/renaltrack/internal/middleware"
	"github.com/omermarcel/renaltrack/internal/model"
	"github.com/omermarcel/renaltrack/internal/repository/record"
	patientService "github.com/omermarcel/renaltrack/internal/service/patient"
	"github.com/omermarcel/renaltrack/internal/store"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.RegisterValidations()

	s, err := store.Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	repo := record.NewPatientRepository(s, nil)
	svc := patientService.NewService(repo)

	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createBody(name string) map[string]any {
	return map[string]any{
		"name":       name,
		"birth_date": time.Date(1970, 3, 15, 0, 0, 0, 0, time.UTC),
		"status":     "stable",
		"gfr":        65.0,
	}
}

type patientEnvelope struct {
	Status string        `json:"status"`
	Data   model.Patient `json:"data"`
}

func TestCreateAndGetPatient(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/patients", createBody("Alice Martin"))
	require.Equal(t, http.StatusCreated, w.Code)

	var created patientEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "1", created.Data.ID)
	assert.Equal(t, "Alice Martin", created.Data.Name)

	w = doJSON(t, r, http.MethodGet, "/api/v1/patients/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched patientEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.Data.Name, fetched.Data.Name)
}

func TestCreatePatientValidation(t *testing.T) {
	r := setupRouter(t)

	// Missing required name.
	body := createBody("x")
	delete(body, "name")
	w := doJSON(t, r, http.MethodPost, "/api/v1/patients", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown status value.
	body = createBody("Bob")
	body["status"] = "unwell"
	w = doJSON(t, r, http.MethodPost, "/api/v1/patients", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPatientNotFound(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/patients/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdatePatient(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/patients", createBody("Carol Diaz"))
	require.Equal(t, http.StatusCreated, w.Code)

	gfr := 42.0
	w = doJSON(t, r, http.MethodPut, "/api/v1/patients/1", map[string]any{"gfr": gfr})
	require.Equal(t, http.StatusOK, w.Code)

	var updated patientEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, gfr, updated.Data.GFR)
	assert.Equal(t, []float64{65, 42}, updated.Data.GFRHistory)
}

func TestDeletePatientIdempotent(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/patients", createBody("Dan Fox"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/patients/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Deleting again still succeeds.
	w = doJSON(t, r, http.MethodDelete, "/api/v1/patients/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/patients/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPatientsFilter(t *testing.T) {
	r := setupRouter(t)

	for i, name := range []string{"Eve Stone", "Frank Stone", "Grace Hill"} {
		body := createBody(name)
		if i == 2 {
			body["status"] = "critical"
		}
		w := doJSON(t, r, http.MethodPost, "/api/v1/patients", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	var listed struct {
		Data []*model.Patient `json:"data"`
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/patients?search=stone", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed.Data, 2)

	w = doJSON(t, r, http.MethodGet, "/api/v1/patients?status=critical", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 1)
	assert.Equal(t, "Grace Hill", listed.Data[0].Name)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/patients?min_age=%d", 200), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed.Data)
}
