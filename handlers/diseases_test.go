package handlers

import (
	"net/http"
	"testing"

	"healthtrack-backend/database"
	"healthtrack-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createDisease(t *testing.T, router http.Handler, token string, body map[string]interface{}) models.Disease {
	t.Helper()
	w := do(t, router, "POST", "/api/diseases", token, body)
	require.Equal(t, 201, w.Code, w.Body.String())
	var d models.Disease
	decode(t, w, &d)
	return d
}

func createMedication(t *testing.T, router http.Handler, token string, body map[string]interface{}) models.Medication {
	t.Helper()
	w := do(t, router, "POST", "/api/diseases/medications", token, body)
	require.Equal(t, 201, w.Code, w.Body.String())
	var m models.Medication
	decode(t, w, &m)
	return m
}

func TestDiseaseLifecycle(t *testing.T) {
	setupTestDB(t)
	router := setupRouter(newTestAPI())
	token := makeToken(t, "user-1", "a@example.com")

	d := createDisease(t, router, token, map[string]interface{}{
		"name": "Hypertension", "isChronic": true, "diagnosedAt": "2021-06-01",
	})
	assert.Equal(t, "Hypertension", d.Name)
	require.NotNil(t, d.IsChronic)
	assert.True(t, *d.IsChronic)
	assert.Nil(t, d.IsActive)
	assert.Empty(t, d.Medications)

	createMedication(t, router, token, map[string]interface{}{
		"diseaseId": d.ID, "name": "Lisinopril", "dosage": "10mg", "frequency": "daily",
	})

	// --- list preloads medications ---
	w := do(t, router, "GET", "/api/diseases", token, nil)
	require.Equal(t, 200, w.Code)
	var list []models.Disease
	decode(t, w, &list)
	require.Len(t, list, 1)
	require.Len(t, list[0].Medications, 1)
	assert.Equal(t, "Lisinopril", list[0].Medications[0].Name)

	// --- partial update leaves medications alone ---
	w = do(t, router, "PUT", "/api/diseases/"+itoa(d.ID), token, map[string]interface{}{"isActive": false, "severity": "mild"})
	require.Equal(t, 200, w.Code, w.Body.String())
	var updated models.Disease
	decode(t, w, &updated)
	require.NotNil(t, updated.IsActive)
	assert.False(t, *updated.IsActive)
	assert.Equal(t, "mild", updated.Severity)
	assert.Equal(t, "Hypertension", updated.Name)

	var medCount int64
	database.DB.Model(&models.Medication{}).Count(&medCount)
	assert.Equal(t, int64(1), medCount)

	// --- get single ---
	w = do(t, router, "GET", "/api/diseases/"+itoa(d.ID), token, nil)
	assert.Equal(t, 200, w.Code)

	// --- delete cascades ---
	w = do(t, router, "DELETE", "/api/diseases/"+itoa(d.ID), token, nil)
	require.Equal(t, 200, w.Code)
	database.DB.Model(&models.Medication{}).Count(&medCount)
	assert.Equal(t, int64(0), medCount)
	assert.Equal(t, 404, do(t, router, "GET", "/api/diseases/"+itoa(d.ID), token, nil).Code)
}

func TestDiseaseValidationAndOwnership(t *testing.T) {
	setupTestDB(t)
	router := setupRouter(newTestAPI())
	owner := makeToken(t, "owner", "o@example.com")
	other := makeToken(t, "other", "x@example.com")

	assert.Equal(t, 400, do(t, router, "POST", "/api/diseases", owner, map[string]interface{}{"notes": "no name"}).Code)
	assert.Equal(t, 400, do(t, router, "POST", "/api/diseases", owner, map[string]interface{}{"name": "   "}).Code)

	d := createDisease(t, router, owner, map[string]interface{}{"name": "Asthma"})
	assert.Equal(t, 400, do(t, router, "PUT", "/api/diseases/"+itoa(d.ID), owner, map[string]interface{}{"name": ""}).Code)

	assert.Equal(t, 404, do(t, router, "GET", "/api/diseases/"+itoa(d.ID), other, nil).Code)
	assert.Equal(t, 404, do(t, router, "PUT", "/api/diseases/"+itoa(d.ID), other, map[string]interface{}{"name": "x"}).Code)
	assert.Equal(t, 404, do(t, router, "DELETE", "/api/diseases/"+itoa(d.ID), other, nil).Code)

	w := do(t, router, "GET", "/api/diseases", other, nil)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestMedications(t *testing.T) {
	setupTestDB(t)
	router := setupRouter(newTestAPI())
	owner := makeToken(t, "owner", "o@example.com")
	other := makeToken(t, "other", "x@example.com")

	d := createDisease(t, router, owner, map[string]interface{}{"name": "Diabetes"})
	m := createMedication(t, router, owner, map[string]interface{}{
		"diseaseId": d.ID, "name": "Metformin", "startDate": "2024-01-01",
	})

	// --- list requires diseaseId ---
	assert.Equal(t, 400, do(t, router, "GET", "/api/diseases/medications", owner, nil).Code)
	assert.Equal(t, 400, do(t, router, "GET", "/api/diseases/medications?diseaseId=x", owner, nil).Code)

	w := do(t, router, "GET", "/api/diseases/medications?diseaseId="+itoa(d.ID), owner, nil)
	require.Equal(t, 200, w.Code)
	var meds []models.Medication
	decode(t, w, &meds)
	require.Len(t, meds, 1)
	assert.Equal(t, m.ID, meds[0].ID)

	// --- other users see nothing and cannot attach or modify ---
	assert.Equal(t, 404, do(t, router, "GET", "/api/diseases/medications?diseaseId="+itoa(d.ID), other, nil).Code)
	assert.Equal(t, 404, do(t, router, "POST", "/api/diseases/medications", other, map[string]interface{}{"diseaseId": d.ID, "name": "x"}).Code)
	assert.Equal(t, 404, do(t, router, "PUT", "/api/diseases/medications/"+itoa(m.ID), other, map[string]interface{}{"dosage": "1g"}).Code)
	assert.Equal(t, 404, do(t, router, "DELETE", "/api/diseases/medications/"+itoa(m.ID), other, nil).Code)

	// --- validation ---
	assert.Equal(t, 400, do(t, router, "POST", "/api/diseases/medications", owner, map[string]interface{}{"name": "orphan"}).Code)
	assert.Equal(t, 400, do(t, router, "POST", "/api/diseases/medications", owner, map[string]interface{}{"diseaseId": d.ID}).Code)
	assert.Equal(t, 400, do(t, router, "PUT", "/api/diseases/medications/"+itoa(m.ID), owner, map[string]interface{}{"endDate": "2023-12-31"}).Code)

	// --- update and delete ---
	w = do(t, router, "PUT", "/api/diseases/medications/"+itoa(m.ID), owner, map[string]interface{}{"dosage": "500mg", "endDate": "2024-06-30"})
	require.Equal(t, 200, w.Code, w.Body.String())
	var updated models.Medication
	decode(t, w, &updated)
	assert.Equal(t, "500mg", updated.Dosage)
	assert.Equal(t, "Metformin", updated.Name)
	require.NotNil(t, updated.EndDate)

	assert.Equal(t, 200, do(t, router, "DELETE", "/api/diseases/medications/"+itoa(m.ID), owner, nil).Code)
	assert.Equal(t, 404, do(t, router, "DELETE", "/api/diseases/medications/"+itoa(m.ID), owner, nil).Code)
}
