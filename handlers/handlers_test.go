package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricewatch/models"
)

type fakeRunner struct {
	report *models.RunReport
}

func (r *fakeRunner) Run() *models.RunReport {
	return r.report
}

func TestRefreshReportsCleanRun(t *testing.T) {
	h := NewHandlers(nil, nil, &fakeRunner{report: &models.RunReport{Pairs: 3}})

	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string           `json:"status"`
		Report models.RunReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 3, resp.Report.Pairs)
}

func TestRefreshReportsPartialRun(t *testing.T) {
	h := NewHandlers(nil, nil, &fakeRunner{report: &models.RunReport{Pairs: 3, Errors: 1}})

	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string           `json:"status"`
		Report models.RunReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "partial", resp.Status)
	assert.Equal(t, 1, resp.Report.Errors)
}

func TestAddWatchItemRejectsInvalidBody(t *testing.T) {
	h := NewHandlers(nil, nil, &fakeRunner{})

	req := httptest.NewRequest(http.MethodPost, "/api/watch", nil)
	rec := httptest.NewRecorder()
	h.AddWatchItem(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
