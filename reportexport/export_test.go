package reportexport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func performExport(t *testing.T, query string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/reports/export", ExportHandler())
	req := httptest.NewRequest(http.MethodGet, "/api/reports/export?"+query, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestExportHandlerRejectsBadDate(t *testing.T) {
	w := performExport(t, "estate_id=est1&start_date=15-03-2024&end_date=2024-03-31")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestExportHandlerReportsMissingEstate(t *testing.T) {
	w := performExport(t, "start_date=2024-03-01&end_date=2024-03-31")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Errors["EstateId"] != "required" {
		t.Fatalf("expected EstateId required in %v", body.Errors)
	}
}

func TestExportHandlerRejectsInvertedRange(t *testing.T) {
	w := performExport(t, "estate_id=est1&start_date=2024-03-31&end_date=2024-03-01")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
