package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"eduPath/internal/application"
	"eduPath/internal/database"
)

func newAdminHandler(t *testing.T) (*AdminHandler, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	// Publishing is best effort; an unreachable address only logs.
	redisClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { redisClient.Close() })
	return NewAdminHandler(db, redisClient, nil), db
}

func seedApplication(t *testing.T, db *gorm.DB, status string) *database.Application {
	t.Helper()
	universityID, programID := seedCatalogue(t, db)
	app := database.Application{
		UserID: 1, UniversityID: universityID, ProgramID: programID,
		Status: status,
	}
	if err := db.Create(&app).Error; err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return &app
}

func patchApplication(t *testing.T, h *AdminHandler, id uint, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/v1/admin/applications/"+uintString(id), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: uintString(id)}}

	h.UpdateApplication(c)
	return w
}

func TestUpdateApplication_StatusTransition(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, db := newAdminHandler(t)
	app := seedApplication(t, db, application.StatusPending)

	w := patchApplication(t, h, app.ID, `{"status": "under_review", "admin_notes": "looks promising"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var stored database.Application
	if err := db.First(&stored, app.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != application.StatusUnderReview {
		t.Fatalf("status = %q", stored.Status)
	}
	if stored.AdminNotes == nil || *stored.AdminNotes != "looks promising" {
		t.Fatalf("admin notes not stored: %v", stored.AdminNotes)
	}
}

func TestUpdateApplication_UnknownStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, db := newAdminHandler(t)
	app := seedApplication(t, db, application.StatusPending)

	w := patchApplication(t, h, app.ID, `{"status": "withdrawn"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestUpdateApplication_TerminalStatusesAreImmutable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, db := newAdminHandler(t)

	for _, terminal := range []string{application.StatusAccepted, application.StatusRejected} {
		app := seedApplication(t, db, terminal)

		w := patchApplication(t, h, app.ID, `{"status": "under_review"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("status %s: expected 409 got %d body=%s", terminal, w.Code, w.Body.String())
		}

		var stored database.Application
		if err := db.First(&stored, app.ID).Error; err != nil {
			t.Fatalf("reload: %v", err)
		}
		if stored.Status != terminal {
			t.Fatalf("terminal status mutated to %q", stored.Status)
		}
	}
}

func TestUpdateApplication_NotesWithoutStatusOnTerminal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, db := newAdminHandler(t)
	app := seedApplication(t, db, application.StatusAccepted)

	// Notes may still be recorded after the decision; only the status is frozen.
	w := patchApplication(t, h, app.ID, `{"admin_notes": "visa letter issued"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestUpdateApplication_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newAdminHandler(t)

	w := patchApplication(t, h, 999, `{"status": "under_review"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestListApplications_StatusFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, db := newAdminHandler(t)
	seedApplication(t, db, application.StatusPending)
	seedApplication(t, db, application.StatusUnderReview)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/applications?status=pending", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.ListApplications(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Applications []database.Application `json:"applications"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Applications) != 1 || resp.Applications[0].Status != application.StatusPending {
		t.Fatalf("filter broken: %+v", resp.Applications)
	}
}

func TestCreateUniversity_DefaultsToActive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, db := newAdminHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/universities", strings.NewReader(`{"name": "New University", "country": "Canada"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.CreateUniversity(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var stored database.University
	if err := db.Where("name = ?", "New University").First(&stored).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != database.UniversityActive {
		t.Fatalf("status = %q, want active", stored.Status)
	}
}
