package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dacapperclub/pickboard/models"
	"github.com/dacapperclub/pickboard/store"
)

// newAdminRouter wires the admin mutations without the moderator gate; the
// gate has its own tests in middleware.
func newAdminRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	ac := NewAdminController(store.NewGormStore(db))

	r := gin.New()
	r.POST("/admin/hide", ac.Hide)
	r.POST("/admin/unhide", ac.Unhide)
	return r, db
}

func postAdmin(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHideCreatesMark(t *testing.T) {
	r, db := newAdminRouter(t)

	w := postAdmin(t, r, "/admin/hide", `{"id":42,"reason":"spam"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	var mark models.HiddenPick
	require.NoError(t, db.Where("pick_id = ?", 42).First(&mark).Error)
	assert.Equal(t, "spam", mark.Reason)
	assert.Equal(t, "moderator", mark.HiddenBy)
}

func TestHideAcceptsNumericString(t *testing.T) {
	r, db := newAdminRouter(t)

	w := postAdmin(t, r, "/admin/hide", `{"id":"42"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	require.NoError(t, db.Model(&models.HiddenPick{}).Where("pick_id = ?", 42).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestHideRejectsInvalidID(t *testing.T) {
	r, _ := newAdminRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"non numeric string", `{"id":"abc"}`},
		{"missing", `{"reason":"spam"}`},
		{"null", `{"id":null}`},
		{"boolean", `{"id":true}`},
		{"infinity string", `{"id":"Infinity"}`},
		{"fractional", `{"id":1.5}`},
		{"negative", `{"id":-1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postAdmin(t, r, "/admin/hide", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestHideTruncatesReason(t *testing.T) {
	r, db := newAdminRouter(t)

	long := strings.Repeat("x", 301)
	w := postAdmin(t, r, "/admin/hide", `{"id":5,"reason":"`+long+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var mark models.HiddenPick
	require.NoError(t, db.Where("pick_id = ?", 5).First(&mark).Error)
	assert.Len(t, mark.Reason, 300)
}

func TestHideTwiceKeepsLatestReason(t *testing.T) {
	r, db := newAdminRouter(t)

	require.Equal(t, http.StatusOK, postAdmin(t, r, "/admin/hide", `{"id":9,"reason":"first"}`).Code)
	require.Equal(t, http.StatusOK, postAdmin(t, r, "/admin/hide", `{"id":9,"reason":"second"}`).Code)

	var marks []models.HiddenPick
	require.NoError(t, db.Where("pick_id = ?", 9).Find(&marks).Error)
	require.Len(t, marks, 1)
	assert.Equal(t, "second", marks[0].Reason)
}

func TestUnhideWithoutMarkSucceeds(t *testing.T) {
	r, _ := newAdminRouter(t)

	w := postAdmin(t, r, "/admin/unhide", `{"id":42}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestUnhideRemovesMark(t *testing.T) {
	r, db := newAdminRouter(t)

	require.Equal(t, http.StatusOK, postAdmin(t, r, "/admin/hide", `{"id":7,"reason":"spam"}`).Code)
	require.Equal(t, http.StatusOK, postAdmin(t, r, "/admin/unhide", `{"id":7}`).Code)

	var count int64
	require.NoError(t, db.Model(&models.HiddenPick{}).Where("pick_id = ?", 7).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestUnhideRejectsInvalidID(t *testing.T) {
	r, _ := newAdminRouter(t)

	w := postAdmin(t, r, "/admin/unhide", `{"id":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCoercePickID(t *testing.T) {
	cases := []struct {
		name   string
		in     any
		want   uint
		wantOK bool
	}{
		{"json number", float64(42), 42, true},
		{"zero", float64(0), 0, true},
		{"numeric string", "42", 42, true},
		{"padded string", " 42 ", 42, true},
		{"nil", nil, 0, false},
		{"word", "abc", 0, false},
		{"bool", true, 0, false},
		{"fractional", float64(1.5), 0, false},
		{"negative", float64(-1), 0, false},
		{"inf string", "Infinity", 0, false},
		{"nan string", "NaN", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := coercePickID(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestTruncateReason(t *testing.T) {
	assert.Equal(t, "short", truncateReason("short"))
	assert.Equal(t, strings.Repeat("a", 300), truncateReason(strings.Repeat("a", 301)))
	// Multi-byte characters are counted as characters, not bytes.
	wide := strings.Repeat("日", 301)
	assert.Equal(t, strings.Repeat("日", 300), truncateReason(wide))
}
