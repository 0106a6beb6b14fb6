package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yumeno/gachapon-api/internal/middleware"
	"github.com/yumeno/gachapon-api/pkg/database/models"
	"github.com/yumeno/gachapon-api/pkg/gacha"
	"github.com/yumeno/gachapon-api/pkg/logging"
)

type stubCatalog struct {
	profile *gacha.Profile
	items   []gacha.Item
}

func (s *stubCatalog) GachaByID(_ context.Context, id uuid.UUID) (*gacha.Profile, error) {
	if s.profile == nil || s.profile.ID != id {
		return nil, gacha.ErrGachaNotFound
	}
	return s.profile, nil
}

func (s *stubCatalog) ItemsByGachaID(_ context.Context, _ uuid.UUID) ([]gacha.Item, error) {
	return s.items, nil
}

type stubHistory struct {
	records []gacha.Record
	fail    bool
}

func (s *stubHistory) SaveDraws(_ context.Context, fn func(w gacha.RollWriter) error) error {
	writer := &stubWriter{fail: s.fail}
	if err := fn(writer); err != nil {
		return err
	}
	s.records = append(s.records, writer.staged...)
	return nil
}

type stubWriter struct {
	staged []gacha.Record
	fail   bool
}

func (w *stubWriter) Insert(rec gacha.Record) error {
	if w.fail {
		return errors.New("insert failed")
	}
	w.staged = append(w.staged, rec)
	return nil
}

func (s *stubHistory) RollsByUserID(userID uuid.UUID, limit int) ([]models.GachaRoll, error) {
	var rolls []models.GachaRoll
	for _, rec := range s.records {
		if rec.UserID == userID {
			rolls = append(rolls, models.GachaRoll{
				UserID:  rec.UserID,
				GachaID: rec.GachaID,
				ItemID:  rec.ItemID,
				Rarity:  rec.Rarity,
			})
		}
	}
	if limit > 0 && len(rolls) > limit {
		rolls = rolls[:limit]
	}
	return rolls, nil
}

func newRollTestRouter(catalog gacha.Catalog, history *stubHistory, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	executor := gacha.NewExecutor(catalog, history, gacha.NewSeededSource(1), nil)
	handler := NewRollHandler(executor, history, logging.NewZapLogger("test"))

	r := gin.New()
	withUser := func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	}
	r.POST("/api/gachas/:id/roll", withUser, handler.Roll)
	r.POST("/api/gachas/:id/preview", withUser, handler.Preview)
	r.GET("/api/me/rolls", withUser, handler.History)
	return r
}

func testGachaFixture() (*stubCatalog, uuid.UUID) {
	gachaID := uuid.New()
	return &stubCatalog{
		profile: &gacha.Profile{ID: gachaID, Title: "test", Rates: map[string]float64{"N": 100}},
		items: []gacha.Item{
			{ID: uuid.New(), Name: "coin", Rarity: "N", Weight: 1},
			{ID: uuid.New(), Name: "gem", Rarity: "R", Weight: 3},
		},
	}, gachaID
}

func TestRollEndpointSuccess(t *testing.T) {
	catalog, gachaID := testGachaFixture()
	history := &stubHistory{}
	userID := uuid.New()
	r := newRollTestRouter(catalog, history, userID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/gachas/"+gachaID.String()+"/roll", strings.NewReader(`{"times":4}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Results    []gacha.DrawResult `json:"results"`
		RollsSaved bool               `json:"rolls_saved"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.RollsSaved)
	assert.Len(t, body.Results, 4)
	assert.Len(t, history.records, 4)
}

func TestRollEndpointDefaultsToSingleDraw(t *testing.T) {
	catalog, gachaID := testGachaFixture()
	history := &stubHistory{}
	r := newRollTestRouter(catalog, history, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/gachas/"+gachaID.String()+"/roll", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, history.records, 1)
}

func TestRollEndpointUnknownGacha(t *testing.T) {
	catalog, _ := testGachaFixture()
	history := &stubHistory{}
	r := newRollTestRouter(catalog, history, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/gachas/"+uuid.NewString()+"/roll", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
	assert.Empty(t, history.records)
}

func TestRollEndpointMalformedID(t *testing.T) {
	catalog, _ := testGachaFixture()
	r := newRollTestRouter(catalog, &stubHistory{}, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/gachas/42/roll", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRollEndpointNoItems(t *testing.T) {
	catalog, gachaID := testGachaFixture()
	catalog.items = nil
	history := &stubHistory{}
	r := newRollTestRouter(catalog, history, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/gachas/"+gachaID.String()+"/roll", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no_items")
	assert.Empty(t, history.records)
}

func TestRollEndpointPersistenceFailure(t *testing.T) {
	catalog, gachaID := testGachaFixture()
	history := &stubHistory{fail: true}
	r := newRollTestRouter(catalog, history, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/gachas/"+gachaID.String()+"/roll", strings.NewReader(`{"times":10}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "server_error")
	// nothing from the aborted batch survives
	assert.Empty(t, history.records)
}

func TestPreviewEndpointPersistsNothing(t *testing.T) {
	catalog, gachaID := testGachaFixture()
	history := &stubHistory{}
	r := newRollTestRouter(catalog, history, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/gachas/"+gachaID.String()+"/preview", strings.NewReader(`{"times":5}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Results    []gacha.DrawResult `json:"results"`
		RollsSaved bool               `json:"rolls_saved"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.RollsSaved)
	assert.Len(t, body.Results, 5)
	assert.Empty(t, history.records)
}

func TestHistoryEndpoint(t *testing.T) {
	catalog, gachaID := testGachaFixture()
	history := &stubHistory{}
	userID := uuid.New()
	r := newRollTestRouter(catalog, history, userID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/gachas/"+gachaID.String()+"/roll", strings.NewReader(`{"times":3}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/me/rolls", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Rolls []models.GachaRoll `json:"rolls"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Rolls, 3)
}
