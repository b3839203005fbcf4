package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"LiveScore/internal/config"
	"LiveScore/internal/model"
	"LiveScore/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScores struct {
	listErr    error
	detailErr  error
	gotTZ      string
	gotMatchID uint32
}

func (f *fakeScores) GetMatchList(_ context.Context, timezone string) (*model.MatchListResult, error) {
	f.gotTZ = timezone
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &model.MatchListResult{
		Mode:        model.ModeLive,
		Timezone:    "Asia/Kolkata",
		GeneratedAt: time.Date(2026, 1, 10, 11, 30, 0, 0, time.UTC),
		Items:       []model.Match{{MatchID: 42, Source: model.SourceCriczop, URL: "https://www.criczop.com/scorecard/a", Status: model.StatusLive, StartDate: model.MustDate(2026, 1, 10)}},
		Live:        []model.Match{},
		Upcoming:    []model.Match{},
		Results:     []model.Match{},
		Recent:      []model.Match{},
	}, nil
}

func (f *fakeScores) GetMatchDetail(_ context.Context, matchID uint32, timezone string) (*model.MatchDetailResult, error) {
	f.gotTZ = timezone
	f.gotMatchID = matchID
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return &model.MatchDetailResult{
		Match:          model.Match{MatchID: matchID, Source: model.SourceResolved, URL: "https://x/1", Status: model.StatusUnknown},
		Timezone:       "UTC",
		RawTextExcerpt: "IND 245/6",
	}, nil
}

func newTestRouter(scores ScoresProvider) *gin.Engine {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewRouter(config.ServerConfig{Mode: gin.TestMode}, NewLiveScoreHandler(scores, logger), logger)
}

func doGet(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := doGet(newTestRouter(&fakeScores{}), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestListMatches(t *testing.T) {
	scores := &fakeScores{}
	w := doGet(newTestRouter(scores), "/live-score?timezone=Asia/Kolkata")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Asia/Kolkata", scores.gotTZ)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "live", body["mode"])
	items := body["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, float64(42), item["match_id"])
	assert.Equal(t, "2026-01-10", item["start_date"])
	assert.Nil(t, item["end_date"])
	assert.Equal(t, "LIVE", item["status"])
}

func TestListMatches_InvalidTimezone(t *testing.T) {
	scores := &fakeScores{listErr: fmt.Errorf("%w %q", service.ErrInvalidTimezone, "Nowhere/City")}
	w := doGet(newTestRouter(scores), "/live-score?timezone=Nowhere/City")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid timezone")
}

func TestListMatches_InternalError(t *testing.T) {
	scores := &fakeScores{listErr: errors.New("boom")}
	w := doGet(newTestRouter(scores), "/live-score")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetMatchDetail(t *testing.T) {
	scores := &fakeScores{}
	w := doGet(newTestRouter(scores), "/live-score/2405232394?timezone=UTC")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint32(2405232394), scores.gotMatchID)
	assert.Equal(t, "UTC", scores.gotTZ)
	assert.Contains(t, w.Body.String(), `"raw_text_excerpt":"IND 245/6"`)
	assert.Contains(t, w.Body.String(), `"source":"resolved"`)
}

func TestGetMatchDetail_BadID(t *testing.T) {
	for _, id := range []string{"abc", "-1", "4294967296"} {
		w := doGet(newTestRouter(&fakeScores{}), "/live-score/"+id)
		assert.Equal(t, http.StatusBadRequest, w.Code, id)
	}
}

func TestGetMatchDetail_NotFound(t *testing.T) {
	scores := &fakeScores{detailErr: fmt.Errorf("%w: %d", service.ErrMatchNotFound, 7)}
	w := doGet(newTestRouter(scores), "/live-score/7")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Match not found (try fetching /live-score first)."}`, w.Body.String())
}

func TestCORSHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://app.example.com")
	newTestRouter(&fakeScores{}).ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
