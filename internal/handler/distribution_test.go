package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/exam-room-planner/internal/model"
	"github.com/iliyamo/exam-room-planner/internal/planner"
)

// The fakes below back a real Planner so the handler tests exercise the
// HTTP mapping without a database.  The distribution success path is not
// covered here; it needs the transactional store and belongs to the
// repository layer.

type stubExamStore struct{ exam *model.Exam }

func (s *stubExamStore) GetByID(context.Context, uint64) (*model.Exam, error) {
	return s.exam, nil
}

type stubExamUserStore struct{ users []*model.ExamUser }

func (s *stubExamUserStore) FindByExamID(context.Context, uint64) ([]*model.ExamUser, error) {
	return s.users, nil
}

type stubRoomStore struct{ rooms []*model.Room }

func (s *stubRoomStore) FindWithLayoutsByIDs(_ context.Context, roomIDs []uint64) ([]*model.Room, error) {
	want := make(map[uint64]bool, len(roomIDs))
	for _, id := range roomIDs {
		want[id] = true
	}
	var found []*model.Room
	for _, room := range s.rooms {
		if want[room.ID] {
			found = append(found, room)
		}
	}
	return found, nil
}

type stubDistributionStore struct{ saved bool }

func (s *stubDistributionStore) SaveDistribution(context.Context, uint64, []uint64, []*model.ExamUser) error {
	s.saved = true
	return nil
}

func smallRoom(id uint64, capacity int) *model.Room {
	refs := make([]string, capacity)
	for i := range refs {
		refs[i] = "1, " + string(rune('1'+i))
	}
	return &model.Room{
		ID:         id,
		RoomNumber: "R101",
		Name:       "Room 101",
		Building:   "Main",
		LayoutStrategies: []model.LayoutStrategy{{
			Name:     "default",
			Type:     model.LayoutFixedSelection,
			Capacity: capacity,
			Params:   model.FixedSelectionParams{SeatRefs: refs},
		}},
	}
}

func newStubHandler(exam *model.Exam, users []*model.ExamUser, rooms ...*model.Room) *DistributionHandler {
	p := planner.New(
		&stubExamStore{exam: exam},
		&stubExamUserStore{users: users},
		&stubRoomStore{rooms: rooms},
		&stubDistributionStore{},
	)
	return &DistributionHandler{Planner: p}
}

func distributeRequest(t *testing.T, h *DistributionHandler, examID, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("examId")
	c.SetParamValues(examID)
	require.NoError(t, h.Distribute(c))
	return rec
}

func TestDistributeRejectsInvalidExamID(t *testing.T) {
	h := newStubHandler(&model.Exam{ID: 1}, nil)
	rec := distributeRequest(t, h, "abc", `[1]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDistributeRejectsEmptyRoomList(t *testing.T) {
	h := newStubHandler(&model.Exam{ID: 1}, nil)
	rec := distributeRequest(t, h, "1", `[]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDistributeNotEnoughSeatsResponse(t *testing.T) {
	users := []*model.ExamUser{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}
	h := newStubHandler(&model.Exam{ID: 1}, users, smallRoom(10, 3))

	rec := distributeRequest(t, h, "1", `[10]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(3), body["numberOfUsableSeats"])
	assert.Equal(t, float64(5), body["numberOfExamUsers"])
}

func TestDistributeUnknownExam(t *testing.T) {
	h := newStubHandler(nil, nil, smallRoom(10, 3))
	rec := distributeRequest(t, h, "99", `[10]`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDistributeUnknownRoom(t *testing.T) {
	h := newStubHandler(&model.Exam{ID: 1}, nil, smallRoom(10, 3))
	rec := distributeRequest(t, h, "1", `[10, 42]`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCapacitiesPreview(t *testing.T) {
	h := newStubHandler(&model.Exam{ID: 1}, nil, smallRoom(10, 3), smallRoom(11, 4))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?roomIds=10,11", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h.Capacities(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(7), body["combinedDefaultCapacity"])
	assert.Equal(t, float64(7), body["combinedMaximumCapacity"])
}

func TestCapacitiesRequiresRoomIDs(t *testing.T) {
	h := newStubHandler(&model.Exam{ID: 1}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h.Capacities(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/?roomIds=1,x", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	require.NoError(t, h.Capacities(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseIDList(t *testing.T) {
	ids, err := parseIDList(" 1, 2 ,3")
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, ids)

	ids, err = parseIDList("")
	require.NoError(t, err)
	assert.Nil(t, ids)

	_, err = parseIDList("1,two")
	assert.Error(t, err)
}
