package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-room-planner/internal/examroom"
	"github.com/iliyamo/exam-room-planner/internal/planner"
	"github.com/iliyamo/exam-room-planner/internal/queue"
	"github.com/iliyamo/exam-room-planner/internal/repository"
	queue_publisher "github.com/iliyamo/exam-room-planner/internal/service"
)

// DistributionHandler bundles dependencies for the seat distribution
// endpoints.
type DistributionHandler struct {
	Planner   *planner.Planner
	Exams     *repository.ExamRepo
	ExamUsers *repository.ExamUserRepo
}

// NewDistributionHandler constructs a DistributionHandler.
func NewDistributionHandler(p *planner.Planner, exams *repository.ExamRepo, examUsers *repository.ExamUserRepo) *DistributionHandler {
	return &DistributionHandler{Planner: p, Exams: exams, ExamUsers: examUsers}
}

// Distribute handles POST /v1/exams/:examId/distribute-registered-students.
// The body is the ordered list of room ids to distribute to.  A selection
// that cannot seat all registered participants is rejected with 400 and
// the available/required counts; in that case nothing is changed.
func (h *DistributionHandler) Distribute(c echo.Context) error {
	examID, err := strconv.ParseUint(c.Param("examId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid exam id"})
	}
	var roomIDs []uint64
	if err := c.Bind(&roomIDs); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(roomIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one room id is required"})
	}

	ctx := c.Request().Context()
	if err := h.Planner.Distribute(ctx, examID, roomIDs); err != nil {
		var notEnough *planner.NotEnoughSeatsError
		switch {
		case errors.As(err, &notEnough):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":               "not enough seats available in the selected rooms",
				"numberOfUsableSeats": notEnough.Available,
				"numberOfExamUsers":   notEnough.Required,
			})
		case errors.Is(err, planner.ErrExamNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "exam not found"})
		case errors.Is(err, planner.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "exam room not found"})
		case errors.Is(err, examroom.ErrNoLayoutStrategy):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "distribution failed"})
		}
	}

	h.publishDistributed(c, examID, roomIDs)
	return c.JSON(http.StatusOK, echo.Map{"examId": examID, "distributedRooms": len(roomIDs)})
}

// Capacities handles GET /v1/exam-rooms/distribution-capacities?roomIds=1,2.
// It previews the combined default and maximum capacities of a room
// selection without mutating anything.
func (h *DistributionHandler) Capacities(c echo.Context) error {
	roomIDs, err := parseIDList(c.QueryParam("roomIds"))
	if err != nil || len(roomIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomIds query parameter is required"})
	}

	defaultCapacity, maximumCapacity, err := h.Planner.CombinedCapacities(c.Request().Context(), roomIDs)
	if err != nil {
		if errors.Is(err, planner.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "exam room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"combinedDefaultCapacity": defaultCapacity,
		"combinedMaximumCapacity": maximumCapacity,
	})
}

func (h *DistributionHandler) publishDistributed(c echo.Context, examID uint64, roomIDs []uint64) {
	ctx := c.Request().Context()
	event := queue.PlanningEvent{
		Type:       queue.EventExamDistributed,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		ExamID:     examID,
		RoomIDs:    roomIDs,
	}
	if exam, err := h.Exams.GetByID(ctx, examID); err == nil && exam != nil {
		event.ExamTitle = exam.Title
	}
	if users, err := h.ExamUsers.FindByExamID(ctx, examID); err == nil {
		event.NumberOfParticipants = len(users)
	}
	if err := queue_publisher.PublishPlanningEvent(ctx, event); err != nil {
		log.Printf("distribute: publish event failed: %v", err)
	}
}

func parseIDList(raw string) ([]uint64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
