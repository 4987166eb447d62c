package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-room-planner/internal/examroom"
	"github.com/iliyamo/exam-room-planner/internal/model"
	"github.com/iliyamo/exam-room-planner/internal/queue"
	"github.com/iliyamo/exam-room-planner/internal/repository"
	queue_publisher "github.com/iliyamo/exam-room-planner/internal/service"
)

// ExamRoomHandler bundles dependencies for the room administration
// endpoints: archive upload, overview, cleanup and the read projections
// used when selecting rooms for a distribution.
type ExamRoomHandler struct {
	Rooms *repository.ExamRoomRepo
}

// NewExamRoomHandler constructs an ExamRoomHandler.
func NewExamRoomHandler(rooms *repository.ExamRoomRepo) *ExamRoomHandler {
	return &ExamRoomHandler{Rooms: rooms}
}

// Upload handles POST /v1/admin/exam-rooms/upload.  The request carries a
// zip archive of room documents in the "file" form field.  The whole
// archive is ingested atomically; on any validation failure nothing is
// stored and the response names the offending entry and rule.
func (h *ExamRoomHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot open uploaded file"})
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read uploaded file"})
	}

	ingestor := examroom.NewIngestor(h.Rooms)
	summary, err := ingestor.Ingest(c.Request().Context(), fileHeader.Filename, data)
	if err != nil {
		if examroom.IsValidationError(err) || errors.Is(err, examroom.ErrArchiveRead) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store exam rooms"})
	}

	// Event delivery is best effort; an unreachable broker must not fail
	// the upload.
	if err := queue_publisher.PublishPlanningEvent(c.Request().Context(), queue.PlanningEvent{
		Type:             queue.EventRoomsUploaded,
		OccurredAt:       time.Now().UTC().Format(time.RFC3339),
		UploadedFileName: summary.UploadedFileName,
		NumberOfRooms:    summary.NumberOfUploadedRooms,
		NumberOfSeats:    summary.NumberOfUploadedSeats,
		RoomNames:        summary.RoomNames,
	}); err != nil {
		log.Printf("upload: publish event failed: %v", err)
	}

	return c.JSON(http.StatusOK, summary)
}

type layoutOverview struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
}

type roomOverview struct {
	ID               uint64           `json:"id"`
	RoomNumber       string           `json:"roomNumber"`
	Name             string           `json:"name"`
	Building         string           `json:"building"`
	SeatCount        int              `json:"seatCount"`
	LayoutStrategies []layoutOverview `json:"layoutStrategies,omitempty"`
}

type adminOverview struct {
	NumberOfStoredExamRooms        int            `json:"numberOfStoredExamRooms"`
	NumberOfStoredExamSeats        int            `json:"numberOfStoredExamSeats"`
	NumberOfStoredLayoutStrategies int            `json:"numberOfStoredLayoutStrategies"`
	NewestUniqueExamRooms          []roomOverview `json:"newestUniqueExamRooms,omitempty"`
}

// AdminOverview handles GET /v1/admin/exam-rooms/admin-overview.  It
// reports aggregate counts across all stored room versions plus a
// projection of the newest version of every distinct room.
func (h *ExamRoomHandler) AdminOverview(c echo.Context) error {
	ctx := c.Request().Context()

	roomCount, seatCount, layoutCount, err := h.Rooms.CountStored(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	newest, err := h.Rooms.FindNewestUniqueWithLayouts(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	overview := adminOverview{
		NumberOfStoredExamRooms:        roomCount,
		NumberOfStoredExamSeats:        seatCount,
		NumberOfStoredLayoutStrategies: layoutCount,
	}
	for _, room := range newest {
		overview.NewestUniqueExamRooms = append(overview.NewestUniqueExamRooms, projectRoom(room))
	}
	return c.JSON(http.StatusOK, overview)
}

// DeleteOutdatedAndUnused handles DELETE /v1/admin/exam-rooms/outdated-and-unused.
// It removes every superseded room version no exam references and reports
// how many were deleted.
func (h *ExamRoomHandler) DeleteOutdatedAndUnused(c echo.Context) error {
	deleted, err := h.Rooms.DeleteOutdatedAndUnused(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"numberOfDeletedExamRooms": deleted})
}

// RoomsForDistribution handles GET /v1/exam-rooms/for-distribution.  It
// lists the newest version of every room together with its default layout
// capacity, for the room selection step of a distribution.
func (h *ExamRoomHandler) RoomsForDistribution(c echo.Context) error {
	rooms, err := h.Rooms.FindNewestUniqueWithLayouts(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	type roomForDistribution struct {
		ID              uint64 `json:"id"`
		RoomNumber      string `json:"roomNumber"`
		Name            string `json:"name"`
		Building        string `json:"building"`
		SeatCount       int    `json:"seatCount"`
		DefaultCapacity int    `json:"defaultCapacity"`
	}
	result := make([]roomForDistribution, 0, len(rooms))
	for _, room := range rooms {
		entry := roomForDistribution{
			ID:         room.ID,
			RoomNumber: room.RoomNumber,
			Name:       room.Name,
			Building:   room.Building,
			SeatCount:  len(room.Seats),
		}
		if strategy, err := examroom.DefaultLayoutStrategy(room); err == nil {
			entry.DefaultCapacity = strategy.Capacity
		}
		result = append(result, entry)
	}
	return c.JSON(http.StatusOK, result)
}

// SeatsOfRoom handles GET /v1/exam-rooms/:roomId/seats.  It returns the
// seat labels of one room in document order.
func (h *ExamRoomHandler) SeatsOfRoom(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("roomId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), roomID)
	if err != nil {
		if errors.Is(err, repository.ErrExamRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "exam room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	labels := make([]string, 0, len(room.Seats))
	for _, seat := range room.Seats {
		labels = append(labels, seat.Label)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"roomNumber": room.RoomNumber,
		"name":       room.Name,
		"seats":      labels,
	})
}

func projectRoom(room *model.Room) roomOverview {
	overview := roomOverview{
		ID:         room.ID,
		RoomNumber: room.RoomNumber,
		Name:       room.Name,
		Building:   room.Building,
		SeatCount:  len(room.Seats),
	}
	for _, layout := range room.LayoutStrategies {
		overview.LayoutStrategies = append(overview.LayoutStrategies, layoutOverview{
			Name:     layout.Name,
			Type:     string(layout.Type),
			Capacity: layout.Capacity,
		})
	}
	return overview
}
