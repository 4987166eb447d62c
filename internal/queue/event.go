// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// PlanningQueueName is the durable queue all planning events are published
// to and consumed from.
const PlanningQueueName = "planning.events"

// Event types carried in the Type field of PlanningEvent.
const (
	EventRoomsUploaded   = "rooms.uploaded"
	EventExamDistributed = "exam.distributed"
)

// PlanningEvent is published after a successful room upload or seat
// distribution.  It carries enough information for downstream consumers to
// log or notify without querying the primary database; fields irrelevant to
// the event type stay empty.
type PlanningEvent struct {
	Type                 string   `json:"type"`
	OccurredAt           string   `json:"occurred_at"`
	UploadedFileName     string   `json:"uploaded_file_name,omitempty"`
	NumberOfRooms        int      `json:"number_of_rooms,omitempty"`
	NumberOfSeats        int      `json:"number_of_seats,omitempty"`
	RoomNames            []string `json:"room_names,omitempty"`
	ExamID               uint64   `json:"exam_id,omitempty"`
	ExamTitle            string   `json:"exam_title,omitempty"`
	RoomIDs              []uint64 `json:"room_ids,omitempty"`
	NumberOfParticipants int      `json:"number_of_participants,omitempty"`
}
