package examroom

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/iliyamo/exam-room-planner/internal/model"
)

// documentExtension is the archive entry suffix that marks a room document.
const documentExtension = ".json"

// RoomStore is the persistence interface the ingestor writes to.  The
// MySQL-backed implementation lives in internal/repository.
type RoomStore interface {
	CreateBulk(ctx context.Context, rooms []*model.Room) error
}

// UploadSummary reports the outcome of a successful archive ingestion.
type UploadSummary struct {
	UploadedFileName      string   `json:"uploadedFileName"`
	NumberOfUploadedRooms int      `json:"numberOfUploadedRooms"`
	NumberOfUploadedSeats int      `json:"numberOfUploadedSeats"`
	RoomNames             []string `json:"roomNames"`
}

// Ingestor walks uploaded room archives and persists the rooms they
// describe.  One Ingest call is one unit of work: either every document in
// the archive parses and the whole deduplicated room set is stored, or the
// call fails and nothing is stored.
type Ingestor struct {
	rooms RoomStore
}

// NewIngestor returns an Ingestor persisting through the given store.
func NewIngestor(rooms RoomStore) *Ingestor {
	return &Ingestor{rooms: rooms}
}

// Ingest reads a zip archive of room documents, parses and deduplicates
// them, stores the resulting set, and returns the upload summary.
//
// Entries that are directories or lack the document extension are skipped.
// The room number of an entry is its base file name minus the extension; a
// blank room number is a hard failure, not a skip.  Duplicate rooms (same
// room number, name and building) keep the first occurrence in archive
// order.
func (in *Ingestor) Ingest(ctx context.Context, fileName string, data []byte) (*UploadSummary, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrArchiveRead, err)
	}

	var rooms []*model.Room
	seen := make(map[model.DedupKey]bool)

	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() || !strings.HasSuffix(entry.Name, documentExtension) {
			continue
		}

		roomNumber := strings.TrimSuffix(path.Base(entry.Name), documentExtension)
		if strings.TrimSpace(roomNumber) == "" {
			return nil, fmt.Errorf("%w: entry %q", ErrMissingRoomNumber, entry.Name)
		}

		room, err := in.parseEntry(entry, roomNumber)
		if err != nil {
			return nil, err
		}

		if seen[room.Key()] {
			// A later duplicate never overwrites the first-seen room.
			continue
		}
		seen[room.Key()] = true
		rooms = append(rooms, room)
	}

	if err := in.rooms.CreateBulk(ctx, rooms); err != nil {
		return nil, err
	}

	summary := &UploadSummary{
		UploadedFileName:      fileName,
		NumberOfUploadedRooms: len(rooms),
		RoomNames:             make([]string, 0, len(rooms)),
	}
	for _, room := range rooms {
		summary.NumberOfUploadedSeats += len(room.Seats)
		summary.RoomNames = append(summary.RoomNames, room.Name)
	}
	return summary, nil
}

func (in *Ingestor) parseEntry(entry *zip.File, roomNumber string) (*model.Room, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: entry %q: %s", ErrArchiveRead, entry.Name, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: entry %q: %s", ErrArchiveRead, entry.Name, err)
	}

	if string(bytes.TrimSpace(raw)) == "null" {
		// A JSON null would unmarshal into a zero document without error.
		return nil, fmt.Errorf("%w: room %s: document is null", ErrMalformedDocument, roomNumber)
	}
	var doc RoomDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: room %s: %s", ErrMalformedDocument, roomNumber, err)
	}
	return ParseRoom(roomNumber, &doc)
}
