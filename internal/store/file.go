package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

const (
	roomsFile        = "rooms.json"
	reservationsFile = "reservations.json"
)

// FileBackend persists each collection as a JSON document in a data
// directory.  Writes go through a temp file followed by a rename so a
// crashed write never leaves a truncated document behind.
type FileBackend struct {
	dir string
}

// NewFileBackend returns a backend rooted at dir.  The directory is
// created on the first save.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// LoadRooms decodes the room document.  Missing or undecodable files
// surface as errors; the Store treats them as absent data.
func (f *FileBackend) LoadRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := f.read(roomsFile, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// SaveRooms overwrites the room document.
func (f *FileBackend) SaveRooms(ctx context.Context, rooms []model.Room) error {
	return f.write(roomsFile, rooms)
}

// LoadReservations decodes the reservation document.
func (f *FileBackend) LoadReservations(ctx context.Context) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := f.read(reservationsFile, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// SaveReservations overwrites the reservation document.
func (f *FileBackend) SaveReservations(ctx context.Context, reservations []model.Reservation) error {
	return f.write(reservationsFile, reservations)
}

func (f *FileBackend) read(name string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (f *FileBackend) write(name string, v interface{}) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(f.dir, name))
}
