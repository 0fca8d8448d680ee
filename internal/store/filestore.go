package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/arminveh/cinema-box-office/internal/model"
)

// bookedRecord is the on-disk representation of one showtime's booked
// set.  Seats are stored as labels ("A1") to keep the file readable.
type bookedRecord struct {
	HallID uint64   `json:"hall_id"`
	Date   string   `json:"date"`
	Slot   string   `json:"slot"`
	Seats  []string `json:"seats"`
}

type fileLayout struct {
	Version  int            `json:"version"`
	Bookings []bookedRecord `json:"bookings"`
}

// FileStore keeps the booked sets in a single JSON file.  All writes
// funnel through one mutex and replace the file atomically via a temp
// file and rename, so a crash mid-write leaves the previous snapshot
// intact.
type FileStore struct {
	path string

	mu      sync.Mutex
	records map[model.ShowtimeKey][]model.SeatAddress
}

// NewFileStore returns a store backed by the given file path.  The
// file is created on first save; a missing file loads as empty.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:    path,
		records: make(map[model.ShowtimeKey][]model.SeatAddress),
	}
}

// Load reads the whole booked state from disk.  A missing file is not
// an error: a fresh deployment simply has no bookings yet.
func (s *FileStore) Load() (map[model.ShowtimeKey][]model.SeatAddress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[model.ShowtimeKey][]model.SeatAddress{}, nil
		}
		return nil, fmt.Errorf("read booked store: %w", err)
	}
	var fl fileLayout
	if err := json.Unmarshal(raw, &fl); err != nil {
		return nil, fmt.Errorf("parse booked store: %w", err)
	}
	out := make(map[model.ShowtimeKey][]model.SeatAddress, len(fl.Bookings))
	for _, rec := range fl.Bookings {
		key := model.ShowtimeKeyOf(rec.HallID, rec.Date, rec.Slot)
		addrs := make([]model.SeatAddress, 0, len(rec.Seats))
		for _, label := range rec.Seats {
			a, err := model.ParseSeatAddress(label)
			if err != nil {
				return nil, fmt.Errorf("booked store entry %s: %w", key, err)
			}
			addrs = append(addrs, a)
		}
		out[key] = addrs
	}
	s.records = out
	return cloneRecords(out), nil
}

// SaveBooked replaces the stored booked set of one showtime and
// rewrites the file.  An empty seat list removes the record.
func (s *FileStore) SaveBooked(key model.ShowtimeKey, seats []model.SeatAddress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(seats) == 0 {
		delete(s.records, key)
	} else {
		cp := make([]model.SeatAddress, len(seats))
		copy(cp, seats)
		model.SortSeatAddresses(cp)
		s.records[key] = cp
	}
	return s.flushLocked()
}

// flushLocked writes the current records to disk.  Caller holds s.mu.
func (s *FileStore) flushLocked() error {
	keys := make([]model.ShowtimeKey, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	fl := fileLayout{Version: 1, Bookings: make([]bookedRecord, 0, len(keys))}
	for _, k := range keys {
		fl.Bookings = append(fl.Bookings, bookedRecord{
			HallID: k.HallID,
			Date:   k.Date,
			Slot:   k.Slot,
			Seats:  model.SeatLabels(s.records[k]),
		})
	}
	raw, err := json.MarshalIndent(fl, "", "  ")
	if err != nil {
		return fmt.Errorf("encode booked store: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write booked store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace booked store: %w", err)
	}
	return nil
}

func cloneRecords(in map[model.ShowtimeKey][]model.SeatAddress) map[model.ShowtimeKey][]model.SeatAddress {
	out := make(map[model.ShowtimeKey][]model.SeatAddress, len(in))
	for k, v := range in {
		cp := make([]model.SeatAddress, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}
