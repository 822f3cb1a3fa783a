package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Znerf/headacheFront/internal"
)

type FileStorage struct {
	users       map[string]*internal.StoredUser            // id -> user
	emailIndex  map[string]string                          // lowercased email -> id
	records     map[string]*internal.OwnedRecord           // id -> record
	userDateIdx map[string]map[string]*internal.OwnedRecord // userID -> date -> record
	userRecIdx  map[string][]*internal.OwnedRecord         // userID -> records sorted by date descending
	weather     map[string]*internal.WeatherSnapshot       // userID -> latest snapshot

	mu sync.RWMutex

	usersFile   string
	recordsFile string
	weatherFile string

	saveUsersChan   chan struct{}
	saveRecordsChan chan struct{}
	saveWeatherChan chan struct{}
	shutdownChan    chan struct{}
	saveDelay       time.Duration

	logger internal.Logger
}

func NewFileStorage(usersFile, recordsFile, weatherFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		users:           make(map[string]*internal.StoredUser),
		emailIndex:      make(map[string]string),
		records:         make(map[string]*internal.OwnedRecord),
		userDateIdx:     make(map[string]map[string]*internal.OwnedRecord),
		userRecIdx:      make(map[string][]*internal.OwnedRecord),
		weather:         make(map[string]*internal.WeatherSnapshot),
		usersFile:       usersFile,
		recordsFile:     recordsFile,
		weatherFile:     weatherFile,
		saveUsersChan:   make(chan struct{}, 1),
		saveRecordsChan: make(chan struct{}, 1),
		saveWeatherChan: make(chan struct{}, 1),
		shutdownChan:    make(chan struct{}),
		saveDelay:       500 * time.Millisecond,
		logger:          logger,
	}

	if err := s.loadUsers(); err != nil {
		logger.Errorf("storage: failed to load users: %v", err)
		return nil, err
	}
	if err := s.loadRecords(); err != nil {
		logger.Errorf("storage: failed to load records: %v", err)
		return nil, err
	}
	if err := s.loadWeather(); err != nil {
		logger.Errorf("storage: failed to load weather: %v", err)
		return nil, err
	}

	go s.saveWorker(s.saveUsersChan, s.saveUsers)
	go s.saveWorker(s.saveRecordsChan, s.saveRecords)
	go s.saveWorker(s.saveWeatherChan, s.saveWeather)

	return s, nil
}

func decodeFile(path string, target interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func (s *FileStorage) loadUsers() error {
	var users []*internal.StoredUser
	if err := decodeFile(s.usersFile, &users); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.ID] = u
		s.emailIndex[strings.ToLower(u.Email)] = u.ID
	}
	return nil
}

func (s *FileStorage) loadRecords() error {
	var records []*internal.OwnedRecord
	if err := decodeFile(s.recordsFile, &records); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.records[r.ID] = r
		s.indexRecordLocked(r)
	}

	// Keep each user's records sorted by date descending.
	for userID := range s.userRecIdx {
		sort.Slice(s.userRecIdx[userID], func(i, j int) bool {
			return s.userRecIdx[userID][i].Date > s.userRecIdx[userID][j].Date
		})
	}
	return nil
}

func (s *FileStorage) loadWeather() error {
	var snaps map[string]*internal.WeatherSnapshot
	if err := decodeFile(s.weatherFile, &snaps); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, snap := range snaps {
		s.weather[userID] = snap
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveUsers() error {
	s.mu.RLock()
	users := make([]*internal.StoredUser, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.usersFile, users)
}

func (s *FileStorage) saveRecords() error {
	s.mu.RLock()
	records := make([]*internal.OwnedRecord, 0, len(s.records))
	for _, r := range s.records {
		records = append(records, r)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.recordsFile, records)
}

func (s *FileStorage) saveWeather() error {
	s.mu.RLock()
	snaps := make(map[string]*internal.WeatherSnapshot, len(s.weather))
	for userID, snap := range s.weather {
		snaps[userID] = snap
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.weatherFile, snaps)
}

// saveWorker batches save signals to avoid a disk write per mutation.
func (s *FileStorage) saveWorker(signal chan struct{}, save func() error) {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-signal:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				s.logger.Errorf("storage: save failed: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func signalSave(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// --- UserRepository ---

func (s *FileStorage) CreateUser(ctx context.Context, user *internal.StoredUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := s.emailIndex[email]; exists {
		return ErrEmailExists
	}
	s.users[user.ID] = user
	s.emailIndex[email] = user.ID

	signalSave(s.saveUsersChan)
	return nil
}

func (s *FileStorage) GetUserByID(ctx context.Context, id string) (*internal.StoredUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *FileStorage) GetUserByEmail(ctx context.Context, email string) (*internal.StoredUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s.users[id]
	return &copied, nil
}

func (s *FileStorage) UpdateUser(ctx context.Context, user *internal.StoredUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	delete(s.emailIndex, strings.ToLower(existing.Email))
	s.users[user.ID] = user
	s.emailIndex[strings.ToLower(user.Email)] = user.ID

	signalSave(s.saveUsersChan)
	return nil
}

// --- RecordRepository ---

func (s *FileStorage) indexRecordLocked(rec *internal.OwnedRecord) {
	if s.userDateIdx[rec.UserID] == nil {
		s.userDateIdx[rec.UserID] = make(map[string]*internal.OwnedRecord)
	}
	s.userDateIdx[rec.UserID][rec.Date] = rec
	s.userRecIdx[rec.UserID] = append(s.userRecIdx[rec.UserID], rec)
}

func (s *FileStorage) SaveRecord(ctx context.Context, rec *internal.OwnedRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.records[rec.ID]; ok {
		// Replace in place; the date of an existing record never changes.
		*existing = *rec
		signalSave(s.saveRecordsChan)
		return nil
	}

	s.records[rec.ID] = rec
	if s.userDateIdx[rec.UserID] == nil {
		s.userDateIdx[rec.UserID] = make(map[string]*internal.OwnedRecord)
	}
	s.userDateIdx[rec.UserID][rec.Date] = rec

	// Insert maintaining date-descending order.
	list := s.userRecIdx[rec.UserID]
	inserted := false
	for i, existing := range list {
		if existing.Date < rec.Date {
			list = append(list[:i], append([]*internal.OwnedRecord{rec}, list[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		list = append(list, rec)
	}
	s.userRecIdx[rec.UserID] = list

	signalSave(s.saveRecordsChan)
	return nil
}

func (s *FileStorage) GetRecord(ctx context.Context, id string) (*internal.OwnedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (s *FileStorage) GetRecordByDate(ctx context.Context, userID, date string) (*internal.OwnedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.userDateIdx[userID][date]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (s *FileStorage) ListRecords(ctx context.Context, userID string, limit, page int) ([]internal.HeadacheRecord, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.userRecIdx[userID]
	total := len(list)

	start := (page - 1) * limit
	if start >= total {
		return []internal.HeadacheRecord{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}

	out := make([]internal.HeadacheRecord, 0, end-start)
	for _, r := range list[start:end] {
		out = append(out, r.HeadacheRecord)
	}
	return out, total, nil
}

func (s *FileStorage) DeleteRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	delete(s.userDateIdx[rec.UserID], rec.Date)

	list := s.userRecIdx[rec.UserID]
	for i, r := range list {
		if r.ID == id {
			s.userRecIdx[rec.UserID] = append(list[:i], list[i+1:]...)
			break
		}
	}

	signalSave(s.saveRecordsChan)
	return nil
}

// --- WeatherRepository ---

func (s *FileStorage) SaveSnapshot(ctx context.Context, userID string, snap *internal.WeatherSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weather[userID] = snap

	signalSave(s.saveWeatherChan)
	return nil
}

func (s *FileStorage) GetLatest(ctx context.Context, userID string) (*internal.WeatherSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.weather[userID]
	if !ok {
		return nil, nil
	}
	copied := *snap
	return &copied, nil
}

// Close stops the save workers and flushes pending data synchronously.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	if err := s.saveUsers(); err != nil {
		return err
	}
	if err := s.saveRecords(); err != nil {
		return err
	}
	return s.saveWeather()
}
