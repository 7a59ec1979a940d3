package accounts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/dadgen/internal/common"
	"github.com/dmitrijs2005/dadgen/internal/logging"
)

// Store is the durable account collection backed by a single text file.
//
// The store is the one piece of state shared between concurrent
// provisioning tasks and the CLI, so every mutation runs under the write
// lock and persists before it returns. Reads work on copies; callers never
// hold references into the store's slice.
type Store struct {
	mu   sync.RWMutex
	path string
	list []Account
	log  logging.Logger

	now func() time.Time
}

// NewStore returns a store backed by the file at path. The file is not read
// until Load is called.
func NewStore(path string, log logging.Logger) *Store {
	return &Store{path: path, log: log, now: time.Now}
}

// Load replaces the in-memory collection with the file contents, preserving
// on-disk order. A missing file loads as an empty collection.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.list = nil
			return nil
		}
		return fmt.Errorf("open accounts file: %w", err)
	}
	defer f.Close()

	list, err := decodeAccounts(f)
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}
	s.list = list
	return nil
}

// Save writes the full in-memory collection, overwriting the file.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create accounts file: %w", err)
	}
	defer f.Close()

	if err := encodeAccounts(f, s.list); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}

// Add appends a newly finalized record and persists immediately. A record
// with the same (username, email) identity fails with common.ErrExists.
func (s *Store) Add(a Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(a.Username, a.Email) >= 0 {
		return fmt.Errorf("%w: %s / %s", common.ErrExists, a.Username, a.Email)
	}
	s.list = append(s.list, a)
	return s.saveLocked()
}

// Delete removes the record identified by (username, email) and persists.
func (s *Store) Delete(username, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(username, email)
	if i < 0 {
		return fmt.Errorf("%w: %s / %s", common.ErrNotFound, username, email)
	}
	s.list = append(s.list[:i], s.list[i+1:]...)
	return s.saveLocked()
}

// Get returns a copy of the record identified by (username, email).
func (s *Store) Get(username, email string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(username, email)
	if i < 0 {
		return Account{}, fmt.Errorf("%w: %s / %s", common.ErrNotFound, username, email)
	}
	return s.list[i], nil
}

// All returns a copy of the full collection in stored order.
func (s *Store) All() []Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Account, len(s.list))
	copy(out, s.list)
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}

// Search returns the records passing the filter, in stored order.
func (s *Store) Search(f Filter) []Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Account
	for i := range s.list {
		if f.matches(&s.list[i]) {
			out = append(out, s.list[i])
		}
	}
	return out
}

// Status carries the flags SetStatus should change; nil fields are left
// untouched.
type Status struct {
	Legendary  *bool
	Banned     *bool
	TempBanned *bool
}

// SetStatus updates the status flags of one record and persists. Setting
// TempBanned to true also appends a timestamped note line, so the ban
// history survives later edits.
func (s *Store) SetStatus(username, email string, st Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(username, email)
	if i < 0 {
		return fmt.Errorf("%w: %s / %s", common.ErrNotFound, username, email)
	}

	a := &s.list[i]
	if st.Legendary != nil {
		a.IsLegendary = *st.Legendary
	}
	if st.Banned != nil {
		a.IsBanned = *st.Banned
	}
	if st.TempBanned != nil {
		a.IsTempBanned = *st.TempBanned
		if *st.TempBanned {
			a.Notes = appendNoteLine(a.Notes, "temp ban "+s.now().Format(CreatedAtLayout))
		}
	}
	return s.saveLocked()
}

// SetNotes replaces the notes of one record and persists.
func (s *Store) SetNotes(username, email, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(username, email)
	if i < 0 {
		return fmt.Errorf("%w: %s / %s", common.ErrNotFound, username, email)
	}
	s.list[i].Notes = notes
	return s.saveLocked()
}

// SetVerificationCode refreshes the last known verification code of one
// record and persists. Used by the "grab latest code" flow.
func (s *Store) SetVerificationCode(username, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(username, email)
	if i < 0 {
		return fmt.Errorf("%w: %s / %s", common.ErrNotFound, username, email)
	}
	s.list[i].VerificationCode = code
	return s.saveLocked()
}

func (s *Store) indexLocked(username, email string) int {
	for i := range s.list {
		if s.list[i].Is(username, email) {
			return i
		}
	}
	return -1
}

func appendNoteLine(notes, line string) string {
	if notes == "" {
		return line
	}
	return notes + "\n" + line
}
