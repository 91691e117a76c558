// Package memstore keeps every store Provider in memory.
// Handler tests use it instead of PostgreSQL; the accept guard is serialized by one mutex.
package memstore

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"hire-backend/lib/errs"
	dbmodels "hire-backend/models/db"
)

type DB struct {
	mu            sync.Mutex
	clock         time.Time
	Jobs          map[string]*dbmodels.Job
	Applications  map[string]*dbmodels.Application
	Employers     map[string]*dbmodels.EmployerProfile
	Chats         map[string]*dbmodels.Chat
	Messages      []dbmodels.Message
	Reports       map[string]*dbmodels.Report
	Notifications map[string]*dbmodels.Notification
	Saved         map[string]dbmodels.SavedJob
	Freelancers   map[string]*dbmodels.FreelancerProfile
	Contacts      map[string]*dbmodels.ContactRequest
}

func New() *DB {
	return &DB{
		clock:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Jobs:          map[string]*dbmodels.Job{},
		Applications:  map[string]*dbmodels.Application{},
		Employers:     map[string]*dbmodels.EmployerProfile{},
		Chats:         map[string]*dbmodels.Chat{},
		Reports:       map[string]*dbmodels.Report{},
		Notifications: map[string]*dbmodels.Notification{},
		Saved:         map[string]dbmodels.SavedJob{},
		Freelancers:   map[string]*dbmodels.FreelancerProfile{},
		Contacts:      map[string]*dbmodels.ContactRequest{},
	}
}

// tick returns strictly increasing timestamps so ordering is deterministic. Caller holds mu.
func (d *DB) tick() time.Time {
	d.clock = d.clock.Add(time.Millisecond)
	return d.clock
}

func (d *DB) newBase() dbmodels.BaseModel {
	now := d.tick()
	return dbmodels.BaseModel{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
}

func (d *DB) employerUserID(employerID string) string {
	if profile, ok := d.Employers[employerID]; ok {
		return profile.UserID
	}
	return ""
}

func contains(value, search string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(search))
}

func paginate[T any](list []T, page, limit int) []T {
	offset := (page - 1) * limit
	if offset >= len(list) {
		return []T{}
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

func sortDesc[T any](list []T, created func(T) time.Time) {
	sort.SliceStable(list, func(a, b int) bool {
		return created(list[a]).After(created(list[b]))
	})
}

func notFound(what string) error {
	return errs.NotFound("%s not found", what)
}
