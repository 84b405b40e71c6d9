// Package memory provides mutex-guarded in-process implementations of the
// repository stores. They back the single-binary deployment and the handler tests.
package memory

import (
	"sort"
	"sync"
	"time"
)

// Clock returns the current time. Tests inject a fixed clock.
type Clock func() time.Time

// Store groups every in-memory repository over a shared clock.
type Store struct {
	Contacts      *ContactRepository
	Clients       *ClientRepository
	Projects      *ProjectRepository
	Notifications *NotificationRepository
	Analytics     *AnalyticsRepository
	AdminUsers    *AdminUserRepository
	Sessions      *SessionRepository
}

// New builds a Store. A nil clock defaults to time.Now.
func New(clock Clock) *Store {
	if clock == nil {
		clock = time.Now
	}
	// Contacts, clients and projects share one lock so referential checks see a consistent view.
	relations := &sync.RWMutex{}
	s := &Store{
		Contacts:      &ContactRepository{table: newTableWithLock[contactRow](clock, relations)},
		Clients:       &ClientRepository{table: newTableWithLock[clientRow](clock, relations)},
		Notifications: &NotificationRepository{table: newTable[notificationRow](clock)},
		Analytics:     &AnalyticsRepository{table: newTable[analyticsRow](clock)},
		AdminUsers:    &AdminUserRepository{table: newTable[adminRow](clock)},
		Sessions:      &SessionRepository{sessions: make(map[string]sessionRow), now: clock},
	}
	s.Projects = &ProjectRepository{table: newTableWithLock[projectRow](clock, relations), clients: s.Clients}
	s.Clients.projects = s.Projects
	s.Clients.contacts = s.Contacts
	s.Contacts.clients = s.Clients
	return s
}

// table is an auto-incrementing id -> row map.
type table[T any] struct {
	mu     *sync.RWMutex
	rows   map[int]T
	nextID int
	now    Clock
}

func newTable[T any](clock Clock) *table[T] {
	return newTableWithLock[T](clock, &sync.RWMutex{})
}

func newTableWithLock[T any](clock Clock, mu *sync.RWMutex) *table[T] {
	return &table[T]{mu: mu, rows: make(map[int]T), nextID: 1, now: clock}
}

// insert assigns the next id. Callers hold mu.
func (t *table[T]) insert(row T) int {
	id := t.nextID
	t.nextID++
	t.rows[id] = row
	return id
}

// sortedIDs returns the ids of rows passing keep, ordered by less. Callers hold mu.
func (t *table[T]) sortedIDs(keep func(T) bool, less func(a, b T) bool) []int {
	ids := make([]int, 0, len(t.rows))
	for id, row := range t.rows {
		if keep == nil || keep(row) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return less(t.rows[ids[i]], t.rows[ids[j]]) })
	return ids
}

// bump returns a timestamp strictly after prev.
func bump(now, prev time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Microsecond)
}

// newestFirst orders by creation time descending, then id descending.
func newestFirst(aCreated time.Time, aID int, bCreated time.Time, bID int) bool {
	if !aCreated.Equal(bCreated) {
		return aCreated.After(bCreated)
	}
	return aID > bID
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
