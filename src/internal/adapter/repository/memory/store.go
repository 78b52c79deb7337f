package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/google/uuid"
)

// Store keeps every tenant's data in process memory behind one mutex. Each
// repository method holds the lock for its whole body, which makes a ledger
// posting a single critical section.
type Store struct {
	mu sync.Mutex

	companies    map[string]domain.Company
	users        map[string]domain.User
	bankAccounts map[string]domain.BankAccount
	transactions []domain.Transaction
	projects     map[string]domain.Project
	tasks        map[string]domain.Task

	now  func() time.Time
	last time.Time

	// BeforeBalanceUpdate runs after a transaction is staged and before the
	// balance moves. A non-nil error aborts the posting.
	BeforeBalanceUpdate func(txn domain.Transaction) error
}

func NewStore() *Store {
	return &Store{
		companies:    map[string]domain.Company{},
		users:        map[string]domain.User{},
		bankAccounts: map[string]domain.BankAccount{},
		projects:     map[string]domain.Project{},
		tasks:        map[string]domain.Task{},
		now:          time.Now,
	}
}

// stamp returns a strictly increasing timestamp so creation order is preserved
// even when the clock does not advance between writes. Callers hold mu.
func (s *Store) stamp() time.Time {
	t := s.now()
	if !t.After(s.last) {
		t = s.last.Add(time.Nanosecond)
	}
	s.last = t
	return t
}

func newID() string {
	return uuid.NewString()
}

// sortByCreated orders items by creation time, breaking ties by id so that
// listings are stable across map iteration orders.
func sortByCreated[T any](items []T, key func(T) (time.Time, string), newestFirst bool) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if ti.Equal(tj) {
			return idi < idj
		}
		if newestFirst {
			return ti.After(tj)
		}
		return ti.Before(tj)
	})
}
