package memory

import (
	"context"
	"strings"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(_ context.Context, user domain.User) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return domain.User{}, domain.ErrDuplicateEmail
		}
	}

	now := r.store.stamp()
	user.ID = newID()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.store.users[user.ID] = user
	return user, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return domain.User{}, domain.ErrRecordNotFound
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, user := range r.store.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrRecordNotFound
}

func (r *UserRepository) ListByCompany(_ context.Context, companyID string) ([]domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]domain.User, 0)
	for _, user := range r.store.users {
		if user.CompanyIDValue() == companyID {
			out = append(out, user)
		}
	}
	sortByCreated(out, func(u domain.User) (time.Time, string) { return u.CreatedAt, u.ID }, true)
	return out, nil
}

func (r *UserRepository) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return domain.ErrRecordNotFound
	}
	user.LastLogin = &at
	user.UpdatedAt = r.store.stamp()
	r.store.users[id] = user
	return nil
}

func (r *UserRepository) SetApproval(_ context.Context, companyID string, id string, approved bool, actorID string, at time.Time) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok || user.CompanyIDValue() != companyID {
		return domain.User{}, domain.ErrRecordNotFound
	}

	actor := actorID
	decided := at
	if approved {
		user.IsApproved, user.IsRejected = true, false
		user.ApprovedBy, user.ApprovedAt = &actor, &decided
		user.RejectedBy, user.RejectedAt = nil, nil
	} else {
		user.IsApproved, user.IsRejected = false, true
		user.RejectedBy, user.RejectedAt = &actor, &decided
		user.ApprovedBy, user.ApprovedAt = nil, nil
	}
	user.UpdatedAt = r.store.stamp()
	r.store.users[id] = user
	return user, nil
}

type CompanyRepository struct {
	store *Store
}

func NewCompanyRepository(store *Store) *CompanyRepository {
	return &CompanyRepository{store: store}
}

func (r *CompanyRepository) Create(_ context.Context, company domain.Company) (domain.Company, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	company.ID = newID()
	company.CreatedAt = r.store.stamp()
	r.store.companies[company.ID] = company
	return company, nil
}

func (r *CompanyRepository) GetByID(_ context.Context, id string) (domain.Company, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	company, ok := r.store.companies[id]
	if !ok {
		return domain.Company{}, domain.ErrRecordNotFound
	}
	return company, nil
}
