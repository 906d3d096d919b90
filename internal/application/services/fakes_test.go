package services

import (
	"context"
	"sync"

	"github.com/inf25dw2g02/MindPool/internal/domain/idea"
	"github.com/inf25dw2g02/MindPool/internal/domain/identity"
	"github.com/inf25dw2g02/MindPool/internal/domain/session"
	"github.com/inf25dw2g02/MindPool/pkg/errors"
	"github.com/inf25dw2g02/MindPool/pkg/logger"
)

func testLogger() logger.Logger {
	cfg := logger.DefaultConfig()
	cfg.Level = "error"
	l, _ := logger.New(cfg, nil)
	return l
}

// fakeIdentityRepo mimics the Postgres repository, including the unique
// violation on concurrent first-login inserts.
type fakeIdentityRepo struct {
	mu         sync.Mutex
	identities map[string]*identity.Identity

	// beforeCreate runs inside Create before the insert, with the lock
	// released, so tests can interleave a competing insert.
	beforeCreate func()
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{identities: make(map[string]*identity.Identity)}
}

func (r *fakeIdentityRepo) GetByExternalID(_ context.Context, externalID string) (*identity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ident, ok := r.identities[externalID]
	if !ok {
		return nil, errors.ErrIdentityNotFound
	}
	cp := *ident
	return &cp, nil
}

func (r *fakeIdentityRepo) Create(_ context.Context, ident *identity.Identity) error {
	if r.beforeCreate != nil {
		r.beforeCreate()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.identities[ident.ExternalID]; ok {
		return errors.ErrIdentityAlreadyExists
	}
	cp := *ident
	r.identities[ident.ExternalID] = &cp
	return nil
}

func (r *fakeIdentityRepo) List(_ context.Context) ([]*identity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*identity.Identity, 0, len(r.identities))
	for _, ident := range r.identities {
		cp := *ident
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeIdentityRepo) Delete(_ context.Context, externalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.identities[externalID]; !ok {
		return errors.ErrIdentityNotFound
	}
	delete(r.identities, externalID)
	return nil
}

type fakeIdeaRepo struct {
	mu    sync.Mutex
	ideas map[string]*idea.Idea

	// categories and statuses, when set, back the name join that
	// Repository.ListByOwner documents; nil lookups leave names empty.
	categories *fakeCategoryRepo
	statuses   *fakeStatusRepo
}

func newFakeIdeaRepo() *fakeIdeaRepo {
	return &fakeIdeaRepo{ideas: make(map[string]*idea.Idea)}
}

func (r *fakeIdeaRepo) Create(_ context.Context, i *idea.Idea) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *i
	r.ideas[i.ID] = &cp
	return nil
}

func (r *fakeIdeaRepo) GetByID(_ context.Context, id string) (*idea.Idea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.ideas[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	cp := *i
	return &cp, nil
}

func (r *fakeIdeaRepo) ListByOwner(_ context.Context, ownerID string) ([]*idea.ListItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*idea.ListItem
	for _, i := range r.ideas {
		if i.OwnerID == ownerID {
			item := &idea.ListItem{Idea: *i}
			if r.categories != nil {
				if c, ok := r.categories.categories[i.CategoryID]; ok {
					item.CategoryName = c.Name
				}
			}
			if r.statuses != nil {
				if st, ok := r.statuses.statuses[i.StatusID]; ok {
					item.StatusName = st.Name
				}
			}
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeIdeaRepo) Update(_ context.Context, i *idea.Idea) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ideas[i.ID]; !ok {
		return errors.ErrNotFound
	}
	cp := *i
	r.ideas[i.ID] = &cp
	return nil
}

func (r *fakeIdeaRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ideas[id]; !ok {
		return errors.ErrNotFound
	}
	delete(r.ideas, id)
	return nil
}

func (r *fakeIdeaRepo) CountByOwner(_ context.Context, ownerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, i := range r.ideas {
		if i.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeIdeaRepo) CountByCategory(_ context.Context, categoryID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, i := range r.ideas {
		if i.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *fakeIdeaRepo) CountByStatus(_ context.Context, statusID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, i := range r.ideas {
		if i.StatusID == statusID {
			n++
		}
	}
	return n, nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*idea.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*idea.Category)}
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *idea.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*idea.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]*idea.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*idea.Category, 0, len(r.categories))
	for _, c := range r.categories {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *idea.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[c.ID]; !ok {
		return errors.ErrNotFound
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return errors.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

type fakeStatusRepo struct {
	mu       sync.Mutex
	statuses map[string]*idea.Status
}

func newFakeStatusRepo() *fakeStatusRepo {
	return &fakeStatusRepo{statuses: make(map[string]*idea.Status)}
}

func (r *fakeStatusRepo) Create(_ context.Context, st *idea.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *st
	r.statuses[st.ID] = &cp
	return nil
}

func (r *fakeStatusRepo) GetByID(_ context.Context, id string) (*idea.Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.statuses[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (r *fakeStatusRepo) List(_ context.Context) ([]*idea.Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*idea.Status, 0, len(r.statuses))
	for _, st := range r.statuses {
		cp := *st
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeStatusRepo) Update(_ context.Context, st *idea.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.statuses[st.ID]; !ok {
		return errors.ErrNotFound
	}
	cp := *st
	r.statuses[st.ID] = &cp
	return nil
}

func (r *fakeStatusRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.statuses[id]; !ok {
		return errors.ErrNotFound
	}
	delete(r.statuses, id)
	return nil
}

// fakeProvider is an OAuth provider that returns a canned profile.
type fakeProvider struct {
	profile *identity.Profile
	err     error
}

func (p *fakeProvider) AuthURL(state string) string {
	return "https://provider.example/authorize?state=" + state
}

func (p *fakeProvider) ExchangeCode(context.Context, string) (*identity.Profile, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.profile, nil
}

// fakeSessionStore is a minimal in-memory session.Store.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*session.Session)}
}

func (s *fakeSessionStore) Create(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	s.sessions[sess.ID] = &cp
	return nil
}

func (s *fakeSessionStore) Get(_ context.Context, id string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, errors.ErrSessionAbsent
	}
	cp := *sess
	return &cp, nil
}

func (s *fakeSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
