package services

import (
	"context"
	"sync"

	"chavecerta-backend/internal/apperrors"
	"chavecerta-backend/internal/models"
)

// In-memory repository fakes. They honor the same not-found semantics as
// the real repositories so service-level tests exercise the full taxonomy.

type fakeAccountRepo struct {
	mu     sync.Mutex
	nextID int
	items  map[int]*models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{nextID: 1, items: map[int]*models.Account{}}
}

func (r *fakeAccountRepo) Create(ctx context.Context, a *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Username == a.Username {
			return apperrors.NewValidation("username", "an account with this username already exists")
		}
		if existing.Email == a.Email {
			return apperrors.NewValidation("email", "an account with this email already exists")
		}
		if existing.TaxID == a.TaxID {
			return apperrors.NewValidation("tax_id", "an account with this tax id already exists")
		}
	}
	a.ID = r.nextID
	r.nextID++
	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) Get(ctx context.Context, id int) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAccountRepo) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.items {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeAccountRepo) GetByActivationUID(ctx context.Context, uid string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.items {
		if a.ActivationUID == uid {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeAccountRepo) List(ctx context.Context) ([]*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Account, 0, len(r.items))
	for _, a := range r.items {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAccountRepo) Update(ctx context.Context, a *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[a.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) Activate(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok || a.IsActive {
		return apperrors.ErrNotFound
	}
	a.IsActive = true
	return nil
}

func (r *fakeAccountRepo) UpdateProfileImage(ctx context.Context, id int, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	a.ProfileImageURL = url
	return nil
}

func (r *fakeAccountRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeListingRepo struct {
	mu     sync.Mutex
	nextID int
	items  map[int]*models.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{nextID: 1, items: map[int]*models.Listing{}}
}

func (r *fakeListingRepo) Create(ctx context.Context, l *models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = r.nextID
	r.nextID++
	cp := *l
	r.items[l.ID] = &cp
	return nil
}

func (r *fakeListingRepo) Get(ctx context.Context, id int) (*models.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *fakeListingRepo) List(ctx context.Context, filter *models.ListingFilter) ([]*models.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Listing{}
	for _, l := range r.items {
		if filter != nil {
			if filter.Category != "" && l.Category != filter.Category {
				continue
			}
			if filter.Available != nil && l.Available != *filter.Available {
				continue
			}
			if filter.RoomCount != nil && l.RoomCount != *filter.RoomCount {
				continue
			}
		}
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeListingRepo) Update(ctx context.Context, l *models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[l.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *l
	r.items[l.ID] = &cp
	return nil
}

func (r *fakeListingRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeContractRepo struct {
	mu     sync.Mutex
	nextID int
	items  map[int]*models.Contract
}

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{nextID: 1, items: map[int]*models.Contract{}}
}

func (r *fakeContractRepo) Create(ctx context.Context, c *models.Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.nextID
	r.nextID++
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeContractRepo) Get(ctx context.Context, id int) (*models.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeContractRepo) List(ctx context.Context) ([]*models.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Contract, 0, len(r.items))
	for _, c := range r.items {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeContractRepo) Update(ctx context.Context, c *models.Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeContractRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakePaymentRepo struct {
	mu     sync.Mutex
	nextID int
	items  map[int]*models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{nextID: 1, items: map[int]*models.Payment{}}
}

func (r *fakePaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) Get(ctx context.Context, id int) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.items {
		if p.RazorpayOrderID == orderID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakePaymentRepo) List(ctx context.Context) ([]*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Payment, 0, len(r.items))
	for _, p := range r.items {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePaymentRepo) ListPending(ctx context.Context) ([]*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Payment{}
	for _, p := range r.items {
		if !p.Confirmed {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) Update(ctx context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) Confirm(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	p.Confirmed = true
	return nil
}

func (r *fakePaymentRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeReviewRepo struct {
	mu     sync.Mutex
	nextID int
	items  map[int]*models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{nextID: 1, items: map[int]*models.Review{}}
}

func (r *fakeReviewRepo) Create(ctx context.Context, rv *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv.ID = r.nextID
	r.nextID++
	cp := *rv
	r.items[rv.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) Get(ctx context.Context, id int) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *rv
	return &cp, nil
}

func (r *fakeReviewRepo) List(ctx context.Context) ([]*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Review, 0, len(r.items))
	for _, rv := range r.items {
		cp := *rv
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, rv *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[rv.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *rv
	r.items[rv.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// fakeMailer records sent activation mails
type fakeMailer struct {
	mu    sync.Mutex
	sent  int
	to    string
	uid   string
	token string
	fail  error
}

func (m *fakeMailer) SendActivationEmail(to, username, uid, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent++
	m.to = to
	m.uid = uid
	m.token = token
	return nil
}
