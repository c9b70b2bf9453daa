// Package testutil provides an in-memory implementation of the store
// interfaces and helpers for minting access tokens in tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/temply-mn/temply-api/internal/models"
	"github.com/temply-mn/temply-api/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MemStore keeps every table in memory behind one mutex. Use the accessor
// methods to get the per-table views the services expect.
type MemStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]models.User
	templates map[uuid.UUID]models.Template
	cart      []models.CartItem
	purchases []models.Purchase
	downloads []models.Download

	// Err, when set, is returned by the aggregate reads (Count, Revenue).
	Err error
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:     make(map[uuid.UUID]models.User),
		templates: make(map[uuid.UUID]models.Template),
	}
}

func (s *MemStore) Users() *MemUsers         { return &MemUsers{s} }
func (s *MemStore) Templates() *MemTemplates { return &MemTemplates{s} }
func (s *MemStore) Cart() *MemCart           { return &MemCart{s} }
func (s *MemStore) Purchases() *MemPurchases { return &MemPurchases{s} }
func (s *MemStore) Downloads() *MemDownloads { return &MemDownloads{s} }

// SeedUser stores u and returns it with an id assigned.
func (s *MemStore) SeedUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.users[u.ID] = u
	return u
}

// SeedTemplate stores t and returns it with defaults filled in.
func (s *MemStore) SeedTemplate(t models.Template) models.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = models.StatusPending
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
		t.UpdatedAt = t.CreatedAt
	}
	s.templates[t.ID] = t
	return t
}

// SeedPurchase records a purchase without any checks.
func (s *MemStore) SeedPurchase(userID, templateID uuid.UUID, amount int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purchases = append(s.purchases, models.Purchase{
		ID: uuid.New(), UserID: userID, TemplateID: templateID, Amount: amount, CreatedAt: time.Now(),
	})
}

// TemplateByID returns the stored row, including soft-deleted ones.
func (s *MemStore) TemplateByID(id uuid.UUID) (models.Template, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.templates[id]
	return t, ok
}

func (s *MemStore) PurchaseRows() []models.Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Purchase(nil), s.purchases...)
}

func (s *MemStore) DownloadRows() []models.Download {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Download(nil), s.downloads...)
}

func (s *MemStore) CartRows() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartItem(nil), s.cart...)
}

// withCreator returns a copy of t with its creator attached. Caller holds mu.
func (s *MemStore) withCreator(t models.Template) *models.Template {
	if u, ok := s.users[t.CreatorID]; ok {
		t.Creator = &u
	}
	return &t
}

// templateRef returns a copy of the template for history preloads. Caller holds mu.
func (s *MemStore) templateRef(id uuid.UUID) *models.Template {
	t, ok := s.templates[id]
	if !ok {
		return nil
	}
	return &t
}

type MemUsers struct{ s *MemStore }

func (m *MemUsers) Create(_ context.Context, u *models.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == models.RoleNone {
		u.Role = models.RoleUser
	}
	m.s.users[u.ID] = *u
	return nil
}

func (m *MemUsers) EnsureProfile(_ context.Context, u *models.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.users[u.ID]; !ok {
		m.s.users[u.ID] = *u
	}
	return nil
}

func (m *MemUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	u, ok := m.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *MemUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MemUsers) RoleByID(_ context.Context, id uuid.UUID) (models.Role, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	u, ok := m.s.users[id]
	if !ok {
		return models.RoleNone, repository.ErrNotFound
	}
	return u.Role, nil
}

func (m *MemUsers) Count(_ context.Context) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.Err != nil {
		return 0, m.s.Err
	}
	return int64(len(m.s.users)), nil
}

type MemTemplates struct{ s *MemStore }

func (m *MemTemplates) List(_ context.Context, f repository.TemplateFilter) ([]models.Template, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	search := strings.ToLower(strings.TrimSpace(f.Search))
	var out []models.Template
	for _, t := range m.s.templates {
		if t.DeletedAt.Valid {
			continue
		}
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		if f.OwnerID != nil && t.CreatorID != *f.OwnerID {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Title+" "+t.Description+" "+strings.Join(t.Tags, " ")), search) {
			continue
		}
		out = append(out, *m.s.withCreator(t))
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch f.Sort {
		case repository.SortPrice:
			return a.Price < b.Price
		case repository.SortViewsCount:
			return a.ViewsCount > b.ViewsCount
		case repository.SortDownloadsCount:
			return a.DownloadsCount > b.DownloadsCount
		case repository.SortTitle:
			return a.Title < b.Title
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *MemTemplates) FindByID(_ context.Context, id uuid.UUID) (*models.Template, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	t, ok := m.s.templates[id]
	if !ok || t.DeletedAt.Valid {
		return nil, repository.ErrNotFound
	}
	return m.s.withCreator(t), nil
}

func (m *MemTemplates) FindByIDForBuyer(_ context.Context, id uuid.UUID) (*models.Template, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	t, ok := m.s.templates[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (m *MemTemplates) Create(_ context.Context, t *models.Template) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	m.s.templates[t.ID] = *t
	return nil
}

func (m *MemTemplates) Update(_ context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Template, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	t, ok := m.s.templates[id]
	if !ok || t.DeletedAt.Valid {
		return nil, repository.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "status":
			t.Status = v.(models.TemplateStatus)
		case "title":
			t.Title = v.(string)
		case "description":
			t.Description = v.(string)
		case "price":
			t.Price = v.(int64)
		case "thumbnail_url":
			t.ThumbnailURL = v.(string)
		case "preview_images":
			t.PreviewImages = v.(datatypes.JSONSlice[string])
		case "canva_link":
			t.CanvaLink = v.(string)
		case "category":
			t.Category = v.(string)
		case "tags":
			t.Tags = v.(datatypes.JSONSlice[string])
		}
	}
	t.UpdatedAt = time.Now()
	m.s.templates[id] = t
	return m.s.withCreator(t), nil
}

func (m *MemTemplates) Delete(_ context.Context, id uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	t, ok := m.s.templates[id]
	if !ok || t.DeletedAt.Valid {
		return repository.ErrNotFound
	}
	t.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	m.s.templates[id] = t

	kept := m.s.cart[:0]
	for _, item := range m.s.cart {
		if item.TemplateID != id {
			kept = append(kept, item)
		}
	}
	m.s.cart = kept
	return nil
}

func (m *MemTemplates) IncrementViews(_ context.Context, id uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if t, ok := m.s.templates[id]; ok {
		t.ViewsCount++
		m.s.templates[id] = t
	}
	return nil
}

func (m *MemTemplates) Related(_ context.Context, t *models.Template, limit int) ([]models.Template, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []models.Template
	for _, other := range m.s.templates {
		if other.ID == t.ID || other.DeletedAt.Valid || other.Status != models.StatusApproved || other.Category != t.Category {
			continue
		}
		out = append(out, other)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DownloadsCount > out[j].DownloadsCount })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemTemplates) Count(_ context.Context) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.Err != nil {
		return 0, m.s.Err
	}
	var n int64
	for _, t := range m.s.templates {
		if !t.DeletedAt.Valid {
			n++
		}
	}
	return n, nil
}

type MemCart struct{ s *MemStore }

func (m *MemCart) ListByUser(_ context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []models.CartItem
	for _, item := range m.s.cart {
		if item.UserID == userID {
			item.Template = m.s.templateRef(item.TemplateID)
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *MemCart) Exists(_ context.Context, userID, templateID uuid.UUID) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, item := range m.s.cart {
		if item.UserID == userID && item.TemplateID == templateID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemCart) Add(_ context.Context, item *models.CartItem) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.cart {
		if existing.UserID == item.UserID && existing.TemplateID == item.TemplateID {
			return repository.ErrDuplicate
		}
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()
	m.s.cart = append(m.s.cart, *item)
	return nil
}

func (m *MemCart) Remove(_ context.Context, userID, templateID uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.removeCart(func(item models.CartItem) bool {
		return item.UserID == userID && item.TemplateID == templateID
	})
	return nil
}

func (m *MemCart) Clear(_ context.Context, userID uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.removeCart(func(item models.CartItem) bool { return item.UserID == userID })
	return nil
}

// removeCart drops matching cart rows. Caller holds mu.
func (s *MemStore) removeCart(match func(models.CartItem) bool) {
	kept := s.cart[:0]
	for _, item := range s.cart {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	s.cart = kept
}

type MemPurchases struct{ s *MemStore }

func (m *MemPurchases) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Purchase, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []models.Purchase
	for _, p := range m.s.purchases {
		if p.UserID == userID {
			p.Template = m.s.templateRef(p.TemplateID)
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MemPurchases) Exists(_ context.Context, userID, templateID uuid.UUID) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, p := range m.s.purchases {
		if p.UserID == userID && p.TemplateID == templateID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemPurchases) Create(_ context.Context, p *models.Purchase) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.purchases {
		if existing.UserID == p.UserID && existing.TemplateID == p.TemplateID {
			return repository.ErrDuplicate
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	m.s.purchases = append(m.s.purchases, *p)
	m.s.removeCart(func(item models.CartItem) bool {
		return item.UserID == p.UserID && item.TemplateID == p.TemplateID
	})
	return nil
}

func (m *MemPurchases) Revenue(_ context.Context) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.Err != nil {
		return 0, m.s.Err
	}
	var total int64
	for _, p := range m.s.purchases {
		total += p.Amount
	}
	return total, nil
}

type MemDownloads struct{ s *MemStore }

func (m *MemDownloads) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Download, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []models.Download
	for _, d := range m.s.downloads {
		if d.UserID == userID {
			d.Template = m.s.templateRef(d.TemplateID)
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *MemDownloads) Create(_ context.Context, d *models.Download) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.CreatedAt = time.Now()
	m.s.downloads = append(m.s.downloads, *d)
	if t, ok := m.s.templates[d.TemplateID]; ok {
		t.DownloadsCount++
		m.s.templates[d.TemplateID] = t
	}
	return nil
}
