package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/temply-mn/temply-api/internal/apperr"
	"github.com/temply-mn/temply-api/internal/authz"
	"github.com/temply-mn/temply-api/internal/config"
	"github.com/temply-mn/temply-api/internal/dto"
	"github.com/temply-mn/temply-api/internal/identity"
	"github.com/temply-mn/temply-api/internal/models"
	"github.com/temply-mn/temply-api/internal/testutil"
)

type env struct {
	store     *testutil.MemStore
	templates *TemplateService
	cart      *CartService
	purchases *PurchaseService
	downloads *DownloadService
	admin     *AdminService
	auth      *AuthService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gate, err := authz.NewGate()
	if err != nil {
		t.Fatalf("NewGate: %v", err)
	}
	store := testutil.NewMemStore()
	cfg := &config.Config{LocalAuthEnabled: true, JWTIssuer: "temply", JWTAccessExpiry: time.Hour}

	return &env{
		store:     store,
		templates: NewTemplateService(store.Templates(), store.Users(), store.Purchases(), gate, NewContentFilter()),
		cart:      NewCartService(store.Cart(), store.Templates(), store.Purchases(), gate),
		purchases: NewPurchaseService(store.Purchases(), store.Templates(), gate),
		downloads: NewDownloadService(store.Downloads(), store.Purchases(), store.Templates(), gate),
		admin:     NewAdminService(store.Templates(), store.Users(), store.Purchases(), gate),
		auth:      NewAuthService(store.Users(), identity.NewJWTProvider(testutil.JWTSecret), gate, cfg),
	}
}

func caller(role models.Role) authz.Principal {
	return authz.Principal{UserID: uuid.New(), Email: "x@example.mn", Name: "Тест", Role: role, Authenticated: true}
}

func price(v int64) *int64 { return &v }

func str(s string) *string { return &s }

func createReq() *dto.CreateTemplateRequest {
	return &dto.CreateTemplateRequest{
		Title:       "Хурмын урилга",
		Description: "Хуримын урилгын загвар",
		Price:       price(15000),
		CanvaLink:   "https://www.canva.com/design/abc/view",
		Category:    "invitation",
		Tags:        []string{"хурим", "урилга", "Хурим", " "},
	}
}

func wantKind(t *testing.T, err error, k apperr.Kind) {
	t.Helper()
	if !apperr.IsKind(err, k) {
		t.Fatalf("err = %v, want kind %v", err, k)
	}
}

func TestCreateForcesPendingAndOwner(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	creator := caller(models.RoleCreator)

	tmpl, err := e.templates.Create(ctx, creator, createReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tmpl.Status != models.StatusPending {
		t.Errorf("status = %s, want PENDING", tmpl.Status)
	}
	if tmpl.CreatorID != creator.UserID {
		t.Errorf("creator = %s, want %s", tmpl.CreatorID, creator.UserID)
	}
	if len(tmpl.Tags) != 2 {
		t.Errorf("tags = %v, want de-duplicated pair", tmpl.Tags)
	}
	if _, err := e.store.Users().FindByID(ctx, creator.UserID); err != nil {
		t.Errorf("creator profile not stored: %v", err)
	}
}

func TestCreateDenials(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.templates.Create(ctx, authz.Anonymous(), createReq())
	wantKind(t, err, apperr.KindUnauthenticated)

	_, err = e.templates.Create(ctx, caller(models.RoleUser), createReq())
	wantKind(t, err, apperr.KindForbidden)

	missing := createReq()
	missing.Price = nil
	_, err = e.templates.Create(ctx, caller(models.RoleCreator), missing)
	wantKind(t, err, apperr.KindValidation)

	negative := createReq()
	negative.Price = price(-1)
	_, err = e.templates.Create(ctx, caller(models.RoleCreator), negative)
	wantKind(t, err, apperr.KindValidation)

	contact := createReq()
	contact.Description = "Захиалга: 9911 2233"
	_, err = e.templates.Create(ctx, caller(models.RoleCreator), contact)
	wantKind(t, err, apperr.KindValidation)
	if apperr.MessageOf(err) != apperr.MsgContactNotAllowed {
		t.Errorf("message = %q", apperr.MessageOf(err))
	}
}

func TestModerationScenario(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	creator := caller(models.RoleCreator)
	admin := caller(models.RoleAdmin)

	tmpl, err := e.templates.Create(ctx, creator, createReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = e.templates.Get(ctx, authz.Anonymous(), tmpl.ID)
	wantKind(t, err, apperr.KindNotFound)

	_, err = e.templates.Update(ctx, creator, tmpl.ID, &dto.UpdateTemplateRequest{Status: str("APPROVED")})
	wantKind(t, err, apperr.KindForbidden)

	updated, err := e.templates.Update(ctx, admin, tmpl.ID, &dto.UpdateTemplateRequest{Status: str("approved")})
	if err != nil {
		t.Fatalf("admin approve: %v", err)
	}
	if updated.Status != models.StatusApproved {
		t.Fatalf("status = %s, want APPROVED", updated.Status)
	}

	detail, err := e.templates.Get(ctx, authz.Anonymous(), tmpl.ID)
	if err != nil {
		t.Fatalf("anonymous read after approval: %v", err)
	}
	if detail.ShowCanvaLink {
		t.Error("anonymous caller must not see the canva link")
	}
	if detail.Template.ViewsCount != 1 {
		t.Errorf("views = %d, want 1", detail.Template.ViewsCount)
	}

	_, err = e.templates.Update(ctx, admin, tmpl.ID, &dto.UpdateTemplateRequest{Status: str("REJECTED")})
	wantKind(t, err, apperr.KindValidation)
}

func TestUpdateStatusValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := caller(models.RoleAdmin)
	tmpl := e.store.SeedTemplate(models.Template{Title: "A", CreatorID: uuid.New()})

	_, err := e.templates.Update(ctx, admin, tmpl.ID, &dto.UpdateTemplateRequest{Status: str("PUBLISHED")})
	wantKind(t, err, apperr.KindValidation)

	_, err = e.templates.Update(ctx, admin, tmpl.ID, &dto.UpdateTemplateRequest{Status: str("PENDING")})
	wantKind(t, err, apperr.KindValidation)

	_, err = e.templates.Update(ctx, admin, tmpl.ID, &dto.UpdateTemplateRequest{})
	wantKind(t, err, apperr.KindValidation)

	_, err = e.templates.Update(ctx, admin, uuid.New(), &dto.UpdateTemplateRequest{Status: str("APPROVED")})
	wantKind(t, err, apperr.KindNotFound)
}

func TestContentEditOwnership(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := caller(models.RoleCreator)
	tmpl := e.store.SeedTemplate(models.Template{Title: "Old", CreatorID: owner.UserID, Status: models.StatusApproved})

	_, err := e.templates.Update(ctx, caller(models.RoleCreator), tmpl.ID, &dto.UpdateTemplateRequest{Title: str("Stolen")})
	wantKind(t, err, apperr.KindForbidden)

	_, err = e.templates.Update(ctx, authz.Anonymous(), tmpl.ID, &dto.UpdateTemplateRequest{Title: str("Anon")})
	wantKind(t, err, apperr.KindUnauthenticated)

	// An owner sending status along with content still needs admin rights.
	_, err = e.templates.Update(ctx, owner, tmpl.ID, &dto.UpdateTemplateRequest{Title: str("New"), Status: str("APPROVED")})
	wantKind(t, err, apperr.KindForbidden)

	got, err := e.templates.Update(ctx, owner, tmpl.ID, &dto.UpdateTemplateRequest{Title: str("New title"), Price: price(9900)})
	if err != nil {
		t.Fatalf("owner edit: %v", err)
	}
	if got.Title != "New title" || got.Price != 9900 {
		t.Errorf("edit not applied: %+v", got)
	}

	got, err = e.templates.Update(ctx, caller(models.RoleAdmin), tmpl.ID, &dto.UpdateTemplateRequest{Category: str(" poster ")})
	if err != nil || got.Category != "poster" {
		t.Errorf("admin edit = %+v, %v", got, err)
	}

	for name, req := range map[string]*dto.UpdateTemplateRequest{
		"blank title":    {Title: str("   ")},
		"blank category": {Category: str(" \t")},
	} {
		_, err = e.templates.Update(ctx, owner, tmpl.ID, req)
		if !apperr.IsKind(err, apperr.KindValidation) {
			t.Errorf("%s: err = %v, want validation", name, err)
		}
	}
	if stored, _ := e.store.TemplateByID(tmpl.ID); stored.Title != "New title" || stored.Category != "poster" {
		t.Errorf("blank edit was stored: title %q category %q", stored.Title, stored.Category)
	}
}

func TestCreateRejectsBlankText(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	creator := caller(models.RoleCreator)

	blankTitle := createReq()
	blankTitle.Title = "    "
	_, err := e.templates.Create(ctx, creator, blankTitle)
	wantKind(t, err, apperr.KindValidation)

	blankCategory := createReq()
	blankCategory.Category = "  "
	_, err = e.templates.Create(ctx, creator, blankCategory)
	wantKind(t, err, apperr.KindValidation)

	padded := createReq()
	padded.Title = "  Хуримын урилга  "
	tmpl, err := e.templates.Create(ctx, creator, padded)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tmpl.Title != "Хуримын урилга" {
		t.Errorf("title = %q, want trimmed", tmpl.Title)
	}
}

func TestDeleteRemovesFromCarts(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := caller(models.RoleCreator)
	buyer := caller(models.RoleUser)
	tmpl := e.store.SeedTemplate(models.Template{Title: "T", CreatorID: owner.UserID, Status: models.StatusApproved})

	if _, err := e.cart.Add(ctx, buyer, tmpl.ID.String()); err != nil {
		t.Fatalf("cart add: %v", err)
	}

	wantKind(t, e.templates.Delete(ctx, buyer, tmpl.ID), apperr.KindForbidden)

	if err := e.templates.Delete(ctx, owner, tmpl.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if rows := e.store.CartRows(); len(rows) != 0 {
		t.Errorf("cart rows = %d, want 0", len(rows))
	}
	_, err := e.templates.Get(ctx, owner, tmpl.ID)
	wantKind(t, err, apperr.KindNotFound)
}

func TestListScopes(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	creator := caller(models.RoleCreator)
	other := uuid.New()

	e.store.SeedTemplate(models.Template{Title: "mine pending", CreatorID: creator.UserID})
	e.store.SeedTemplate(models.Template{Title: "other pending", CreatorID: other})
	e.store.SeedTemplate(models.Template{Title: "approved", CreatorID: other, Status: models.StatusApproved})

	list, err := e.templates.List(ctx, authz.Anonymous(), ListParams{})
	if err != nil || len(list) != 1 || list[0].Title != "approved" {
		t.Errorf("public list = %v, %v", list, err)
	}

	list, err = e.templates.List(ctx, creator, ListParams{Status: "pending"})
	if err != nil || len(list) != 1 || list[0].Title != "mine pending" {
		t.Errorf("creator pending list = %v, %v", list, err)
	}

	list, err = e.templates.List(ctx, caller(models.RoleAdmin), ListParams{Status: "PENDING"})
	if err != nil || len(list) != 2 {
		t.Errorf("admin pending list = %d items, %v", len(list), err)
	}

	_, err = e.templates.List(ctx, authz.Anonymous(), ListParams{Status: "PENDING"})
	wantKind(t, err, apperr.KindUnauthenticated)

	_, err = e.templates.List(ctx, authz.Anonymous(), ListParams{Sort: "random"})
	wantKind(t, err, apperr.KindValidation)
}

func TestPurchaseUsesServerPrice(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	buyer := caller(models.RoleUser)
	tmpl := e.store.SeedTemplate(models.Template{Title: "T", Price: 25000, CreatorID: uuid.New(), Status: models.StatusApproved})

	if _, err := e.cart.Add(ctx, buyer, tmpl.ID.String()); err != nil {
		t.Fatalf("cart add: %v", err)
	}

	p, err := e.purchases.Create(ctx, buyer, tmpl.ID.String())
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if p.Amount != 25000 {
		t.Errorf("amount = %d, want 25000", p.Amount)
	}
	if rows := e.store.CartRows(); len(rows) != 0 {
		t.Errorf("purchased template still in cart")
	}

	_, err = e.purchases.Create(ctx, buyer, tmpl.ID.String())
	wantKind(t, err, apperr.KindValidation)
}

func TestPurchaseRejections(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	buyer := caller(models.RoleUser)
	pending := e.store.SeedTemplate(models.Template{Title: "P", CreatorID: buyer.UserID})
	approvedOwn := e.store.SeedTemplate(models.Template{Title: "O", CreatorID: buyer.UserID, Status: models.StatusApproved})
	hidden := e.store.SeedTemplate(models.Template{Title: "H", CreatorID: uuid.New()})

	tests := []struct {
		name string
		p    authz.Principal
		id   string
		want apperr.Kind
	}{
		{"anonymous", authz.Anonymous(), pending.ID.String(), apperr.KindUnauthenticated},
		{"creator", caller(models.RoleCreator), approvedOwn.ID.String(), apperr.KindForbidden},
		{"role none", caller(models.RoleNone), approvedOwn.ID.String(), apperr.KindForbidden},
		{"missing id", buyer, "", apperr.KindValidation},
		{"bad id", buyer, "nope", apperr.KindValidation},
		{"unknown template", buyer, uuid.NewString(), apperr.KindNotFound},
		{"own pending", buyer, pending.ID.String(), apperr.KindValidation},
		{"own approved", buyer, approvedOwn.ID.String(), apperr.KindValidation},
		{"someone else's pending", buyer, hidden.ID.String(), apperr.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.purchases.Create(ctx, tt.p, tt.id)
			wantKind(t, err, tt.want)
		})
	}
	if rows := e.store.PurchaseRows(); len(rows) != 0 {
		t.Errorf("purchase rows = %d, want 0", len(rows))
	}
}

func TestCartRules(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	buyer := caller(models.RoleUser)
	a := e.store.SeedTemplate(models.Template{Title: "A", CreatorID: uuid.New(), Status: models.StatusApproved})
	b := e.store.SeedTemplate(models.Template{Title: "B", CreatorID: uuid.New(), Status: models.StatusApproved})

	_, err := e.cart.Add(ctx, caller(models.RoleCreator), a.ID.String())
	wantKind(t, err, apperr.KindForbidden)
	_, err = e.cart.List(ctx, caller(models.RoleCreator))
	wantKind(t, err, apperr.KindForbidden)

	if _, err := e.cart.Add(ctx, buyer, a.ID.String()); err != nil {
		t.Fatalf("add a: %v", err)
	}
	_, err = e.cart.Add(ctx, buyer, a.ID.String())
	wantKind(t, err, apperr.KindValidation)

	e.store.SeedPurchase(buyer.UserID, b.ID, b.Price)
	_, err = e.cart.Add(ctx, buyer, b.ID.String())
	wantKind(t, err, apperr.KindValidation)

	items, err := e.cart.List(ctx, buyer)
	if err != nil || len(items) != 1 || items[0].Template == nil {
		t.Fatalf("cart list = %v, %v", items, err)
	}

	if err := e.cart.Remove(ctx, buyer, a.ID.String()); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := e.cart.Add(ctx, buyer, a.ID.String()); err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if err := e.cart.Remove(ctx, buyer, ""); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if items, _ := e.cart.List(ctx, buyer); len(items) != 0 {
		t.Errorf("cart not cleared: %d items", len(items))
	}
}

func TestDownloadRequiresPurchase(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	buyer := caller(models.RoleUser)
	tmpl := e.store.SeedTemplate(models.Template{
		Title: "T", CreatorID: uuid.New(), Status: models.StatusApproved, CanvaLink: "https://canva.com/d/1",
	})

	_, err := e.downloads.Create(ctx, buyer, tmpl.ID.String())
	wantKind(t, err, apperr.KindForbidden)
	if rows := e.store.DownloadRows(); len(rows) != 0 {
		t.Fatalf("download row created without purchase")
	}

	e.store.SeedPurchase(buyer.UserID, tmpl.ID, 0)
	link, err := e.downloads.Create(ctx, buyer, tmpl.ID.String())
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if link != tmpl.CanvaLink {
		t.Errorf("link = %q", link)
	}
	stored, _ := e.store.TemplateByID(tmpl.ID)
	if stored.DownloadsCount != 1 {
		t.Errorf("downloads_count = %d, want 1", stored.DownloadsCount)
	}

	noLink := e.store.SeedTemplate(models.Template{Title: "N", CreatorID: uuid.New(), Status: models.StatusApproved})
	e.store.SeedPurchase(buyer.UserID, noLink.ID, 0)
	_, err = e.downloads.Create(ctx, buyer, noLink.ID.String())
	wantKind(t, err, apperr.KindValidation)

	_, err = e.downloads.Create(ctx, authz.Anonymous(), tmpl.ID.String())
	wantKind(t, err, apperr.KindUnauthenticated)
}

func TestDownloadSurvivesTemplateDeletion(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := caller(models.RoleCreator)
	buyer := caller(models.RoleUser)
	tmpl := e.store.SeedTemplate(models.Template{
		Title: "T", CreatorID: owner.UserID, Status: models.StatusApproved, CanvaLink: "https://canva.com/d/2",
	})

	if _, err := e.purchases.Create(ctx, buyer, tmpl.ID.String()); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if err := e.templates.Delete(ctx, owner, tmpl.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	link, err := e.downloads.Create(ctx, buyer, tmpl.ID.String())
	if err != nil {
		t.Fatalf("download after delete: %v", err)
	}
	if link != tmpl.CanvaLink {
		t.Errorf("link = %q", link)
	}

	// Without a purchase the deleted template stays out of reach.
	_, err = e.downloads.Create(ctx, caller(models.RoleUser), tmpl.ID.String())
	wantKind(t, err, apperr.KindForbidden)
}

// racingPurchases reports no earlier purchase, as when two requests pass the
// check at the same time; the store's unique index has the last word.
type racingPurchases struct {
	*testutil.MemPurchases
}

func (racingPurchases) Exists(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

func TestConcurrentPurchaseChargedOnce(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	gate, err := authz.NewGate()
	if err != nil {
		t.Fatalf("NewGate: %v", err)
	}
	svc := NewPurchaseService(racingPurchases{e.store.Purchases()}, e.store.Templates(), gate)
	buyer := caller(models.RoleUser)
	tmpl := e.store.SeedTemplate(models.Template{Title: "T", Price: 700, CreatorID: uuid.New(), Status: models.StatusApproved})

	if _, err := svc.Create(ctx, buyer, tmpl.ID.String()); err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	_, err = svc.Create(ctx, buyer, tmpl.ID.String())
	wantKind(t, err, apperr.KindValidation)
	if msg := apperr.MessageOf(err); msg != apperr.MsgAlreadyPurchased {
		t.Errorf("message = %q", msg)
	}
	if rows := e.store.PurchaseRows(); len(rows) != 1 {
		t.Errorf("purchase rows = %d, want 1", len(rows))
	}
}

func TestAdminSummary(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.store.SeedUser(models.User{Email: "a@example.mn", Role: models.RoleUser})
	tmpl := e.store.SeedTemplate(models.Template{Title: "T", CreatorID: uuid.New(), Status: models.StatusApproved})
	e.store.SeedPurchase(uuid.New(), tmpl.ID, 1200)
	e.store.SeedPurchase(uuid.New(), tmpl.ID, 800)

	_, err := e.admin.Summary(ctx, caller(models.RoleCreator))
	wantKind(t, err, apperr.KindForbidden)

	sum, err := e.admin.Summary(ctx, caller(models.RoleAdmin))
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TemplateCount != 1 || sum.UserCount != 1 || sum.Revenue != 2000 {
		t.Errorf("summary = %+v", sum)
	}

	e.store.Err = errors.New("connection refused")
	_, err = e.admin.Summary(ctx, caller(models.RoleAdmin))
	wantKind(t, err, apperr.KindInternal)
	if apperr.MessageOf(err) != apperr.MsgInternal {
		t.Errorf("internal error leaked message %q", apperr.MessageOf(err))
	}
}

func TestRegisterLoginMe(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.auth.Register(ctx, &dto.RegisterRequest{Email: "a@example.mn", Password: "password1", Name: "A", Role: "ADMIN"})
	wantKind(t, err, apperr.KindValidation)

	_, err = e.auth.Register(ctx, &dto.RegisterRequest{Email: "a@example.mn", Password: "passwordonly", Name: "A"})
	wantKind(t, err, apperr.KindValidation)

	resp, err := e.auth.Register(ctx, &dto.RegisterRequest{Email: "Dulmaa@Example.mn", Password: "password1", Name: "Дулмаа", Role: "CREATOR"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.User.Role != "CREATOR" || resp.AccessToken == "" {
		t.Errorf("register response = %+v", resp)
	}

	_, err = e.auth.Register(ctx, &dto.RegisterRequest{Email: "dulmaa@example.mn", Password: "password2", Name: "Copy"})
	wantKind(t, err, apperr.KindValidation)

	_, err = e.auth.Login(ctx, &dto.LoginRequest{Email: "dulmaa@example.mn", Password: "wrong"})
	wantKind(t, err, apperr.KindUnauthenticated)

	login, err := e.auth.Login(ctx, &dto.LoginRequest{Email: "dulmaa@example.mn", Password: "password1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	ident, err := identity.NewJWTProvider(testutil.JWTSecret).GetUser(ctx, login.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if ident.RoleClaim != models.RoleCreator {
		t.Errorf("role claim = %q", ident.RoleClaim)
	}

	me, err := e.auth.Me(ctx, authz.Principal{UserID: ident.ID, Role: ident.RoleClaim, Authenticated: true})
	if err != nil || me.Email != "dulmaa@example.mn" || me.Name != "Дулмаа" {
		t.Errorf("Me = %+v, %v", me, err)
	}

	_, err = e.auth.Me(ctx, authz.Anonymous())
	wantKind(t, err, apperr.KindUnauthenticated)
}

func TestLocalAuthDisabled(t *testing.T) {
	e := newEnv(t)
	e.auth.cfg = &config.Config{LocalAuthEnabled: false}

	_, err := e.auth.Login(context.Background(), &dto.LoginRequest{Email: "a@example.mn", Password: "x"})
	wantKind(t, err, apperr.KindForbidden)
}

func TestContentFilter(t *testing.T) {
	f := NewContentFilter()
	tests := []struct {
		text string
		want string
	}{
		{"Төрсөн өдрийн урилга", ""},
		{"Энгийн, цэвэрхэн загвар 2024", ""},
		{"visit www.example.com now", apperr.MsgContactNotAllowed},
		{"бичээрэй me@example.com", apperr.MsgContactNotAllowed},
		{"утас +976 9911-2233", apperr.MsgContactNotAllowed},
		{"залгаарай 99112233", apperr.MsgContactNotAllowed},
		{"Хэмжээ 1080 1920 пиксел", ""},
		{"1080x1920, 2024-2025 он", ""},
		{"free porn templates", apperr.MsgContentRejected},
		{"Scammer alert", apperr.MsgContentRejected},
	}
	for _, tt := range tests {
		err := f.Check(tt.text)
		got := ""
		if err != nil {
			got = apperr.MessageOf(err)
		}
		if got != tt.want {
			t.Errorf("Check(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
