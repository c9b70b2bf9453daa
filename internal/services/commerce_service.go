package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/temply-mn/temply-api/internal/apperr"
	"github.com/temply-mn/temply-api/internal/authz"
	"github.com/temply-mn/temply-api/internal/models"
	"github.com/temply-mn/temply-api/internal/repository"
)

// saleable loads a template a buyer wants to act on. Templates the caller
// cannot see are not found; visible but unapproved ones are not for sale.
func saleable(ctx context.Context, templates TemplateStore, gate *authz.Gate, p authz.Principal, id uuid.UUID) (*models.Template, error) {
	t, err := templates.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, apperr.MsgTemplateNotFound)
	}
	if !gate.CanSee(p, t) {
		return nil, apperr.NotFound(apperr.MsgTemplateNotFound)
	}
	if t.Status != models.StatusApproved {
		return nil, apperr.Validation(apperr.MsgNotForSale)
	}
	if t.OwnedBy(p.UserID) {
		return nil, apperr.Validation(apperr.MsgOwnTemplate)
	}
	return t, nil
}

type CartService struct {
	cart      CartStore
	templates TemplateStore
	purchases PurchaseStore
	gate      *authz.Gate
}

func NewCartService(cart CartStore, templates TemplateStore, purchases PurchaseStore, gate *authz.Gate) *CartService {
	return &CartService{cart: cart, templates: templates, purchases: purchases, gate: gate}
}

func (s *CartService) List(ctx context.Context, p authz.Principal) ([]models.CartItem, error) {
	if err := s.gate.UseCart(p); err != nil {
		return nil, err
	}
	items, err := s.cart.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return items, nil
}

func (s *CartService) Add(ctx context.Context, p authz.Principal, rawTemplateID string) (*models.CartItem, error) {
	if err := s.gate.UseCart(p); err != nil {
		return nil, err
	}
	templateID, err := parseTemplateID(rawTemplateID)
	if err != nil {
		return nil, err
	}
	t, err := saleable(ctx, s.templates, s.gate, p, templateID)
	if err != nil {
		return nil, err
	}

	purchased, err := s.purchases.Exists(ctx, p.UserID, t.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if purchased {
		return nil, apperr.Validation(apperr.MsgAlreadyPurchased)
	}
	inCart, err := s.cart.Exists(ctx, p.UserID, t.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if inCart {
		return nil, apperr.Validation(apperr.MsgAlreadyInCart)
	}

	item := &models.CartItem{UserID: p.UserID, TemplateID: t.ID}
	if err := s.cart.Add(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation(apperr.MsgAlreadyInCart)
		}
		return nil, apperr.Internal(err)
	}
	item.Template = t
	return item, nil
}

// Remove drops one template from the cart, or empties it when rawTemplateID is blank.
func (s *CartService) Remove(ctx context.Context, p authz.Principal, rawTemplateID string) error {
	if err := s.gate.UseCart(p); err != nil {
		return err
	}
	if rawTemplateID == "" {
		if err := s.cart.Clear(ctx, p.UserID); err != nil {
			return apperr.Internal(err)
		}
		return nil
	}
	templateID, err := parseTemplateID(rawTemplateID)
	if err != nil {
		return err
	}
	if err := s.cart.Remove(ctx, p.UserID, templateID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

type PurchaseService struct {
	purchases PurchaseStore
	templates TemplateStore
	gate      *authz.Gate
}

func NewPurchaseService(purchases PurchaseStore, templates TemplateStore, gate *authz.Gate) *PurchaseService {
	return &PurchaseService{purchases: purchases, templates: templates, gate: gate}
}

func (s *PurchaseService) List(ctx context.Context, p authz.Principal) ([]models.Purchase, error) {
	if err := s.gate.Purchase(p); err != nil {
		return nil, err
	}
	out, err := s.purchases.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// Create records a purchase at the template's current stored price. The
// template leaves the buyer's cart in the same transaction.
func (s *PurchaseService) Create(ctx context.Context, p authz.Principal, rawTemplateID string) (*models.Purchase, error) {
	if err := s.gate.Purchase(p); err != nil {
		return nil, err
	}
	templateID, err := parseTemplateID(rawTemplateID)
	if err != nil {
		return nil, err
	}
	t, err := saleable(ctx, s.templates, s.gate, p, templateID)
	if err != nil {
		return nil, err
	}

	already, err := s.purchases.Exists(ctx, p.UserID, t.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if already {
		return nil, apperr.Validation(apperr.MsgAlreadyPurchased)
	}

	purchase := &models.Purchase{UserID: p.UserID, TemplateID: t.ID, Amount: t.Price}
	if err := s.purchases.Create(ctx, purchase); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation(apperr.MsgAlreadyPurchased)
		}
		return nil, apperr.Internal(err)
	}
	purchase.Template = t

	slog.Info("template purchased", "template_id", t.ID, "user_id", p.UserID, "amount", purchase.Amount)
	return purchase, nil
}

type DownloadService struct {
	downloads DownloadStore
	purchases PurchaseStore
	templates TemplateStore
	gate      *authz.Gate
}

func NewDownloadService(downloads DownloadStore, purchases PurchaseStore, templates TemplateStore, gate *authz.Gate) *DownloadService {
	return &DownloadService{downloads: downloads, purchases: purchases, templates: templates, gate: gate}
}

func (s *DownloadService) List(ctx context.Context, p authz.Principal) ([]models.Download, error) {
	if err := s.gate.ListDownloads(p); err != nil {
		return nil, err
	}
	out, err := s.downloads.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// Create records a download for a purchased template and returns its Canva link.
func (s *DownloadService) Create(ctx context.Context, p authz.Principal, rawTemplateID string) (string, error) {
	if err := s.gate.RequireIdentity(p); err != nil {
		return "", err
	}
	templateID, err := parseTemplateID(rawTemplateID)
	if err != nil {
		return "", err
	}

	purchased, err := s.purchases.Exists(ctx, p.UserID, templateID)
	if err != nil {
		return "", apperr.Internal(err)
	}
	if err := s.gate.Download(p, purchased); err != nil {
		return "", err
	}

	// Deleting a template does not take it away from people who paid for it.
	t, err := s.templates.FindByIDForBuyer(ctx, templateID)
	if err != nil {
		return "", storeErr(err, apperr.MsgTemplateNotFound)
	}
	if t.CanvaLink == "" {
		return "", apperr.Validation(apperr.MsgNoCanvaLink)
	}

	if err := s.downloads.Create(ctx, &models.Download{UserID: p.UserID, TemplateID: t.ID}); err != nil {
		return "", apperr.Internal(err)
	}
	return t.CanvaLink, nil
}
