package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/temply-mn/temply-api/internal/authz"
	"github.com/temply-mn/temply-api/internal/dto"
	"github.com/temply-mn/temply-api/internal/middleware"
	"github.com/temply-mn/temply-api/internal/services"
)

type CartHandler struct {
	cartService *services.CartService
	gate        *authz.Gate
}

func NewCartHandler(cartService *services.CartService, gate *authz.Gate) *CartHandler {
	return &CartHandler{cartService: cartService, gate: gate}
}

func (h *CartHandler) List(c *fiber.Ctx) error {
	items, err := h.cartService.List(c.UserContext(), middleware.PrincipalFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CartItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.CartItemResponse{
			ID:         item.ID,
			TemplateID: item.TemplateID,
			CreatedAt:  item.CreatedAt,
			Template:   historyTemplate(item.Template, false),
		})
	}
	return c.JSON(out)
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	p := middleware.PrincipalFrom(c)
	if err := h.gate.UseCart(p); err != nil {
		return respondError(c, err)
	}

	var req dto.AddToCartRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	item, err := h.cartService.Add(c.UserContext(), p, req.ID())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CartItemResponse{
		ID:         item.ID,
		TemplateID: item.TemplateID,
		CreatedAt:  item.CreatedAt,
		Template:   historyTemplate(item.Template, false),
	})
}

// Remove handles DELETE /api/cart. With ?template_id= it removes one item,
// without it the whole cart is emptied.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	templateID := c.Query("template_id", c.Query("templateId"))
	if err := h.cartService.Remove(c.UserContext(), middleware.PrincipalFrom(c), templateID); err != nil {
		return respondError(c, err)
	}
	if templateID == "" {
		return c.JSON(dto.MessageResponse{Message: "Сагс хоослогдлоо"})
	}
	return c.JSON(dto.MessageResponse{Message: "Сагснаас хасагдлаа"})
}

type PurchaseHandler struct {
	purchaseService *services.PurchaseService
	gate            *authz.Gate
}

func NewPurchaseHandler(purchaseService *services.PurchaseService, gate *authz.Gate) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService, gate: gate}
}

// List returns the caller's purchases without Canva links; those are released
// by POST /api/downloads.
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	list, err := h.purchaseService.List(c.UserContext(), middleware.PrincipalFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.PurchaseResponse{
			ID:         p.ID,
			TemplateID: p.TemplateID,
			Amount:     p.Amount,
			CreatedAt:  p.CreatedAt,
			Template:   historyTemplate(p.Template, false),
		})
	}
	return c.JSON(out)
}

// Create handles POST /api/purchases. Any amount in the body is ignored.
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	p := middleware.PrincipalFrom(c)
	if err := h.gate.Purchase(p); err != nil {
		return respondError(c, err)
	}

	var req dto.PurchaseRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	purchase, err := h.purchaseService.Create(c.UserContext(), p, req.ID())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PurchaseResponse{
		ID:         purchase.ID,
		TemplateID: purchase.TemplateID,
		Amount:     purchase.Amount,
		CreatedAt:  purchase.CreatedAt,
		Template:   historyTemplate(purchase.Template, false),
	})
}

type DownloadHandler struct {
	downloadService *services.DownloadService
	gate            *authz.Gate
}

func NewDownloadHandler(downloadService *services.DownloadService, gate *authz.Gate) *DownloadHandler {
	return &DownloadHandler{downloadService: downloadService, gate: gate}
}

// List returns the caller's downloads, each with the Canva link it released.
func (h *DownloadHandler) List(c *fiber.Ctx) error {
	list, err := h.downloadService.List(c.UserContext(), middleware.PrincipalFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.DownloadResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.DownloadResponse{
			ID:         d.ID,
			TemplateID: d.TemplateID,
			CreatedAt:  d.CreatedAt,
			Template:   historyTemplate(d.Template, true),
		})
	}
	return c.JSON(out)
}

// Create handles POST /api/downloads and returns the Canva link of a purchased template.
func (h *DownloadHandler) Create(c *fiber.Ctx) error {
	p := middleware.PrincipalFrom(c)
	if err := h.gate.RequireIdentity(p); err != nil {
		return respondError(c, err)
	}

	var req dto.DownloadRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	link, err := h.downloadService.Create(c.UserContext(), p, req.ID())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DownloadLinkResponse{CanvaLink: link})
}
