package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/temply-mn/temply-api/internal/authz"
	"github.com/temply-mn/temply-api/internal/dto"
	"github.com/temply-mn/temply-api/internal/middleware"
	"github.com/temply-mn/temply-api/internal/services"
)

type TemplateHandler struct {
	templateService *services.TemplateService
	gate            *authz.Gate
}

func NewTemplateHandler(templateService *services.TemplateService, gate *authz.Gate) *TemplateHandler {
	return &TemplateHandler{templateService: templateService, gate: gate}
}

// List handles GET /api/templates?status=&category=&search=&sort=&mine=&limit=&offset=
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	p := middleware.PrincipalFrom(c)
	list, err := h.templateService.List(c.UserContext(), p, services.ListParams{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Mine:     c.QueryBool("mine"),
		Limit:    c.QueryInt("limit"),
		Offset:   c.QueryInt("offset"),
	})
	if err != nil {
		return respondError(c, err)
	}

	out := make([]dto.TemplateResponse, 0, len(list))
	for i := range list {
		out = append(out, toTemplateResponse(&list[i], h.gate.CanRevealCanvaLink(p, &list[i])))
	}
	return c.JSON(out)
}

func (h *TemplateHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	detail, err := h.templateService.Get(c.UserContext(), middleware.PrincipalFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}

	related := make([]dto.TemplateResponse, 0, len(detail.Related))
	for i := range detail.Related {
		related = append(related, toTemplateResponse(&detail.Related[i], false))
	}
	return c.JSON(dto.TemplateDetailResponse{
		TemplateResponse: toTemplateResponse(detail.Template, detail.ShowCanvaLink),
		RelatedTemplates: related,
		Purchased:        detail.Purchased,
	})
}

func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	p := middleware.PrincipalFrom(c)
	if err := h.gate.RequireIdentity(p); err != nil {
		return respondError(c, err)
	}

	var req dto.CreateTemplateRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	tmpl, err := h.templateService.Create(c.UserContext(), p, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTemplateResponse(tmpl, true))
}

// Update handles PATCH and PUT. A status key moderates; other keys edit content.
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	p := middleware.PrincipalFrom(c)
	if err := h.gate.RequireIdentity(p); err != nil {
		return respondError(c, err)
	}

	var req dto.UpdateTemplateRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	tmpl, err := h.templateService.Update(c.UserContext(), p, id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTemplateResponse(tmpl, h.gate.CanRevealCanvaLink(p, tmpl)))
}

func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.templateService.Delete(c.UserContext(), middleware.PrincipalFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Загвар устгагдлаа"})
}
