package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/temply-mn/temply-api/internal/apperr"
	"github.com/temply-mn/temply-api/internal/dto"
	"github.com/temply-mn/temply-api/internal/models"
)

// parseID reads a uuid route parameter.
func parseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, apperr.Validation(apperr.MsgInvalidID)
	}
	return id, nil
}

// parseBody decodes a JSON body. A missing body decodes to the zero value.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return apperr.Validation(apperr.MsgInvalidBody)
	}
	return nil
}

func toTemplateResponse(t *models.Template, showCanvaLink bool) dto.TemplateResponse {
	resp := dto.TemplateResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Price:          t.Price,
		ThumbnailURL:   t.ThumbnailURL,
		PreviewImages:  nonNil(t.PreviewImages),
		Category:       t.Category,
		Tags:           nonNil(t.Tags),
		Status:         string(t.Status),
		CreatorID:      t.CreatorID,
		DownloadsCount: t.DownloadsCount,
		ViewsCount:     t.ViewsCount,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	if t.Creator != nil {
		resp.CreatorName = t.Creator.Name
	}
	if showCanvaLink {
		resp.CanvaLink = t.CanvaLink
	}
	return resp
}

// historyTemplate renders the template attached to a cart, purchase or download row.
func historyTemplate(t *models.Template, showCanvaLink bool) *dto.TemplateResponse {
	if t == nil {
		return nil
	}
	resp := toTemplateResponse(t, showCanvaLink)
	return &resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
