package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/temply-mn/temply-api/internal/apperr"
	"github.com/temply-mn/temply-api/internal/authz"
	"github.com/temply-mn/temply-api/internal/dto"
	"github.com/temply-mn/temply-api/internal/models"
	"github.com/temply-mn/temply-api/internal/repository"
	"github.com/temply-mn/temply-api/internal/validation"
	"gorm.io/datatypes"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
	relatedLimit     = 3
)

// ListParams are the query parameters of a template listing.
type ListParams struct {
	Status   string
	Category string
	Search   string
	Sort     string
	Mine     bool
	Limit    int
	Offset   int
}

// TemplateDetail is a single template together with what the caller may see of it.
type TemplateDetail struct {
	Template      *models.Template
	Related       []models.Template
	Purchased     bool
	ShowCanvaLink bool
}

type TemplateService struct {
	templates TemplateStore
	users     UserStore
	purchases PurchaseStore
	gate      *authz.Gate
	filter    *ContentFilter
}

func NewTemplateService(templates TemplateStore, users UserStore, purchases PurchaseStore, gate *authz.Gate, filter *ContentFilter) *TemplateService {
	return &TemplateService{
		templates: templates,
		users:     users,
		purchases: purchases,
		gate:      gate,
		filter:    filter,
	}
}

func (s *TemplateService) List(ctx context.Context, p authz.Principal, params ListParams) ([]models.Template, error) {
	var status *models.TemplateStatus
	if raw := strings.ToUpper(strings.TrimSpace(params.Status)); raw != "" {
		st, ok := models.ParseTemplateStatus(raw)
		if !ok {
			return nil, apperr.Validation(apperr.MsgInvalidStatus)
		}
		status = &st
	}
	if params.Sort != "" && !repository.ValidSort(params.Sort) {
		return nil, apperr.Validation(apperr.MsgInvalidSort)
	}

	scope, err := s.gate.ListTemplates(p, status, params.Mine)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	out, err := s.templates.List(ctx, repository.TemplateFilter{
		Status:   scope.Status,
		OwnerID:  scope.OwnerID,
		Category: strings.TrimSpace(params.Category),
		Search:   params.Search,
		Sort:     params.Sort,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// Get reads one template. Reads of APPROVED templates count as views.
func (s *TemplateService) Get(ctx context.Context, p authz.Principal, id uuid.UUID) (*TemplateDetail, error) {
	t, err := s.templates.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, apperr.MsgTemplateNotFound)
	}
	if err := s.gate.ReadTemplate(p, t); err != nil {
		return nil, err
	}

	if t.Status == models.StatusApproved {
		if err := s.templates.IncrementViews(ctx, t.ID); err != nil {
			slog.Warn("failed to count template view", "template_id", t.ID, "error", err)
		} else {
			t.ViewsCount++
		}
	}

	related, err := s.templates.Related(ctx, t, relatedLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	purchased := false
	if p.Authenticated {
		if purchased, err = s.purchases.Exists(ctx, p.UserID, t.ID); err != nil {
			return nil, apperr.Internal(err)
		}
	}

	return &TemplateDetail{
		Template:      t,
		Related:       related,
		Purchased:     purchased,
		ShowCanvaLink: s.gate.CanRevealCanvaLink(p, t),
	}, nil
}

// Create stores a new template owned by the caller. Status is always PENDING.
func (s *TemplateService) Create(ctx context.Context, p authz.Principal, req *dto.CreateTemplateRequest) (*models.Template, error) {
	if err := s.gate.CreateTemplate(p); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	tags := normalizeTags(req.Tags)
	if err := s.filter.Check(append([]string{req.Title, req.Description}, tags...)...); err != nil {
		return nil, err
	}

	creator := &models.User{ID: p.UserID, Email: p.Email, Name: p.Name, Role: p.Role}
	if err := s.users.EnsureProfile(ctx, creator); err != nil {
		return nil, apperr.Internal(err)
	}

	previews := req.PreviewImages
	if previews == nil {
		previews = []string{}
	}
	t := &models.Template{
		Title:         req.Title,
		Description:   req.Description,
		Price:         *req.Price,
		ThumbnailURL:  req.ThumbnailURL,
		PreviewImages: datatypes.JSONSlice[string](previews),
		CanvaLink:     req.CanvaLink,
		Category:      req.Category,
		Tags:          datatypes.JSONSlice[string](tags),
		Status:        models.StatusPending,
		CreatorID:     p.UserID,
	}
	if err := s.templates.Create(ctx, t); err != nil {
		return nil, apperr.Internal(err)
	}
	t.Creator = creator

	slog.Info("template created", "template_id", t.ID, "creator_id", p.UserID)
	return t, nil
}

// Update applies a moderation decision, a content edit, or both. Each part is
// authorized on its own before anything is written.
func (s *TemplateService) Update(ctx context.Context, p authz.Principal, id uuid.UUID, req *dto.UpdateTemplateRequest) (*models.Template, error) {
	if err := s.gate.RequireIdentity(p); err != nil {
		return nil, err
	}
	if req.Status == nil && !req.HasContent() {
		return nil, apperr.Validation(apperr.MsgNothingToUpdate)
	}

	t, err := s.templates.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, apperr.MsgTemplateNotFound)
	}

	if req.Status != nil {
		if err := s.gate.ChangeStatus(p, t); err != nil {
			return nil, err
		}
	}
	if req.HasContent() {
		if err := s.gate.EditTemplate(p, t); err != nil {
			return nil, err
		}
	}

	fields := make(map[string]interface{})
	if req.Status != nil {
		to, ok := models.ParseTemplateStatus(strings.ToUpper(strings.TrimSpace(*req.Status)))
		if !ok {
			return nil, apperr.Validation(apperr.MsgInvalidStatus)
		}
		if !models.CanTransition(t.Status, to) {
			return nil, apperr.Validation(apperr.MsgStatusFinal)
		}
		fields["status"] = to
	}
	if req.HasContent() {
		req.Normalize()
		if err := validation.Struct(req); err != nil {
			return nil, err
		}
		if err := s.contentFields(req, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.templates.Update(ctx, t.ID, fields)
	if err != nil {
		return nil, storeErr(err, apperr.MsgTemplateNotFound)
	}

	if to, ok := fields["status"]; ok {
		slog.Info("template moderated", "template_id", t.ID, "from", t.Status, "to", to, "admin_id", p.UserID)
	}
	return updated, nil
}

func (s *TemplateService) contentFields(req *dto.UpdateTemplateRequest, fields map[string]interface{}) error {
	var screened []string
	if req.Title != nil {
		fields["title"] = *req.Title
		screened = append(screened, *req.Title)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
		screened = append(screened, *req.Description)
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.ThumbnailURL != nil {
		fields["thumbnail_url"] = *req.ThumbnailURL
	}
	if req.PreviewImages != nil {
		fields["preview_images"] = datatypes.JSONSlice[string](*req.PreviewImages)
	}
	if req.CanvaLink != nil {
		fields["canva_link"] = *req.CanvaLink
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Tags != nil {
		tags := normalizeTags(*req.Tags)
		fields["tags"] = datatypes.JSONSlice[string](tags)
		screened = append(screened, tags...)
	}
	return s.filter.Check(screened...)
}

// Delete soft-deletes the template and removes it from every cart.
func (s *TemplateService) Delete(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	if err := s.gate.RequireIdentity(p); err != nil {
		return err
	}
	t, err := s.templates.FindByID(ctx, id)
	if err != nil {
		return storeErr(err, apperr.MsgTemplateNotFound)
	}
	if err := s.gate.DeleteTemplate(p, t); err != nil {
		return err
	}
	if err := s.templates.Delete(ctx, t.ID); err != nil {
		return storeErr(err, apperr.MsgTemplateNotFound)
	}
	slog.Info("template deleted", "template_id", t.ID, "by", p.UserID)
	return nil
}
