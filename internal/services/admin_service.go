package services

import (
	"context"

	"github.com/temply-mn/temply-api/internal/apperr"
	"github.com/temply-mn/temply-api/internal/authz"
	"github.com/temply-mn/temply-api/internal/dto"
	"golang.org/x/sync/errgroup"
)

type AdminService struct {
	templates TemplateStore
	users     UserStore
	purchases PurchaseStore
	gate      *authz.Gate
}

func NewAdminService(templates TemplateStore, users UserStore, purchases PurchaseStore, gate *authz.Gate) *AdminService {
	return &AdminService{templates: templates, users: users, purchases: purchases, gate: gate}
}

// Summary gathers the three independent aggregates concurrently.
func (s *AdminService) Summary(ctx context.Context, p authz.Principal) (*dto.AdminSummaryResponse, error) {
	if err := s.gate.ViewSummary(p); err != nil {
		return nil, err
	}

	var out dto.AdminSummaryResponse
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.TemplateCount, err = s.templates.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.UserCount, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Revenue, err = s.purchases.Revenue(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperr.Internal(err)
	}
	return &out, nil
}
