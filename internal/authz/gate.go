// Package authz decides whether a principal may perform a marketplace
// operation. Role capabilities come from a casbin RBAC matrix; ownership,
// template visibility and purchase checks are layered on top.
//
// Every deny is an *apperr.Error of kind Unauthenticated, Forbidden or
// NotFound carrying the message shown to the caller.
package authz

import (
	"errors"
	"log/slog"

	"github.com/casbin/casbin/v2"
	"github.com/google/uuid"
	"github.com/temply-mn/temply-api/internal/apperr"
	"github.com/temply-mn/temply-api/internal/metrics"
	"github.com/temply-mn/temply-api/internal/models"
)

// Operation names, also used as the metrics label.
const (
	OpListTemplates  = "list_templates"
	OpReadTemplate   = "read_template"
	OpCreateTemplate = "create_template"
	OpChangeStatus   = "change_status"
	OpEditTemplate   = "edit_template"
	OpDeleteTemplate = "delete_template"
	OpCart           = "cart"
	OpPurchase       = "purchase"
	OpDownload       = "download"
	OpAdminSummary   = "admin_summary"
	OpAdmin          = "admin"
	OpIdentity       = "identity"
)

// ListScope narrows a template listing. A nil OwnerID means every owner.
type ListScope struct {
	Status  *models.TemplateStatus
	OwnerID *uuid.UUID
}

type Gate struct {
	enforcer *casbin.SyncedEnforcer
}

func NewGate() (*Gate, error) {
	e, err := newEnforcer()
	if err != nil {
		return nil, err
	}
	return &Gate{enforcer: e}, nil
}

// can reports whether the principal's role grants act on obj.
func (g *Gate) can(p Principal, obj, act string) bool {
	if p.Role == models.RoleNone {
		return false
	}
	ok, err := g.enforcer.Enforce(string(p.Role), obj, act)
	if err != nil {
		slog.Error("casbin enforcement failed", "role", p.Role, "object", obj, "action", act, "error", err)
		return false
	}
	return ok
}

func (g *Gate) isModerator(p Principal) bool {
	return g.can(p, objTemplate, actManage)
}

// CanSee reports whether the template is visible to the principal: APPROVED
// templates are public, the rest only to their owner and moderators.
func (g *Gate) CanSee(p Principal, t *models.Template) bool {
	return t.Status == models.StatusApproved || p.owns(t) || g.isModerator(p)
}

// CanRevealCanvaLink reports whether a template read may carry the Canva
// link. Only the owner and moderators see it there; buyers get it from a
// recorded download.
func (g *Gate) CanRevealCanvaLink(p Principal, t *models.Template) bool {
	if !p.Authenticated {
		return false
	}
	return p.owns(t) || g.isModerator(p)
}

// RequireIdentity denies anonymous callers.
func (g *Gate) RequireIdentity(p Principal) error {
	return record(OpIdentity, p, requireIdentity(p))
}

// ListTemplates resolves the filter for a listing. Without a status only
// APPROVED templates are listed. Any other status needs an identity, and
// callers without moderation rights only see their own templates. mine lists
// the caller's templates across every status unless one is given.
func (g *Gate) ListTemplates(p Principal, status *models.TemplateStatus, mine bool) (ListScope, error) {
	if mine {
		if err := requireIdentity(p); err != nil {
			return ListScope{}, record(OpListTemplates, p, err)
		}
		id := p.UserID
		return ListScope{Status: status, OwnerID: &id}, record(OpListTemplates, p, nil)
	}

	if status == nil || *status == models.StatusApproved {
		approved := models.StatusApproved
		return ListScope{Status: &approved}, record(OpListTemplates, p, nil)
	}

	if err := requireIdentity(p); err != nil {
		return ListScope{}, record(OpListTemplates, p, err)
	}
	scope := ListScope{Status: status}
	if !g.isModerator(p) {
		id := p.UserID
		scope.OwnerID = &id
	}
	return scope, record(OpListTemplates, p, nil)
}

// ReadTemplate allows reading a single template. Invisible templates are
// reported as not found.
func (g *Gate) ReadTemplate(p Principal, t *models.Template) error {
	if g.CanSee(p, t) {
		return record(OpReadTemplate, p, nil)
	}
	return record(OpReadTemplate, p, HideExistence(apperr.Forbidden(apperr.MsgTemplateNotFound)))
}

// CreateTemplate requires a role holding the template create capability.
func (g *Gate) CreateTemplate(p Principal) error {
	if err := requireRole(p); err != nil {
		return record(OpCreateTemplate, p, err)
	}
	if !g.can(p, objTemplate, actCreate) {
		return record(OpCreateTemplate, p, apperr.Forbidden(apperr.MsgCreateForbidden))
	}
	return record(OpCreateTemplate, p, nil)
}

// ChangeStatus allows moderators only, whether or not they own the template.
func (g *Gate) ChangeStatus(p Principal, t *models.Template) error {
	if err := requireIdentity(p); err != nil {
		return record(OpChangeStatus, p, err)
	}
	if !g.can(p, objTemplate, actModerate) {
		return record(OpChangeStatus, p, g.hideUnlessVisible(p, t, apperr.Forbidden(apperr.MsgStatusAdminOnly)))
	}
	return record(OpChangeStatus, p, nil)
}

// EditTemplate allows the owner or a moderator to change content fields.
func (g *Gate) EditTemplate(p Principal, t *models.Template) error {
	if err := requireIdentity(p); err != nil {
		return record(OpEditTemplate, p, err)
	}
	if !p.owns(t) && !g.isModerator(p) {
		return record(OpEditTemplate, p, g.hideUnlessVisible(p, t, apperr.Forbidden(apperr.MsgEditForbidden)))
	}
	return record(OpEditTemplate, p, nil)
}

// DeleteTemplate allows the owner or a moderator.
func (g *Gate) DeleteTemplate(p Principal, t *models.Template) error {
	if err := requireIdentity(p); err != nil {
		return record(OpDeleteTemplate, p, err)
	}
	if !p.owns(t) && !g.isModerator(p) {
		return record(OpDeleteTemplate, p, g.hideUnlessVisible(p, t, apperr.Forbidden(apperr.MsgDeleteForbidden)))
	}
	return record(OpDeleteTemplate, p, nil)
}

// UseCart covers reading and changing the caller's cart. Creators sell and
// never buy.
func (g *Gate) UseCart(p Principal) error {
	return record(OpCart, p, g.shop(p, objCart))
}

// Purchase covers listing and making purchases, with the same buyer rule as the cart.
func (g *Gate) Purchase(p Principal) error {
	return record(OpPurchase, p, g.shop(p, objPurchase))
}

func (g *Gate) shop(p Principal, obj string) error {
	if err := requireRole(p); err != nil {
		return err
	}
	if !g.can(p, obj, actUse) {
		return apperr.Forbidden(apperr.MsgCreatorCannotBuy)
	}
	return nil
}

// ListDownloads only needs an identity; the list is the caller's own.
func (g *Gate) ListDownloads(p Principal) error {
	return record(OpDownload, p, requireIdentity(p))
}

// Download allows issuing a download only to a caller holding a purchase of
// the template. A missing purchase is Forbidden since the template exists.
func (g *Gate) Download(p Principal, purchased bool) error {
	if err := requireIdentity(p); err != nil {
		return record(OpDownload, p, err)
	}
	if !purchased {
		return record(OpDownload, p, apperr.Forbidden(apperr.MsgDownloadForbidden))
	}
	return record(OpDownload, p, nil)
}

// ViewSummary allows the aggregate back-office numbers to admins only.
func (g *Gate) ViewSummary(p Principal) error {
	return record(OpAdminSummary, p, g.requireAdmin(p))
}

// RequireAdmin guards every back-office route.
func (g *Gate) RequireAdmin(p Principal) error {
	return record(OpAdmin, p, g.requireAdmin(p))
}

func (g *Gate) requireAdmin(p Principal) error {
	if err := requireIdentity(p); err != nil {
		return err
	}
	if !g.can(p, objSummary, actRead) {
		return apperr.Forbidden(apperr.MsgAdminOnly)
	}
	return nil
}

func (g *Gate) hideUnlessVisible(p Principal, t *models.Template, err error) error {
	if g.CanSee(p, t) {
		return err
	}
	return HideExistence(err)
}

// HideExistence reports a Forbidden decision on a template as not found, so
// status codes never reveal that a hidden template exists. Other errors pass
// through unchanged.
func HideExistence(err error) error {
	if apperr.IsKind(err, apperr.KindForbidden) {
		return apperr.NotFound(apperr.MsgTemplateNotFound)
	}
	return err
}

func requireIdentity(p Principal) error {
	if !p.Authenticated {
		return apperr.Unauthenticated(apperr.MsgLoginRequired)
	}
	return nil
}

func requireRole(p Principal) error {
	if err := requireIdentity(p); err != nil {
		return err
	}
	if p.Role == models.RoleNone {
		return apperr.Forbidden(apperr.MsgRoleMissing)
	}
	return nil
}

func record(op string, p Principal, err error) error {
	decision := "allow"
	if err != nil {
		var e *apperr.Error
		if errors.As(err, &e) {
			decision = e.Kind.String()
		} else {
			decision = "error"
		}
	}
	metrics.AuthzDecisions.WithLabelValues(op, p.roleLabel(), decision).Inc()
	return err
}
