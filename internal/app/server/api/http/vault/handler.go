package vault

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"primer/internal/app/server/api/http/apierr"
	"primer/internal/app/server/api/http/middleware"
	"primer/internal/app/server/api/http/middleware/auth"
	"primer/internal/app/server/metrics"
	"primer/internal/domain/errs"
	"primer/internal/domain/vault"
)

type Handler struct {
	service vault.Servicer
	metrics *metrics.Metrics
	log     *slog.Logger
	mw      middleware.Set
}

func NewHandler(service vault.Servicer, m *metrics.Metrics, log *slog.Logger, mw middleware.Set) *Handler {
	return &Handler{
		service: service,
		metrics: m,
		log:     log.With("component", "vault_handler"),
		mw:      mw,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.setPasswordOp(), h.setPassword)
	huma.Register(api, h.unlockOp(), h.unlock)
	huma.Register(api, h.addOp(), h.add)
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.viewOp(), h.view)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) setPassword(ctx context.Context, input *vaultPasswordInput) (*messageOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.SetPassword(ctx, userID, input.Body.VaultPassword); err != nil {
		return nil, apierr.From(h.log, err)
	}
	return message("vault password set"), nil
}

func (h *Handler) unlock(ctx context.Context, input *vaultPasswordInput) (*messageOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Unlock(ctx, userID, input.Body.VaultPassword); err != nil {
		h.countVaultFailure(err)
		return nil, apierr.From(h.log, err)
	}

	h.metrics.Vault(metrics.UnlockOK)
	return message("vault unlocked"), nil
}

func (h *Handler) add(ctx context.Context, input *addInput) (*addOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	id, err := h.service.AddEntry(ctx, userID, vault.NewEntry{
		Domain:      input.Body.Domain,
		AccountName: input.Body.AccountName,
		Secret:      input.Body.Secret,
		URL:         input.Body.URL,
		Notes:       input.Body.Notes,
	})
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &addOutput{Body: AddResponse{ID: id, Message: "vault entry saved"}}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	entries, err := h.service.ListEntries(ctx, userID)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	out := make([]EntrySummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntrySummary{
			ID:          e.ID,
			Domain:      e.Domain,
			AccountName: e.AccountName,
			URL:         e.URL,
			Notes:       e.Notes,
			CreatedAt:   e.CreatedAt,
		})
	}
	return &listOutput{Body: out}, nil
}

func (h *Handler) view(ctx context.Context, input *viewInput) (*viewOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	e, err := h.service.ViewEntry(ctx, userID, input.Body.EntryID, input.Body.VaultPassword)
	if err != nil {
		h.countVaultFailure(err)
		return nil, apierr.From(h.log, err)
	}

	h.metrics.Vault(metrics.View)
	return &viewOutput{Body: ViewResponse{
		ID:          e.ID,
		Domain:      e.Domain,
		AccountName: e.AccountName,
		Secret:      e.Secret,
		URL:         e.URL,
		Notes:       e.Notes,
	}}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*messageOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	err := h.service.UpdateEntry(ctx, userID, input.EntryID, vault.Patch{
		Domain:      input.Body.Domain,
		AccountName: input.Body.AccountName,
		Secret:      input.Body.Secret,
		URL:         input.Body.URL,
		Notes:       input.Body.Notes,
	})
	if err != nil {
		return nil, apierr.From(h.log, err)
	}
	return message("vault entry updated"), nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*messageOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.DeleteEntry(ctx, userID, input.EntryID); err != nil {
		return nil, apierr.From(h.log, err)
	}
	return message("vault entry deleted"), nil
}

func (h *Handler) countVaultFailure(err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidVaultPassword), errors.Is(err, errs.ErrVaultLocked):
		h.metrics.Vault(metrics.UnlockFailed)
	case errors.Is(err, errs.ErrIntegrity):
		h.metrics.Vault(metrics.IntegrityError)
	}
}

func message(msg string) *messageOutput {
	return &messageOutput{Body: VaultMessageResponse{Message: msg}}
}
