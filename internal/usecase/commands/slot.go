package commands

import (
	"context"
	"log/slog"

	"parking-reserve/internal/domain/slot"
	reqdto "parking-reserve/internal/handler/dto/request"
	"parking-reserve/internal/infra"
	"parking-reserve/internal/pkg/errs"
	"parking-reserve/internal/usecase/queries"
	"parking-reserve/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotCommands interface {
	CreateSlot(ctx context.Context, req reqdto.CreateSlotRequest) (*queries.SlotView, error)
	// OverrideStatus is the admin escape hatch; it bypasses the booking
	// ledger and writes the status column directly.
	OverrideStatus(ctx context.Context, slotID uuid.UUID, status string) (*queries.SlotView, error)
}

type slotCommandsImpl struct {
	uow         shared.UnitOfWork
	slotQueries queries.SlotQueries
	invalidator ListingInvalidator
}

func NewSlotCommands(uow shared.UnitOfWork, slotQueries queries.SlotQueries, invalidator ListingInvalidator) SlotCommands {
	return &slotCommandsImpl{
		uow:         uow,
		slotQueries: slotQueries,
		invalidator: invalidator,
	}
}

func (c *slotCommandsImpl) CreateSlot(ctx context.Context, req reqdto.CreateSlotRequest) (*queries.SlotView, error) {
	slotEntity, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var createdID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		createdID, err = tx.Slots().Create(ctx, tx.DB(), slotEntity)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.ErrDuplicateSlot
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := c.invalidator.InvalidateAll(ctx); err != nil {
		slog.Warn("failed to invalidate slot listings", "error", err.Error())
	}

	return c.slotQueries.GetByID(ctx, createdID)
}

func (c *slotCommandsImpl) OverrideStatus(ctx context.Context, slotID uuid.UUID, status string) (*queries.SlotView, error) {
	newStatus, err := slot.NewStatus(status)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Slots().UpdateStatus(ctx, tx.DB(), slotID, newStatus); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrSlotNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// best effort, stale entries expire by TTL anyway
	if err := c.invalidator.InvalidateAll(ctx); err != nil {
		slog.Warn("failed to invalidate slot listings", "error", err.Error())
	}

	return c.slotQueries.GetByID(ctx, slotID)
}
