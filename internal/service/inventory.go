package service

import (
	"context"

	"github.com/Astemirdum/circulation-service/internal/errs"
	"github.com/Astemirdum/circulation-service/internal/model"
	"github.com/Astemirdum/circulation-service/internal/repository"
	"go.uber.org/zap"
)

// itemFSM is the complete lifecycle of a physical copy. Every status write
// goes through ledger.transition, which refuses edges not listed here.
var itemFSM = map[model.ItemStatus]map[model.ItemStatus]struct{}{
	model.ItemAvailable: {
		model.ItemBorrowed: {},
		model.ItemLost:     {},
		model.ItemDamaged:  {},
	},
	model.ItemBorrowed: {
		model.ItemAvailable: {}, // returned, no queue
		model.ItemReserved:  {}, // returned, handed to next in queue
		model.ItemLost:      {}, // reported lost mid-loan
	},
	model.ItemReserved: {
		model.ItemBorrowed:  {}, // collected by the holder
		model.ItemAvailable: {}, // hold cancelled or expired
		model.ItemLost:      {},
		model.ItemDamaged:   {},
	},
	model.ItemLost: {
		model.ItemAvailable: {}, // recovered
	},
	model.ItemDamaged: {
		model.ItemAvailable: {}, // repaired
	},
}

// CanTransition reports whether the copy lifecycle permits from -> to.
func CanTransition(from, to model.ItemStatus) bool {
	_, ok := itemFSM[from][to]
	return ok
}

type inventoryLedger struct {
	log *zap.Logger
}

func newInventoryLedger(log *zap.Logger) *inventoryLedger {
	return &inventoryLedger{log: log.Named("inventory")}
}

// transition moves the copy to the target status atomically. Source statuses
// the FSM does not permit are filtered out before the compare-and-swap, so a
// copy sitting in a disallowed state surfaces as ErrConflict rather than
// being moved.
func (l *inventoryLedger) transition(ctx context.Context, r repository.Repository, barcode string, fromAllowed []model.ItemStatus, to model.ItemStatus) (model.BookItem, error) {
	valid := make([]model.ItemStatus, 0, len(fromAllowed))
	for _, from := range fromAllowed {
		if CanTransition(from, to) {
			valid = append(valid, from)
		}
	}
	if len(valid) == 0 {
		return model.BookItem{}, errs.ErrConflict
	}
	item, err := r.TransitionItem(ctx, barcode, valid, to)
	if err != nil {
		return model.BookItem{}, err
	}
	l.log.Debug("item transition",
		zap.String("barcode", barcode),
		zap.String("to", string(to)),
	)
	return item, nil
}
