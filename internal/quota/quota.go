// Package quota ограничивает число новых комментариев на владельца сайта за календарный месяц.
package quota

import "context"

// Slot - занятое место в квоте: владелец и месяц (YYYY-MM), в котором оно занято.
// Release возвращает место именно в этот месяц.
type Slot struct {
	OwnerID string
	Period  string
}

// Checker - контракт проверки квоты.
type Checker interface {
	// AllowNewComment резервирует одно место в квоте владельца.
	// false - квота на текущий месяц исчерпана, резерв не сделан.
	AllowNewComment(ctx context.Context, ownerID string) (Slot, bool, error)
	// Release возвращает резерв, если комментарий так и не был сохранён.
	Release(ctx context.Context, slot Slot) error
}

// Unlimited - квоты выключены.
type Unlimited struct{}

func (Unlimited) AllowNewComment(_ context.Context, ownerID string) (Slot, bool, error) {
	return Slot{OwnerID: ownerID}, true, nil
}

func (Unlimited) Release(context.Context, Slot) error { return nil }
