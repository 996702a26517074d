// Package ordering назначает десятичные ключи порядка (sort_order) комментариям.
//
// Схема ключей:
//   - корни: 1, 2, 3, ... (max + 1);
//   - первый ответ родителю: parent + 0.1;
//   - следующие ответы: maxChild + 0.01.
//
// Ключи хранятся как decimal произвольной точности, чтобы длинные цепочки
// ответов не теряли точность. Когда ключи разрастаются, их пересчитывает
// ReorderAll сервиса (см. CompactKey).
package ordering

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pribylovaa/commentary/internal/models"
)

var (
	rootStep       = decimal.NewFromInt(1)
	firstChildStep = decimal.New(1, -1)
	siblingStep    = decimal.New(1, -2)
)

// ErrMissingParentKey - для ответа не передан ключ родителя.
var ErrMissingParentKey = errors.New("missing parent sort order")

// MaxFinder - источник максимального уже выданного ключа.
// ok=false означает, что ключей ещё нет (нет корней / нет детей у родителя).
type MaxFinder interface {
	MaxSortOrder(ctx context.Context, scope models.Scope, parentID string) (decimal.Decimal, bool, error)
}

// RootKey возвращает ключ нового корня: max + 1, первый корень получает 1.
func RootKey(last *decimal.Decimal) decimal.Decimal {
	if last == nil {
		return rootStep
	}

	return last.Add(rootStep)
}

// ChildKey возвращает ключ нового ответа родителю с ключом parent.
func ChildKey(parent decimal.Decimal, maxChild *decimal.Decimal) decimal.Decimal {
	if maxChild == nil {
		return parent.Add(firstChildStep)
	}

	return maxChild.Add(siblingStep)
}

// ChildDepth - глубина ответа: parentDepth+1, но не больше maxDepth.
// Ответ на комментарий максимальной глубины остаётся его ребёнком, глубина насыщается.
func ChildDepth(parentDepth, maxDepth int32) int32 {
	if parentDepth+1 > maxDepth {
		return maxDepth
	}

	return parentDepth + 1
}

// CompactRootKey - канонический ключ корня с порядковым номером index (с 1).
func CompactRootKey(index int) decimal.Decimal {
	return decimal.NewFromInt(int64(index))
}

// CompactKey - канонический ключ ребёнка глубины depth под родителем parent:
// parent + (0.1 / 10^(depth-1)) * index, index считается с 1.
func CompactKey(parent decimal.Decimal, depth int32, index int) decimal.Decimal {
	step := decimal.New(1, -depth)

	return parent.Add(step.Mul(decimal.NewFromInt(int64(index))))
}

// Assigner вычисляет ключ для нового комментария по уже выданным ключам.
type Assigner struct{}

// Assign возвращает ключ для нового комментария в scope.
//   - parentID == "" - корень;
//   - иначе parentSortOrder обязателен: это ключ фактического родителя
//     (даже если он уже на максимальной глубине).
func (Assigner) Assign(ctx context.Context, f MaxFinder, scope models.Scope, parentID string, parentSortOrder *decimal.Decimal) (decimal.Decimal, error) {
	const op = "ordering/Assign"

	if parentID != "" && parentSortOrder == nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", op, ErrMissingParentKey)
	}

	top, ok, err := f.MaxSortOrder(ctx, scope, parentID)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", op, err)
	}

	var last *decimal.Decimal
	if ok {
		last = &top
	}

	if parentID == "" {
		return RootKey(last), nil
	}

	return ChildKey(*parentSortOrder, last), nil
}
