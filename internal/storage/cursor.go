package storage

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// EncodeCursor кодирует пару (sort_order, id) последнего элемента страницы в непрозрачный токен.
func EncodeCursor(key decimal.Decimal, id string) string {
	raw := key.String() + "|" + id

	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor декодирует токен обратно в пару ключей. Любая ошибка - ErrInvalidCursor.
func DecodeCursor(token string) (decimal.Decimal, string, error) {
	res, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return decimal.Decimal{}, "", errors.Join(ErrInvalidCursor, err)
	}

	key, id, ok := strings.Cut(string(res), "|")
	if !ok || id == "" {
		return decimal.Decimal{}, "", ErrInvalidCursor
	}

	d, err := decimal.NewFromString(key)
	if err != nil {
		return decimal.Decimal{}, "", errors.Join(ErrInvalidCursor, err)
	}

	return d, id, nil
}
