// Package invoice кодирует намерение платежа в непрозрачную строку-токен
// и разбирает её обратно. Токен передается клиенту при старте оплаты и
// возвращается при подтверждении, что избавляет сервер от хранения
// инвойсов между этими двумя вызовами.
//
// Формат: четыре сегмента через дефис — метка, идентификатор пользователя,
// код тарифа и unix-время выпуска. Код тарифа не должен содержать дефис,
// это гарантирует каталог тарифов. Подлинность и свежесть токена при
// разборе не проверяются.
package invoice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedInvoice возвращается, когда строка не разбирается как токен.
var ErrMalformedInvoice = errors.New("malformed invoice")

const (
	tag       = "invoice"
	delimiter = "-"
)

// Encode собирает токен инвойса из намерения платежа.
func Encode(userID int64, tariffCode string, issuedAt time.Time) string {
	return strings.Join([]string{
		tag,
		strconv.FormatInt(userID, 10),
		tariffCode,
		strconv.FormatInt(issuedAt.Unix(), 10),
	}, delimiter)
}

// Decode разбирает токен и возвращает идентификатор пользователя, код
// тарифа и время выпуска. Токен считается испорченным, если в нем меньше
// четырех сегментов, идентификатор пользователя не является неотрицательным
// целым или сегмент времени не разбирается как unix-время. Сегменты после
// четвертого игнорируются.
func Decode(token string) (int64, string, time.Time, error) {
	parts := strings.Split(token, delimiter)
	if len(parts) < 4 {
		return 0, "", time.Time{}, fmt.Errorf("%w: expected at least 4 segments, got %d", ErrMalformedInvoice, len(parts))
	}

	userID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || userID < 0 {
		return 0, "", time.Time{}, fmt.Errorf("%w: bad user id %q", ErrMalformedInvoice, parts[1])
	}

	issuedUnix, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return 0, "", time.Time{}, fmt.Errorf("%w: bad timestamp %q", ErrMalformedInvoice, parts[3])
	}

	return userID, parts[2], time.Unix(issuedUnix, 0).UTC(), nil
}
