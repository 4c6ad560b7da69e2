// Package tariffs содержит статический каталог тарифных планов.
// Каталог строится один раз при старте и после этого только читается,
// поэтому безопасен для конкурентного доступа без синхронизации.
package tariffs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/vpn-billing/internal/models"
)

// ErrUnknownTariff возвращается при запросе отсутствующего в каталоге кода.
// Неизвестный код — это всегда громкая ошибка, тихого тарифа по умолчанию
// не существует.
var ErrUnknownTariff = errors.New("unknown tariff")

// InvoiceDelimiter — разделитель сегментов токена инвойса. Код тарифа не
// может содержать этот символ, иначе разбор токена становится неоднозначным.
const InvoiceDelimiter = "-"

// Catalog хранит тарифы в порядке объявления и индекс по коду.
type Catalog struct {
	list  []models.Tariff
	index map[string]models.Tariff
}

func intPtr(v int) *int { return &v }

// New строит каталог из стандартного набора тарифов. Пробный тариф берет
// длительность из правил тарификации.
func New(rules models.Rules) (*Catalog, error) {
	return build([]models.Tariff{
		{
			Code:         models.TrialTariffCode,
			Name:         "Trial",
			PriceStars:   0,
			DurationDays: rules.TrialDays,
			Devices:      2,
			Nodes:        1,
			SmartDNS:     true,
		},
		{
			Code:           "light",
			Name:           "Light",
			PriceStars:     110,
			DurationDays:   30,
			SpeedLimitMbps: intPtr(100),
			Devices:        2,
			Nodes:          2,
			SmartDNS:       true,
		},
		{
			Code:           "family",
			Name:           "Family",
			PriceStars:     200,
			DurationDays:   30,
			SpeedLimitMbps: intPtr(300),
			Devices:        5,
			Nodes:          4,
			SmartDNS:       true,
		},
		{
			Code:         "unlimited",
			Name:         "Unlimited",
			PriceStars:   290,
			DurationDays: 30,
			Devices:      8,
			Nodes:        6,
			SmartDNS:     true,
		},
	})
}

func build(list []models.Tariff) (*Catalog, error) {
	index := make(map[string]models.Tariff, len(list))
	for _, t := range list {
		if t.Code == "" {
			return nil, fmt.Errorf("tariff %q: empty code", t.Name)
		}
		if strings.Contains(t.Code, InvoiceDelimiter) {
			return nil, fmt.Errorf("tariff code %q contains invoice delimiter %q", t.Code, InvoiceDelimiter)
		}
		if _, ok := index[t.Code]; ok {
			return nil, fmt.Errorf("duplicate tariff code %q", t.Code)
		}
		index[t.Code] = t
	}
	return &Catalog{list: list, index: index}, nil
}

// Lookup возвращает тариф по коду или ErrUnknownTariff.
func (c *Catalog) Lookup(code string) (models.Tariff, error) {
	t, ok := c.index[code]
	if !ok {
		return models.Tariff{}, fmt.Errorf("%w: %s", ErrUnknownTariff, code)
	}
	return t, nil
}

// All возвращает тарифы в порядке объявления.
func (c *Catalog) All() []models.Tariff {
	out := make([]models.Tariff, len(c.list))
	copy(out, c.list)
	return out
}
