package repository

import "github.com/jhoicas/Costeo-api/internal/domain/entity"

// PriceRepository acceso a sistemas de precios y precios de producto.
type PriceRepository interface {
	SystemExists(priceSystemID string) (bool, error)
	ListBySystemAndCurrency(priceSystemID, codeCurrency string) ([]*entity.ProductPrice, error)
	Get(productID, priceSystemID, codeCurrency string) (*entity.ProductPrice, error)
	Update(price *entity.ProductPrice) error
	Upsert(price *entity.ProductPrice) error
}

// CurrencyRepository acceso a la configuración monetaria del negocio.
type CurrencyRepository interface {
	GetBusiness(businessID string) (*entity.Business, error)
	ListByBusiness(businessID string) ([]*entity.AvailableCurrency, error)
}

// RecordRepository persiste la pista de auditoría (append-only).
type RecordRepository interface {
	Create(rec *entity.ProductRecord) error
	ListByProduct(productID string, limit int) ([]*entity.ProductRecord, error)
}
