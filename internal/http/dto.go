package http

import (
	"github.com/abheydecbs/webshop-eksamen/internal/domain"
)

// Wire names are the Danish field names of the storefront API.

type ProductDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"navn"`
	Price       int64  `json:"pris"`
	Description string `json:"beskrivelse"`
	Category    string `json:"kategori"`
	Brand       string `json:"mærke"`
}

// CartLineDTO is a cart line denormalized for display: navn and pris come
// from the add-time snapshot, the rest is joined live from the catalog.
type CartLineDTO struct {
	ProductID   int64  `json:"id"`
	Name        string `json:"navn"`
	Description string `json:"beskrivelse"`
	Category    string `json:"kategori"`
	Brand       string `json:"mærke"`
	Price       int64  `json:"pris"`
	Quantity    int    `json:"antal"`
}

type CustomerDTO struct {
	Name       string `json:"navn"`
	Email      string `json:"email"`
	Phone      string `json:"telefon"`
	Address    string `json:"adresse"`
	PostalCode string `json:"postnr"`
	City       string `json:"by"`
}

type OrderLineDTO struct {
	ProductID   int64  `json:"produkt_id"`
	ProductName string `json:"produkt_navn"`
	Price       int64  `json:"produkt_pris"`
	Quantity    int    `json:"antal"`
}

type OrderSummaryDTO struct {
	OrderID            string `json:"ordre_id"`
	TotalPrice         int64  `json:"total_pris"`
	Status             string `json:"status"`
	CreatedAt          string `json:"oprettet_dato"`
	CustomerName       string `json:"kunde_navn"`
	CustomerEmail      string `json:"kunde_email"`
	CustomerPhone      string `json:"kunde_telefon"`
	CustomerAddress    string `json:"kunde_adresse"`
	CustomerPostalCode string `json:"kunde_postnr"`
	CustomerCity       string `json:"kunde_by"`
}

type OrderDetailDTO struct {
	OrderSummaryDTO
	Lines []OrderLineDTO `json:"produkter"`
}

func productToDTO(p *domain.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Brand:       p.Brand,
	}
}

func productsToDTOs(products []*domain.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, productToDTO(p))
	}
	return dtos
}

func orderSummaryToDTO(s *domain.OrderSummary) OrderSummaryDTO {
	return OrderSummaryDTO{
		OrderID:            s.OrderID,
		TotalPrice:         s.TotalPrice,
		Status:             string(s.Status),
		CreatedAt:          s.CreatedAt.Format("2006-01-02 15:04:05"),
		CustomerName:       s.CustomerName,
		CustomerEmail:      s.CustomerEmail,
		CustomerPhone:      s.CustomerPhone,
		CustomerAddress:    s.CustomerAddress,
		CustomerPostalCode: s.CustomerPostalCode,
		CustomerCity:       s.CustomerCity,
	}
}
