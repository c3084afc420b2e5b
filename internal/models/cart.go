package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinItemQuantity = 1
	MaxItemQuantity = 10
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"

	DefaultCurrency = CurrencyUSD
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP:
		return true
	}
	return false
}

// CartItem es una línea del carrito. El precio se guarda al momento de agregar
// y no se vuelve a leer del producto.
type CartItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Title     string  `json:"title" bson:"title"`
	Price     float64 `json:"price" bson:"price"`
	Image     *string `json:"image" bson:"image"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Variant   *string `json:"variant" bson:"variant"`
}

// SameLine indica si dos líneas comparten la clave (product_id, variant).
// Una variante nula solo coincide con otra variante nula.
func (i CartItem) SameLine(productID string, variant *string) bool {
	if i.ProductID != productID {
		return false
	}
	if i.Variant == nil || variant == nil {
		return i.Variant == nil && variant == nil
	}
	return *i.Variant == *variant
}

// Validate revisa los campos de una línea entrante
func (i CartItem) Validate() error {
	if !ValidID(i.ProductID) {
		return &ValidationError{Field: "product_id", Message: "product_id must be a valid id"}
	}
	if i.Price < 0 || math.IsNaN(i.Price) || math.IsInf(i.Price, 0) {
		return &ValidationError{Field: "price", Message: "price cannot be negative"}
	}
	if i.Quantity < MinItemQuantity || i.Quantity > MaxItemQuantity {
		return &ValidationError{Field: "quantity", Message: "quantity must be between 1 and 10"}
	}
	return nil
}

// CartDocument es el carrito guardado en la colección "cart", uno por session_id
type CartDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	SessionID string             `bson:"session_id"`
	Currency  Currency           `bson:"currency"`
	Items     []CartItem         `bson:"items"`
	Version   int64              `bson:"version"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// CartView es la respuesta pública de GET /api/cart
type CartView struct {
	ID       string     `json:"id,omitempty"`
	Currency Currency   `json:"currency,omitempty"`
	Items    []CartItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
}

// EmptyCartView representa una sesión sin carrito
func EmptyCartView() *CartView {
	return &CartView{Items: []CartItem{}, Subtotal: 0}
}

func (d *CartDocument) Public() *CartView {
	if d == nil {
		return nil
	}
	items := d.Items
	if items == nil {
		items = []CartItem{}
	}
	currency := d.Currency
	if !currency.Valid() {
		currency = DefaultCurrency
	}
	return &CartView{
		ID:       EncodeID(d.ID),
		Currency: currency,
		Items:    items,
		Subtotal: Subtotal(items),
	}
}

// MergeItem agrega una línea al carrito. Si ya existe la clave se suma la
// cantidad con tope en MaxItemQuantity y se conservan título, precio e imagen
// de la línea existente; si no, se agrega al final.
func MergeItem(items []CartItem, item CartItem) (merged []CartItem, existed bool) {
	merged = make([]CartItem, len(items), len(items)+1)
	copy(merged, items)

	for i := range merged {
		if merged[i].SameLine(item.ProductID, item.Variant) {
			merged[i].Quantity = min(MaxItemQuantity, merged[i].Quantity+item.Quantity)
			return merged, true
		}
	}
	return append(merged, item), false
}

// RemoveItem quita las líneas con la clave dada, conservando el orden del resto
func RemoveItem(items []CartItem, productID string, variant *string) []CartItem {
	kept := make([]CartItem, 0, len(items))
	for _, it := range items {
		if it.SameLine(productID, variant) {
			continue
		}
		kept = append(kept, it)
	}
	return kept
}

// Subtotal = round(Σ price * quantity, 2)
func Subtotal(items []CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return math.Round(total*100) / 100
}
