package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Variant representa una opción de un producto (talla, color)
type Variant struct {
	Size  string `json:"size,omitempty" bson:"size,omitempty"`
	Color string `json:"color,omitempty" bson:"color,omitempty"`
}

// ProductDocument es el producto tal como se guarda en la colección "product"
type ProductDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description *string            `bson:"description,omitempty"`
	Price       float64            `bson:"price"`
	Category    string             `bson:"category"`
	InStock     bool               `bson:"in_stock"`
	Images      []string           `bson:"images"`
	Variants    []Variant          `bson:"variants"`
	Tags        []string           `bson:"tags"`
	Featured    bool               `bson:"featured"`
}

// Product es la representación pública de un producto
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	InStock     bool      `json:"in_stock"`
	Images      []string  `json:"images"`
	Variants    []Variant `json:"variants"`
	Tags        []string  `json:"tags"`
	Featured    bool      `json:"featured"`
}

// Public proyecta el documento: _id pasa a ser id, el resto se copia tal cual
func (d *ProductDocument) Public() *Product {
	if d == nil {
		return nil
	}
	return &Product{
		ID:          EncodeID(d.ID),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		InStock:     d.InStock,
		Images:      d.Images,
		Variants:    d.Variants,
		Tags:        d.Tags,
		Featured:    d.Featured,
	}
}
