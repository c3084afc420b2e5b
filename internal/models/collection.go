package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionDocument es una colección editorial guardada en "collections"
type CollectionDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Slug        string             `bson:"slug"`
	Description *string            `bson:"description,omitempty"`
	HeroImage   *string            `bson:"hero_image,omitempty"`
	ProductIDs  []string           `bson:"product_ids"`
	Featured    bool               `bson:"featured"`
}

type Collection struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description *string  `json:"description,omitempty"`
	HeroImage   *string  `json:"hero_image,omitempty"`
	ProductIDs  []string `json:"product_ids"`
	Featured    bool     `json:"featured"`
}

func (d *CollectionDocument) Public() *Collection {
	if d == nil {
		return nil
	}
	return &Collection{
		ID:          EncodeID(d.ID),
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		HeroImage:   d.HeroImage,
		ProductIDs:  d.ProductIDs,
		Featured:    d.Featured,
	}
}
