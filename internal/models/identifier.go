package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EncodeID convierte un ObjectID a su forma pública (hex de 24 caracteres)
func EncodeID(id primitive.ObjectID) string {
	return id.Hex()
}

// DecodeID valida y convierte un ID público a ObjectID.
// Un ID bien formado que no existe no es un error aquí.
func DecodeID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return objID, nil
}

// ValidID indica si el string tiene el formato de un ObjectID
func ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// CanonicalID normaliza un ID público a su forma codificada.
// Las líneas del carrito se comparan con esta forma, nunca con el ObjectID.
func CanonicalID(id string) (string, error) {
	objID, err := DecodeID(id)
	if err != nil {
		return "", err
	}
	return EncodeID(objID), nil
}
