package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const maxListedCollections = 10

// Diagnostics es la respuesta de GET /test
type Diagnostics struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// Diagnose revisa la conexión sin fallar nunca: los errores quedan en el resultado
func Diagnose(ctx context.Context, db *mongo.Database, urlSet, nameSet bool) Diagnostics {
	d := Diagnostics{
		Backend:          "running",
		Database:         "not available",
		ConnectionStatus: "not connected",
		Collections:      []string{},
		DatabaseURL:      setLabel(urlSet),
		DatabaseName:     setLabel(nameSet),
	}

	if db == nil {
		d.Database = "available but not initialized"
		return d
	}

	d.ConnectionStatus = "connected"

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		d.Database = fmt.Sprintf("connected but error: %s", truncate(err.Error(), 50))
		return d
	}

	if len(names) > maxListedCollections {
		names = names[:maxListedCollections]
	}
	d.Collections = names
	d.Database = "connected and working"

	return d
}

func setLabel(set bool) string {
	if set {
		return "set"
	}
	return "not set"
}

// truncate corta a n caracteres sin partir runas multibyte
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
