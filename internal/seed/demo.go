package seed

import "provided-storefront/internal/models"

func ptr(s string) *string { return &s }

func demoProducts() []*models.ProductDocument {
	return []*models.ProductDocument{
		{
			Title:       "Provided Cashmere Overcoat",
			Description: ptr("Double-faced Italian cashmere with hand-finished edges."),
			Price:       1680.0,
			Category:    "Outerwear",
			InStock:     true,
			Featured:    true,
			Images: []string{
				"https://images.unsplash.com/photo-1548883354-cab52747f867?w=1200&auto=format&fit=crop&q=80",
				"https://images.unsplash.com/photo-1548883354-3e64f90cbb7a?w=1200&auto=format&fit=crop&q=80",
			},
			Variants: []models.Variant{{Size: "S"}, {Size: "M"}, {Size: "L"}},
			Tags:     []string{"cashmere", "editorial"},
		},
		{
			Title:       "Provided Silk Blend Shirt",
			Description: ptr("Matte silk blend with mother-of-pearl buttons."),
			Price:       420.0,
			Category:    "Shirts",
			InStock:     true,
			Featured:    true,
			Images: []string{
				"https://images.unsplash.com/photo-1516826957135-700dedea698c?w=1200&auto=format&fit=crop&q=80",
			},
			Variants: []models.Variant{{Size: "XS"}, {Size: "S"}, {Size: "M"}, {Size: "L"}},
			Tags:     []string{"silk"},
		},
		{
			Title:       "Provided Japanese Denim",
			Description: ptr("Selvedge denim, rinse washed for a deep navy tone."),
			Price:       360.0,
			Category:    "Denim",
			InStock:     true,
			Featured:    false,
			Images: []string{
				"https://images.unsplash.com/photo-1512436991641-6745cdb1723f?w=1200&auto=format&fit=crop&q=80",
			},
			Variants: []models.Variant{{Size: "28"}, {Size: "30"}, {Size: "32"}, {Size: "34"}},
			Tags:     []string{"denim"},
		},
	}
}

func demoCollection(productIDs []string) *models.CollectionDocument {
	if productIDs == nil {
		productIDs = []string{}
	}
	return &models.CollectionDocument{
		Name:        "Autumn/Winter",
		Slug:        FeaturedCollectionSlug,
		Description: ptr("Quiet layers. Cinematic textures."),
		HeroImage:   ptr("https://images.unsplash.com/photo-1503342217505-b0a15cf70489?w=1600&auto=format&fit=crop&q=80"),
		ProductIDs:  productIDs,
		Featured:    true,
	}
}
