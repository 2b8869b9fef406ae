package memory

import (
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

var (
	black = domain.Color{Name: "Black", Hex: "#1a1a1a"}
	navy  = domain.Color{Name: "Navy", Hex: "#1a2744"}
	grey  = domain.Color{Name: "Grey", Hex: "#808080"}
	white = domain.Color{Name: "White", Hex: "#FFFFFF"}
)

func price(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func was(v int64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromInt(v)) }

// SeedProducts returns the launch catalog.
func SeedProducts() []*domain.Product {
	return []*domain.Product{
		{
			ID:            "1",
			Name:          "Oversized Wool Blend Coat",
			Price:         price(299),
			OriginalPrice: was(399),
			Category:      domain.CategoryWomen,
			Subcategory:   "Coats",
			Images: []string{
				"https://images.unsplash.com/photo-1539533018447-63fcce2678e3?w=800",
				"https://images.unsplash.com/photo-1544022613-e87ca75a784a?w=800",
			},
			Sizes:       []string{"XS", "S", "M", "L", "XL"},
			Colors:      []domain.Color{{Name: "Camel", Hex: "#C19A6B"}, black, grey},
			Description: "Luxurious oversized coat crafted from premium wool blend. Features dropped shoulders, side pockets, and a relaxed silhouette perfect for layering.",
			Fabric:      "70% Wool, 20% Polyester, 10% Cashmere",
			Care:        []string{"Dry clean only", "Store on hanger", "Iron on low heat"},
			Rating:      4.8,
			Reviews:     124,
			IsSale:      true,
		},
		{
			ID:          "2",
			Name:        "Tailored Slim Fit Blazer",
			Price:       price(249),
			Category:    domain.CategoryMen,
			Subcategory: "Blazers",
			Images: []string{
				"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=800",
				"https://images.unsplash.com/photo-1593030103066-0093718e9d3e?w=800",
			},
			Sizes:       []string{"S", "M", "L", "XL", "XXL"},
			Colors:      []domain.Color{navy, {Name: "Charcoal", Hex: "#36454F"}, black},
			Description: "Impeccably tailored blazer with a slim fit silhouette. Crafted from premium Italian wool with peak lapels and functional button cuffs.",
			Fabric:      "100% Italian Wool",
			Care:        []string{"Dry clean recommended", "Steam to refresh", "Store on padded hanger"},
			Rating:      4.9,
			Reviews:     89,
			IsNew:       true,
		},
		{
			ID:          "3",
			Name:        "Silk Midi Dress",
			Price:       price(189),
			Category:    domain.CategoryWomen,
			Subcategory: "Dresses",
			Images: []string{
				"https://images.unsplash.com/photo-1595777457583-95e059d581b8?w=800",
				"https://images.unsplash.com/photo-1572804013309-59a88b7e92f1?w=800",
			},
			Sizes:       []string{"XS", "S", "M", "L"},
			Colors:      []domain.Color{{Name: "Champagne", Hex: "#F7E7CE"}, black, {Name: "Burgundy", Hex: "#722F37"}},
			Description: "Elegant silk midi dress with a flattering bias cut. Features delicate cowl neckline and adjustable spaghetti straps.",
			Fabric:      "100% Mulberry Silk",
			Care:        []string{"Hand wash cold", "Hang to dry", "Iron on low heat inside out"},
			Rating:      4.7,
			Reviews:     156,
			IsNew:       true,
		},
		{
			ID:          "4",
			Name:        "Premium Cotton T-Shirt",
			Price:       price(59),
			Category:    domain.CategoryMen,
			Subcategory: "T-Shirts",
			Images: []string{
				"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=800",
				"https://images.unsplash.com/photo-1583743814966-8936f5b7be1a?w=800",
			},
			Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
			Colors:      []domain.Color{white, black, navy, grey},
			Description: "Essential crew neck t-shirt made from premium organic cotton. Features a relaxed fit with reinforced seams for durability.",
			Fabric:      "100% Organic Cotton",
			Care:        []string{"Machine wash cold", "Tumble dry low", "Iron medium heat"},
			Rating:      4.6,
			Reviews:     312,
		},
		{
			ID:            "5",
			Name:          "High-Waisted Tailored Trousers",
			Price:         price(159),
			OriginalPrice: was(199),
			Category:      domain.CategoryWomen,
			Subcategory:   "Trousers",
			Images: []string{
				"https://images.unsplash.com/photo-1594938298603-c8148c4dae35?w=800",
				"https://images.unsplash.com/photo-1506629082955-511b1aa562c8?w=800",
			},
			Sizes:       []string{"XS", "S", "M", "L", "XL"},
			Colors:      []domain.Color{black, {Name: "Beige", Hex: "#F5F5DC"}, {Name: "Brown", Hex: "#8B4513"}},
			Description: "Sophisticated high-waisted trousers with a wide leg silhouette. Features pressed creases and side pockets.",
			Fabric:      "65% Polyester, 35% Viscose",
			Care:        []string{"Machine wash cold", "Hang to dry", "Iron on medium heat"},
			Rating:      4.5,
			Reviews:     78,
			IsSale:      true,
		},
		{
			ID:          "6",
			Name:        "Cashmere Crewneck Sweater",
			Price:       price(279),
			Category:    domain.CategoryMen,
			Subcategory: "Knitwear",
			Images: []string{
				"https://images.unsplash.com/photo-1434389677669-e08b4cac3105?w=800",
				"https://images.unsplash.com/photo-1576566588028-4147f3842f27?w=800",
			},
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []domain.Color{{Name: "Oatmeal", Hex: "#D2B48C"}, navy, grey},
			Description: "Luxuriously soft cashmere sweater with classic crewneck design. Lightweight yet warm, perfect for layering.",
			Fabric:      "100% Grade-A Mongolian Cashmere",
			Care:        []string{"Dry clean or hand wash cold", "Lay flat to dry", "Store folded"},
			Rating:      4.9,
			Reviews:     203,
			IsNew:       true,
		},
		{
			ID:          "7",
			Name:        "Leather Biker Jacket",
			Price:       price(449),
			Category:    domain.CategoryWomen,
			Subcategory: "Jackets",
			Images: []string{
				"https://images.unsplash.com/photo-1551028719-00167b16eac5?w=800",
				"https://images.unsplash.com/photo-1559551409-dadc959f76b8?w=800",
			},
			Sizes:       []string{"XS", "S", "M", "L"},
			Colors:      []domain.Color{black, {Name: "Cognac", Hex: "#834333"}},
			Description: "Iconic leather biker jacket crafted from buttery soft lambskin. Features asymmetric zip closure and quilted shoulders.",
			Fabric:      "100% Lambskin Leather",
			Care:        []string{"Professional leather cleaning only", "Condition regularly", "Store on padded hanger"},
			Rating:      4.8,
			Reviews:     67,
		},
		{
			ID:            "8",
			Name:          "Relaxed Linen Shirt",
			Price:         price(89),
			OriginalPrice: was(119),
			Category:      domain.CategoryMen,
			Subcategory:   "Shirts",
			Images: []string{
				"https://images.unsplash.com/photo-1596755094514-f87e34085b2c?w=800",
				"https://images.unsplash.com/photo-1598033129183-c4f50c736f10?w=800",
			},
			Sizes:       []string{"S", "M", "L", "XL", "XXL"},
			Colors:      []domain.Color{white, {Name: "Light Blue", Hex: "#ADD8E6"}, {Name: "Sand", Hex: "#C2B280"}},
			Description: "Breathable linen shirt with a relaxed fit. Perfect for warm weather with its airy construction and classic spread collar.",
			Fabric:      "100% European Linen",
			Care:        []string{"Machine wash cold", "Hang to dry", "Iron while damp"},
			Rating:      4.4,
			Reviews:     145,
			IsSale:      true,
		},
	}
}
