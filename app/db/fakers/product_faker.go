package fakers

import (
	"math/rand"
	"strings"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

var (
	productNouns = []string{"Mug", "Lamp", "Backpack", "Headphones", "Notebook", "Kettle", "Sneakers", "Watch", "Blanket", "Speaker"}
	brands       = []string{"Acme", "Northwind", "Globex", "Initech", "Umbrella"}
	sampleTags   = []string{"new", "gift", "eco", "bestseller", "limited", "home", "outdoor"}
)

func CategoryFaker(name string, order int) *models.Category {
	return &models.Category{
		Name:         name,
		Slug:         slug.Make(name),
		Description:  faker.Sentence(),
		IsActive:     true,
		DisplayOrder: order,
	}
}

// ProductFaker builds an unsaved active product for seller. About one in
// four products is put on sale.
func ProductFaker(seller *models.User, category *models.Category) *models.Product {
	noun := productNouns[rand.Intn(len(productNouns))]
	name := capitalize(faker.Word()) + " " + noun
	suffix := strings.ToUpper(uuid.NewString()[:6])

	price := fakePrice()
	product := &models.Product{
		SellerID:          seller.ID,
		SellerName:        seller.DisplaySellerName(),
		Name:              name,
		Slug:              slug.Make(name + "-" + suffix),
		Sku:               "SKU-" + suffix,
		Description:       faker.Paragraph(),
		ShortDescription:  faker.Sentence(),
		Brand:             brands[rand.Intn(len(brands))],
		Tags:              fakeTags(),
		Images:            fakeImages(name),
		Price:             price,
		Stock:             rand.Intn(50),
		LowStockThreshold: models.DefaultLowStockThreshold,
		IsActive:          true,
		IsFeatured:        rand.Intn(5) == 0,
	}
	if category != nil {
		product.CategoryID = &category.ID
	}
	if rand.Intn(4) == 0 {
		product.SalePrice = decimal.NewNullDecimal(price.Mul(decimal.RequireFromString("0.8")).Round(2))
	}
	return product
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

func fakePrice() decimal.Decimal {
	cents := rand.Intn(50000) + 199
	return decimal.New(int64(cents), -2)
}

func fakeTags() []string {
	picked := map[string]bool{}
	tags := []string{}
	for i := 0; i < rand.Intn(3)+1; i++ {
		tag := sampleTags[rand.Intn(len(sampleTags))]
		if !picked[tag] {
			picked[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

func fakeImages(name string) []models.ProductImage {
	n := rand.Intn(3) + 1
	images := make([]models.ProductImage, n)
	for i := range images {
		images[i] = models.ProductImage{
			URL: "https://picsum.photos/seed/" + uuid.NewString()[:8] + "/600/600",
			Alt: name,
		}
	}
	return images
}
