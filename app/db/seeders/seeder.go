package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/Rakhulsr/go-marketplace/app/db/fakers"
	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"gorm.io/gorm"
)

const AdminEmail = "admin@example.com"

type Options struct {
	Sellers           int
	Customers         int
	ProductsPerSeller int
}

func DefaultOptions() Options {
	return Options{Sellers: 2, Customers: 3, ProductsPerSeller: 10}
}

var defaultCategories = []string{"Electronics", "Home & Kitchen", "Fashion", "Outdoors", "Books"}

// DBSeed fills an empty database with an admin, sellers, customers,
// categories and products. It refuses to run when the admin account already
// exists.
func DBSeed(ctx context.Context, db *gorm.DB, opts Options) error {
	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)

	existing, err := userRepo.FindByEmail(ctx, AdminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("database already seeded: %s exists", AdminEmail)
	}

	admin := fakers.UserFaker(models.RoleAdmin)
	admin.Name = "Administrator"
	admin.Email = AdminEmail
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	for i := 0; i < opts.Customers; i++ {
		if err := userRepo.Create(ctx, fakers.UserFaker(models.RoleCustomer)); err != nil {
			return fmt.Errorf("failed to seed customer: %w", err)
		}
	}

	categories := make([]*models.Category, 0, len(defaultCategories))
	for i, name := range defaultCategories {
		category := fakers.CategoryFaker(name, i)
		if err := categoryRepo.Create(ctx, category); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", name, err)
		}
		categories = append(categories, category)
	}

	for i := 0; i < opts.Sellers; i++ {
		seller := fakers.UserFaker(models.RoleSeller)
		if err := userRepo.Create(ctx, seller); err != nil {
			return fmt.Errorf("failed to seed seller: %w", err)
		}

		for j := 0; j < opts.ProductsPerSeller; j++ {
			product := fakers.ProductFaker(seller, categories[(i+j)%len(categories)])
			if err := productRepo.Create(ctx, product); err != nil {
				return fmt.Errorf("failed to seed product %s: %w", product.Name, err)
			}
		}
	}

	log.Printf("Seeder.DBSeed: seeded %d sellers, %d customers, %d categories, %d products",
		opts.Sellers, opts.Customers, len(categories), opts.Sellers*opts.ProductsPerSeller)
	return nil
}
