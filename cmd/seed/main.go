// Command seed migrates the schema and loads demo data: three accounts (one
// per role) and a small catalog. Running it twice is safe; rows are upserted
// by their natural keys.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"novacommerce/config"
	"novacommerce/internal/domain/entity"
	"novacommerce/internal/infra/persistence/model"

	"github.com/shopspring/decimal"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultSeedPassword = "Password123!"

type userSeed struct {
	name  string
	email string
	role  entity.Role
}

type productSeed struct {
	slug           string
	title          string
	description    string
	categorySlug   string
	price          string
	compareAtPrice string
	stock          int
	images         string
}

var usersSeed = []userSeed{
	{name: "Nova Admin", email: "admin@novacommerce.local", role: entity.RoleAdmin},
	{name: "Nova Manager", email: "manager@novacommerce.local", role: entity.RoleManager},
	{name: "Nova Customer", email: "customer@novacommerce.local", role: entity.RoleCustomer},
}

var categoriesSeed = []model.CategoryModel{
	{Slug: "electronics", Name: "Electronics", Description: "Devices, accessories, and smart home products."},
	{Slug: "fashion", Name: "Fashion", Description: "Daily wear and seasonal collections."},
	{Slug: "home", Name: "Home", Description: "Decor, comfort, and household essentials."},
}

var productsSeed = []productSeed{
	{
		slug:           "nova-wireless-headphones",
		title:          "Nova Wireless Headphones",
		description:    "Bluetooth headphones with 30h battery life.",
		categorySlug:   "electronics",
		price:          "79.90",
		compareAtPrice: "99.90",
		stock:          42,
		images: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e\n" +
			"https://images.unsplash.com/photo-1583394838336-acd977736f90",
	},
	{
		slug:         "nova-essential-hoodie",
		title:        "Nova Essential Hoodie",
		description:  "Premium cotton hoodie for everyday comfort.",
		categorySlug: "fashion",
		price:        "49.00",
		stock:        58,
		images: "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab\n" +
			"https://images.unsplash.com/photo-1571945153237-4929e783af4a",
	},
	{
		slug:         "nova-ceramic-lamp",
		title:        "Nova Ceramic Lamp",
		description:  "Minimal ceramic lamp for desk or bedside.",
		categorySlug: "home",
		price:        "34.50",
		stock:        27,
		images:       "https://images.unsplash.com/photo-1507473885765-e6ed057f782c",
	},
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		logger.Error("Seeding failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("Seeding completed")
}

func run(logger *slog.Logger) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}

	if err := migrate(db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	if err := seedUsers(db, cfg); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	logger.Info("Users seeded", slog.Int("count", len(usersSeed)))

	if err := seedCatalog(db); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	logger.Info("Catalog seeded",
		slog.Int("categories", len(categoriesSeed)),
		slog.Int("products", len(productsSeed)))

	return nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.UserModel{},
		&model.CategoryModel{},
		&model.ProductModel{},
		&model.CartModel{},
		&model.CartItemModel{},
		&model.OrderModel{},
		&model.OrderItemModel{},
		&model.PaymentModel{},
	)
}

func seedUsers(db *gorm.DB, cfg *config.Config) error {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost > cost {
		cost = cfg.Auth.BcryptCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultSeedPassword), cost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	for _, seed := range usersSeed {
		user := model.UserModel{
			Name:         seed.name,
			Email:        seed.email,
			PasswordHash: string(hash),
			Role:         seed.role.String(),
		}

		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "role"}),
		}).Create(&user).Error
		if err != nil {
			return fmt.Errorf("upsert user %s: %w", seed.email, err)
		}
	}

	return nil
}

func seedCatalog(db *gorm.DB) error {
	for i := range categoriesSeed {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description"}),
		}).Create(&categoriesSeed[i]).Error
		if err != nil {
			return fmt.Errorf("upsert category %s: %w", categoriesSeed[i].Slug, err)
		}
	}

	for _, seed := range productsSeed {
		var category model.CategoryModel
		if err := db.Where("slug = ?", seed.categorySlug).First(&category).Error; err != nil {
			return fmt.Errorf("find category %s: %w", seed.categorySlug, err)
		}

		price, err := decimal.NewFromString(seed.price)
		if err != nil {
			return fmt.Errorf("parse price for %s: %w", seed.slug, err)
		}

		var compareAt *decimal.Decimal
		if seed.compareAtPrice != "" {
			parsed, err := decimal.NewFromString(seed.compareAtPrice)
			if err != nil {
				return fmt.Errorf("parse compare-at price for %s: %w", seed.slug, err)
			}
			compareAt = &parsed
		}

		product := model.ProductModel{
			Slug:           seed.slug,
			Title:          seed.title,
			Description:    seed.description,
			CategoryID:     category.ID,
			Price:          price,
			CompareAtPrice: compareAt,
			Stock:          seed.stock,
			Images:         seed.images,
			Active:         true,
		}

		err = db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "description", "category_id", "price",
				"compare_at_price", "stock", "images", "active",
			}),
		}).Create(&product).Error
		if err != nil {
			return fmt.Errorf("upsert product %s: %w", seed.slug, err)
		}
	}

	return nil
}
