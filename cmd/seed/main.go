package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// SeedProduct represents one row of the seed fixture file.
type SeedProduct struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	NewPrice    string                 `json:"new_price"`
	OldPrice    string                 `json:"old_price"`
	Category    string                 `json:"category"`
	Images      []string               `json:"images"`
	Available   *bool                  `json:"available"`
	Data        map[string]interface{} `json:"data"`
}

func main() {
	file := flag.String("file", "seed/products.json", "path to the product fixture file")
	flag.Parse()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	log.Info().Msg("starting seed script")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	log.Info().Msg("connected to database")

	if err := gormDB.AutoMigrate(&model.Product{}); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rows, err := loadFixture(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("failed to load fixture")
	}
	log.Info().Int("count", len(rows)).Msg("loaded products from fixture")

	products, skipped := convert(rows, log)
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Msg("skipped invalid fixture rows")
	}

	productRepo := repository.NewProductRepository(gormDB)
	created, updated, err := seedProducts(context.Background(), gormDB, productRepo, products)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed products")
	}

	log.Info().
		Int("created", created).
		Int("updated", updated).
		Msg("seed completed")
}

// loadFixture reads the fixture file into seed rows.
func loadFixture(path string) ([]SeedProduct, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var rows []SeedProduct
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return rows, nil
}

// convert turns fixture rows into products, skipping rows with missing
// required fields or unparseable prices.
func convert(rows []SeedProduct, log zerolog.Logger) ([]model.Product, int) {
	products := make([]model.Product, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		if row.Name == "" || row.Description == "" || row.Category == "" {
			log.Warn().Str("name", row.Name).Msg("skipping row with missing required fields")
			skipped++
			continue
		}
		price, err := decimal.NewFromString(row.NewPrice)
		if err != nil {
			log.Warn().Str("name", row.Name).Str("new_price", row.NewPrice).Msg("skipping row with invalid price")
			skipped++
			continue
		}
		oldPrice := decimal.Zero
		if row.OldPrice != "" {
			if oldPrice, err = decimal.NewFromString(row.OldPrice); err != nil {
				log.Warn().Str("name", row.Name).Str("old_price", row.OldPrice).Msg("skipping row with invalid price")
				skipped++
				continue
			}
		}
		available := true
		if row.Available != nil {
			available = *row.Available
		}
		attrs := model.JSONMap{}
		for k, v := range row.Data {
			attrs[k] = v
		}

		products = append(products, model.Product{
			Name:          row.Name,
			Description:   row.Description,
			CurrentPrice:  price,
			PreviousPrice: oldPrice,
			Images:        model.StringList(row.Images),
			Category:      row.Category,
			Attributes:    attrs,
			Available:     available,
		})
	}
	return products, skipped
}

// seedProducts upserts products by name: existing entries are refreshed,
// unknown ones created.
func seedProducts(ctx context.Context, gormDB *gorm.DB, repo repository.ProductRepository, products []model.Product) (created int, updated int, err error) {
	for _, product := range products {
		var existing model.Product
		findErr := gormDB.WithContext(ctx).Where("name = ?", product.Name).First(&existing).Error
		if findErr != nil && findErr != gorm.ErrRecordNotFound {
			return created, updated, fmt.Errorf("check product %q: %w", product.Name, findErr)
		}

		if findErr == nil {
			existing.Description = product.Description
			existing.CurrentPrice = product.CurrentPrice
			existing.PreviousPrice = product.PreviousPrice
			existing.Images = product.Images
			existing.Category = product.Category
			existing.Attributes = product.Attributes
			existing.Available = product.Available
			if err := repo.Update(ctx, &existing); err != nil {
				return created, updated, fmt.Errorf("update product %q: %w", product.Name, err)
			}
			updated++
		} else {
			if err := repo.Create(ctx, &product); err != nil {
				return created, updated, fmt.Errorf("create product %q: %w", product.Name, err)
			}
			created++
		}
	}
	return created, updated, nil
}
