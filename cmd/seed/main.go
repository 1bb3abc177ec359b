// Command seed loads the espetaria menu and the starting inventory into a
// fresh database. Idempotent: rows are matched by name, so re-running on a
// populated database changes nothing.
package main

import (
	"os"
	"time"

	"github.com/claudioasousa/Espetaria-PRO/internal/config"
	"github.com/claudioasousa/Espetaria-PRO/internal/infra"
	"github.com/claudioasousa/Espetaria-PRO/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedProduct struct {
	name     string
	price    string
	category string
	stock    int
}

var menu = []seedProduct{
	{"Espetinho de Carne", "12.00", "Espetinhos", 100},
	{"Espetinho de Frango", "10.00", "Espetinhos", 100},
	{"Espetinho de Linguiça", "10.00", "Espetinhos", 100},
	{"Espetinho de Queijo Coalho", "11.00", "Espetinhos", 80},
	{"Espetinho de Coração", "12.00", "Espetinhos", 80},
	{"Medalhão de Frango", "14.00", "Espetinhos", 60},
	{"Pão de Alho", "8.00", "Acompanhamentos", 60},
	{"Mandioca Frita", "15.00", "Acompanhamentos", 40},
	{"Vinagrete", "5.00", "Acompanhamentos", 50},
	{"Farofa", "4.00", "Acompanhamentos", 50},
	{"Cerveja Long Neck", "9.00", "Bebidas", 120},
	{"Cerveja 600ml", "14.00", "Bebidas", 80},
	{"Refrigerante Lata", "6.00", "Bebidas", 100},
	{"Água Mineral", "4.00", "Bebidas", 100},
	{"Suco Natural", "8.00", "Bebidas", 40},
	{"Caipirinha", "15.00", "Bebidas", 40},
}

type seedSupply struct {
	name     string
	quantity string
	unit     string
	minStock string
}

var supplies = []seedSupply{
	{"Carvão", "50", "kg", "10"},
	{"Espetos de Bambu", "500", "un", "100"},
	{"Carne Bovina", "30", "kg", "5"},
	{"Frango", "25", "kg", "5"},
	{"Linguiça", "20", "kg", "4"},
	{"Queijo Coalho", "10", "kg", "2"},
	{"Pão Francês", "80", "un", "20"},
	{"Gelo", "40", "kg", "10"},
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	if err := seedMenu(db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed menu")
	}
	if err := seedInventory(db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed inventory")
	}
	log.Info().Int("products", len(menu)).Int("supplies", len(supplies)).Msg("seed complete")
}

func seedMenu(db *gorm.DB) error {
	categories := make(map[string]*model.Category)
	for _, p := range menu {
		if _, ok := categories[p.category]; ok {
			continue
		}
		cat := &model.Category{Name: p.category, Active: true}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(cat).Error; err != nil {
			return err
		}
		// OnConflict leaves the struct zeroed when the row already existed
		if err := db.First(cat, "name = ?", p.category).Error; err != nil {
			return err
		}
		categories[p.category] = cat
	}

	for _, p := range menu {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			return err
		}
		product := model.Product{
			Name:       p.name,
			Price:      price,
			CategoryID: categories[p.category].ID,
			Stock:      p.stock,
			Active:     true,
		}
		var count int64
		if err := db.Model(&model.Product{}).Where("name = ?", p.name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&product).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedInventory(db *gorm.DB) error {
	for _, s := range supplies {
		quantity, err := decimal.NewFromString(s.quantity)
		if err != nil {
			return err
		}
		minStock, err := decimal.NewFromString(s.minStock)
		if err != nil {
			return err
		}
		item := model.InventoryItem{
			Name:     s.name,
			Quantity: quantity,
			Unit:     s.unit,
			MinStock: minStock,
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}
