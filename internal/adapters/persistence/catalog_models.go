package persistence

import (
	"time"
)

// ItemModel represents the catalog_items table
type ItemModel struct {
	ID       string `gorm:"column:id;primaryKey"`
	Name     string `gorm:"column:name;not null"`
	Position int    `gorm:"column:position;not null;index"`
}

func (ItemModel) TableName() string {
	return "catalog_items"
}

// BuildingModel represents the catalog_buildings table
type BuildingModel struct {
	ID               string  `gorm:"column:id;primaryKey"`
	Name             string  `gorm:"column:name;not null"`
	PowerConsumption float64 `gorm:"column:power_consumption;not null;default:0"`
	Manufacturer     int     `gorm:"column:manufacturer;not null;default:0"` // 0 or 1 (SQLite compatible)
	Position         int     `gorm:"column:position;not null;index"`
}

func (BuildingModel) TableName() string {
	return "catalog_buildings"
}

// RecipeModel represents the catalog_recipes table
type RecipeModel struct {
	ID          string  `gorm:"column:id;primaryKey"`
	Name        string  `gorm:"column:name;not null"`
	Ingredients string  `gorm:"column:ingredients;type:text"` // JSON array as text
	Products    string  `gorm:"column:products;type:text"`    // JSON array as text
	Duration    float64 `gorm:"column:duration;not null"`
	ProducedIn  string  `gorm:"column:produced_in;type:text"` // JSON array as text
	Unlocked    int     `gorm:"column:unlocked;not null;default:0"` // 0 or 1 (SQLite compatible)
	Position    int     `gorm:"column:position;not null;index"`
}

func (RecipeModel) TableName() string {
	return "catalog_recipes"
}

// CatalogImportModel represents the catalog_imports table, one row per catalog replacement
type CatalogImportModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	Source     string    `gorm:"column:source"`
	Items      int       `gorm:"column:items;not null"`
	Buildings  int       `gorm:"column:buildings;not null"`
	Recipes    int       `gorm:"column:recipes;not null"`
	ImportedAt time.Time `gorm:"column:imported_at;not null"`
}

func (CatalogImportModel) TableName() string {
	return "catalog_imports"
}
