package config

// CatalogConfig selects where the game catalog is loaded from and how it is indexed
type CatalogConfig struct {
	// Source: "file" reads Path directly, "database" reads the imported catalog tables
	Source string `mapstructure:"source" validate:"required,oneof=file database"`

	// Catalog file (YAML or JSON). Required when Source is "file".
	Path string `mapstructure:"path" validate:"required_if=Source file"`

	// Producer ids starting with this prefix count as production buildings
	BuildingPrefix string `mapstructure:"building_prefix" validate:"required"`

	// ProducerPredicate: "prefix" matches BuildingPrefix, "manufacturer" trusts the
	// catalog's per-building manufacturer flag
	ProducerPredicate string `mapstructure:"producer_predicate" validate:"required,oneof=prefix manufacturer"`

	// Recipes consuming any of these items are left out of the index
	IngredientDenylist []string `mapstructure:"ingredient_denylist"`
}
