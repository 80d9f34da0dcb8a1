package catalog

// RecipeID is the opaque identifier of a recipe in the game catalog
type RecipeID string

// BuildingID identifies a producer building type (e.g. "Build_SmelterMk1_C")
type BuildingID string

// Building is a producer type that can run recipes
type Building struct {
	ID   BuildingID
	Name string

	// PowerConsumption is the default power draw in MW at 100% clock speed
	PowerConsumption float64

	// Manufacturer is true for fixed production buildings (as opposed to
	// workbenches, equipment or the build gun)
	Manufacturer bool
}

// Recipe is a fixed-ratio, fixed-duration transformation of ingredients into products
type Recipe struct {
	ID          RecipeID
	Name        string
	Ingredients []ItemAmount
	Products    []ItemAmount

	// Duration is the manufacturing time of one cycle, in seconds
	Duration float64

	// ProducedIn lists every producer type able to run this recipe
	ProducedIn []BuildingID

	// Unlocked is true if the recipe is currently available to the player
	Unlocked bool
}

// ProductAmount returns the per-cycle amount of item produced by the recipe
func (r *Recipe) ProductAmount(item ItemID) (float64, bool) {
	for _, product := range r.Products {
		if product.Item == item {
			return product.Amount, true
		}
	}
	return 0, false
}

// Produces returns true if item is one of the recipe's products
func (r *Recipe) Produces(item ItemID) bool {
	_, ok := r.ProductAmount(item)
	return ok
}

// CyclesPerMinute returns how many manufacturing cycles fit in one minute.
// Returns 0 for recipes with a non-positive duration.
func (r *Recipe) CyclesPerMinute() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return 60.0 / r.Duration
}

// BaseRatePerMinute returns the per-minute output of item for a single building
// running the recipe at 100%: (60 / duration) * product amount.
func (r *Recipe) BaseRatePerMinute(item ItemID) float64 {
	amount, ok := r.ProductAmount(item)
	if !ok {
		return 0
	}
	return r.CyclesPerMinute() * amount
}
