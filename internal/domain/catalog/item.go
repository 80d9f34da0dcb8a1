package catalog

// ItemID is the opaque identifier of an item descriptor in the game catalog
type ItemID string

// Item is a producible or consumable resource type
type Item struct {
	ID   ItemID
	Name string
}

// ItemAmount pairs an item with an amount.
//
// Inside a Recipe the amount is the quantity consumed or produced per manufacturing
// cycle. Inside a plan it is a rate in items per minute.
type ItemAmount struct {
	Item   ItemID
	Amount float64
}

// Scaled returns a copy of the amount multiplied by factor
func (a ItemAmount) Scaled(factor float64) ItemAmount {
	return ItemAmount{Item: a.Item, Amount: a.Amount * factor}
}
