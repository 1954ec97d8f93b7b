package models

import "time"

// MenuItemType enumerates the kinds of menu items.
type MenuItemType string

const (
	MenuItemDrink     MenuItemType = "drink"
	MenuItemEntree    MenuItemType = "entree"
	MenuItemSide      MenuItemType = "side"
	MenuItemDessert   MenuItemType = "dessert"
	MenuItemAppetizer MenuItemType = "appetizer"
	MenuItemCombo     MenuItemType = "combo"
	MenuItemMeal      MenuItemType = "meal"
)

// Valid reports whether t is a known menu item type.
func (t MenuItemType) Valid() bool {
	switch t {
	case MenuItemDrink, MenuItemEntree, MenuItemSide, MenuItemDessert,
		MenuItemAppetizer, MenuItemCombo, MenuItemMeal:
		return true
	}
	return false
}

type MenuItem struct {
	ID          string       `bson:"id" json:"id"`
	VendorID    string       `bson:"vendorId" json:"vendorId"`
	Title       string       `bson:"title" json:"title"`
	Image       *Image       `bson:"image,omitempty" json:"image,omitempty"`
	Description string       `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64      `bson:"price" json:"price"`
	Type        MenuItemType `bson:"type" json:"type"`
	Rating      float64      `bson:"rating" json:"rating"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
}
