package nieuwkoop

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is one raw catalog record from the Nieuwkoop customer API.
type Item struct {
	Itemcode        string    `json:"Itemcode"`
	ItemDescription string    `json:"ItemDescription"`
	GTINCode        string    `json:"GTINCode"`
	MainGroup       string    `json:"MainGroupDescription_EN"`
	ProductGroup    string    `json:"ProductGroupDescription_EN"`
	Sysmodified     time.Time `json:"Sysmodified"`
	ShowOnWebsite   bool      `json:"ShowOnWebsite"`
	Tags            []ItemTag `json:"Tags"`
}

// ItemTag is one entry of the semi-structured tag list. Known codes get typed
// accessors below so malformed payloads surface at the boundary instead of in
// handlers scanning raw maps.
type ItemTag struct {
	Code   string   `json:"Code"`
	Values []string `json:"Values"`
}

const (
	TagBrand    = "Brand"
	TagHeight   = "Height"
	TagDiameter = "Diameter"
	TagMaterial = "Material"
	TagColour   = "Colour"
)

// Tag returns the first value for a tag code, "" when absent.
func (i Item) Tag(code string) string {
	for _, t := range i.Tags {
		if t.Code == code && len(t.Values) > 0 {
			return t.Values[0]
		}
	}
	return ""
}

// Brand scans the tag list for the "Brand" tag.
func (i Item) Brand() string {
	return i.Tag(TagBrand)
}

// PriceInfo is the sales price record for one item.
type PriceInfo struct {
	Itemcode string          `json:"Itemcode"`
	Price    decimal.Decimal `json:"Saleprice"`
	Currency string          `json:"Currency"`
}

// StockInfo is the current availability for one item.
type StockInfo struct {
	Itemcode       string    `json:"Itemcode"`
	StockAvailable int       `json:"StockAvailable"`
	FirstAvailable time.Time `json:"FirstAvailable"`
}

// ItemDetail bundles the three per-item lookups.
type ItemDetail struct {
	Item  Item
	Price PriceInfo
	Stock StockInfo
}
