package catalog

import (
	"sort"

	"pos-service/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// sortByName orders products by name the way a French-locale UI lists them.
// A collator is not safe for concurrent use, so one is built per call.
func sortByName(products []model.Product) {
	c := collate.New(language.French, collate.IgnoreCase)
	sort.SliceStable(products, func(i, j int) bool {
		return c.CompareString(products[i].Name, products[j].Name) < 0
	})
}
