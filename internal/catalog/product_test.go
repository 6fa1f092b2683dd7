package catalog

import (
	"testing"

	"pos-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCRUD(t *testing.T) {
	t.Run("AddProduct_AssignsIDAndCreatesCategory", func(t *testing.T) {
		p := model.Product{Name: "Jean", Category: "Bas", Price: price("49"), Variants: []model.ProductVariant{{Size: "40", Stock: 2}}}

		next, created := AddProduct(sampleState(), p, sequentialIDs())

		assert.Equal(t, "prod_1", created.ID)
		require.Len(t, next.Products, 3)
		assert.Equal(t, created, next.Products[2])
		assert.Equal(t, []string{"Hauts", "Accessoires", "Bas"}, categoryNames(next.Categories))
		assert.Equal(t, "cat_2", next.Categories[2].ID)
	})

	t.Run("AddProduct_ReusesExistingCategory", func(t *testing.T) {
		p := model.Product{Name: "Polo", Category: "Hauts", Price: price("25"), Variants: []model.ProductVariant{{Size: "M", Stock: 2}}}

		next, _ := AddProduct(sampleState(), p, sequentialIDs())

		assert.Len(t, next.Categories, 2)
	})

	t.Run("UpdateProduct_ReplacesInPlace", func(t *testing.T) {
		updated := teeShirt()
		updated.Name = "Tee bio"
		updated.Category = "Bio"
		updated.Variants = []model.ProductVariant{{Size: "S", Stock: 9, LowStockThreshold: 3}}

		next, err := UpdateProduct(sampleState(), updated, sequentialIDs())
		require.NoError(t, err)

		require.Len(t, next.Products, 2)
		assert.Equal(t, "prod_tee", next.Products[0].ID)
		assert.Equal(t, "Tee bio", next.Products[0].Name)
		assert.Equal(t, updated.Variants, next.Products[0].Variants)
		assert.Equal(t, []string{"Hauts", "Accessoires", "Bio"}, categoryNames(next.Categories))
	})

	t.Run("UpdateProduct_FailsOnUnknownID", func(t *testing.T) {
		ghost := teeShirt()
		ghost.ID = "prod_ghost"
		ghost.Category = "Fantôme"

		next, err := UpdateProduct(sampleState(), ghost, sequentialIDs())
		require.ErrorIs(t, err, ErrProductNotFound)
		assert.Len(t, next.Categories, 2)
	})
}

func TestValidateProduct(t *testing.T) {
	valid := func() model.Product {
		p := teeShirt()
		p.ID = ""
		return p
	}

	require.NoError(t, ValidateProduct(valid()))

	cases := map[string]struct {
		mutate func(p *model.Product)
		field  string
	}{
		"blank name":         {func(p *model.Product) { p.Name = "  " }, "name"},
		"blank category":     {func(p *model.Product) { p.Category = "" }, "category"},
		"zero price":         {func(p *model.Product) { p.Price = price("0") }, "price"},
		"negative price":     {func(p *model.Product) { p.Price = price("-1") }, "price"},
		"no variants":        {func(p *model.Product) { p.Variants = nil }, "variants"},
		"blank size":         {func(p *model.Product) { p.Variants[0].Size = " " }, "variants.size"},
		"duplicate size":     {func(p *model.Product) { p.Variants[1].Size = "M" }, "variants.size"},
		"negative stock":     {func(p *model.Product) { p.Variants[0].Stock = -1 }, "variants.stock"},
		"negative threshold": {func(p *model.Product) { p.Variants[0].LowStockThreshold = -1 }, "variants.lowStockThreshold"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := valid()
			tc.mutate(&p)

			var vErr *ValidationError
			require.ErrorAs(t, ValidateProduct(p), &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestFilterProducts(t *testing.T) {
	products := []model.Product{
		{Name: "écharpe", Category: "Accessoires"},
		{Name: "Tee", Category: "Hauts"},
		{Name: "Casquette", Category: "Accessoires"},
	}

	t.Run("FilterProducts_SortsByName", func(t *testing.T) {
		got := FilterProducts(products, "", "")
		require.Len(t, got, 3)
		assert.Equal(t, "Casquette", got[0].Name)
		assert.Equal(t, "écharpe", got[1].Name)
		assert.Equal(t, "Tee", got[2].Name)
	})

	t.Run("FilterProducts_SearchesNameAndCategory", func(t *testing.T) {
		got := FilterProducts(products, "acces", "")
		assert.Len(t, got, 2)

		got = FilterProducts(products, "TEE", "")
		require.Len(t, got, 1)
		assert.Equal(t, "Tee", got[0].Name)
	})

	t.Run("FilterProducts_MatchesCategoryExactly", func(t *testing.T) {
		got := FilterProducts(products, "", "Hauts")
		require.Len(t, got, 1)
		assert.Equal(t, "Tee", got[0].Name)
	})
}
