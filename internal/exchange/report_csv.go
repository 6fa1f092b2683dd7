package exchange

import (
	"io"
	"strconv"

	"pos-service/internal/report"
)

// WriteSalesCSV writes the per-variant section of a sales report
func WriteSalesCSV(w io.Writer, sales report.Sales) error {
	rw := newRowWriter(w)
	rw.header("Produit", "Taille", "Quantité Vendue", "Revenu Total")
	for _, v := range sales.Variants {
		rw.row(
			plain(v.Name),
			plain(v.Size),
			plain(strconv.Itoa(v.Quantity)),
			plain(FormatAmount(v.Revenue)),
		)
	}
	return rw.flush()
}

// WriteCategorySalesCSV writes the per-category section of a sales report
func WriteCategorySalesCSV(w io.Writer, sales report.Sales) error {
	rw := newRowWriter(w)
	rw.header("Catégorie", "Quantité Vendue", "Revenu Total")
	for _, c := range sales.Categories {
		rw.row(
			plain(c.Category),
			plain(strconv.Itoa(c.Quantity)),
			plain(FormatAmount(c.Revenue)),
		)
	}
	return rw.flush()
}
