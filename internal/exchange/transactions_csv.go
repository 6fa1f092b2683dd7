package exchange

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"pos-service/internal/model"
)

var transactionHeaders = []string{
	"ID Transaction",
	"Date",
	"Articles",
	"Quantité Totale",
	"Montant Total",
	"Méthode de Paiement",
	"Vendeur ID",
}

// WriteTransactionsCSV writes one row per transaction, dates rendered in loc
func WriteTransactionsCSV(w io.Writer, txs []model.Transaction, loc *time.Location) error {
	rw := newRowWriter(w)
	rw.header(transactionHeaders...)
	for _, tx := range txs {
		rw.row(
			plain(tx.ID),
			plain(tx.Date.In(loc).Format(DisplayDateLayout)),
			quoted(itemSummary(tx.Items)),
			plain(strconv.Itoa(tx.TotalQuantity())),
			plain(FormatAmount(tx.Total)),
			plain(string(tx.PaymentMethod)),
			plain(strconv.Itoa(tx.SellerID)),
		)
	}
	return rw.flush()
}

// itemSummary renders lines as "2 x Tee, 1 x Cap"
func itemSummary(items []model.TransactionItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%d x %s", item.Quantity, item.ProductName)
	}
	return strings.Join(parts, ", ")
}
