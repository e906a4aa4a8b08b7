// Package message renders explorer transactions into the Telegram status
// message. Output uses Telegram's legacy Markdown syntax.
package message

import (
	"fmt"
	"strings"
	"time"

	"base-wallet-tracker/pkg/explorer"
)

const dateLayout = "02-01-2006 15:04 (UTC+0200)"

// Reports are always rendered at a fixed UTC+2 offset, regardless of DST.
var reportZone = time.FixedZone("UTC+2", 2*60*60)

// Format builds the status message for address. txs must be newest first.
func Format(txs []explorer.Transaction, address, node string) string {
	if len(txs) == 0 {
		return NoTransactions(address, node)
	}

	latest := txs[0]

	var b strings.Builder
	fmt.Fprintf(&b, "🔷 *%s* (`%s`) - *Latest Transaction*\n", node, address)
	fmt.Fprintf(&b, "📅 *Date:* %s\n", FormatDate(latest))
	fmt.Fprintf(&b, "📝 *Status:* %s\n", statusLabel(latest))

	if !latest.Succeeded() {
		if last, found := LastSuccessful(txs); found {
			b.WriteString("\n🔹 *Last Successful Transaction*\n")
			fmt.Fprintf(&b, "📅 *Date:* %s\n", FormatDate(last))
			b.WriteString("✅ *Status:* Success\n")
		}
	}

	return b.String()
}

// NoTransactions is the message sent when the explorer returned nothing.
func NoTransactions(address, node string) string {
	return fmt.Sprintf("🔷 *%s* (`%s`)\n❌ No transactions found.", node, address)
}

// LastSuccessful returns the first successful transaction in list order.
func LastSuccessful(txs []explorer.Transaction) (explorer.Transaction, bool) {
	for _, tx := range txs {
		if tx.Succeeded() {
			return tx, true
		}
	}
	return explorer.Transaction{}, false
}

// FormatDate renders the transaction time at UTC+2, or "unknown" when the
// timestamp is not an integer.
func FormatDate(tx explorer.Transaction) string {
	ts, err := tx.Time()
	if err != nil {
		return "unknown"
	}
	return ts.In(reportZone).Format(dateLayout)
}

func statusLabel(tx explorer.Transaction) string {
	if tx.Succeeded() {
		return "✅ *Success*"
	}
	return "❌ *Failed* (🟡 ok for node working)"
}
