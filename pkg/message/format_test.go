package message

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"base-wallet-tracker/pkg/explorer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	addr = "0x1111111111111111111111111111111111111111"
	node = "node-1"
)

func tx(ts string, isError string) explorer.Transaction {
	return explorer.Transaction{TimeStamp: json.Number(ts), IsError: isError}
}

func TestFormat_Empty(t *testing.T) {
	msg := Format(nil, addr, node)
	assert.Equal(t, "🔷 *node-1* (`0x1111111111111111111111111111111111111111`)\n❌ No transactions found.", msg)
	assert.Equal(t, msg, Format([]explorer.Transaction{}, addr, node))
}

func TestFormat_LatestSucceeded(t *testing.T) {
	msg := Format([]explorer.Transaction{tx("1700000000", "0")}, addr, node)

	expected := "🔷 *node-1* (`0x1111111111111111111111111111111111111111`) - *Latest Transaction*\n" +
		"📅 *Date:* 15-11-2023 00:13 (UTC+0200)\n" +
		"📝 *Status:* ✅ *Success*\n"
	assert.Equal(t, expected, msg)
	assert.NotContains(t, msg, "Last Successful Transaction")
}

func TestFormat_LatestFailedWithEarlierSuccess(t *testing.T) {
	msg := Format([]explorer.Transaction{
		tx("1700003600", "1"),
		tx("1700000000", "0"),
	}, addr, node)

	expected := "🔷 *node-1* (`0x1111111111111111111111111111111111111111`) - *Latest Transaction*\n" +
		"📅 *Date:* 15-11-2023 01:13 (UTC+0200)\n" +
		"📝 *Status:* ❌ *Failed* (🟡 ok for node working)\n" +
		"\n🔹 *Last Successful Transaction*\n" +
		"📅 *Date:* 15-11-2023 00:13 (UTC+0200)\n" +
		"✅ *Status:* Success\n"
	assert.Equal(t, expected, msg)
}

func TestFormat_ReportsFirstSuccessInListOrder(t *testing.T) {
	msg := Format([]explorer.Transaction{
		tx("1700007200", "1"),
		tx("1700003600", "1"),
		tx("1700000000", "0"),
		tx("1699990000", "0"),
	}, addr, node)

	assert.Contains(t, msg, "Last Successful Transaction*\n📅 *Date:* 15-11-2023 00:13 (UTC+0200)")
	assert.NotContains(t, msg, FormatDate(tx("1699990000", "0")))
}

func TestFormat_AllFailed(t *testing.T) {
	tests := []struct {
		name string
		txs  []explorer.Transaction
	}{
		{"single failed", []explorer.Transaction{tx("1700000000", "1")}},
		{"several failed", []explorer.Transaction{tx("1700003600", "1"), tx("1700000000", "1")}},
		{"unknown flag", []explorer.Transaction{tx("1700000000", "")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Format(tt.txs, addr, node)
			assert.Contains(t, msg, "❌ *Failed*")
			assert.NotContains(t, msg, "Last Successful Transaction")
		})
	}
}

func TestFormat_SucceededLatestIgnoresHistory(t *testing.T) {
	msg := Format([]explorer.Transaction{
		tx("1700003600", "0"),
		tx("1700000000", "1"),
	}, addr, node)
	assert.NotContains(t, msg, "Last Successful Transaction")
}

func TestFormatDate(t *testing.T) {
	a := FormatDate(tx("1700000000", "0"))
	b := FormatDate(tx("1700000000", "1"))
	assert.Equal(t, "15-11-2023 00:13 (UTC+0200)", a)
	assert.Equal(t, a, b)

	assert.Equal(t, "unknown", FormatDate(tx("", "0")))
	assert.Equal(t, "unknown", FormatDate(tx("1.5", "0")))
}

func TestFormat_UnparsableTimestampFromExplorer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"1","message":"OK","result":[{"hash":"0xaa","blockNumber":21000005,"timeStamp":"n/a","isError":"0"}]}`))
	}))
	defer server.Close()

	client := explorer.NewClient(server.URL, "key", 0, 99999999, nil, nil)
	txs, outcome := client.Transactions(context.Background(), addr)
	require.Equal(t, explorer.OutcomeOK, outcome)

	msg := Format(txs, addr, node)
	assert.Contains(t, msg, "📅 *Date:* unknown\n")
	assert.Contains(t, msg, "✅ *Success*")
}
