package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultURL     = "https://api.basescan.org/api"
	RequestTimeout = 10 * time.Second
)

// Client queries an Etherscan-compatible explorer (BaseScan, Etherscan,
// Blockscout) for account transaction lists.
type Client struct {
	baseURL    string
	apiKey     string
	startBlock int64
	endBlock   int64
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a client bounded to [startBlock, endBlock]. A nil httpClient
// gets a default one with RequestTimeout; a nil logger discards output.
func NewClient(baseURL, apiKey string, startBlock, endBlock int64, httpClient *http.Client, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: RequestTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		startBlock: startBlock,
		endBlock:   endBlock,
		httpClient: httpClient,
		logger:     logger.Named("explorer"),
	}
}

// Transactions returns the address's transactions, newest first, exactly as
// the explorer listed them. Failures are logged and reported through the
// Outcome; the list is then empty.
func (c *Client) Transactions(ctx context.Context, address string) ([]Transaction, Outcome) {
	body, err := c.get(ctx, address)
	if err != nil {
		c.logger.Error("txlist request failed", zap.String("address", address), zap.Error(err))
		return []Transaction{}, OutcomeTransportError
	}

	var resp txListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("txlist response is not valid json",
			zap.String("address", address),
			zap.ByteString("body", body),
			zap.Error(err),
		)
		return []Transaction{}, OutcomeTransportError
	}

	if resp.Status != "1" {
		// "No transactions found" comes back as status 0 with an empty array.
		if isEmptyArray(resp.Result) {
			c.logger.Info("explorer reported no transactions", zap.String("address", address), zap.String("message", resp.Message))
			return []Transaction{}, OutcomeEmpty
		}
		c.logger.Error("explorer api returned an error",
			zap.String("address", address),
			zap.String("status", resp.Status),
			zap.String("message", resp.Message),
			zap.ByteString("result", resp.Result),
		)
		return []Transaction{}, OutcomeAPIError
	}

	var txs []Transaction
	if err := json.Unmarshal(resp.Result, &txs); err != nil {
		c.logger.Error("explorer result is not a transaction list",
			zap.String("address", address),
			zap.ByteString("result", resp.Result),
			zap.Error(err),
		)
		return []Transaction{}, OutcomeAPIError
	}
	if len(txs) == 0 {
		c.logger.Info("explorer returned an empty transaction list", zap.String("address", address))
		return []Transaction{}, OutcomeEmpty
	}

	c.logger.Debug("fetched transactions", zap.String("address", address), zap.Int("count", len(txs)))
	return txs, OutcomeOK
}

func (c *Client) get(ctx context.Context, address string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := url.Values{}
	q.Set("module", "account")
	q.Set("action", "txlist")
	q.Set("address", address)
	q.Set("startblock", strconv.FormatInt(c.startBlock, 10))
	q.Set("endblock", strconv.FormatInt(c.endBlock, 10))
	q.Set("sort", "desc")
	q.Set("apikey", c.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}
	return body, nil
}

func isEmptyArray(raw json.RawMessage) bool {
	var arr []json.RawMessage
	return json.Unmarshal(raw, &arr) == nil && len(arr) == 0
}
