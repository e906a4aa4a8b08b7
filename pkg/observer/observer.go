package observer

import (
	"context"
	"time"

	"base-wallet-tracker/pkg/config"
	"base-wallet-tracker/pkg/explorer"
	"base-wallet-tracker/pkg/message"
	"base-wallet-tracker/pkg/metrics"
	"base-wallet-tracker/pkg/notifier"

	"go.uber.org/zap"
)

type Fetcher interface {
	Transactions(ctx context.Context, address string) ([]explorer.Transaction, explorer.Outcome)
}

type Notifier interface {
	Notify(text string) error
}

type Observer struct {
	Explorer Fetcher
	Notifier Notifier
	Metrics  *metrics.Metrics
	Logger   *zap.Logger

	address        string
	node           string
	pushgatewayURL string
}

func InitObserver(cfg *config.Config, logger *zap.Logger) *Observer {
	return &Observer{
		Explorer: explorer.NewClient(cfg.ExplorerURL, cfg.ExplorerAPIKey, cfg.StartBlock, cfg.EndBlock, nil, logger),
		Notifier: notifier.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, cfg.TelegramAPIEndpoint, nil, logger),
		Metrics:  metrics.NewMetrics(nil),
		Logger:   logger,

		address:        cfg.WalletAddress,
		node:           cfg.NodeName,
		pushgatewayURL: cfg.PushgatewayURL,
	}
}

// Check runs one fetch, format, notify cycle. Failures are logged and
// absorbed, so Check always returns normally.
func (observer *Observer) Check(ctx context.Context) {
	defer observer.finish(ctx)

	txs := observer.fetch(ctx)
	if len(txs) > 0 {
		observer.Metrics.RecordLatestFailed(!txs[0].Succeeded())
	}

	text := message.Format(txs, observer.address, observer.node)
	err := observer.Notifier.Notify(text)
	observer.Metrics.RecordNotify(err)
	if err != nil {
		observer.Logger.Error("notification was not delivered",
			zap.String("node", observer.node),
			zap.Error(err),
		)
		return
	}
	observer.Logger.Info("check completed", zap.String("node", observer.node), zap.Int("transactions", len(txs)))
}

// ListTXs fetches the wallet's transactions and logs them without notifying.
func (observer *Observer) ListTXs(ctx context.Context) []explorer.Transaction {
	defer observer.finish(ctx)

	txs := observer.fetch(ctx)
	for _, tx := range txs {
		observer.Logger.Info("transaction",
			zap.String("hash", tx.Hash),
			zap.String("block", tx.BlockNumber),
			zap.String("date", message.FormatDate(tx)),
			zap.Bool("success", tx.Succeeded()),
			zap.String("from", tx.From),
			zap.String("to", tx.To),
			zap.String("value", tx.Value),
		)
	}
	if len(txs) == 0 {
		observer.Logger.Info("no transactions found", zap.String("address", observer.address))
	}
	return txs
}

func (observer *Observer) fetch(ctx context.Context) []explorer.Transaction {
	observer.Logger.Info("fetching transactions",
		zap.String("node", observer.node),
		zap.String("address", observer.address),
	)

	start := time.Now()
	txs, outcome := observer.Explorer.Transactions(ctx, observer.address)
	observer.Metrics.RecordFetch(string(outcome), time.Since(start), len(txs))

	if outcome == explorer.OutcomeAPIError || outcome == explorer.OutcomeTransportError {
		observer.Logger.Warn("fetch failed, reporting no transactions", zap.String("outcome", string(outcome)))
	}
	return txs
}

func (observer *Observer) finish(ctx context.Context) {
	observer.Metrics.MarkRun(time.Now())
	if observer.pushgatewayURL == "" {
		return
	}
	if err := observer.Metrics.Push(ctx, observer.pushgatewayURL, observer.node); err != nil {
		observer.Logger.Error("metrics push failed", zap.Error(err))
	}
}
