package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	DefaultReconnectInterval    = 2 * time.Second
	DefaultMaxReconnectAttempts = 5

	methodSubscribeTxStatus    = "starknet_subscribeTransactionStatus"
	methodTxStatusNotification = "starknet_subscriptionTransactionStatus"
	methodUnsubscribe          = "starknet_unsubscribe"

	finalityRejected     = "REJECTED"
	finalityAcceptedOnL2 = "ACCEPTED_ON_L2"
	finalityAcceptedOnL1 = "ACCEPTED_ON_L1"
	executionReverted    = "REVERTED"
)

type wsRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type wsError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type wsMessage struct {
	ID     *int            `json:"id"`
	Method string          `json:"method"`
	Result json.RawMessage `json:"result"`
	Params json.RawMessage `json:"params"`
	Error  *wsError        `json:"error"`
}

// TxStatus is the status payload pushed by starknet_subscriptionTransactionStatus.
type TxStatus struct {
	FinalityStatus  string `json:"finality_status"`
	ExecutionStatus string `json:"execution_status"`
	FailureReason   string `json:"failure_reason"`
}

type txStatusNotification struct {
	SubscriptionID json.RawMessage `json:"subscription_id"`
	Result         struct {
		TransactionHash string   `json:"transaction_hash"`
		Status          TxStatus `json:"status"`
	} `json:"result"`
}

// WatcherConfig holds configuration for the TxStatusWatcher.
type WatcherConfig struct {
	Endpoint             string
	ReconnectInterval    time.Duration
	MaxReconnectAttempts int
	Logger               *zap.Logger
}

// TxStatusWatcher confirms transactions through a websocket subscription
// instead of polling receipts.
type TxStatusWatcher struct {
	config WatcherConfig
	dialer *websocket.Dialer
}

// NewTxStatusWatcher creates a watcher for the websocket endpoint in config.
func NewTxStatusWatcher(config WatcherConfig) *TxStatusWatcher {
	if config.ReconnectInterval == 0 {
		config.ReconnectInterval = DefaultReconnectInterval
	}
	if config.MaxReconnectAttempts == 0 {
		config.MaxReconnectAttempts = DefaultMaxReconnectAttempts
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &TxStatusWatcher{config: config, dialer: websocket.DefaultDialer}
}

// WaitForTransaction blocks until txHash is accepted on L2/L1, rejected or
// reverted. The retry interval is unused: the node pushes updates. Dropped
// connections are re-established up to MaxReconnectAttempts times.
func (w *TxStatusWatcher) WaitForTransaction(ctx context.Context, txHash *felt.Felt, _ time.Duration) error {
	var lastErr error
	for attempt := 0; attempt <= w.config.MaxReconnectAttempts; attempt++ {
		if attempt > 0 {
			w.config.Logger.Debug("resubscribing to transaction status",
				zap.Stringer("tx_hash", txHash),
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.config.ReconnectInterval):
			}
		}

		status, err := w.watch(ctx, txHash)
		if err == nil {
			return statusError(txHash, status)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var rpcErr *subscriptionError
		if errors.As(err, &rpcErr) {
			return err
		}
		lastErr = err
	}
	return errors.Wrapf(lastErr, "watch transaction %s", txHash)
}

type subscriptionError struct {
	wsError
}

func (e *subscriptionError) Error() string {
	return fmt.Sprintf("subscription rejected: %d %s", e.Code, e.Message)
}

// watch runs one subscription until a final status arrives.
func (w *TxStatusWatcher) watch(ctx context.Context, txHash *felt.Felt) (TxStatus, error) {
	conn, _, err := w.dialer.DialContext(ctx, w.config.Endpoint, nil)
	if err != nil {
		return TxStatus{}, errors.Wrap(err, "dial websocket")
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	sub := wsRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  methodSubscribeTxStatus,
		Params:  map[string]string{"transaction_hash": txHash.String()},
	}
	if err := conn.WriteJSON(sub); err != nil {
		return TxStatus{}, errors.Wrap(err, "send subscription")
	}

	var subscriptionID json.RawMessage
	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return TxStatus{}, errors.Wrap(err, "read websocket")
		}

		switch {
		case msg.ID != nil && *msg.ID == sub.ID:
			if msg.Error != nil {
				return TxStatus{}, &subscriptionError{*msg.Error}
			}
			subscriptionID = msg.Result
		case msg.Method == methodTxStatusNotification:
			var n txStatusNotification
			if err := json.Unmarshal(msg.Params, &n); err != nil {
				return TxStatus{}, errors.Wrap(err, "decode status notification")
			}
			w.config.Logger.Debug("transaction status",
				zap.Stringer("tx_hash", txHash),
				zap.String("finality", n.Result.Status.FinalityStatus),
				zap.String("execution", n.Result.Status.ExecutionStatus),
			)
			if isFinal(n.Result.Status) {
				if subscriptionID != nil {
					_ = conn.WriteJSON(wsRequest{
						JSONRPC: "2.0",
						ID:      2,
						Method:  methodUnsubscribe,
						Params:  map[string]json.RawMessage{"subscription_id": subscriptionID},
					})
				}
				return n.Result.Status, nil
			}
		}
	}
}

func isFinal(s TxStatus) bool {
	switch s.FinalityStatus {
	case finalityRejected, finalityAcceptedOnL2, finalityAcceptedOnL1:
		return true
	}
	return s.ExecutionStatus == executionReverted
}

func statusError(txHash *felt.Felt, s TxStatus) error {
	if s.FinalityStatus == finalityRejected {
		return &TransactionError{TxHash: txHash, Status: finalityRejected, Reason: s.FailureReason}
	}
	if s.ExecutionStatus == executionReverted {
		return &TransactionError{TxHash: txHash, Status: executionReverted, Reason: s.FailureReason}
	}
	return nil
}
