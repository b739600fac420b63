package util

import "context"

type contextKey string

const (
	// CTXKeyLocalTx carries the badger transaction of local.Service.WithTransaction.
	CTXKeyLocalTx contextKey = "local_tx"
	// CTXKeyPGTx carries the transaction executor of db.WithTransaction.
	CTXKeyPGTx contextKey = "pg_tx"
	// CTXKeyRequestID carries the request id set by the echo middleware.
	CTXKeyRequestID contextKey = "request_id"
)

// RequestIDFromContext returns the request id attached to ctx, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CTXKeyRequestID).(string)
	return id, ok
}
