package port

import "errors"

// Error taxonomy for the payment confirmation flow. Callers match these with
// errors.Is; infrastructure wraps its own failures around them.
var (
	// ErrGatewayUnavailable is a transient gateway failure (network, timeout,
	// 5xx). The caller retries with backoff; no local record is left behind.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrGatewayRejected means the gateway refused the intent (bad amount,
	// unsupported currency). Not retryable.
	ErrGatewayRejected = errors.New("payment gateway rejected the request")

	// ErrDuplicateIntent means a record already exists for the gateway intent
	// id. Defensive: gateway-assigned ids should be unique.
	ErrDuplicateIntent = errors.New("payment record already exists for intent")

	// ErrInvalidSignature means the callback HMAC did not verify. No state is
	// mutated.
	ErrInvalidSignature = errors.New("callback signature verification failed")

	// ErrUnknownIntent means no payment record matches the gateway intent id.
	ErrUnknownIntent = errors.New("no payment record for intent")

	// ErrUnknownOrderDomain means the order domain tag has no registered adapter.
	ErrUnknownOrderDomain = errors.New("unknown order domain")

	// ErrOrderUpdateFailed means the payment was captured but the order-side
	// mark-paid failed. The capture stands; the reconciliation sweep retries
	// the order update.
	ErrOrderUpdateFailed = errors.New("order update failed after capture")

	// ErrOrderNotFound means the order adapter could not find the referenced
	// order aggregate.
	ErrOrderNotFound = errors.New("order not found")

	// ErrRecordNotFound means no payment record matches the given id.
	ErrRecordNotFound = errors.New("payment record not found")
)
