package outbound

// Kind classifies the result of a best-effort call.
type Kind string

const (
	// KindSkipped means no URL was configured, so no call was made.
	KindSkipped Kind = "skipped"
	// KindDelivered means the upstream answered 2xx.
	KindDelivered Kind = "delivered"
	// KindUnreachable means the request never produced a response.
	KindUnreachable Kind = "unreachable"
	// KindRejected means the upstream answered with a non-2xx status.
	KindRejected Kind = "rejected"
)

// Outcome reports what happened to a best-effort call so the caller can pick
// its own escalation policy.
type Outcome struct {
	Kind       Kind   `json:"kind"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Skipped is the outcome of a call whose URL is unset.
func Skipped() Outcome {
	return Outcome{Kind: KindSkipped}
}

// Failed reports whether the call was attempted and did not succeed.
func (o Outcome) Failed() bool {
	return o.Kind == KindUnreachable || o.Kind == KindRejected
}
