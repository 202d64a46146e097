package replication

import "context"

// Gateway delivers replication messages to the peer services. Send returns
// the transport-assigned message id. Implementations retry transient
// failures internally; an error from Send means delivery ultimately failed
// and the caller must compensate.
type Gateway interface {
	Send(ctx context.Context, msg Message) (string, error)
}
