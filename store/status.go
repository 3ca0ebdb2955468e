package store

import (
	"context"
	"errors"
	"fmt"

	"go.etcd.io/etcd/api/v3/v3rpc/rpctypes"
	clientv3 "go.etcd.io/etcd/client/v3"
	status "google.golang.org/grpc/status"
)

// ErrKeyNotFound is returned by Get when the key is absent from the store.
var ErrKeyNotFound = errors.New("store: key not found")

// SetupError reports a failed setup handshake. Code is always non-zero; a run
// must not start after receiving one.
type SetupError struct {
	Code int
	Err  error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("store setup failed with code %d: %v", e.Code, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// ErrInfo classifies a failed store call into a status code and text.
func ErrInfo(err error) (int, string) {
	var statusCode int
	var statusText string
	if errors.Is(err, context.Canceled) {
		// ctx is canceled by another routine
		statusCode = -1
		statusText = "Context canceled by another goroutine"
	} else if errors.Is(err, context.DeadlineExceeded) {
		// ctx is attached with a deadline and it exceeded
		statusCode = -2
		statusText = "Request deadline exceeded"
	} else if statusErr, ok := err.(rpctypes.EtcdError); ok {
		// etcd client rpc error
		statusCode = int(statusErr.Code())
		statusText = statusErr.Error()
	} else if ev, ok := status.FromError(err); ok {
		// gRPC status error
		statusCode = int(ev.Code())
		statusText = ev.String()
	} else if clientv3.IsConnCanceled(err) {
		statusCode = -3
		statusText = "gRPC client connection closed"
	} else {
		// bad endpoints, which are not metadata servers
		statusCode = -4
		statusText = err.Error()
	}
	return statusCode, statusText
}
