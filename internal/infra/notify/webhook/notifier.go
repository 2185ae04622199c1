// Package webhook delivers transfer notifications to a configured HTTP
// endpoint as JSON POST requests. Requests are retried on transient failures
// by the underlying HTTP client; delivery remains advisory either way.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	transporthttp "github.com/gabapcia/solwatch/internal/pkg/transport/http"
	"github.com/gabapcia/solwatch/internal/transfersink"

	"github.com/hashicorp/go-retryablehttp"
)

// ErrUnexpectedStatusCode indicates that the webhook endpoint answered with a
// status code outside the 2xx range.
var ErrUnexpectedStatusCode = errors.New("webhook endpoint returned an unexpected status code")

// notifier posts transfer notifications to a single webhook endpoint.
type notifier struct {
	endpoint   string                // URL that receives the notification payloads
	httpClient *retryablehttp.Client // HTTP client used to perform requests
}

// Compile-time assertion that notifier implements the TransferNotifier interface.
var _ transfersink.TransferNotifier = (*notifier)(nil)

// NotifyTransfer posts the notification to the configured endpoint as a JSON
// body. Any answer in the 2xx range counts as delivered.
func (n *notifier) NotifyTransfer(ctx context.Context, notification transfersink.TransferNotification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, res.StatusCode)
	}

	return nil
}

// NewNotifier creates a webhook notifier pointing at the given endpoint.
// Options are forwarded to the underlying HTTP client, so timeouts and retry
// behavior are configured the same way as any other outbound HTTP dependency.
func NewNotifier(endpoint string, opts ...transporthttp.Option) *notifier {
	return &notifier{
		endpoint:   endpoint,
		httpClient: transporthttp.NewClient(opts...),
	}
}
