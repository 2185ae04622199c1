// Package nats delivers transfer notifications to a NATS JetStream stream so
// other systems can consume them asynchronously. Notifications are published
// to a per-severity subject under a single durable stream.
package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gabapcia/solwatch/internal/transfersink"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	// transfersStreamName is the JetStream stream holding transfer notifications.
	transfersStreamName = "TRANSFERS"

	// transfersStreamSubjects is the subject pattern captured by the stream.
	transfersStreamSubjects = "transfers.*"

	// transfersStreamMaxAge is how long published notifications are retained.
	transfersStreamMaxAge = 30 * 24 * time.Hour

	// connectTimeout bounds the initial connection handshake with the server.
	connectTimeout = 10 * time.Second
)

// notificationSubject builds the subject a notification is published to.
// Splitting by severity lets consumers subscribe to large transfers only.
func notificationSubject(notification transfersink.TransferNotification) string {
	return fmt.Sprintf("transfers.%s", notification.Severity)
}

// notifier publishes transfer notifications to JetStream.
type notifier struct {
	conn *nats.Conn
	js   jetstream.JetStream
}

// Compile-time assertion that notifier implements the TransferNotifier interface.
var _ transfersink.TransferNotifier = (*notifier)(nil)

// Close drains the connection to the NATS server.
func (n *notifier) Close() error {
	n.conn.Close()
	return nil
}

// NotifyTransfer publishes the notification to "transfers.<severity>" and
// waits for the JetStream acknowledgment.
func (n *notifier) NotifyTransfer(ctx context.Context, notification transfersink.TransferNotification) error {
	data, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	_, err = n.js.Publish(ctx, notificationSubject(notification), data)
	return err
}

// ensureStream creates the transfers stream when it does not exist yet.
func ensureStream(ctx context.Context, js jetstream.JetStream) error {
	_, err := js.Stream(ctx, transfersStreamName)
	if err == nil {
		return nil
	}

	if !errors.Is(err, jetstream.ErrStreamNotFound) {
		return err
	}

	_, err = js.CreateStream(ctx, jetstream.StreamConfig{
		Name:      transfersStreamName,
		Subjects:  []string{transfersStreamSubjects},
		Retention: jetstream.LimitsPolicy,
		MaxAge:    transfersStreamMaxAge,
		Storage:   jetstream.FileStorage,
		Replicas:  1,
	})
	return err
}

// NewNotifier connects to the NATS server at natsURL and makes sure the
// transfers stream exists before any notification is published.
func NewNotifier(ctx context.Context, natsURL string) (*notifier, error) {
	conn, err := nats.Connect(natsURL,
		nats.Name("solwatch"),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ensureStream(ctx, js); err != nil {
		conn.Close()
		return nil, err
	}

	return &notifier{
		conn: conn,
		js:   js,
	}, nil
}
