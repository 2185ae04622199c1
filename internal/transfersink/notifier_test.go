package transfersink

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiNotifier(t *testing.T) {
	t.Run("delivers the notification to every notifier", func(t *testing.T) {
		var delivered []string
		first := &transferNotifierMock{
			notifyTransferFunc: func(context.Context, TransferNotification) error {
				delivered = append(delivered, "first")
				return nil
			},
		}
		second := &transferNotifierMock{
			notifyTransferFunc: func(context.Context, TransferNotification) error {
				delivered = append(delivered, "second")
				return nil
			},
		}

		err := MultiNotifier(first, second).NotifyTransfer(t.Context(), TransferNotification{})

		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, delivered)
	})

	t.Run("keeps delivering after a notifier fails", func(t *testing.T) {
		firstErr := errors.New("webhook endpoint down")
		secondCalled := false

		first := &transferNotifierMock{
			notifyTransferFunc: func(context.Context, TransferNotification) error {
				return firstErr
			},
		}
		second := &transferNotifierMock{
			notifyTransferFunc: func(context.Context, TransferNotification) error {
				secondCalled = true
				return nil
			},
		}

		err := MultiNotifier(first, second).NotifyTransfer(t.Context(), TransferNotification{})

		assert.ErrorIs(t, err, firstErr)
		assert.True(t, secondCalled)
	})

	t.Run("no notifiers", func(t *testing.T) {
		assert.NoError(t, MultiNotifier().NotifyTransfer(t.Context(), TransferNotification{}))
	})
}
