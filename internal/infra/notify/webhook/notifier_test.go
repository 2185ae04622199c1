package webhook

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	transporthttp "github.com/gabapcia/solwatch/internal/pkg/transport/http"
	"github.com/gabapcia/solwatch/internal/transfersink"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNotification() transfersink.TransferNotification {
	return transfersink.TransferNotification{
		EventID:    "0195a3a4-7e15-7c3b-b1d4-bf2b7c71e001",
		EventType:  "transfer.detected",
		Timestamp:  "2025-03-14T09:26:53Z",
		Signature:  "5j7s6NiJS3JAkvgkoc18WVAsiSaci2pxB2A6ueCJP4tprA2TFg9wSyTLeYouxPBJEMzJinENTkpA52YStRW5Dia7",
		FromWallet: "5tzFkiKscXHK5ZXCGbXZxdw7gTjjD1mBwuoFbhUvuAi9",
		FromLabel:  "Binance Hot Wallet",
		ToWallet:   "77DXFZnMebramt4dXfdwem1AjnfNnVnG8FkcVWpSwdjB",
		ToLabel:    "Gate.io Deposit Wintermute",
		AmountSOL:  "500.000000",
		Direction:  "outbound",
		Severity:   transfersink.SeverityInfo,
	}
}

func TestNotifierNotifyTransfer(t *testing.T) {
	t.Run("posts the notification as JSON", func(t *testing.T) {
		var (
			gotMethod      string
			gotContentType string
			gotPayload     transfersink.TransferNotification
		)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotContentType = r.Header.Get("Content-Type")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		n := NewNotifier(server.URL)

		err := n.NotifyTransfer(t.Context(), testNotification())

		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, testNotification(), gotPayload)
	})

	t.Run("accepts any 2xx answer", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		n := NewNotifier(server.URL)

		assert.NoError(t, n.NotifyTransfer(t.Context(), testNotification()))
	})

	t.Run("reports non 2xx answers as delivery failures", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		n := NewNotifier(server.URL)

		err := n.NotifyTransfer(t.Context(), testNotification())

		assert.ErrorIs(t, err, ErrUnexpectedStatusCode)
	})

	t.Run("retries transient endpoint failures", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		n := NewNotifier(server.URL,
			transporthttp.WithRetryMax(2),
			transporthttp.WithFixedRetryWait(time.Millisecond),
		)

		err := n.NotifyTransfer(t.Context(), testNotification())

		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("returns error when the endpoint is unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		server.Close()

		n := NewNotifier(server.URL,
			transporthttp.WithRetryMax(0),
			transporthttp.WithFixedRetryWait(time.Millisecond),
		)

		assert.Error(t, n.NotifyTransfer(t.Context(), testNotification()))
	})
}
