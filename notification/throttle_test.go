package notification

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"golang.org/x/time/rate"
)

func TestSendThrottle(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should drop instead of waiting when the throttle is exhausted", func(t *testing.T) {
		received := 0
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			received++
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		os.Setenv("NOTIFICATION_WEBHOOK", ts.URL)
		defer os.Unsetenv("NOTIFICATION_WEBHOOK")

		origin := deliveryLimiter
		defer func() { deliveryLimiter = origin }()

		deliveryLimiter = rate.NewLimiter(rate.Limit(1), 1)
		begin := time.Now()
		for i := 0; i < 10; i++ {
			Send(100, TypeMemberLeft, "someone left")
		}
		Expect(time.Since(begin) < 500*time.Millisecond).To(BeTrue())
		Expect(received).To(Equal(1))
	})
}
