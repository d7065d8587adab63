package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/vendimax/backend-vendi/internal/money"
)

// Checker represents optional backing services probed for readiness.
type Checker interface {
	PingRedis(ctx context.Context, timeout time.Duration) error
}

// RegisterStatus reports whether the cash register can still compose change.
type RegisterStatus interface {
	CanMakeChange(amount money.Money) bool
}

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Checker      Checker
	Register     RegisterStatus
	RedisTimeout time.Duration
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on the register state and optional Redis probe.
// A register that cannot compose change still answers ready so operators can
// reach the inventory endpoint, but the condition is surfaced in the body.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Probing with the smallest coin catches the earliest point at which
	// exact change can no longer be guaranteed.
	registerStatus := "ok"
	if h.Register != nil && !h.Register.CanMakeChange(money.MustNew(25)) {
		registerStatus = "out of service"
	}

	redisStatus := "disabled"
	redisOK := true
	if h.Checker != nil {
		redisStatus = "ok"
		if err := h.Checker.PingRedis(ctx, h.redisTimeout()); err != nil {
			redisStatus = err.Error()
			redisOK = false
		}
	}

	status := map[string]string{
		"register": registerStatus,
		"redis":    redisStatus,
	}
	w.Header().Set("Content-Type", "application/json")
	if !redisOK {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(status)
}

func (h Handler) redisTimeout() time.Duration {
	if h.RedisTimeout <= 0 {
		return 300 * time.Millisecond
	}
	return h.RedisTimeout
}
