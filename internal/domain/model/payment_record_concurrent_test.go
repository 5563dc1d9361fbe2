package model_test

import (
	"sync"
	"testing"
	"time"

	"github.com/Navin9820/super-app-QA-sub013/internal/domain/model"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/valueobject"
)

// TestPaymentRecord_ConcurrentTransitions spawns goroutines attempting every
// transition on the same pending record concurrently. The model is immutable
// (value receiver, returns new copies), so each goroutine works on its own
// copy; the test verifies no data races occur and the state machine holds.
func TestPaymentRecord_ConcurrentTransitions(t *testing.T) {
	rec := newTestRecord(t)
	now := time.Now().UTC()

	const goroutines = 10

	type result struct {
		rec model.PaymentRecord
		err error
		op  string
	}

	results := make([]result, goroutines*3)
	var wg sync.WaitGroup

	for i := 0; i < goroutines; i++ {
		base := i * 3
		wg.Add(3)

		// Capture from PENDING -- should succeed.
		go func(idx int) {
			defer wg.Done()
			r, err := rec.Capture("pay_9", now)
			results[idx] = result{rec: r, err: err, op: "capture"}
		}(base)

		// Fail from PENDING -- should succeed.
		go func(idx int) {
			defer wg.Done()
			r, err := rec.Fail("timeout", now)
			results[idx+1] = result{rec: r, err: err, op: "fail"}
		}(base)

		// Refund from PENDING -- should fail (needs CAPTURED).
		go func(idx int) {
			defer wg.Done()
			r, err := rec.Refund("fraud", now)
			results[idx+2] = result{rec: r, err: err, op: "refund"}
		}(base)
	}

	wg.Wait()

	captureSuccesses := 0
	failSuccesses := 0
	refundSuccesses := 0

	for _, r := range results {
		switch r.op {
		case "capture":
			if r.err == nil {
				captureSuccesses++
				if r.rec.Status() != valueobject.PaymentStatusCaptured {
					t.Errorf("capture succeeded but status is %s, want CAPTURED", r.rec.Status())
				}
			}
		case "fail":
			if r.err == nil {
				failSuccesses++
			}
		case "refund":
			if r.err == nil {
				refundSuccesses++
			}
		}
	}

	if captureSuccesses != goroutines {
		t.Errorf("expected %d capture successes, got %d", goroutines, captureSuccesses)
	}
	if failSuccesses != goroutines {
		t.Errorf("expected %d fail successes, got %d", goroutines, failSuccesses)
	}
	if refundSuccesses != 0 {
		t.Errorf("expected 0 refund successes from PENDING, got %d", refundSuccesses)
	}

	// Original record must be unchanged.
	if rec.Status() != valueobject.PaymentStatusPending {
		t.Errorf("original record status mutated: got %s, want PENDING", rec.Status())
	}
}
