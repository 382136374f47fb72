package async_test

import (
	"context"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/garasiku/garasiku-server/pkg/async"
)

var _ = Describe("Debouncer", func() {
	const quiet = 30 * time.Millisecond

	var d *async.Debouncer

	BeforeEach(func() {
		d = async.NewDebouncer(quiet)
	})

	AfterEach(func() {
		d.Stop()
	})

	// Given three triggers arriving within the quiet period
	// When the period elapses
	// Then only the last action runs, exactly once
	It("should collapse rapid triggers into the latest action", func() {
		var fired atomic.Int32
		var last atomic.Value

		action := func(tag string) func(ctx context.Context) {
			return func(ctx context.Context) {
				fired.Add(1)
				last.Store(tag)
			}
		}

		d.Trigger(action("first"))
		d.Trigger(action("second"))
		d.Trigger(action("third"))

		Eventually(func() int32 {
			return fired.Load()
		}, time.Second).Should(Equal(int32(1)))
		Expect(last.Load()).To(Equal("third"))

		Consistently(func() int32 {
			return fired.Load()
		}, 3*quiet).Should(Equal(int32(1)))
	})

	// Given an action still running from the previous trigger
	// When the next trigger fires
	// Then the running action's context is cancelled
	It("should cancel the in-flight action on the next fire", func() {
		firstStarted := make(chan struct{})
		firstCancelled := make(chan struct{})

		d.Trigger(func(ctx context.Context) {
			close(firstStarted)
			<-ctx.Done()
			close(firstCancelled)
		})

		Eventually(firstStarted, time.Second).Should(BeClosed())
		d.Trigger(func(ctx context.Context) {})

		Eventually(firstCancelled, time.Second).Should(BeClosed())
	})

	It("should not fire after Stop", func() {
		var fired atomic.Int32

		d.Trigger(func(ctx context.Context) {
			fired.Add(1)
		})
		d.Stop()

		Consistently(func() int32 {
			return fired.Load()
		}, 3*quiet).Should(Equal(int32(0)))
	})

	It("should ignore triggers after Stop", func() {
		d.Stop()

		var fired atomic.Int32
		d.Trigger(func(ctx context.Context) {
			fired.Add(1)
		})

		Consistently(func() int32 {
			return fired.Load()
		}, 3*quiet).Should(Equal(int32(0)))
	})
})
