package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/garasiku/garasiku-server/internal/services"
)

var _ = Describe("Hub", func() {
	var hub *services.Hub

	BeforeEach(func() {
		hub = services.NewHub()
	})

	AfterEach(func() {
		hub.Close()
	})

	It("should deliver events for the subscribed collection only", func() {
		cars, unsubscribe := hub.Subscribe("cars")
		defer unsubscribe()

		hub.Publish(services.Event{Collection: "sales", Action: services.EventActionCreate, RecordID: "s1"})
		hub.Publish(services.Event{Collection: "cars", Action: services.EventActionUpdate, RecordID: "c1"})

		var event services.Event
		Eventually(cars).Should(Receive(&event))
		Expect(event.RecordID).To(Equal("c1"))
		Consistently(cars).ShouldNot(Receive())
	})

	It("should deliver all collections to a wildcard subscriber", func() {
		all, unsubscribe := hub.Subscribe("")
		defer unsubscribe()

		hub.Publish(services.Event{Collection: "sales", RecordID: "s1"})
		hub.Publish(services.Event{Collection: "cars", RecordID: "c1"})

		Eventually(all).Should(Receive())
		Eventually(all).Should(Receive())
	})

	It("should close the channel on unsubscribe", func() {
		events, unsubscribe := hub.Subscribe("cars")

		unsubscribe()

		Eventually(events).Should(BeClosed())
	})

	// Given a subscriber that never drains its channel
	// When more events arrive than the buffer holds
	// Then publishing never blocks
	It("should drop events for a slow subscriber instead of blocking", func() {
		_, unsubscribe := hub.Subscribe("cars")
		defer unsubscribe()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 100; i++ {
				hub.Publish(services.Event{Collection: "cars", RecordID: "c"})
			}
		}()

		Eventually(done).Should(BeClosed())
	})

	It("should hand a closed channel to subscribers after Close", func() {
		hub.Close()

		events, unsubscribe := hub.Subscribe("cars")
		defer unsubscribe()

		Eventually(events).Should(BeClosed())
	})
})
