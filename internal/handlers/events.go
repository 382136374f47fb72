package handlers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	v1 "github.com/garasiku/garasiku-server/api/v1"
	"github.com/garasiku/garasiku-server/internal/services"
)

const liveSearchQuiet = 400 * time.Millisecond

// StreamEvents pushes record-change events over SSE so clients can re-run
// their current query when the inventory changes remotely
// (GET /events?collection={name})
func (h *Handler) StreamEvents(c *gin.Context) {
	events, unsubscribe := h.hub.Subscribe(c.Query("collection"))
	defer unsubscribe()

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case e, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", e)
			return true
		}
	})
}

// StreamCars keeps one filtered car query live over SSE: the current result
// set is pushed on connect and re-queried (debounced) whenever a car record
// changes. The subscription and the debouncer are torn down when the client
// disconnects
// (GET /cars/stream)
func (h *Handler) StreamCars(c *gin.Context) {
	params := services.CarListParams{
		Search:        c.Query("search"),
		Brand:         c.Query("brand"),
		BodyType:      c.Query("bodyType"),
		Transmission:  c.Query("transmission"),
		AvailableOnly: c.Query("available") == "true",
	}

	updates := make(chan services.SearchUpdate, 4)
	search := services.NewLiveSearch(h.carSrv, liveSearchQuiet, func(u services.SearchUpdate) {
		select {
		case updates <- u:
		default:
		}
	})
	defer search.Stop()

	events, unsubscribe := h.hub.Subscribe("cars")
	defer unsubscribe()
	go func() {
		for range events {
			search.Refresh()
		}
	}()

	search.Input(params)

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case u := <-updates:
			if u.Err != nil {
				c.SSEvent("error", gin.H{"error": u.Err.Error()})
				return true
			}
			apiCars := make([]v1.Car, 0, len(u.Cars))
			for _, car := range u.Cars {
				apiCars = append(apiCars, v1.NewCarFromModel(car))
			}
			c.SSEvent("cars", gin.H{"total": u.Total, "cars": apiCars})
			return true
		}
	})
}
