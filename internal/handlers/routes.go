package handlers

import "github.com/gin-gonic/gin"

// Register wires every endpoint onto the API group. Browsing the inventory is
// public; anything that mutates records or touches sales requires a session.
func (h *Handler) Register(router *gin.RouterGroup) {
	router.GET("/cars", h.GetCars)
	router.GET("/cars/stream", h.StreamCars)
	router.GET("/cars/:id", h.GetCar)
	router.GET("/brands", h.GetBrands)
	router.GET("/body-types", h.GetBodyTypes)
	router.GET("/models", h.GetModels)
	router.GET("/files/cars/:id/:file", h.ServeCarImage)
	router.GET("/events", h.StreamEvents)

	router.POST("/auth/login", h.Login)
	router.POST("/auth/google/callback", h.GoogleCallback)

	guarded := router.Group("", h.RequireAuth())
	{
		guarded.POST("/cars", h.CreateCar)
		guarded.PATCH("/cars/:id", h.UpdateCar)
		guarded.DELETE("/cars/:id", h.DeleteCar)

		guarded.GET("/sales", h.GetSales)
		guarded.GET("/sales/summary", h.GetSalesSummary)
		guarded.GET("/sales/available-cars", h.GetAvailableCars)
		guarded.GET("/sales/export", h.ExportSales)
		guarded.GET("/sales/:id", h.GetSale)
		guarded.POST("/sales", h.CreateSale)
		guarded.PATCH("/sales/:id", h.UpdateSale)
		guarded.POST("/sales/:id/cancel", h.CancelSale)
		guarded.DELETE("/sales/:id", h.DeleteSale)

		guarded.POST("/auth/logout", h.Logout)
		guarded.GET("/auth/me", h.Me)
	}
}
