package router

import (
	"hotel-concierge-backend/controller"
	"hotel-concierge-backend/middleware"

	"github.com/gin-gonic/gin"
)

func Register() *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		api.POST("/guest/verify", controller.GuestVerify)
		api.POST("/staff/login", controller.StaffLogin)

		guest := api.Group("/guest")
		guest.Use(middleware.SessionMiddleware())
		{
			guest.POST("/chat", controller.Chat)
			guest.POST("/tool", controller.ExecuteTool)
			guest.GET("/messages", controller.GetSessionMessages)

			guest.GET("/requests", controller.GuestListRequests)
			guest.POST("/requests/:id/cancel", controller.GuestCancelRequest)
			guest.POST("/requests/:id/respond", controller.GuestRespondToModification)

			guest.POST("/itinerary", controller.CreateItineraryItem)
			guest.GET("/itinerary", controller.ListItineraryItems)
			guest.PUT("/itinerary/:id", controller.UpdateItineraryItem)
			guest.DELETE("/itinerary/:id", controller.DeleteItineraryItem)
		}

		staff := api.Group("/staff")
		staff.Use(middleware.StaffAuthMiddleware())
		{
			staff.GET("/requests", controller.StaffListRequests)
			staff.POST("/requests/:id/transition", controller.StaffTransitionRequest)
			staff.GET("/live", controller.StaffLive)
		}
	}

	return r
}
