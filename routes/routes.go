package routes

import (
	"net/http"

	"fitgrid/activities"
	"fitgrid/assistant"
	"fitgrid/auth"
	"fitgrid/bookings"
	"fitgrid/home"
	"fitgrid/meta"
	"fitgrid/middleware"
	"fitgrid/profile"
	"fitgrid/ratelim"
	"fitgrid/search"
	"fitgrid/sessions"
	"fitgrid/venues"

	"github.com/julienschmidt/httprouter"
)

func RoutesWrapper(router *httprouter.Router, rl *ratelim.RateLimiter) {
	AddAuthRoutes(router, rl)
	AddProfileRoutes(router, rl)
	AddActivityRoutes(router, rl)
	AddVenueRoutes(router, rl)
	AddSessionRoutes(router, rl)
	AddBookingRoutes(router, rl)
	AddAssistantRoutes(router, rl)
	AddSearchRoutes(router, rl)
	AddHomeRoutes(router, rl)
	AddMetaRoutes(router, rl)
	AddStaticRoutes(router)
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/venuepic/*filepath", http.Dir("static/venuepic"))
	router.ServeFiles("/static/icons/*filepath", http.Dir("static/icons"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(middleware.Authenticate(auth.RefreshToken)))
}

func AddProfileRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetProfile))
	router.GET("/api/profile/preferences", middleware.Authenticate(profile.GetPreferences))
	router.PUT("/api/profile/preferences", rl.Limit(middleware.Authenticate(profile.UpdatePreferences)))
	router.GET("/api/user/:username", rl.Limit(profile.GetUserProfile))
}

func AddActivityRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/classes", rl.Limit(activities.GetActivities))
	router.GET("/api/classes/:id", activities.GetActivity)
	router.POST("/api/classes", middleware.Authenticate(activities.CreateActivity))
	router.PUT("/api/classes/:id", middleware.Authenticate(activities.UpdateActivity))
	router.DELETE("/api/classes/:id", middleware.Authenticate(activities.DeleteActivity))

	router.GET("/api/categories", rl.Limit(activities.GetCategories))
	router.POST("/api/categories", middleware.Authenticate(activities.CreateCategory))
}

func AddVenueRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/venues", rl.Limit(venues.GetVenues))
	router.GET("/api/venues/nearby", middleware.Authenticate(venues.NearbyVenues))
	router.POST("/api/venues", middleware.Authenticate(venues.CreateVenue))
	router.GET("/api/venue/:id", venues.GetVenue)
	router.PUT("/api/venue/:id", middleware.Authenticate(venues.UpdateVenue))
	router.DELETE("/api/venue/:id", middleware.Authenticate(venues.DeleteVenue))
	router.POST("/api/venue/:id/photo", middleware.Authenticate(venues.UploadVenuePhoto))
}

func AddSessionRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/sessions", rl.Limit(sessions.GetSessions))
	router.GET("/api/sessions/:id", sessions.GetSession)
	router.POST("/api/sessions", middleware.Authenticate(sessions.CreateSession))
	router.POST("/api/sessions/:id/cancel", middleware.Authenticate(sessions.CancelSession))
	router.GET("/api/sessions/:id/availability", rl.Limit(sessions.GetAvailability))
	router.GET("/api/sessions/:id/updates", rl.Limit(sessions.SessionUpdatesWS))
}

func AddBookingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/bookings", rl.Limit(middleware.Authenticate(bookings.CreateBooking)))
	router.GET("/api/bookings", middleware.Authenticate(bookings.ListMyBookings))
	router.POST("/api/bookings/:id/cancel", middleware.Authenticate(bookings.CancelBooking))
	router.POST("/api/bookings/:id/checkin", middleware.Authenticate(bookings.CheckinBooking))
	router.POST("/api/bookings/:id/no-show", middleware.Authenticate(bookings.MarkNoShow))
	router.GET("/api/bookings/:id/pass", rl.Limit(middleware.Authenticate(bookings.PrintPass)))
}

func AddAssistantRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/assistant/tools", rl.Limit(assistant.ListTools))
	router.POST("/api/assistant/tools/:name", rl.Limit(middleware.OptionalAuth(assistant.InvokeTool)))
}

func AddSearchRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/search/:entityType", rl.Limit(search.SearchHandler))
}

func AddHomeRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/home/:section", rl.Limit(middleware.OptionalAuth(home.GetHomeSection)))
}

func AddMetaRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/sitemap.xml", meta.Sitemap)
	router.GET("/manifest.json", meta.Manifest)
	router.GET("/robots.txt", meta.Robots)
	router.GET("/api/users/meta", rl.Limit(meta.GetUsersMeta))
}
