package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/handlers"
)

func SetupRoutes(r *chi.Mux, h *handlers.Handlers) {
	// Auth routes
	r.Post("/api/auth/signup", h.Signup)
	r.Post("/api/auth/signin", h.Signin)
	r.Post("/api/auth/signout", h.Signout)
	r.Get("/api/auth/verify", h.Verify)
	r.Get("/api/auth/me", h.Me)

	// Booking routes
	r.Get("/api/booking/options", h.BookingOptions)
	r.Post("/api/bookings", h.CreateBooking)

	// Dashboard routes
	r.Get("/api/dashboard", h.GetDashboard)
	r.Post("/api/journals", h.CreateJournal)

	// Public blog routes
	r.Get("/api/blog", h.ListPosts)
	r.Get("/api/blog/{slug}", h.GetPost)

	// Admin routes (signup removed - staff accounts are created directly in the database)
	r.Post("/api/admin/signin", h.AdminSignin)
	r.Get("/api/admin/bookings", h.AdminListBookings)
	r.Put("/api/admin/bookings/status", h.AdminUpdateBookingStatus)
	r.Post("/api/admin/session-notes", h.AdminCreateSessionNote)
	r.Post("/api/admin/posts", h.AdminCreatePost)
	r.Put("/api/admin/posts/publish", h.AdminPublishPost)
	r.Post("/api/admin/upload", h.AdminUploadCover)

	// WebSocket endpoint for realtime dashboard events
	r.Get("/ws/dashboard", h.DashboardWebSocket)
}
