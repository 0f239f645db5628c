package api

import (
	"time"

	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the public reads and the admin-gated writes.
func setupRoutes(r chi.Router, handlers *routeHandlers, startupTime time.Time) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", handlers.healthHandler.check(startupTime))
		r.Post("/admin/unlock", handlers.adminGate.unlock())

		// Public reads and forms
		r.Get("/blog", handlers.blogHandler.listPosts())
		r.Get("/blog/categories", handlers.categoryHandler.listCategories())
		r.Get("/blog/{id}", handlers.blogHandler.getPost())

		r.Get("/organization", handlers.organizationHandler.overview())
		r.Get("/organization/regions", handlers.organizationHandler.listRegions())
		r.Get("/organization/universities", handlers.organizationHandler.listUniversities())
		r.Get("/organization/regional-staff", handlers.organizationHandler.listRegionalStaff())
		r.Get("/organization/small-groups", handlers.organizationHandler.listSmallGroups())

		r.Post("/contact", handlers.contactHandler.submitContact())
		r.Post("/subscribe", handlers.contactHandler.subscribe())
		r.Post("/unsubscribe", handlers.contactHandler.unsubscribe())

		// Admin writes
		r.Group(func(r chi.Router) {
			r.Use(handlers.adminGate.requireAdmin)

			r.Post("/blog", handlers.blogHandler.createPost())
			r.Put("/blog/{id}", handlers.blogHandler.updatePost())
			r.Delete("/blog/{id}", handlers.blogHandler.deletePost())

			r.Post("/blog/categories", handlers.categoryHandler.createCategory())
			r.Put("/blog/categories/{id}", handlers.categoryHandler.updateCategory())
			r.Delete("/blog/categories/{id}", handlers.categoryHandler.deleteCategory())

			r.Post("/organization/regions", handlers.organizationHandler.createRegion())

			r.Post("/organization/universities", handlers.organizationHandler.createUniversity())
			r.Put("/organization/universities/{id}", handlers.organizationHandler.updateUniversity())
			r.Delete("/organization/universities/{id}", handlers.organizationHandler.deleteUniversity())

			r.Post("/organization/regional-staff", handlers.organizationHandler.createRegionalStaff())

			r.Post("/organization/small-groups", handlers.organizationHandler.createSmallGroup())
			r.Put("/organization/small-groups/{id}", handlers.organizationHandler.updateSmallGroup())
			r.Delete("/organization/small-groups/{id}", handlers.organizationHandler.deleteSmallGroup())

			r.Get("/contact", handlers.contactHandler.listMessages())
		})
	})
}
