package api

import (
	"github.com/gbur-rwanda/gbur-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(svc services.Services, gate adminGate, production bool) *routeHandlers {
	return &routeHandlers{
		blogHandler:         newBlogHandler(svc.Blog, production),
		categoryHandler:     newCategoryHandler(svc.Categories, production),
		organizationHandler: newOrganizationHandler(svc.Organization, production),
		contactHandler:      newContactHandler(svc.Contact, svc.Subscription, production),
		healthHandler:       newHealthHandler(svc.Health, production),
		adminGate:           gate,
	}
}
