package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogHandler         blogHandler
	categoryHandler     categoryHandler
	organizationHandler organizationHandler
	contactHandler      contactHandler
	healthHandler       healthHandler
	adminGate           adminGate
}
