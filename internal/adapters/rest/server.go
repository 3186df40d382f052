package rest

import (
	"context"
	"net/http"

	core_port "listing-service/internal/core/port"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(port string,
	catalog_handlers *CatalogHandler,
	lead_handlers *LeadHandler,
	admin_handlers *AdminHandler,
	sessions core_port.SessionPort,
	baseLogger core_port.LoggerPort) *Server {

	r := chi.NewRouter()

	r.Use(LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		// публичная витрина
		r.Get("/properties", catalog_handlers.GetProperties)
		r.Get("/properties/search", catalog_handlers.SearchProperties)
		r.Get("/properties/featured", catalog_handlers.GetFeaturedProperties)
		r.Get("/properties/category/{category}", catalog_handlers.GetPropertiesByCategory)
		r.Get("/properties/{propertyID}", catalog_handlers.GetPropertyByID)

		r.Get("/company-profile", catalog_handlers.GetCompanyProfile)
		r.Get("/team-members", catalog_handlers.GetTeamMembers)

		// контактная форма
		r.Post("/leads", lead_handlers.CreateLead)

		// бэк-офис
		r.Route("/admin", func(r chi.Router) {
			r.Use(AuthMiddleware(sessions))

			r.Get("/leads", lead_handlers.GetLeads)
			r.Patch("/leads/{leadID}", lead_handlers.UpdateLead)

			r.Post("/properties", admin_handlers.SaveProperty)
			r.Put("/properties/{propertyID}", admin_handlers.SaveProperty)
			r.Delete("/properties/{propertyID}", admin_handlers.DeleteProperty)

			r.Post("/properties/{propertyID}/images", admin_handlers.UploadImage)
			r.Post("/properties/{propertyID}/images/{imageID}/primary", admin_handlers.SetPrimaryImage)
			r.Delete("/images/{imageID}", admin_handlers.DeleteImage)

			r.Put("/company-profile", admin_handlers.UpdateCompanyProfile)
			r.Post("/team-members", admin_handlers.SaveTeamMember)
			r.Put("/team-members/{memberID}", admin_handlers.SaveTeamMember)
			r.Post("/team-members/reorder", admin_handlers.ReorderTeamMembers)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
