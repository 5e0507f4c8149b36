package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/cryostore/pkg/app"
	"github.com/ghuser/cryostore/services/storage/application/handlers"
	appsvcs "github.com/ghuser/cryostore/services/storage/application/services"
)

// StorageRoutes registers storage endpoints on the provided chi router.
func StorageRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/storage", func(r chi.Router) {
			r.Route("/locations", func(r chi.Router) {
				r.Post("/", handlers.NewPostLocationHandler(svcs).Execute)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", handlers.NewGetLocationHandler(svcs).Execute)
					r.Patch("/", handlers.NewPatchLocationHandler(svcs).Execute)
					r.Delete("/", handlers.NewDeleteLocationHandler(svcs).Execute)
					r.Get("/capacity", handlers.NewGetCapacityHandler(svcs).Execute)
					r.Get("/cascade-summary", handlers.NewGetCascadeSummaryHandler(svcs).Execute)
					r.Get("/can-move", handlers.NewGetCanMoveHandler(svcs).Execute)
					r.Post("/move", handlers.NewPostLocationMoveHandler(svcs).Execute)
				})
			})
			r.Route("/barcodes", func(r chi.Router) {
				r.Post("/parse", handlers.NewPostBarcodeParseHandler(svcs).Execute)
				r.Post("/validate", handlers.NewPostBarcodeValidateHandler(svcs).Execute)
			})
			r.Route("/assignments", func(r chi.Router) {
				r.Post("/", handlers.NewPostAssignmentHandler(svcs).Execute)
				r.Post("/move", handlers.NewPostAssignmentMoveHandler(svcs).Execute)
				r.Post("/dispose", handlers.NewPostAssignmentDisposeHandler(svcs).Execute)
			})
			r.Route("/specimens/{ref}", func(r chi.Router) {
				r.Get("/location", handlers.NewGetSpecimenLocationHandler(svcs).Execute)
				r.Get("/movements", handlers.NewGetSpecimenMovementsHandler(svcs).Execute)
			})
		})
	})
}
