package services

import (
	"github.com/ghuser/cryostore/pkg/app"
	"github.com/ghuser/cryostore/pkg/cache"
	"github.com/ghuser/cryostore/services/storage/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Lifecycle *LifecycleService
	Ledger    *LedgerService
	Barcode   *BarcodeService
}

// New wires all storage application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	locations := postgres.NewLocationRepository(a.Db)
	assignments := postgres.NewAssignmentRepository(a.Db, a.EventBus)
	movements := postgres.NewMovementRepository(a.Db)
	samples := postgres.NewSampleRepository(a.Db)
	paths := cache.NewPathCache(a.Redis)

	return &Services{
		Lifecycle: NewLifecycleService(locations, assignments),
		Ledger:    NewLedgerService(samples, locations, assignments, movements, paths, a.Logger),
		Barcode:   NewBarcodeService(locations),
	}
}
