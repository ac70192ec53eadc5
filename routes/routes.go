package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookingController "smart-parking/controllers/booking"
	parkingController "smart-parking/controllers/parking"
	sensorController "smart-parking/controllers/sensor"
	"smart-parking/logger"
	"smart-parking/middleware"
	"smart-parking/services/reconcile"
	"smart-parking/store"
)

// SetupRoutes wires the store, the reconciliation engine and the
// controllers onto the app. With a nil db (memory mode, tests) the
// in-memory store backs everything and request logging is a no-op.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	var st store.Store
	if db != nil {
		st = store.NewGormStore(db)
	} else {
		st = store.NewMemoryStore()
	}
	SetupRoutesWithStore(app, db, st)
}

// SetupRoutesWithStore is SetupRoutes with an explicit store, used by
// handler tests to inject a seeded in-memory store.
func SetupRoutesWithStore(app *fiber.App, db *gorm.DB, st store.Store) {
	asyncLogger := logger.NewAsyncLogger(db)
	strict := os.Getenv("RECONCILE_STRICT") == "true"
	engine := reconcile.NewEngine(st, strict)

	sensors := sensorController.NewSensorController(st, engine, asyncLogger)
	parking := parkingController.NewParkingController(st)
	bookings := bookingController.NewBookingController(st, engine, asyncLogger)

	if db != nil {
		go asyncLogger.ProcessLog()
	}

	/*=============================================================================
	| Sensor & slot status (polled by the dashboard, no auth)
	===============================================================================*/
	app.Get("/sensors/status", sensors.Status)
	app.Post("/sensors/update", sensors.Update)
	app.Get("/parking/status", parking.Status)

	/*=============================================================================
	| Bookings (guests allowed on create/payment, listing needs a token)
	===============================================================================*/
	bookingGroup := app.Group("/bookings")
	bookingGroup.Post("/", middleware.OptionalAuth(), bookings.Create)
	bookingGroup.Post("/:id/payment", middleware.OptionalAuth(), bookings.Payment)
	bookingGroup.Get("/", middleware.RequireAuth(), bookings.Index)
}
