package parking

import (
	"github.com/gofiber/fiber/v2"

	"smart-parking/apperrors"
	"smart-parking/logger"
	slotModel "smart-parking/models/slot"
	"smart-parking/store"
	"smart-parking/types"
)

// ParkingController serves slot occupancy reads for the dashboard. The
// dashboard polls these endpoints; there is no push transport here.
type ParkingController struct {
	Store store.Store
}

// NewParkingController creates a new parking controller
func NewParkingController(st store.Store) *ParkingController {
	return &ParkingController{Store: st}
}

// Status serves GET /parking/status. With ?id= it returns one slot or
// 404; without it, a map of all slots keyed by id.
func (pc *ParkingController) Status(c *fiber.Ctx) error {
	id := c.Query("id")
	if id != "" {
		sl, err := pc.Store.GetSlot(c.Context(), id)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{Error: "Parking slot not found"})
			}
			logger.Error("Failed to load slot "+id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{Error: "Internal server error"})
		}
		return c.JSON(sl)
	}

	slots, err := pc.Store.GetSlots(c.Context())
	if err != nil {
		logger.Error("Failed to list slots", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{Error: "Internal server error"})
	}

	byID := make(map[string]slotModel.Slot, len(slots))
	for _, sl := range slots {
		byID[sl.ID] = sl
	}
	return c.JSON(byID)
}
