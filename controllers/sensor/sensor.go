package sensor

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"smart-parking/apperrors"
	"smart-parking/logger"
	sensorModel "smart-parking/models/sensor"
	"smart-parking/services/reconcile"
	"smart-parking/store"
	"smart-parking/types"
	sensorTypes "smart-parking/types/sensor"
	"smart-parking/utils"
)

// SensorController handles the sensor-facing HTTP surface: status reads
// for the dashboard and occupancy updates posted by the hardware.
type SensorController struct {
	Store  store.Store
	Engine *reconcile.Engine
	Logger *logger.AsyncLogger
}

// NewSensorController creates a new sensor controller
func NewSensorController(st store.Store, engine *reconcile.Engine, asyncLogger *logger.AsyncLogger) *SensorController {
	return &SensorController{
		Store:  st,
		Engine: engine,
		Logger: asyncLogger,
	}
}

// Status serves GET /sensors/status. With ?id= it returns one sensor or
// 404; without it, a map of all sensors keyed by id (empty object when
// there are none).
func (sc *SensorController) Status(c *fiber.Ctx) error {
	id := c.Query("id")
	if id != "" {
		sn, err := sc.Store.GetSensor(c.Context(), id)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{Error: "Sensor not found"})
			}
			logger.Error("Failed to load sensor "+id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{Error: "Internal server error"})
		}
		return c.JSON(sn)
	}

	sensors, err := sc.Store.GetSensors(c.Context())
	if err != nil {
		logger.Error("Failed to list sensors", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{Error: "Internal server error"})
	}

	byID := make(map[string]sensorModel.Sensor, len(sensors))
	for _, sn := range sensors {
		byID[sn.ID] = sn
	}
	return c.JSON(byID)
}

// Update serves POST /sensors/update, the occupancy callback the sensor
// firmware posts. It runs the sensor report through the reconciliation
// engine and acknowledges with {"success":true}.
func (sc *SensorController) Update(c *fiber.Ctx) error {
	var report sensorTypes.Report
	if err := c.BodyParser(&report); err != nil {
		logger.Error("Failed to parse sensor report", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{Error: "Invalid request body"})
	}

	_, _, err := sc.Engine.ApplySensorReport(c.Context(), report)
	if err != nil {
		var nf *apperrors.NotFoundError
		switch {
		case apperrors.IsValidation(err):
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{Error: err.Error()})
		case errors.As(err, &nf):
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{Error: "Parking slot not found"})
		default:
			logger.Error(fmt.Sprintf("Failed to apply report from sensor %s", report.SensorID), err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{Error: "Internal server error"})
		}
	}

	respErr := c.JSON(types.SuccessResponse{Success: true})
	sc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return respErr
}
