package booking

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"smart-parking/apperrors"
	"smart-parking/constants"
	"smart-parking/logger"
	"smart-parking/middleware"
	bookingModel "smart-parking/models/booking"
	userModel "smart-parking/models/user"
	"smart-parking/services/reconcile"
	"smart-parking/store"
	"smart-parking/types"
	bookingTypes "smart-parking/types/booking"
	"smart-parking/utils"
)

// BookingController handles booking-related HTTP requests
type BookingController struct {
	Store  store.Store
	Engine *reconcile.Engine
	Logger *logger.AsyncLogger
}

// NewBookingController creates a new booking controller
func NewBookingController(st store.Store, engine *reconcile.Engine, asyncLogger *logger.AsyncLogger) *BookingController {
	return &BookingController{
		Store:  st,
		Engine: engine,
		Logger: asyncLogger,
	}
}

// Create serves POST /bookings. Guests may book: the user id comes from
// the verified token when one is present and stays nil otherwise. The
// body's userId field is ignored.
func (bc *BookingController) Create(c *fiber.Ctx) error {
	var req bookingTypes.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse booking request", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{Error: "Invalid request body"})
	}
	req.UserID = middleware.UserID(c)

	if req.StartTime == 0 {
		req.StartTime = utils.DefaultStartTime()
	}

	if req.UserID != nil {
		bc.ensureUser(c)
	}

	b, _, err := bc.Engine.CreateBooking(c.Context(), req)
	if err != nil {
		var nf *apperrors.NotFoundError
		switch {
		case apperrors.IsValidation(err):
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{Error: err.Error()})
		case errors.As(err, &nf):
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{Error: "Parking slot not found"})
		case apperrors.IsConflict(err):
			return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create booking for slot "+req.SlotID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{Error: "Internal server error"})
		}
	}

	logger.Success(fmt.Sprintf("Booking %s created for slot %s", b.ID, b.SlotID))

	respErr := c.Status(fiber.StatusCreated).JSON(b)
	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return respErr
}

// Payment serves POST /bookings/:id/payment. It records the payment
// outcome only; the booking lifecycle and the slot are untouched.
func (bc *BookingController) Payment(c *fiber.Ctx) error {
	var res bookingTypes.PaymentResult
	if err := c.BodyParser(&res); err != nil {
		logger.Error("Failed to parse payment result", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{Error: "Invalid request body"})
	}
	// The path is authoritative for which booking is being settled.
	res.BookingID = c.Params("id")

	b, err := bc.Engine.SettlePayment(c.Context(), res)
	if err != nil {
		switch {
		case apperrors.IsValidation(err):
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{Error: err.Error()})
		case apperrors.IsNotFound(err):
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{Error: "Booking not found"})
		default:
			logger.Error("Failed to settle payment for booking "+res.BookingID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{Error: "Internal server error"})
		}
	}

	respErr := c.JSON(b)
	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return respErr
}

// Index serves GET /bookings: the authenticated user's bookings, newest
// first.
func (bc *BookingController) Index(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{Error: "Authorization token required"})
	}

	bookings, err := bc.Store.GetBookingsByUser(c.Context(), *userID)
	if err != nil {
		logger.Error("Failed to list bookings for user "+*userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{Error: "Internal server error"})
	}
	if bookings == nil {
		bookings = []bookingModel.Booking{}
	}
	return c.JSON(bookings)
}

// ensureUser lazily creates the user row for an authenticated subject the
// first time it books. Failure here is logged, not fatal: the booking
// itself does not depend on the profile row.
func (bc *BookingController) ensureUser(c *fiber.Ctx) {
	userID := middleware.UserID(c)
	if userID == nil {
		return
	}
	if _, err := bc.Store.GetUser(c.Context(), *userID); err == nil || !apperrors.IsNotFound(err) {
		if err != nil {
			logger.Warning("Failed to look up user " + *userID)
		}
		return
	}

	claims := middleware.Claims(c)
	u := userModel.User{
		ID:        *userID,
		Name:      constants.DefaultGuestName,
		Email:     constants.DefaultGuestEmail,
		Role:      constants.RoleUser,
		CreatedAt: utils.NowMillis(),
	}
	if claims != nil {
		if name, _ := claims["name"].(string); name != "" {
			u.Name = name
		}
		if email, _ := claims["email"].(string); email != "" {
			u.Email = email
		}
		if role, _ := claims["role"].(string); role == constants.RoleAdmin {
			u.Role = constants.RoleAdmin
		}
	}

	if err := bc.Store.PutUser(c.Context(), &u); err != nil {
		logger.Warning("Failed to create user " + *userID)
	}
}
