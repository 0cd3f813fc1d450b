package api

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"boothtrack.in/internal/api/middleware"
	"boothtrack.in/internal/domain"
	"boothtrack.in/internal/model"
)

// LocationHandler serves check-in ingestion and listing.
type LocationHandler struct {
	locationSvc domain.LocationService
}

func NewLocationHandler(locationSvc domain.LocationService) *LocationHandler {
	return &LocationHandler{locationSvc: locationSvc}
}

type CreateLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	PlaceName string   `json:"place_name"`
	ImageURL  string   `json:"image_url"`
}

// locationUpdateResponse is the wire shape of a check-in, including the
// derived display strings the dashboard renders.
type locationUpdateResponse struct {
	ID              uint      `json:"id"`
	EmpID           string    `json:"emp_id"`
	SerialNumber    uint      `json:"serial_number"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Location        string    `json:"location"`
	PlaceName       string    `json:"place_name"`
	Timestamp       time.Time `json:"timestamp"`
	ImageURL        string    `json:"image_url,omitempty"`
	HasImage        bool      `json:"has_image"`
	LocationSummary string    `json:"location_summary"`
}

func newLocationUpdateResponse(u model.LocationUpdate, empID string) locationUpdateResponse {
	return locationUpdateResponse{
		ID:           u.ID,
		EmpID:        empID,
		SerialNumber: u.SerialNumber,
		Latitude:     u.Latitude,
		Longitude:    u.Longitude,
		Location:     fmt.Sprintf("%.8f, %.8f", u.Latitude, u.Longitude),
		PlaceName:    u.PlaceName,
		Timestamp:    u.Timestamp,
		ImageURL:     u.ImageURL,
		HasImage:     u.ImageURL != "",
		LocationSummary: fmt.Sprintf("Update #%d at %s on %s",
			u.SerialNumber, u.PlaceName, u.Timestamp.Format("2006-01-02 15:04:05")),
	}
}

// CreateLocationUpdate ingests a check-in for the authenticated caller's
// employee record. The serial number and timestamp are server-assigned.
// POST /api/employees/location-updates/create
func (h *LocationHandler) CreateLocationUpdate(c *fiber.Ctx) error {
	user, ok := c.Locals(middleware.LocalUser).(*model.User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req CreateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.Latitude == nil || req.Longitude == nil || req.PlaceName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "latitude, longitude and place_name are required"})
	}

	employee, err := h.locationSvc.ResolveCallerEmployee(c.Context(), user)
	if err != nil {
		return SendError(c, err)
	}

	update, err := h.locationSvc.CreateLocationUpdate(c.Context(), employee, domain.CreateLocationInput{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		PlaceName: req.PlaceName,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		return SendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(newLocationUpdateResponse(*update, employee.EmpID))
}

// ListLocationUpdates returns an employee's check-ins, newest first. An
// unparseable date is rejected rather than silently ignored.
// GET /api/employees/:emp_id/location-updates?date=YYYY-MM-DD
func (h *LocationHandler) ListLocationUpdates(c *fiber.Ctx) error {
	empID := c.Params("emp_id")

	var date *time.Time
	if v := c.Query("date"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD."})
		}
		date = &parsed
	}

	updates, err := h.locationSvc.ListLocationUpdates(c.Context(), empID, date)
	if err != nil {
		return SendError(c, err)
	}

	responses := make([]locationUpdateResponse, 0, len(updates))
	for _, u := range updates {
		responses = append(responses, newLocationUpdateResponse(u, empID))
	}
	return c.JSON(responses)
}
