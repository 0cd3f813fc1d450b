package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"boothtrack.in/internal/domain"
	"boothtrack.in/internal/model"
)

// AdminHandler is the explicit administrative surface: employee lifecycle,
// account creation and location-log cleanup.
type AdminHandler struct {
	adminSvc domain.AdminService
}

func NewAdminHandler(adminSvc domain.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

type CreateEmployeeRequest struct {
	Name          string `json:"name"`
	Designation   string `json:"designation"`
	MobileNumber  string `json:"mobile_number"`
	OfficeName    string `json:"office_name"`
	OfficePlace   string `json:"office_place"`
	BoothNumber   string `json:"booth_number"`
	BoothName     string `json:"booth_name"`
	BuildingName  string `json:"building_name"`
	BoothDuration string `json:"booth_duration"`
	WardNumber    string `json:"ward_number"`
	WardName      string `json:"ward_name"`
}

// CreateEmployee registers a new employee; emp_id is assigned server-side.
// POST /api/admin/employees
func (h *AdminHandler) CreateEmployee(c *fiber.Ctx) error {
	var req CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	employee := model.Employee{
		Name:          req.Name,
		Designation:   req.Designation,
		MobileNumber:  req.MobileNumber,
		OfficeName:    req.OfficeName,
		OfficePlace:   req.OfficePlace,
		BoothNumber:   req.BoothNumber,
		BoothName:     req.BoothName,
		BuildingName:  req.BuildingName,
		BoothDuration: req.BoothDuration,
		WardNumber:    req.WardNumber,
		WardName:      req.WardName,
	}

	if err := h.adminSvc.CreateEmployee(c.Context(), &employee); err != nil {
		return SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(employee)
}

// UpdateEmployee changes profile/assignment fields. emp_id stays fixed.
// PUT /api/admin/employees/:emp_id
func (h *AdminHandler) UpdateEmployee(c *fiber.Ctx) error {
	var update domain.EmployeeUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	employee, err := h.adminSvc.UpdateEmployee(c.Context(), c.Params("emp_id"), update)
	if err != nil {
		return SendError(c, err)
	}
	return c.JSON(employee)
}

// DeleteEmployee removes an employee and their location log.
// DELETE /api/admin/employees/:emp_id
func (h *AdminHandler) DeleteEmployee(c *fiber.Ctx) error {
	if err := h.adminSvc.DeleteEmployee(c.Context(), c.Params("emp_id")); err != nil {
		return SendError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Employee deleted"})
}

// DeleteLocationUpdate removes one check-in for cleanup.
// DELETE /api/admin/location-updates/:id
func (h *AdminHandler) DeleteLocationUpdate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid location update id"})
	}

	if err := h.adminSvc.DeleteLocationUpdate(c.Context(), uint(id)); err != nil {
		return SendError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Location update deleted"})
}

// CreateUser creates a login account, optionally linked to an employee.
// POST /api/admin/users
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var input domain.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	user, err := h.adminSvc.CreateUser(c.Context(), input)
	if err != nil {
		return SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}
