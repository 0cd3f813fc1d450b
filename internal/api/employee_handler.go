package api

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"boothtrack.in/internal/domain"
	"boothtrack.in/internal/model"
)

// EmployeeHandler serves the public directory endpoints.
type EmployeeHandler struct {
	directorySvc domain.DirectoryService
}

func NewEmployeeHandler(directorySvc domain.DirectoryService) *EmployeeHandler {
	return &EmployeeHandler{directorySvc: directorySvc}
}

// employeeResponse flattens an employee plus the derived display strings
// the dashboard renders directly. Formatting is a presentation concern and
// lives here, not on the entity.
type employeeResponse struct {
	model.Employee
	EmployeeDetails   string `json:"employee_details"`
	ContactDetails    string `json:"contact_details"`
	OfficeDetails     string `json:"office_details"`
	BoothDetails      string `json:"booth_details"`
	AssignmentSummary string `json:"assignment_summary"`
}

const notAssigned = "Not Assigned"

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func newEmployeeResponse(e model.Employee) employeeResponse {
	name := orDefault(e.Name, notAssigned)
	designation := orDefault(e.Designation, notAssigned)
	mobile := orDefault(e.MobileNumber, "No mobile")

	return employeeResponse{
		Employee:        e,
		EmployeeDetails: fmt.Sprintf("%s - %s, %s", e.EmpID, name, designation),
		ContactDetails:  fmt.Sprintf("Mobile: %s", mobile),
		OfficeDetails: fmt.Sprintf("%s, %s",
			orDefault(e.OfficeName, notAssigned), orDefault(e.OfficePlace, notAssigned)),
		BoothDetails: fmt.Sprintf("Booth %s - %s, %s, Duration: %s, Ward: %s",
			orDefault(e.BoothNumber, notAssigned), orDefault(e.BoothName, notAssigned),
			orDefault(e.BuildingName, notAssigned), orDefault(e.BoothDuration, notAssigned),
			orDefault(e.WardNumber, notAssigned)),
		AssignmentSummary: fmt.Sprintf(
			"%s (%s) is assigned as %s at %s (%s), %s, Ward %s - %s. Office: %s, %s. Duty Hours: %s. Contact: %s",
			name, e.EmpID, designation,
			orDefault(e.BoothName, notAssigned), orDefault(e.BoothNumber, notAssigned),
			orDefault(e.BuildingName, notAssigned),
			orDefault(e.WardNumber, notAssigned), orDefault(e.WardName, notAssigned),
			orDefault(e.OfficeName, notAssigned), orDefault(e.OfficePlace, notAssigned),
			orDefault(e.BoothDuration, notAssigned), orDefault(e.MobileNumber, notAssigned)),
	}
}

// ListEmployees returns one page of the directory.
// GET /api/employees?search=&ward=&page=&page_size=
func (h *EmployeeHandler) ListEmployees(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "0"))

	filter := domain.EmployeeFilter{
		Search:   c.Query("search"),
		Ward:     c.Query("ward"),
		Page:     page,
		PageSize: pageSize,
	}

	employees, total, err := h.directorySvc.ListEmployees(c.Context(), filter)
	if err != nil {
		return SendError(c, err)
	}

	responses := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, newEmployeeResponse(e))
	}

	// Echo back the effective paging values the service applied.
	effective := filter.Normalized()
	return SendPaginatedResponse(c, responses, effective.Page, effective.PageSize, total)
}

// GetEmployee returns a single employee by emp_id.
// GET /api/employees/:emp_id
func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	employee, err := h.directorySvc.GetEmployee(c.Context(), c.Params("emp_id"))
	if err != nil {
		return SendError(c, err)
	}
	return c.JSON(newEmployeeResponse(*employee))
}

// GetEmployeeByMobile returns a single employee by mobile number.
// GET /api/employees/mobile/:mobile_number
func (h *EmployeeHandler) GetEmployeeByMobile(c *fiber.Ctx) error {
	employee, err := h.directorySvc.GetEmployeeByMobile(c.Context(), c.Params("mobile_number"))
	if err != nil {
		return SendError(c, err)
	}
	return c.JSON(newEmployeeResponse(*employee))
}

// ListWards returns the distinct wards present in the directory.
// GET /api/employees/wards
func (h *EmployeeHandler) ListWards(c *fiber.Ctx) error {
	wards, err := h.directorySvc.ListWards(c.Context())
	if err != nil {
		return SendError(c, err)
	}
	return c.JSON(wards)
}

// DashboardStats returns the aggregate counters.
// GET /api/employees/stats/dashboard
func (h *EmployeeHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.directorySvc.DashboardStats(c.Context())
	if err != nil {
		return SendError(c, err)
	}
	return c.JSON(stats)
}
