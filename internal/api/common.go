package api

import (
	"errors"
	"log"
	"math"

	"github.com/gofiber/fiber/v2"

	"boothtrack.in/internal/domain"
)

// Pagination metadata for list responses.
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int   `json:"total_page"`
}

// ListResponse is the uniform shape of paginated responses.
type ListResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// SendPaginatedResponse sends a standard paginated response.
func SendPaginatedResponse(c *fiber.Ctx, data interface{}, page, pageSize int, total int64) error {
	totalPage := 0
	if pageSize > 0 {
		totalPage = int(math.Ceil(float64(total) / float64(pageSize)))
	}

	return c.JSON(ListResponse{
		Data: data,
		Pagination: Pagination{
			Page:      page,
			PageSize:  pageSize,
			Total:     total,
			TotalPage: totalPage,
		},
	})
}

// SendError maps a service error to an HTTP response. AppError codes and
// messages pass through; anything else becomes a generic 500 so raw storage
// error text never reaches a client.
func SendError(c *fiber.Ctx, err error) error {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= 500 {
			log.Printf("API: internal error on %s %s: %v", c.Method(), c.Path(), appErr)
			return c.Status(appErr.Code).JSON(fiber.Map{"error": "Internal server error"})
		}
		return c.Status(appErr.Code).JSON(fiber.Map{"error": appErr.Message})
	}

	log.Printf("API: unexpected error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}
