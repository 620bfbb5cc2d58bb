package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/academic-records-api/internal/model"
	"github.com/iliyamo/academic-records-api/internal/repository"
)

// ItemHandler serves the paginated item listing.
type ItemHandler struct {
	Items *repository.ItemRepo
}

func NewItemHandler(i *repository.ItemRepo) *ItemHandler {
	return &ItemHandler{Items: i}
}

// List handles GET /v1/items?page=&limit=. Defaults are page 1 and
// limit 10; out-of-range values fall back to the defaults instead of
// erroring so the endpoint is always navigable.
func (h *ItemHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, total, err := h.Items.ListPage(ctx, limit, offset)
	if err != nil {
		c.Logger().Errorf("items: list failed: %v", err)
		return respondErr(c, http.StatusInternalServerError, "could not fetch items")
	}

	totalPages := (total + limit - 1) / limit
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Successfully fetched paginated items",
		"data":    items,
		"pagination": model.Pagination{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: totalPages,
		},
	})
}
