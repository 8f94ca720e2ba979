package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/way2pg/way2pg-api/internal/core/domain"
	"github.com/way2pg/way2pg-api/internal/core/ports"
)

// maxImageBytes caps a single uploaded picture.
const maxImageBytes = 10 << 20

type AccommodationHandler struct {
	service ports.AccommodationService
}

func NewAccommodationHandler(service ports.AccommodationService) *AccommodationHandler {
	return &AccommodationHandler{service: service}
}

type accommodationRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Description string   `json:"description" validate:"required"`
	Address     string   `json:"address"     validate:"required"`
	Price       float64  `json:"price"       validate:"required,gt=0"`
	Amenities   []string `json:"amenities"`
	// OwnerID lets an admin create on an owner's behalf; ignored otherwise.
	OwnerID string `json:"owner_id,omitempty"`
}

// Create registers a new listing.
//
// @Summary      Create an accommodation listing
// @Tags         accommodations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      accommodationRequest  true  "Listing details"
// @Success      201   {object}  domain.Accommodation
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/accommodations [post]
func (h *AccommodationHandler) Create(c echo.Context) error {
	var req accommodationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), userID, role, req.OwnerID, accommodationInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update modifies an existing listing.
//
// @Summary      Update an accommodation listing
// @Tags         accommodations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Accommodation id"
// @Param        body  body      accommodationRequest  true  "Listing details"
// @Success      200   {object}  domain.Accommodation
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/accommodations/{id} [put]
func (h *AccommodationHandler) Update(c echo.Context) error {
	var req accommodationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	updated, err := h.service.Update(c.Request().Context(), userID, role, c.Param("id"), accommodationInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a listing, its bookings, and its hosted images.
//
// @Summary      Delete an accommodation listing
// @Tags         accommodations
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Accommodation id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/accommodations/{id} [delete]
func (h *AccommodationHandler) Delete(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, role, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadImage forwards a picture to the media host and attaches the reference.
//
// @Summary      Attach an image to a listing
// @Tags         accommodations
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Accommodation id"
// @Param        file  formData  file    true  "Image file"
// @Success      200   {object}  domain.Accommodation
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/accommodations/{id}/images [post]
func (h *AccommodationHandler) UploadImage(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fileHeader.Size > maxImageBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "file too large")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxImageBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}

	updated, err := h.service.AttachImage(c.Request().Context(), userID, role, c.Param("id"), data, fileHeader.Filename)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Browse lists publicly visible accommodations.
//
// @Summary      Browse accommodations
// @Tags         accommodations
// @Produce      json
// @Param        city       query     string  false  "Substring match on address"
// @Param        max_price  query     number  false  "Maximum monthly price"
// @Param        amenity    query     string  false  "Required amenity"
// @Success      200  {array}  domain.Accommodation
// @Router       /v1/accommodations [get]
func (h *AccommodationHandler) Browse(c echo.Context) error {
	filter := ports.BrowseFilter{
		City:    c.QueryParam("city"),
		Amenity: c.QueryParam("amenity"),
	}
	if raw := c.QueryParam("max_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "max_price must be a positive number")
		}
		filter.MaxPrice = price
	}

	listings, err := h.service.Browse(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if listings == nil {
		listings = []*domain.Accommodation{}
	}
	return c.JSON(http.StatusOK, listings)
}

// Get returns one publicly visible accommodation.
//
// @Summary      Get an accommodation
// @Tags         accommodations
// @Produce      json
// @Param        id  path  string  true  "Accommodation id"
// @Success      200  {object}  domain.Accommodation
// @Failure      404  {object}  errorResponse
// @Router       /v1/accommodations/{id} [get]
func (h *AccommodationHandler) Get(c echo.Context) error {
	accommodation, err := h.service.GetPublic(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accommodation)
}

// ListOwn returns the calling owner's listings regardless of approval state.
//
// @Summary      List own accommodations
// @Tags         accommodations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Accommodation
// @Router       /v1/owner/accommodations [get]
func (h *AccommodationHandler) ListOwn(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	listings, err := h.service.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if listings == nil {
		listings = []*domain.Accommodation{}
	}
	return c.JSON(http.StatusOK, listings)
}

func accommodationInput(req accommodationRequest) ports.AccommodationInput {
	return ports.AccommodationInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Price:       req.Price,
		Amenities:   req.Amenities,
	}
}
