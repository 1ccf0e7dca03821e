package handlers

import (
	"country-service/internal/models"
	"country-service/internal/services"
	"country-service/utils"
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type CountryHandler struct {
	CountryService services.ICountryService
	RefreshService services.IRefreshService
	DB             *sqlx.DB
	ImagePath      string
}

func NewCountryHandler(countryService services.ICountryService, refreshService services.IRefreshService, db *sqlx.DB, imagePath string) *CountryHandler {
	return &CountryHandler{
		CountryService: countryService,
		RefreshService: refreshService,
		DB:             db,
		ImagePath:      imagePath,
	}
}

func (h *CountryHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/countries/refresh", h.RefreshCountries)
	router.GET("/countries", h.ListCountries)
	router.GET("/countries/image", h.GetSummaryImage)
	router.GET("/countries/:name", h.GetCountryByName)
	router.DELETE("/countries/:name", h.DeleteCountryByName)
	router.GET("/status", h.GetStatus)
	router.GET("/healthz", h.HealthCheck)
}

func (h *CountryHandler) RefreshCountries(c *gin.Context) {
	result, err := h.RefreshService.RefreshCountries(c.Request.Context())
	if err != nil {
		if errors.Is(err, models.ErrExternalUnavailable) {
			errorResponse := utils.CreateErrorResponse("EXTERNAL_UNAVAILABLE", err.Error())
			c.JSON(http.StatusServiceUnavailable, errorResponse)
			return
		}
		errorResponse := utils.CreateErrorResponse("INTERNAL_ERROR", err.Error())
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(result))
}

// parseListParams validates the caller-supplied query parameters before any
// store access. Invalid input is a 400, never an empty result.
func parseListParams(c *gin.Context) (*models.ListCountriesParams, string) {
	params := &models.ListCountriesParams{
		Sort:  c.Query("sort"),
		Page:  1,
		Limit: 50,
	}

	if params.Sort != "" {
		switch params.Sort {
		case models.SortGDPDesc, models.SortGDPAsc, models.SortNameAsc, models.SortPopulationDesc:
		default:
			return nil, "sort must be one of gdp_desc, gdp_asc, name_asc, population_desc"
		}
	}

	if region := c.Query("region"); region != "" {
		params.Region = &region
	}

	if currency := c.Query("currency"); currency != "" {
		if len(currency) != 3 {
			return nil, "currency must be a 3-letter ISO code (e.g., NGN)"
		}
		params.Currency = &currency
	}

	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return nil, "page must be an integer >= 1"
		}
		params.Page = page
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 200 {
			return nil, "limit must be an integer between 1 and 200"
		}
		params.Limit = limit
	}

	return params, ""
}

func (h *CountryHandler) ListCountries(c *gin.Context) {
	params, reason := parseListParams(c)
	if reason != "" {
		errorResponse := utils.CreateErrorResponse("VALIDATION_FAILED", reason)
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	countries, err := h.CountryService.ListCountries(*params)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("INTERNAL_ERROR", err.Error())
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}
	if countries == nil {
		countries = []models.Country{}
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(countries))
}

func (h *CountryHandler) GetCountryByName(c *gin.Context) {
	name := c.Param("name")
	country, err := h.CountryService.GetCountryByName(name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			errorResponse := utils.CreateErrorResponse("NOT_FOUND", "Country not found")
			c.JSON(http.StatusNotFound, errorResponse)
			return
		}
		errorResponse := utils.CreateErrorResponse("INTERNAL_ERROR", err.Error())
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(country))
}

func (h *CountryHandler) DeleteCountryByName(c *gin.Context) {
	name := c.Param("name")
	if err := h.CountryService.DeleteCountryByName(name); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			errorResponse := utils.CreateErrorResponse("NOT_FOUND", "Country not found")
			c.JSON(http.StatusNotFound, errorResponse)
			return
		}
		errorResponse := utils.CreateErrorResponse("INTERNAL_ERROR", err.Error())
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"deleted": name}))
}

func (h *CountryHandler) GetStatus(c *gin.Context) {
	status, err := h.CountryService.GetCacheStatus()
	if err != nil {
		errorResponse := utils.CreateErrorResponse("INTERNAL_ERROR", err.Error())
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(status))
}

func (h *CountryHandler) GetSummaryImage(c *gin.Context) {
	if _, err := os.Stat(h.ImagePath); err != nil {
		errorResponse := utils.CreateErrorResponse("NOT_FOUND", "Summary image not generated yet")
		c.JSON(http.StatusNotFound, errorResponse)
		return
	}
	c.Header("Content-Type", "image/png")
	c.File(h.ImagePath)
}

func (h *CountryHandler) HealthCheck(c *gin.Context) {
	var one int
	if err := h.DB.Get(&one, "SELECT 1"); err != nil {
		errorResponse := utils.CreateErrorResponse("DB_UNAVAILABLE", err.Error())
		c.JSON(http.StatusServiceUnavailable, errorResponse)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
