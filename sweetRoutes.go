package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"sweetshop/logger"

	"github.com/gin-gonic/gin"
)

// =======================
// Helper Functions
// =======================

// GetIDParam reads the :id path parameter and converts it to an integer.
func GetIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID must be a number"})
		return 0, false
	}
	return id, true
}

// parseSweetFilter reads the search query parameters. A price bound that is
// not a number is rejected rather than silently ignored.
func parseSweetFilter(c *gin.Context) (SweetFilter, bool) {
	filter := SweetFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
	}

	if raw := c.Query("minPrice"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minPrice must be a number"})
			return SweetFilter{}, false
		}
		filter.MinPrice = &min
	}
	if raw := c.Query("maxPrice"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "maxPrice must be a number"})
			return SweetFilter{}, false
		}
		filter.MaxPrice = &max
	}
	return filter, true
}

// =========================
// Sweet Catalog Management
// =========================

func SweetRoutes(r *gin.Engine, sweets SweetStore) {
	api := r.Group("/api/sweets")

	// Public catalog reads
	api.GET("", func(c *gin.Context) {
		GetAllSweets(c, sweets)
	})
	api.GET("/search", func(c *gin.Context) {
		SearchSweets(c, sweets)
	})

	// Any authenticated user may purchase
	api.POST("/:id/purchase", AuthMiddleware(), func(c *gin.Context) {
		PurchaseSweet(c, sweets)
	})

	// Admin only
	admin := api.Group("")
	admin.Use(AuthMiddleware(), RoleMiddleware(RoleAdmin))
	{
		admin.POST("", func(c *gin.Context) {
			CreateSweet(c, sweets)
		})
		admin.PUT("/:id", func(c *gin.Context) {
			UpdateSweet(c, sweets)
		})
		admin.DELETE("/:id", func(c *gin.Context) {
			DeleteSweet(c, sweets)
		})
		admin.POST("/:id/restock", func(c *gin.Context) {
			RestockSweet(c, sweets)
		})
	}
}

func GetAllSweets(c *gin.Context, sweets SweetStore) {
	list, err := sweets.List()
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[sweets] list failed: %v", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sweets"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func SearchSweets(c *gin.Context, sweets SweetStore) {
	filter, ok := parseSweetFilter(c)
	if !ok {
		return
	}
	list, err := sweets.Search(filter)
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[sweets] search failed: %v", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search sweets"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func CreateSweet(c *gin.Context, sweets SweetStore) {
	var draft SweetDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if verrs := ValidateSweetDraft(&draft); len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": verrs.Error(), "fields": verrs})
		return
	}

	sweet, err := sweets.Create(draft)
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[sweets] create failed: %v", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sweet"})
		return
	}
	c.JSON(http.StatusCreated, sweet)
}

func UpdateSweet(c *gin.Context, sweets SweetStore) {
	id, ok := GetIDParam(c)
	if !ok {
		return
	}

	var patch SweetPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if verrs := ValidateSweetPatch(&patch); len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": verrs.Error(), "fields": verrs})
		return
	}

	sweet, err := sweets.Update(id, patch)
	if err != nil {
		if errors.Is(err, ErrSweetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
			return
		}
		logger.Log.Error(fmt.Sprintf("[sweets] update %d failed: %v", id, err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sweet"})
		return
	}
	c.JSON(http.StatusOK, sweet)
}

func DeleteSweet(c *gin.Context, sweets SweetStore) {
	id, ok := GetIDParam(c)
	if !ok {
		return
	}

	if err := sweets.Delete(id); err != nil {
		if errors.Is(err, ErrSweetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
			return
		}
		logger.Log.Error(fmt.Sprintf("[sweets] delete %d failed: %v", id, err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sweet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sweet deleted successfully"})
}

// =========================
// Stock Mutations
// =========================

type QuantityInput struct {
	Quantity *int `json:"quantity"`
}

func PurchaseSweet(c *gin.Context, sweets SweetStore) {
	id, ok := GetIDParam(c)
	if !ok {
		return
	}

	// The body is optional; an absent quantity means 1.
	var input QuantityInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	if quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
		return
	}

	sweet, err := sweets.Purchase(id, quantity)
	if err != nil {
		var insufficient InsufficientStockError
		switch {
		case errors.Is(err, ErrSweetNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
		case errors.As(err, &insufficient):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Insufficient quantity in stock",
				"available": insufficient.Available,
			})
		default:
			logger.Log.Error(fmt.Sprintf("[sweets] purchase %d failed: %v", id, err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to purchase sweet"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase successful",
		"sweet":   sweet,
	})
}

func RestockSweet(c *gin.Context, sweets SweetStore) {
	id, ok := GetIDParam(c)
	if !ok {
		return
	}

	var input QuantityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
		return
	}
	if input.Quantity == nil || *input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
		return
	}

	sweet, err := sweets.Restock(id, *input.Quantity)
	if err != nil {
		if errors.Is(err, ErrSweetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
			return
		}
		logger.Log.Error(fmt.Sprintf("[sweets] restock %d failed: %v", id, err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restock sweet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Restock successful",
		"sweet":   sweet,
	})
}

// =========================
// Health
// =========================

func HealthRoutes(r *gin.Engine) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
	})
}
