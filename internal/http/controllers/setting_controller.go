package controllers

import (
	"errors"
	"net/http"

	"suviet_server/internal/services"
	"suviet_server/pkg/colors"

	"github.com/gin-gonic/gin"
)

type SettingController struct {
	store       SettingStore
	broadcaster SettingBroadcaster
}

// NewSettingController creates a settings controller. broadcaster may be nil.
func NewSettingController(store SettingStore, broadcaster SettingBroadcaster) *SettingController {
	return &SettingController{store: store, broadcaster: broadcaster}
}

// GetSettings returns every setting
func (sc *SettingController) GetSettings(c *gin.Context) {
	settings, err := sc.store.List(c.Request.Context())
	if err != nil {
		colors.PrintError("Failed to fetch settings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch settings",
			"message": "Unable to retrieve settings from database",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    settings,
		"count":   len(settings),
	})
}

// GetSetting returns one setting as {"value": ...}
func (sc *SettingController) GetSetting(c *gin.Context) {
	key := c.Param("key")
	setting, err := sc.store.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, services.ErrSettingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Setting not found",
				"message": "No setting exists with key " + key,
			})
			return
		}
		colors.PrintError("Failed to fetch setting %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Database error",
			"message": "Failed to retrieve setting from database",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"value": setting.Value})
}

type UpdateSettingRequest struct {
	Value *string `json:"value" binding:"required"`
}

// UpdateSetting creates or replaces a setting and notifies live clients
func (sc *SettingController) UpdateSetting(c *gin.Context) {
	key := c.Param("key")

	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
			"message": "Body must be {\"value\": \"...\"}",
			"details": err.Error(),
		})
		return
	}

	setting, err := sc.store.Upsert(c.Request.Context(), key, *req.Value)
	if err != nil {
		colors.PrintError("Failed to update setting %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to update setting",
			"message": "Database error occurred while saving setting",
		})
		return
	}

	colors.PrintSuccess("Setting %s updated", key)
	if sc.broadcaster != nil {
		sc.broadcaster.BroadcastSettingUpdate(setting)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    setting,
		"message": "Setting updated successfully",
	})
}
