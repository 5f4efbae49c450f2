package controllers

import (
	"net/http"

	"suviet_server/pkg/colors"

	"github.com/gin-gonic/gin"
)

type PopupController struct {
	store           SettingStore
	defaultCooldown float64
}

func NewPopupController(store SettingStore, defaultCooldown float64) *PopupController {
	return &PopupController{store: store, defaultCooldown: defaultCooldown}
}

// GetPopup returns the parsed popup settings in one response.
// The per-key settings endpoints stay the contract the site reads.
func (pc *PopupController) GetPopup(c *gin.Context) {
	settings, err := pc.store.PopupSettings(c.Request.Context(), pc.defaultCooldown)
	if err != nil {
		colors.PrintError("Failed to load popup settings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to load popup settings",
			"message": "Unable to retrieve popup settings from database",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     settings,
		"showable": settings.Showable(),
	})
}
