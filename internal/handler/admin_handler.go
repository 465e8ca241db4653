package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/datasec-api/internal/service"
)

// AdminHandler serves the staff-only panel and record exports.
type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Overview(c *gin.Context) {
	overview, err := h.adminService.Overview()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load admin panel."})
		return
	}
	c.JSON(http.StatusOK, overview)
}

// ExportRecords streams an xlsx workbook of all keys, files and data records.
func (h *AdminHandler) ExportRecords(c *gin.Context) {
	workbook, err := h.adminService.ExportRecords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export records."})
		return
	}
	defer workbook.Close()

	fileName := "records-" + time.Now().Format("20060102-150405") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		// Headers are out by now; nothing left to do but log via gin's recovery.
		_ = c.Error(err)
	}
}
