package grocery

import (
	"bytes"
	"io"
	"net/http"

	"smartplates/internal/api/handlers"
	"smartplates/internal/api/middleware"
	"smartplates/internal/core/grocery"
	"smartplates/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// ItemStatusRequest 更新項目購買狀態
type ItemStatusRequest struct {
	ItemName    string `json:"item_name" binding:"required"`
	IsPurchased *bool  `json:"is_purchased" binding:"required"`
}

// Handler 採買清單 API
type Handler struct {
	service *grocery.Service
}

// NewHandler 建立採買清單處理器
func NewHandler(service *grocery.Service) *Handler {
	return &Handler{service: service}
}

// Register 註冊採買清單路由
func (h *Handler) Register(group *gin.RouterGroup) {
	group.GET("", h.HandleList)
	group.GET("/:id", h.HandleGet)
	group.GET("/:id/export", h.HandleExport)
	group.PATCH("/:id/items", h.HandleUpdateItem)
	group.DELETE("/:id", h.HandleDelete)
}

// HandleGenerate 由餐點計畫產生採買清單，掛在 /meal-plans/:id/grocery-list
// 空的請求體使用預設選項
func (h *Handler) HandleGenerate(c *gin.Context) {
	opts, err := readOptions(c.Request.Body)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	list, err := h.service.GenerateForMealPlan(c.Request.Context(), middleware.OwnerID(c), c.Param("id"), opts)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

// HandleList 列出使用者的清單
func (h *Handler) HandleList(c *gin.Context) {
	lists, err := h.service.ListByOwner(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"grocery_lists": lists,
		"count":         len(lists),
	})
}

// HandleGet 讀取清單
func (h *Handler) HandleGet(c *gin.Context) {
	list, err := h.service.Get(c.Request.Context(), middleware.OwnerID(c), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// HandleExport 匯出為文字或 JSON
func (h *Handler) HandleExport(c *gin.Context) {
	format, err := grocery.ParseFormat(c.Query("format"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	list, err := h.service.Get(c.Request.Context(), middleware.OwnerID(c), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	data, err := grocery.Export(list, format)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, format.ContentType(), data)
}

// HandleUpdateItem 更新單一項目的購買狀態
func (h *Handler) HandleUpdateItem(c *gin.Context) {
	var req ItemStatusRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	list, err := h.service.UpdateItemStatus(c.Request.Context(), middleware.OwnerID(c), c.Param("id"), req.ItemName, *req.IsPurchased)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// HandleDelete 刪除清單
func (h *Handler) HandleDelete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.OwnerID(c), c.Param("id")); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func readOptions(body io.Reader) (grocery.Options, error) {
	if body == nil {
		return grocery.DefaultOptions(), nil
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return grocery.Options{}, common.ErrInvalidRequest.Wrap(err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return grocery.DefaultOptions(), nil
	}

	var opts grocery.Options
	if err := common.ParseJSONBytes(data, &opts); err != nil {
		return grocery.Options{}, common.ErrInvalidRequest.Wrap(err)
	}
	return opts, nil
}
