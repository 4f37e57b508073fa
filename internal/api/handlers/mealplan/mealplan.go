package mealplan

import (
	"net/http"

	"smartplates/internal/api/handlers"
	"smartplates/internal/api/middleware"
	"smartplates/internal/core/mealplan"

	"github.com/gin-gonic/gin"
)

const calendarContentType = "text/calendar; charset=utf-8"

// SlotRequest 取代單一餐別的請求
type SlotRequest struct {
	Slots []mealplan.MealSlot `json:"slots"`
}

// Handler 餐點計畫 API
type Handler struct {
	service *mealplan.Service
}

// NewHandler 建立餐點計畫處理器
func NewHandler(service *mealplan.Service) *Handler {
	return &Handler{service: service}
}

// Register 註冊餐點計畫路由
func (h *Handler) Register(group *gin.RouterGroup) {
	group.POST("", h.HandleCreate)
	group.GET("", h.HandleList)
	group.GET("/:id", h.HandleGet)
	group.PUT("/:id", h.HandleUpdate)
	group.DELETE("/:id", h.HandleDelete)
	group.PUT("/:id/days/:day/:meal", h.HandleSetSlot)
	group.GET("/:id/calendar.ics", h.HandleCalendar)
}

// HandleCreate 建立計畫
func (h *Handler) HandleCreate(c *gin.Context) {
	var req mealplan.MealPlan
	if !handlers.BindJSON(c, &req) {
		return
	}

	plan, err := h.service.Create(c.Request.Context(), middleware.OwnerID(c), &req)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// HandleList 列出使用者的計畫
func (h *Handler) HandleList(c *gin.Context) {
	plans, err := h.service.ListByOwner(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"meal_plans": plans,
		"count":      len(plans),
	})
}

// HandleGet 讀取計畫
func (h *Handler) HandleGet(c *gin.Context) {
	plan, err := h.service.Get(c.Request.Context(), middleware.OwnerID(c), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// HandleUpdate 取代計畫內容
func (h *Handler) HandleUpdate(c *gin.Context) {
	var req mealplan.MealPlan
	if !handlers.BindJSON(c, &req) {
		return
	}

	plan, err := h.service.Update(c.Request.Context(), middleware.OwnerID(c), c.Param("id"), &req)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// HandleDelete 刪除計畫
func (h *Handler) HandleDelete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.OwnerID(c), c.Param("id")); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleSetSlot 取代某天某餐別的餐點
func (h *Handler) HandleSetSlot(c *gin.Context) {
	day, err := mealplan.ParseDay(c.Param("day"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	meal, err := mealplan.ParseMealType(c.Param("meal"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	var req SlotRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	plan, err := h.service.SetSlot(c.Request.Context(), middleware.OwnerID(c), c.Param("id"), day, meal, req.Slots)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// HandleCalendar 匯出 iCalendar
func (h *Handler) HandleCalendar(c *gin.Context) {
	plan, err := h.service.Get(c.Request.Context(), middleware.OwnerID(c), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="meal-plan-`+plan.ID+`.ics"`)
	c.Data(http.StatusOK, calendarContentType, []byte(mealplan.ExportCalendar(plan)))
}
