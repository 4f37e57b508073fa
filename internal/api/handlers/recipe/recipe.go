package recipe

import (
	"net/http"
	"strconv"
	"strings"

	"smartplates/internal/api/handlers"
	"smartplates/internal/api/middleware"
	"smartplates/internal/core/recipe"
	"smartplates/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// GenerateRequest AI 生成食譜的請求
type GenerateRequest struct {
	Ingredients []string           `json:"ingredients" binding:"required"`
	Preferences recipe.Preferences `json:"preferences"`
}

// Handler 食譜 API
type Handler struct {
	service *recipe.Service
}

// NewHandler 建立食譜處理器
func NewHandler(service *recipe.Service) *Handler {
	return &Handler{service: service}
}

// Register 註冊食譜路由，generate 可掛上額外的中間件
func (h *Handler) Register(group *gin.RouterGroup, generate ...gin.HandlerFunc) {
	group.GET("", h.HandleList)
	group.POST("", h.HandleCreate)
	group.POST("/generate", append(generate, h.HandleGenerate)...)
	group.GET("/:id", h.HandleGet)
	group.DELETE("/:id", h.HandleDelete)
}

// HandleList 列出使用者的食譜，帶 q 時進行模糊搜尋
func (h *Handler) HandleList(c *gin.Context) {
	external, err := parseBool(c.Query("external"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	owner := middleware.OwnerID(c)
	query := strings.TrimSpace(c.Query("q"))

	var recipes []recipe.Recipe
	if query == "" {
		recipes, err = h.service.List(c.Request.Context(), owner)
	} else {
		recipes, err = h.service.Search(c.Request.Context(), owner, query, external)
	}
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
		"count":   len(recipes),
	})
}

// HandleCreate 新增食譜
func (h *Handler) HandleCreate(c *gin.Context) {
	var req recipe.Recipe
	if !handlers.BindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), middleware.OwnerID(c), &req)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// HandleGet 讀取單一食譜
func (h *Handler) HandleGet(c *gin.Context) {
	r, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// HandleDelete 刪除食譜
func (h *Handler) HandleDelete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.OwnerID(c), c.Param("id")); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleGenerate 依食材以 AI 生成食譜
func (h *Handler) HandleGenerate(c *gin.Context) {
	var req GenerateRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	r, err := h.service.Generate(c.Request.Context(), middleware.OwnerID(c), req.Ingredients, req.Preferences)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, common.NewValidationError("external must be a boolean")
	}
	return v, nil
}
