package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onemeal-app/onemeal-backend/internal/ai"
)

type Handler struct {
	client *ai.Client
}

func NewHandler(client *ai.Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/recipes", h.Recipes)
	rg.POST("/chat", h.Chat)
}

type recipesRequest struct {
	Mode  string `json:"mode"`
	Query string `json:"query"`
}

// Recipes generates recipe suggestions for the query.
func (h *Handler) Recipes(c *gin.Context) {
	var req recipesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	if req.Mode == "" {
		req.Mode = ai.ModeIngredients
	}

	recipes, err := h.client.SuggestRecipes(c.Request.Context(), req.Mode, req.Query)
	switch {
	case errors.Is(err, ai.ErrUnknownMode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ai.ErrBadRecipeJSON):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "recipe generation failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

type chatRequest struct {
	Message string `json:"message"`
}

// Chat relays a free-text message to the assistant.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	answer, err := h.client.Chat(c.Request.Context(), req.Message)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "chat failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
