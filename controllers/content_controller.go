package controllers

import (
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	Svc *services.ContentService
}

func NewContentController(svc *services.ContentService) *ContentController {
	return &ContentController{Svc: svc}
}

// ---------- recipes ----------

func (h *ContentController) ListRecipes(c *gin.Context) {
	recipes, err := h.Svc.ListRecipes(isAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *ContentController) GetRecipe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.Svc.GetRecipe(id, isAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *ContentController) CreateRecipe(c *gin.Context) {
	uid := c.GetUint("userID")

	var in services.RecipeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.Svc.CreateRecipe(uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *ContentController) UpdateRecipe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in services.RecipeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.Svc.UpdateRecipe(id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *ContentController) DeleteRecipe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Svc.DeleteRecipe(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------- articles ----------

func (h *ContentController) ListArticles(c *gin.Context) {
	articles, err := h.Svc.ListArticles(isAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

func (h *ContentController) GetArticle(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	article, err := h.Svc.GetArticle(id, isAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (h *ContentController) CreateArticle(c *gin.Context) {
	uid := c.GetUint("userID")

	var in services.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.Svc.CreateArticle(uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

func (h *ContentController) UpdateArticle(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in services.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.Svc.UpdateArticle(id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (h *ContentController) DeleteArticle(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Svc.DeleteArticle(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
