// services/content_service.go
//
// Recipe/article library. Non-admin readers only see PUBLISHED rows; an
// unpublished id answers NotFound for them, so drafts never leak. Writes
// are gated to ADMIN at the route level.
package services

import (
	"errors"
	"fmt"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

type ContentService struct{ db *gorm.DB }

func NewContentService(db *gorm.DB) *ContentService { return &ContentService{db: db} }

type RecipeInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Ingredients string `json:"ingredients"`
	Steps       string `json:"steps"`
	AgeRange    string `json:"age_range"`
	Status      string `json:"status"`
	ImageBase64 string `json:"image_base64"`
}

type ArticleInput struct {
	Title       string `json:"title" binding:"required"`
	Body        string `json:"body"`
	Status      string `json:"status"`
	ImageBase64 string `json:"image_base64"`
}

func normalizeStatus(status string) (string, error) {
	if status == "" {
		return models.ContentDraft, nil
	}
	if !models.ValidContentStatus(status) {
		return "", fmt.Errorf("%w: status must be DRAFT, PUBLISHED or ARCHIVED", ErrValidation)
	}
	return status, nil
}

func (s *ContentService) visible(isAdmin bool) *gorm.DB {
	if isAdmin {
		return s.db
	}
	return s.db.Where("status = ?", models.ContentPublished)
}

// ---------- recipes ----------

func (s *ContentService) CreateRecipe(authorID uint, in RecipeInput) (*models.Recipe, error) {
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return nil, err
	}
	recipe := &models.Recipe{
		AuthorID:    authorID,
		Title:       in.Title,
		Description: in.Description,
		Ingredients: in.Ingredients,
		Steps:       in.Steps,
		AgeRange:    in.AgeRange,
		Status:      status,
	}
	if in.ImageBase64 != "" {
		url, err := utils.UploadBase64ImageToS3(in.ImageBase64, "content-images", "recipe")
		if err != nil {
			return nil, fmt.Errorf("failed to upload recipe image: %w", err)
		}
		recipe.ImageURL = url
	}
	if err := s.db.Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *ContentService) ListRecipes(isAdmin bool) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.visible(isAdmin).Order("created_at DESC").Find(&recipes).Error
	return recipes, err
}

func (s *ContentService) GetRecipe(id uint, isAdmin bool) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.visible(isAdmin).First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &recipe, nil
}

func (s *ContentService) UpdateRecipe(id uint, in RecipeInput) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(id, true)
	if err != nil {
		return nil, err
	}
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return nil, err
	}

	recipe.Title = in.Title
	recipe.Description = in.Description
	recipe.Ingredients = in.Ingredients
	recipe.Steps = in.Steps
	recipe.AgeRange = in.AgeRange
	recipe.Status = status
	if in.ImageBase64 != "" {
		url, err := utils.UploadBase64ImageToS3(in.ImageBase64, "content-images", "recipe")
		if err != nil {
			return nil, fmt.Errorf("failed to upload recipe image: %w", err)
		}
		recipe.ImageURL = url
	}

	if err := s.db.Save(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *ContentService) DeleteRecipe(id uint) error {
	recipe, err := s.GetRecipe(id, true)
	if err != nil {
		return err
	}
	return s.db.Delete(recipe).Error
}

// ---------- articles ----------

func (s *ContentService) CreateArticle(authorID uint, in ArticleInput) (*models.Article, error) {
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return nil, err
	}
	article := &models.Article{
		AuthorID: authorID,
		Title:    in.Title,
		Body:     in.Body,
		Status:   status,
	}
	if in.ImageBase64 != "" {
		url, err := utils.UploadBase64ImageToS3(in.ImageBase64, "content-images", "article")
		if err != nil {
			return nil, fmt.Errorf("failed to upload article image: %w", err)
		}
		article.ImageURL = url
	}
	if err := s.db.Create(article).Error; err != nil {
		return nil, err
	}
	return article, nil
}

func (s *ContentService) ListArticles(isAdmin bool) ([]models.Article, error) {
	var articles []models.Article
	err := s.visible(isAdmin).Order("created_at DESC").Find(&articles).Error
	return articles, err
}

func (s *ContentService) GetArticle(id uint, isAdmin bool) (*models.Article, error) {
	var article models.Article
	err := s.visible(isAdmin).First(&article, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: article %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &article, nil
}

func (s *ContentService) UpdateArticle(id uint, in ArticleInput) (*models.Article, error) {
	article, err := s.GetArticle(id, true)
	if err != nil {
		return nil, err
	}
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return nil, err
	}

	article.Title = in.Title
	article.Body = in.Body
	article.Status = status
	if in.ImageBase64 != "" {
		url, err := utils.UploadBase64ImageToS3(in.ImageBase64, "content-images", "article")
		if err != nil {
			return nil, fmt.Errorf("failed to upload article image: %w", err)
		}
		article.ImageURL = url
	}

	if err := s.db.Save(article).Error; err != nil {
		return nil, err
	}
	return article, nil
}

func (s *ContentService) DeleteArticle(id uint) error {
	article, err := s.GetArticle(id, true)
	if err != nil {
		return err
	}
	return s.db.Delete(article).Error
}
