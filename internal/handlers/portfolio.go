package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PortfolioPage shows the work gallery, optionally filtered by the
// category query parameter.
func (h *Handler) PortfolioPage(c *gin.Context) {
	category := c.DefaultQuery("category", "all")
	h.renderGallery(c, category)
}

// PortfolioCategoryPage shows the gallery filtered by a path category.
func (h *Handler) PortfolioCategoryPage(c *gin.Context) {
	h.renderGallery(c, c.Param("category"))
}

// PortfolioFeaturedPage shows only the curated works.
func (h *Handler) PortfolioFeaturedPage(c *gin.Context) {
	works, err := h.db.GetFeaturedPortfolio()
	if err != nil {
		h.serverError(c, err)
		return
	}
	categories, err := h.db.GetPortfolioCategories()
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "portfolio.html", gin.H{
		"title":            "Portfolio",
		"works":            works,
		"categories":       categories,
		"selectedCategory": "featured",
	})
}

func (h *Handler) renderGallery(c *gin.Context, category string) {
	works, err := h.db.GetPortfolioByCategory(category)
	if err != nil {
		h.serverError(c, err)
		return
	}
	categories, err := h.db.GetPortfolioCategories()
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "portfolio.html", gin.H{
		"title":            "Portfolio",
		"works":            works,
		"categories":       categories,
		"selectedCategory": category,
	})
}

// WorkDetailPage shows one portfolio work and up to three related ones.
func (h *Handler) WorkDetailPage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.notFound(c)
		return
	}
	work, err := h.db.GetPortfolioByID(uint(id))
	if err != nil {
		h.notFound(c)
		return
	}
	related, err := h.db.GetRelatedWorks(work, 3)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "work_detail.html", gin.H{
		"title":        work.Title,
		"work":         work,
		"relatedWorks": related,
	})
}
