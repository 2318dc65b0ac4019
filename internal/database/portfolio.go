package database

import (
	"strings"

	"atelier/internal/models"
)

// GetAllPortfolio returns every portfolio work, newest first.
func (d *Database) GetAllPortfolio() ([]models.Portfolio, error) {
	var works []models.Portfolio
	err := d.gorm.Order("created_at DESC").Find(&works).Error
	return works, err
}

// GetPortfolioByID looks up a single work.
func (d *Database) GetPortfolioByID(id uint) (*models.Portfolio, error) {
	var work models.Portfolio
	if err := d.gorm.First(&work, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &work, nil
}

// GetPortfolioByCategory filters works by category; "all" (or empty)
// returns everything.
func (d *Database) GetPortfolioByCategory(category string) ([]models.Portfolio, error) {
	if category == "" || strings.EqualFold(category, "all") {
		return d.GetAllPortfolio()
	}
	var works []models.Portfolio
	err := d.gorm.Where("category = ?", category).Order("created_at DESC").Find(&works).Error
	return works, err
}

// GetFeaturedPortfolio returns the manually curated featured works.
func (d *Database) GetFeaturedPortfolio() ([]models.Portfolio, error) {
	var works []models.Portfolio
	err := d.gorm.Where("featured = ?", true).Order("created_at DESC").Find(&works).Error
	return works, err
}

// GetLatestPortfolio returns the n most recent works.
func (d *Database) GetLatestPortfolio(n int) ([]models.Portfolio, error) {
	var works []models.Portfolio
	err := d.gorm.Order("created_at DESC").Limit(n).Find(&works).Error
	return works, err
}

// GetRelatedWorks returns up to limit works sharing a category,
// excluding the work itself.
func (d *Database) GetRelatedWorks(work *models.Portfolio, limit int) ([]models.Portfolio, error) {
	var works []models.Portfolio
	err := d.gorm.
		Where("category = ? AND id <> ?", work.Category, work.ID).
		Limit(limit).
		Find(&works).Error
	return works, err
}

// GetPortfolioCategories returns the distinct portfolio categories.
func (d *Database) GetPortfolioCategories() ([]string, error) {
	var categories []string
	err := d.gorm.Model(&models.Portfolio{}).Distinct("category").Pluck("category", &categories).Error
	return categories, err
}

// SearchPortfolio matches works by title, description or category.
func (d *Database) SearchPortfolio(query string) ([]models.Portfolio, error) {
	var works []models.Portfolio
	pattern := "%" + query + "%"
	err := d.gorm.
		Where("title LIKE ? OR description LIKE ? OR category LIKE ?", pattern, pattern, pattern).
		Find(&works).Error
	return works, err
}

// CreatePortfolio inserts a new work.
func (d *Database) CreatePortfolio(work *models.Portfolio) error {
	return d.gorm.Create(work).Error
}

// UpdatePortfolio saves changes to an existing work.
func (d *Database) UpdatePortfolio(work *models.Portfolio) error {
	return d.gorm.Save(work).Error
}

// DeletePortfolio removes a work.
func (d *Database) DeletePortfolio(id uint) error {
	return d.gorm.Delete(&models.Portfolio{}, id).Error
}

// CountPortfolio returns the number of works.
func (d *Database) CountPortfolio() (int64, error) {
	var n int64
	err := d.gorm.Model(&models.Portfolio{}).Count(&n).Error
	return n, err
}
