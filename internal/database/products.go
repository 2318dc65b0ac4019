package database

import (
	"strings"

	"atelier/internal/models"
)

// GetAllProducts returns every product, for the admin screens.
func (d *Database) GetAllProducts() ([]models.Product, error) {
	var products []models.Product
	err := d.gorm.Order("created_at DESC").Find(&products).Error
	return products, err
}

// GetProductByID looks up a single product.
func (d *Database) GetProductByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := d.gorm.First(&product, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &product, nil
}

// GetAvailableProducts returns all products customers may buy.
// Unavailable products never appear here.
func (d *Database) GetAvailableProducts() ([]models.Product, error) {
	var products []models.Product
	err := d.gorm.Where("is_available = ?", true).Order("created_at DESC").Find(&products).Error
	return products, err
}

// GetFeaturedProducts returns available products flagged as featured.
func (d *Database) GetFeaturedProducts() ([]models.Product, error) {
	var products []models.Product
	err := d.gorm.
		Where("is_available = ? AND is_featured = ?", true, true).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

// GetLatestProducts returns the n most recent available products.
func (d *Database) GetLatestProducts(n int) ([]models.Product, error) {
	var products []models.Product
	err := d.gorm.
		Where("is_available = ?", true).
		Order("created_at DESC").
		Limit(n).
		Find(&products).Error
	return products, err
}

// GetProductsByCategory filters available products by category; "all"
// (or empty) returns every available product.
func (d *Database) GetProductsByCategory(category string) ([]models.Product, error) {
	if category == "" || strings.EqualFold(category, "all") {
		return d.GetAvailableProducts()
	}
	var products []models.Product
	err := d.gorm.
		Where("category = ? AND is_available = ?", category, true).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

// GetRelatedProducts returns up to limit available products sharing a
// category, excluding the product itself.
func (d *Database) GetRelatedProducts(product *models.Product, limit int) ([]models.Product, error) {
	var products []models.Product
	err := d.gorm.
		Where("category = ? AND id <> ? AND is_available = ?", product.Category, product.ID, true).
		Limit(limit).
		Find(&products).Error
	return products, err
}

// GetProductCategories returns the distinct product categories.
func (d *Database) GetProductCategories() ([]string, error) {
	var categories []string
	err := d.gorm.Model(&models.Product{}).Distinct("category").Pluck("category", &categories).Error
	return categories, err
}

// SearchProducts matches available products by name, description or
// category.
func (d *Database) SearchProducts(query string) ([]models.Product, error) {
	var products []models.Product
	pattern := "%" + query + "%"
	err := d.gorm.
		Where("is_available = ?", true).
		Where("name LIKE ? OR description LIKE ? OR category LIKE ?", pattern, pattern, pattern).
		Find(&products).Error
	return products, err
}

// CreateProduct inserts a new product.
func (d *Database) CreateProduct(product *models.Product) error {
	return d.gorm.Create(product).Error
}

// UpdateProduct saves changes to an existing product.
func (d *Database) UpdateProduct(product *models.Product) error {
	return d.gorm.Save(product).Error
}

// DeleteProduct removes a product. Historical order items keep their
// snapshot and are not touched.
func (d *Database) DeleteProduct(id uint) error {
	return d.gorm.Delete(&models.Product{}, id).Error
}

// GetProductsPage returns one admin page of products plus the total
// count.
func (d *Database) GetProductsPage(page, perPage int) ([]models.Product, int64, error) {
	var total int64
	if err := d.gorm.Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var products []models.Product
	err := d.gorm.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&products).Error
	return products, total, err
}

// CountAvailableProducts returns how many products are purchasable.
func (d *Database) CountAvailableProducts() (int64, error) {
	var n int64
	err := d.gorm.Model(&models.Product{}).Where("is_available = ?", true).Count(&n).Error
	return n, err
}

// CountProducts returns the total number of products.
func (d *Database) CountProducts() (int64, error) {
	var n int64
	err := d.gorm.Model(&models.Product{}).Count(&n).Error
	return n, err
}
