package database

import "atelier/internal/models"

// CreateUser inserts a new account.
func (d *Database) CreateUser(user *models.User) error {
	return d.gorm.Create(user).Error
}

// GetUserByID looks up an account by primary key.
func (d *Database) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := d.gorm.First(&user, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

// GetUserByUsername looks up an account by its unique username.
func (d *Database) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := d.gorm.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

// GetUserByEmail looks up an account by its unique email address.
func (d *Database) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := d.gorm.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

// UpdateUser saves changes to an existing account.
func (d *Database) UpdateUser(user *models.User) error {
	return d.gorm.Save(user).Error
}

// GetUsersPage returns one admin page of accounts plus the total count.
func (d *Database) GetUsersPage(page, perPage int) ([]models.User, int64, error) {
	var total int64
	if err := d.gorm.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []models.User
	err := d.gorm.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&users).Error
	return users, total, err
}

// CountUsers returns the total number of accounts.
func (d *Database) CountUsers() (int64, error) {
	var n int64
	err := d.gorm.Model(&models.User{}).Count(&n).Error
	return n, err
}
