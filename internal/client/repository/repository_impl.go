package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/hazimzaman/new-invoices/internal/client/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO clients (id, user_id, name, company_name, email, client_address, tax_number, tax_type, currency, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		client.ID,
		client.UserID,
		client.Name,
		client.CompanyName,
		client.Email,
		client.Address,
		client.TaxNumber,
		client.TaxType,
		client.Currency,
		client.CreatedAt,
		client.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) (*domain.Client, error) {
	var client domain.Client
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, name, company_name, email, client_address, tax_number, tax_type, currency, created_at, updated_at
		 FROM clients WHERE user_id = ? AND id = ?`,
		userID,
		id,
	).Scan(&client).Error
	if err != nil {
		return nil, err
	}
	if client.ID == 0 {
		return nil, nil
	}
	return &client, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, userID snowflake.ID, filter domain.ListClientFilter) ([]*domain.Client, error) {
	var clients []*domain.Client
	stmt := db.WithContext(ctx).
		Model(&domain.Client{}).
		Where("user_id = ?", userID)
	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}
	if filter.Email != "" {
		stmt = stmt.Where("email = ?", filter.Email)
	}
	err := stmt.
		Order("created_at desc, id desc").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Exec(
		`UPDATE clients
		 SET name = ?, company_name = ?, email = ?, client_address = ?, tax_number = ?, tax_type = ?, currency = ?, updated_at = ?
		 WHERE user_id = ? AND id = ?`,
		client.Name,
		client.CompanyName,
		client.Email,
		client.Address,
		client.TaxNumber,
		client.TaxType,
		client.Currency,
		client.UpdatedAt,
		client.UserID,
		client.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM clients WHERE user_id = ? AND id = ?`,
		userID,
		id,
	).Error
}
