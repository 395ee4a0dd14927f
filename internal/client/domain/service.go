package domain

import (
	"context"
	"errors"
)

type ListClientRequest struct {
	Name  string
	Email string
}

type ListClientFilter struct {
	Name  string
	Email string
}

type ListClientResponse struct {
	Clients []Client `json:"clients"`
}

type CreateClientRequest struct {
	Name        string
	CompanyName string
	Email       string
	Address     string
	TaxNumber   string
	TaxType     string
	Currency    string
}

type UpdateClientRequest struct {
	ID          string
	Name        string
	CompanyName string
	Email       string
	Address     string
	TaxNumber   string
	TaxType     string
	Currency    string
}

type Service interface {
	Create(context.Context, CreateClientRequest) (Client, error)
	List(context.Context, ListClientRequest) (ListClientResponse, error)
	GetByID(ctx context.Context, id string) (Client, error)
	Update(context.Context, UpdateClientRequest) (Client, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidUser  = errors.New("invalid_user")
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)
