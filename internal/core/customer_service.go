package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CustomerService owns the customer master. OutstandingBalance is not
// writable through this service; it moves only through invoice and
// payment reconciliation.
type CustomerService interface {
	CreateCustomer(ctx context.Context, customer *Customer) (*Customer, error)
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	ListCustomers(ctx context.Context, f CustomerFilter) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, customer *Customer) (*Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}

type customerService struct {
	store Store
}

func NewCustomerService(store Store) CustomerService {
	return &customerService{store: store}
}

func validateCustomer(customer *Customer) error {
	if customer.Name == "" {
		return validationf("customer name is required")
	}
	if customer.GSTIN != "" {
		customer.GSTIN = NormalizeGSTIN(customer.GSTIN)
		if !ValidGSTIN(customer.GSTIN) {
			return validationf("invalid GSTIN %q", customer.GSTIN)
		}
	}
	return nil
}

func (s *customerService) CreateCustomer(ctx context.Context, customer *Customer) (*Customer, error) {
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	if customer.Status == "" {
		customer.Status = "active"
	}
	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	if err := s.store.PutCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("save customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	customer, err := s.store.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFoundf("customer %s", id)
		}
		return nil, fmt.Errorf("fetch customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, f CustomerFilter) ([]*Customer, error) {
	return s.store.ListCustomers(ctx, f)
}

// UpdateCustomer saves profile fields but carries the stored balance
// forward untouched.
func (s *customerService) UpdateCustomer(ctx context.Context, customer *Customer) (*Customer, error) {
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	current, err := s.store.GetCustomer(ctx, customer.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFoundf("customer %s", customer.ID)
		}
		return nil, fmt.Errorf("fetch customer: %w", err)
	}
	customer.OutstandingBalance = current.OutstandingBalance
	customer.Version = current.Version
	customer.CreatedAt = current.CreatedAt
	customer.UpdatedAt = time.Now()

	if err := s.store.PutCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("save customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.store.DeleteCustomer(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundf("customer %s", id)
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
