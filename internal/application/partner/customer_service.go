package partner

import (
	"context"

	"github.com/google/uuid"
	appshared "github.com/pressworks/backend/internal/application/shared"
	"github.com/pressworks/backend/internal/domain/partner"
	"github.com/pressworks/backend/internal/domain/shared"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Metadata)
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID. Archived customers are returned with
// is_archived set so invoices that reference them still resolve a name.
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, appshared.NotFoundAs(err, "customer")
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves a list of customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) (*appshared.ListResponse[CustomerResponse], error) {
	domainFilter := filter.Filter()
	domainFilter.Search = filter.Search
	domainFilter.IncludeArchived = filter.IncludeArchived

	customers, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	response := appshared.NewListResponse(ToCustomerResponses(customers), total, domainFilter)
	return &response, nil
}

// Update updates a live customer
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.findLive(ctx, id)
	if err != nil {
		return nil, err
	}

	name := customer.Name
	if req.Name != nil {
		name = *req.Name
	}
	if err := customer.Update(name, req.Metadata); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Archive soft-deletes a customer. Its orders, invoices and payments are
// left untouched.
func (s *CustomerService) Archive(ctx context.Context, id uuid.UUID) error {
	customer, err := s.findLive(ctx, id)
	if err != nil {
		return err
	}
	customer.Archive()
	customer.Touch()
	return s.customerRepo.Save(ctx, customer)
}

func (s *CustomerService) findLive(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, appshared.NotFoundAs(err, "customer")
	}
	if customer.IsArchived {
		return nil, shared.NewNotFoundError("customer")
	}
	return customer, nil
}
