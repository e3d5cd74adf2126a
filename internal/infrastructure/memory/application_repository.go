package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/bancassurance-api/internal/domain"
	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/internal/domain/repository"
)

// ApplicationRepository solicitudes en curso; se pierden al reiniciar el proceso.
type ApplicationRepository struct {
	mu   sync.RWMutex
	apps map[string]entity.PolicyApplication
}

var _ repository.ApplicationRepository = (*ApplicationRepository)(nil)

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{apps: make(map[string]entity.PolicyApplication)}
}

func cloneApplication(a entity.PolicyApplication) *entity.PolicyApplication {
	if a.Form != nil {
		f := *a.Form
		a.Form = &f
	}
	a.EmailOTPHash = append([]byte(nil), a.EmailOTPHash...)
	a.PhoneOTPHash = append([]byte(nil), a.PhoneOTPHash...)
	return &a
}

// Save inserta o reemplaza la solicitud.
func (r *ApplicationRepository) Save(ctx context.Context, a *entity.PolicyApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps[a.ID] = *cloneApplication(*a)
	return nil
}

// GetByID devuelve la solicitud o nil.
func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*entity.PolicyApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, nil
	}
	return cloneApplication(a), nil
}

// PaymentRepository pagos confirmados.
type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]entity.Payment
}

var _ repository.PaymentRepository = (*PaymentRepository)(nil)

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{payments: make(map[string]entity.Payment)}
}

// Create registra el pago. ErrDuplicate si el ID ya existe.
func (r *PaymentRepository) Create(ctx context.Context, p *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.payments[p.ID] = *p
	return nil
}

// GetByID devuelve el pago o nil.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}
