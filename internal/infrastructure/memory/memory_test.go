package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancassurance-api/internal/domain"
	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/internal/infrastructure/memory"
)

var ctx = context.Background()

// ─── Empleados ───────────────────────────────────────────────────────────────

func TestEmployeeRepository_FindByCredentials(t *testing.T) {
	repo := memory.NewEmployeeRepository([]entity.Employee{
		{ID: "1", Username: "insurance_admin1", Password: "ins123", Role: entity.RoleInsurance},
		{ID: "3", Username: "bank_admin1", Password: "bank123", Role: entity.RoleBank},
	})

	e, err := repo.FindByCredentials(ctx, "bank_admin1", "bank123")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "3", e.ID)

	e, err = repo.FindByCredentials(ctx, "bank_admin1", "BANK123")
	require.NoError(t, err)
	assert.Nil(t, e, "la contraseña distingue mayúsculas")

	e, err = repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "insurance_admin1", e.Username)
}

// ─── Sesiones ────────────────────────────────────────────────────────────────

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	repo := memory.NewSessionRepository()
	s := &entity.Session{ID: "s1", Employee: entity.Employee{ID: "1"}, ExpiresAt: time.Now().Add(time.Hour)}

	require.NoError(t, repo.Save(ctx, s))
	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "1", got.Employee.ID)

	require.NoError(t, repo.Delete(ctx, "s1"))
	require.NoError(t, repo.Delete(ctx, "s1"))
	got, err = repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// ─── Catálogo ────────────────────────────────────────────────────────────────

func TestCatalogRepository_DevuelveCopias(t *testing.T) {
	repo := memory.NewCatalogRepository([]entity.PublicPolicy{
		{ID: "1", Name: "Premium Life Protection", Features: []string{"a"}},
		{ID: "2", Name: "Family Health Plus"},
	})

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "1", list[0].ID)

	list[0].Features[0] = "mutado"
	p, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "a", p.Features[0])

	p, err = repo.GetByID(ctx, "99")
	require.NoError(t, err)
	assert.Nil(t, p)
}

// ─── Pólizas administrables ──────────────────────────────────────────────────

func TestAdminPolicyRepository_CRUDConservaOrden(t *testing.T) {
	repo := memory.NewAdminPolicyRepository([]entity.AdminPolicy{
		{ID: "1", Name: "Basic Life Insurance"},
		{ID: "2", Name: "Comprehensive Health"},
	})

	require.NoError(t, repo.Create(ctx, &entity.AdminPolicy{ID: "3", Name: "Auto"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.AdminPolicy{ID: "3"}), domain.ErrDuplicate)

	require.NoError(t, repo.Update(ctx, &entity.AdminPolicy{ID: "1", Name: "Life Plus", Premium: decimal.NewFromInt(60)}))
	assert.ErrorIs(t, repo.Update(ctx, &entity.AdminPolicy{ID: "9"}), domain.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "2"))
	assert.ErrorIs(t, repo.Delete(ctx, "2"), domain.ErrNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Life Plus", list[0].Name)
	assert.Equal(t, "3", list[1].ID)
}

// ─── Pólizas de cliente ──────────────────────────────────────────────────────

func TestCustomerPolicyRepository_MarkClaimed(t *testing.T) {
	repo := memory.NewCustomerPolicyRepository([]entity.CustomerPolicy{
		{ID: "1", Status: entity.CustomerPolicyActive},
		{ID: "2", Status: entity.CustomerPolicyClaimed},
	})

	require.NoError(t, repo.MarkClaimed(ctx, "1"))
	assert.ErrorIs(t, repo.MarkClaimed(ctx, "1"), domain.ErrAlreadyClaimed)
	assert.ErrorIs(t, repo.MarkClaimed(ctx, "2"), domain.ErrAlreadyClaimed)
	assert.ErrorIs(t, repo.MarkClaimed(ctx, "9"), domain.ErrNotFound)

	p, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, entity.CustomerPolicyClaimed, p.Status)
}

func TestCustomerPolicyRepository_MarkClaimedConcurrente_SoloUnoGana(t *testing.T) {
	repo := memory.NewCustomerPolicyRepository([]entity.CustomerPolicy{{ID: "1", Status: entity.CustomerPolicyActive}})

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if repo.MarkClaimed(ctx, "1") == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
}

// ─── Solicitudes y pagos ─────────────────────────────────────────────────────

func TestApplicationRepository_GuardaCopia(t *testing.T) {
	repo := memory.NewApplicationRepository()
	app := entity.NewPolicyApplication("a1", "1", time.Now())
	require.NoError(t, repo.Save(ctx, app))

	app.Stage = entity.StagePaid
	got, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, entity.StageBrowsing, got.Stage)

	got, err = repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPaymentRepository_CreateYGet(t *testing.T) {
	repo := memory.NewPaymentRepository()
	p := &entity.Payment{ID: "p1", TxHash: "0xabc"}
	require.NoError(t, repo.Create(ctx, p))
	assert.ErrorIs(t, repo.Create(ctx, p), domain.ErrDuplicate)

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "0xabc", got.TxHash)
}
