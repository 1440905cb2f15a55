package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/maintenance-service/internal/domain"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

type fakeEquipmentRepo struct {
	items  map[int64]*domain.Equipment
	nextID int64
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{items: make(map[int64]*domain.Equipment), nextID: 1}
}

func (r *fakeEquipmentRepo) Create(_ context.Context, eq *domain.Equipment) error {
	eq.ID = r.nextID
	r.nextID++
	stored := *eq
	r.items[eq.ID] = &stored
	return nil
}

func (r *fakeEquipmentRepo) Update(_ context.Context, eq *domain.Equipment) error {
	if _, ok := r.items[eq.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *eq
	r.items[eq.ID] = &stored
	return nil
}

func (r *fakeEquipmentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *fakeEquipmentRepo) GetByID(_ context.Context, id int64) (*domain.Equipment, error) {
	stored, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (r *fakeEquipmentRepo) ListByUnit(_ context.Context, unitID int64) ([]domain.Equipment, error) {
	items := []domain.Equipment{}
	for _, eq := range r.items {
		if eq.UnitID == unitID {
			items = append(items, *eq)
		}
	}
	return items, nil
}

func (r *fakeEquipmentRepo) StatsByUnit(_ context.Context, unitID int64) (*domain.EquipmentStats, error) {
	stats := &domain.EquipmentStats{}
	for _, eq := range r.items {
		if eq.UnitID != unitID {
			continue
		}
		stats.Total++
		switch eq.Status {
		case domain.EquipmentStatusActive:
			stats.Active++
		case domain.EquipmentStatusMaintenance:
			stats.Maintenance++
		case domain.EquipmentStatusOutOfOrder:
			stats.OutOfOrder++
		}
		if eq.Cost != nil {
			stats.TotalValue += *eq.Cost
		}
	}
	return stats, nil
}

func seedEquipment(repo *fakeEquipmentRepo, unitID int64, status domain.EquipmentStatus, cost int64) *domain.Equipment {
	eq := &domain.Equipment{
		ID:           repo.nextID,
		Name:         "Infusion Pump",
		Category:     "Medical",
		Manufacturer: "Acme",
		Model:        "IP-200",
		SerialNumber: "SN-1000",
		Status:       status,
		Cost:         &cost,
		UnitID:       unitID,
	}
	repo.nextID++
	repo.items[eq.ID] = eq
	return eq
}

func validEquipmentInput(unitID int64) EquipmentInput {
	return EquipmentInput{
		Name:         "Ventilator",
		Category:     "Medical",
		Manufacturer: "Acme",
		Model:        "V-10",
		SerialNumber: "SN-2000",
		UnitID:       int64Ptr(unitID),
	}
}

func TestListEquipmentAdminPicksUnit(t *testing.T) {
	repo := newFakeEquipmentRepo()
	seedEquipment(repo, 1, domain.EquipmentStatusActive, 100)
	seedEquipment(repo, 2, domain.EquipmentStatusActive, 200)
	svc := NewEquipmentService(repo, newFakeUnitRepo())

	items, err := svc.ListForPrincipal(context.Background(), adminPrincipal(), int64Ptr(1))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].UnitID)

	// No unit selected means an empty listing, not an error.
	items, err = svc.ListForPrincipal(context.Background(), adminPrincipal(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListEquipmentEmployeePinnedToOwnUnit(t *testing.T) {
	repo := newFakeEquipmentRepo()
	seedEquipment(repo, 1, domain.EquipmentStatusActive, 100)
	seedEquipment(repo, 2, domain.EquipmentStatusActive, 200)
	svc := NewEquipmentService(repo, newFakeUnitRepo())

	// The query-string unit is ignored for employees.
	items, err := svc.ListForPrincipal(context.Background(), employeePrincipal(1), int64Ptr(2))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].UnitID)
}

func TestListEquipmentEmployeeWithoutUnit(t *testing.T) {
	repo := newFakeEquipmentRepo()
	seedEquipment(repo, 1, domain.EquipmentStatusActive, 100)
	svc := NewEquipmentService(repo, newFakeUnitRepo())

	principal := domain.Principal{ID: 9, Role: domain.RoleEmployee}
	items, err := svc.ListForPrincipal(context.Background(), principal, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreateEquipmentMissingFieldsReportedInOrder(t *testing.T) {
	svc := NewEquipmentService(newFakeEquipmentRepo(), newFakeUnitRepo())

	// Name and serial number are both missing; name is checked first.
	input := validEquipmentInput(1)
	input.Name = ""
	input.SerialNumber = ""

	_, err := svc.Create(context.Background(), input)
	assertDomainCode(t, err, "VALIDATION_FAILED")

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "name", domainErr.Details["field"])
}

func TestCreateEquipmentRequiresUnit(t *testing.T) {
	svc := NewEquipmentService(newFakeEquipmentRepo(), newFakeUnitRepo())

	input := validEquipmentInput(1)
	input.UnitID = nil

	_, err := svc.Create(context.Background(), input)
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestCreateEquipmentUnknownUnit(t *testing.T) {
	svc := NewEquipmentService(newFakeEquipmentRepo(), newFakeUnitRepo())

	_, err := svc.Create(context.Background(), validEquipmentInput(42))
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestCreateEquipmentDefaultsStatusActive(t *testing.T) {
	units := newFakeUnitRepo(&domain.Unit{ID: 1, Name: "General Medicine", Code: "GM"})
	svc := NewEquipmentService(newFakeEquipmentRepo(), units)

	eq, err := svc.Create(context.Background(), validEquipmentInput(1))
	require.NoError(t, err)
	assert.Equal(t, domain.EquipmentStatusActive, eq.Status)
	assert.Equal(t, int64(1), eq.UnitID)
	assert.NotZero(t, eq.ID)
}

func TestUpdateEquipmentNotFound(t *testing.T) {
	svc := NewEquipmentService(newFakeEquipmentRepo(), newFakeUnitRepo())

	_, err := svc.Update(context.Background(), 9999, validEquipmentInput(1))
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestUpdateEquipmentOverwritesFields(t *testing.T) {
	repo := newFakeEquipmentRepo()
	seeded := seedEquipment(repo, 1, domain.EquipmentStatusActive, 100)
	svc := NewEquipmentService(repo, newFakeUnitRepo())

	input := validEquipmentInput(1)
	input.Status = string(domain.EquipmentStatusMaintenance)

	updated, err := svc.Update(context.Background(), seeded.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Ventilator", updated.Name)
	assert.Equal(t, domain.EquipmentStatusMaintenance, updated.Status)
	// The unit is fixed at creation.
	assert.Equal(t, int64(1), updated.UnitID)
}

func TestDeleteEquipmentMissingIsNoop(t *testing.T) {
	svc := NewEquipmentService(newFakeEquipmentRepo(), newFakeUnitRepo())

	assert.NoError(t, svc.Delete(context.Background(), 9999))
}

func TestEquipmentStatsAuthorization(t *testing.T) {
	repo := newFakeEquipmentRepo()
	seedEquipment(repo, 1, domain.EquipmentStatusActive, 100)
	seedEquipment(repo, 1, domain.EquipmentStatusOutOfOrder, 250)
	svc := NewEquipmentService(repo, newFakeUnitRepo())

	_, err := svc.StatsForUnit(context.Background(), employeePrincipal(2), 1)
	assertDomainCode(t, err, "FORBIDDEN")

	stats, err := svc.StatsForUnit(context.Background(), employeePrincipal(1), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Active)
	assert.Equal(t, int64(1), stats.OutOfOrder)
	assert.Equal(t, int64(350), stats.TotalValue)

	stats, err = svc.StatsForUnit(context.Background(), adminPrincipal(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
}
