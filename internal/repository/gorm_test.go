package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/go-crm/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Client{}, &models.Contrat{}, &models.Event{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustMoney(t *testing.T, s string) models.Money {
	t.Helper()
	m, err := models.NewMoney(s)
	if err != nil {
		t.Fatalf("money %q: %v", s, err)
	}
	return m
}

func TestGormUserRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	u := &models.User{FullName: "Alice Martin", Email: "alice@epic.fr", Password: "hash", Role: models.RoleCommercial}
	saved, err := repo.Save(ctx, u)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("expected assigned ID on insert")
	}

	found, err := repo.FindByEmail(ctx, "alice@epic.fr")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if found.FullName != "Alice Martin" {
		t.Errorf("unexpected user: %+v", found)
	}

	if _, err := repo.FindByID(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	ok, err := repo.Exist(ctx, saved.ID)
	if err != nil || !ok {
		t.Errorf("exist: ok=%v err=%v", ok, err)
	}

	commercials, err := repo.FindByRole(ctx, models.RoleCommercial)
	if err != nil || len(commercials) != 1 {
		t.Errorf("find by role: %v (%d)", err, len(commercials))
	}
}

func TestGormContratRepository_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormContratRepository(db)
	ctx := context.Background()

	signed := models.NewContrat(1, 4, mustMoney(t, "1000"))
	if err := signed.Sign(); err != nil {
		t.Fatal(err)
	}
	if err := signed.RecordPayment(mustMoney(t, "1000")); err != nil {
		t.Fatal(err)
	}
	unsigned := models.NewContrat(1, 5, mustMoney(t, "500"))

	for _, c := range []*models.Contrat{signed, unsigned} {
		if _, err := repo.Save(ctx, c); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	wantSigned := true
	got, err := repo.FindAll(ctx, ContratCriteria{Signed: &wantSigned})
	if err != nil || len(got) != 1 || !got[0].IsSigned() {
		t.Errorf("signed filter: err=%v got=%v", err, got)
	}

	fullyPaid := true
	got, err = repo.FindAll(ctx, ContratCriteria{FullyPaid: &fullyPaid})
	if err != nil || len(got) != 1 || !got[0].IsFullyPaid() {
		t.Errorf("fully-paid filter: err=%v got=%v", err, got)
	}

	notPaid := false
	got, err = repo.FindAll(ctx, ContratCriteria{FullyPaid: &notPaid})
	if err != nil || len(got) != 1 || got[0].IsFullyPaid() {
		t.Errorf("not-fully-paid filter: err=%v got=%v", err, got)
	}

	commercial := uint(4)
	got, err = repo.FindAll(ctx, ContratCriteria{CommercialContactID: &commercial})
	if err != nil || len(got) != 1 || got[0].CommercialContactID != 4 {
		t.Errorf("mine filter: err=%v got=%v", err, got)
	}
}

func TestGormContratRepository_MoneyRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormContratRepository(db)
	ctx := context.Background()

	c := models.NewContrat(1, 4, mustMoney(t, "1234.56"))
	saved, err := repo.Save(ctx, c)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := repo.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if loaded.ContratAmount.String() != "1234.56" {
		t.Errorf("amount round-trip: got %s", loaded.ContratAmount)
	}
	if !loaded.BalanceDue.Equal(loaded.ContratAmount) {
		t.Errorf("balance should equal amount, got %s", loaded.BalanceDue)
	}
}

func TestGormEventRepository_UnassignedFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEventRepository(db)
	ctx := context.Background()

	start := time.Now().Add(48 * time.Hour)
	assigned, err := models.NewEvent("Gala", 1, 1, start, start.Add(4*time.Hour), "Lyon", 80, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := assigned.AssignSupport(&models.User{ID: 7, Role: models.RoleSupport}); err != nil {
		t.Fatal(err)
	}
	unassigned, err := models.NewEvent("Salon", 2, 2, start, start.Add(4*time.Hour), "Nantes", 30, "")
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range []*models.Event{assigned, unassigned} {
		if _, err := repo.Save(ctx, e); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	got, err := repo.FindAll(ctx, EventCriteria{Unassigned: true})
	if err != nil || len(got) != 1 || got[0].Name != "Salon" {
		t.Errorf("unassigned filter: err=%v got=%v", err, got)
	}

	support := uint(7)
	got, err = repo.FindAll(ctx, EventCriteria{SupportContactID: &support})
	if err != nil || len(got) != 1 || got[0].Name != "Gala" {
		t.Errorf("support filter: err=%v got=%v", err, got)
	}
}

func TestGormClientRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	email, _ := models.NewEmail("contact@acme.fr")
	tel, _ := models.NewTelephone("0245787980")
	c := &models.Client{FullName: "ACME", Email: email, Telephone: tel, CompanyName: "ACME SA", CommercialContactID: 3}
	saved, err := repo.Save(ctx, c)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, _ := repo.Exist(ctx, saved.ID); ok {
		t.Error("client should be gone after delete")
	}
}
