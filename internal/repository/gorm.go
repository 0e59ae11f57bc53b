package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/diewo77/go-crm/internal/models"
)

// GormUserRepository is the relational implementation of UserRepository.
type GormUserRepository struct {
	DB *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{DB: db}
}

func (r *GormUserRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.DB.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormUserRepository) FindByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	var users []models.User
	if err := r.DB.WithContext(ctx).Where("role = ?", role).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormUserRepository) FindAll(ctx context.Context, criteria UserCriteria) ([]models.User, error) {
	q := r.DB.WithContext(ctx).Order("id")
	if criteria.Role != nil {
		q = q.Where("role = ?", *criteria.Role)
	}
	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormUserRepository) Exist(ctx context.Context, id uint) (bool, error) {
	return exist[models.User](ctx, r.DB, id)
}

func (r *GormUserRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.User{}, id).Error
}

// GormClientRepository is the relational implementation of ClientRepository.
type GormClientRepository struct {
	DB *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{DB: db}
}

func (r *GormClientRepository) Save(ctx context.Context, client *models.Client) (*models.Client, error) {
	if err := r.DB.WithContext(ctx).Save(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func (r *GormClientRepository) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := r.DB.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

func (r *GormClientRepository) FindAll(ctx context.Context, criteria ClientCriteria) ([]models.Client, error) {
	q := r.DB.WithContext(ctx).Order("id")
	if criteria.CommercialContactID != nil {
		q = q.Where("commercial_contact_id = ?", *criteria.CommercialContactID)
	}
	var clients []models.Client
	if err := q.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *GormClientRepository) Exist(ctx context.Context, id uint) (bool, error) {
	return exist[models.Client](ctx, r.DB, id)
}

func (r *GormClientRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Client{}, id).Error
}

// GormContratRepository is the relational implementation of ContratRepository.
type GormContratRepository struct {
	DB *gorm.DB
}

func NewGormContratRepository(db *gorm.DB) *GormContratRepository {
	return &GormContratRepository{DB: db}
}

func (r *GormContratRepository) Save(ctx context.Context, contrat *models.Contrat) (*models.Contrat, error) {
	if err := r.DB.WithContext(ctx).Save(contrat).Error; err != nil {
		return nil, err
	}
	return contrat, nil
}

func (r *GormContratRepository) FindByID(ctx context.Context, id uint) (*models.Contrat, error) {
	var contrat models.Contrat
	if err := r.DB.WithContext(ctx).First(&contrat, id).Error; err != nil {
		return nil, translate(err)
	}
	return &contrat, nil
}

func (r *GormContratRepository) FindByClientID(ctx context.Context, clientID uint) ([]models.Contrat, error) {
	var contrats []models.Contrat
	if err := r.DB.WithContext(ctx).Where("client_id = ?", clientID).Order("id").Find(&contrats).Error; err != nil {
		return nil, err
	}
	return contrats, nil
}

func (r *GormContratRepository) FindAll(ctx context.Context, criteria ContratCriteria) ([]models.Contrat, error) {
	q := r.DB.WithContext(ctx).Order("id")
	if criteria.CommercialContactID != nil {
		q = q.Where("commercial_contact_id = ?", *criteria.CommercialContactID)
	}
	if criteria.Signed != nil {
		status := models.StatusUnsigned
		if *criteria.Signed {
			status = models.StatusSigned
		}
		q = q.Where("status = ?", status)
	}
	var contrats []models.Contrat
	if err := q.Find(&contrats).Error; err != nil {
		return nil, err
	}
	// Money is stored as a formatted numeric string; the payment filter
	// compares amounts in Go rather than relying on column affinity.
	if criteria.FullyPaid != nil {
		filtered := contrats[:0]
		for _, c := range contrats {
			if c.IsFullyPaid() == *criteria.FullyPaid {
				filtered = append(filtered, c)
			}
		}
		contrats = filtered
	}
	return contrats, nil
}

func (r *GormContratRepository) Exist(ctx context.Context, id uint) (bool, error) {
	return exist[models.Contrat](ctx, r.DB, id)
}

func (r *GormContratRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Contrat{}, id).Error
}

// GormEventRepository is the relational implementation of EventRepository.
type GormEventRepository struct {
	DB *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{DB: db}
}

func (r *GormEventRepository) Save(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := r.DB.WithContext(ctx).Save(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *GormEventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.DB.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (r *GormEventRepository) FindByContratID(ctx context.Context, contratID uint) ([]models.Event, error) {
	var events []models.Event
	if err := r.DB.WithContext(ctx).Where("contrat_id = ?", contratID).Order("id").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *GormEventRepository) FindAll(ctx context.Context, criteria EventCriteria) ([]models.Event, error) {
	q := r.DB.WithContext(ctx).Order("id")
	if criteria.SupportContactID != nil {
		q = q.Where("support_contact_id = ?", *criteria.SupportContactID)
	}
	if criteria.Unassigned {
		q = q.Where("support_contact_id IS NULL")
	}
	var events []models.Event
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *GormEventRepository) Exist(ctx context.Context, id uint) (bool, error) {
	return exist[models.Event](ctx, r.DB, id)
}

func (r *GormEventRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Event{}, id).Error
}

func exist[T any](ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	var count int64
	var model T
	if err := db.WithContext(ctx).Model(&model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
