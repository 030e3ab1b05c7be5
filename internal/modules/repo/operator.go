package repo

import (
	"context"

	"github.com/vpvn/bugreports/internal/modules/model"
	"gorm.io/gorm"
)

type OperatorRepo interface {
	Create(ctx context.Context, o *model.Operator) error
	GetByName(ctx context.Context, name string) (*model.Operator, error)
	GetByTokenHMAC(ctx context.Context, lookup string) (*model.Operator, error)
	UpdateToken(ctx context.Context, id int64, lookup, phc string, isAdmin bool) error
	List(ctx context.Context) ([]*model.Operator, error)
}

type operatorRepo struct{ db *gorm.DB }

func NewOperatorRepo(db *gorm.DB) OperatorRepo {
	return &operatorRepo{db: db}
}

func (r *operatorRepo) Create(ctx context.Context, o *model.Operator) error {
	return conn(ctx, r.db).Create(o).Error
}

func (r *operatorRepo) GetByName(ctx context.Context, name string) (*model.Operator, error) {
	var o model.Operator
	if err := conn(ctx, r.db).Where("name = ?", name).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *operatorRepo) GetByTokenHMAC(ctx context.Context, lookup string) (*model.Operator, error) {
	var o model.Operator
	if err := conn(ctx, r.db).Where(&model.Operator{TokenHMAC: lookup}).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *operatorRepo) UpdateToken(ctx context.Context, id int64, lookup, phc string, isAdmin bool) error {
	return conn(ctx, r.db).Model(&model.Operator{}).Where("id = ?", id).Updates(map[string]any{
		"token_hmac":     lookup,
		"token_hash_phc": phc,
		"is_admin":       isAdmin,
	}).Error
}

func (r *operatorRepo) List(ctx context.Context) ([]*model.Operator, error) {
	var items []*model.Operator
	return items, conn(ctx, r.db).Order("id ASC").Find(&items).Error
}
