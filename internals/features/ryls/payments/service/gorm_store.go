// file: internals/features/ryls/payments/service/gorm_store.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"risesocial_backend/internals/features/ryls/payments/model"
	regmodel "risesocial_backend/internals/features/ryls/registrations/model"
)

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) RegistrationByID(ctx context.Context, id uint) (*regmodel.Registration, error) {
	var reg regmodel.Registration
	if err := s.DB.WithContext(ctx).
		First(&reg, "registration_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &reg, nil
}

func (s *GormStore) ActivePendingGateway(ctx context.Context, registrationID uint, now time.Time) (*model.RylsPayment, *model.GatewayRecord, error) {
	var pay model.RylsPayment
	err := s.DB.WithContext(ctx).
		Joins("JOIN gateway_records ON gateway_records.gateway_record_id = ryls_payments.ryls_payment_gateway_record_id").
		Where("ryls_payments.ryls_payment_registration_id = ?", registrationID).
		Where("ryls_payments.ryls_payment_type = ?", model.PaymentTypeGateway).
		Where("ryls_payments.ryls_payment_status = ?", model.PaymentStatusPending).
		Where("gateway_records.gateway_record_transaction_status = ?", model.TxStatusPending).
		Where("gateway_records.gateway_record_expires_at > ?", now).
		Order("ryls_payments.ryls_payment_created_at DESC").
		Preload("GatewayRecord").
		First(&pay).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return &pay, pay.GatewayRecord, nil
}

func (s *GormStore) LastPaymentID(ctx context.Context) (uint, error) {
	var pay model.RylsPayment
	err := s.DB.WithContext(ctx).
		Order("ryls_payment_id DESC").
		First(&pay).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return pay.RylsPaymentID, nil
}

func (s *GormStore) OrderIDExists(ctx context.Context, orderID string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&model.GatewayRecord{}).
		Where("gateway_record_order_id = ?", orderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) CreateGatewayAttempt(ctx context.Context, rec *model.GatewayRecord, pay *model.RylsPayment) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		pay.RylsPaymentGatewayRecordID = &rec.GatewayRecordID
		if err := tx.Create(pay).Error; err != nil {
			return err
		}
		return tx.Model(&regmodel.Registration{}).
			Where("registration_id = ?", pay.RylsPaymentRegistrationID).
			Update("registration_payment_status", regmodel.RegistrationPaymentPending).Error
	})
	if err != nil && isDuplicateKey(err) {
		return ErrDuplicateOrderID
	}
	return err
}

func (s *GormStore) CreateProofPayment(ctx context.Context, asset *regmodel.FileAsset, pay *model.RylsPayment) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(asset).Error; err != nil {
			return err
		}
		pay.RylsPaymentProofFileID = &asset.FileAssetID
		if err := tx.Create(pay).Error; err != nil {
			return err
		}
		return tx.Model(&regmodel.Registration{}).
			Where("registration_id = ?", pay.RylsPaymentRegistrationID).
			Update("registration_payment_status", regmodel.RegistrationPaymentPaid).Error
	})
}

func (s *GormStore) Reconcile(ctx context.Context, orderID string, fn ReconcileFunc) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec model.GatewayRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&rec, "gateway_record_order_id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		var pay model.RylsPayment
		if err := tx.First(&pay, "ryls_payment_gateway_record_id = ?", rec.GatewayRecordID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		var reg regmodel.Registration
		if err := tx.First(&reg, "registration_id = ?", pay.RylsPaymentRegistrationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		var latest model.RylsPayment
		if err := tx.Where("ryls_payment_registration_id = ?", reg.RegistrationID).
			Order("ryls_payment_created_at DESC, ryls_payment_id DESC").
			First(&latest).Error; err != nil {
			return err
		}

		view := &ReconcileView{
			Rec:             &rec,
			Pay:             &pay,
			Reg:             &reg,
			LatestPaymentID: latest.RylsPaymentID,
		}

		dirty, err := fn(view)
		if err != nil || !dirty {
			return err
		}

		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		if err := tx.Save(&pay).Error; err != nil {
			return err
		}
		return tx.Save(&reg).Error
	})
}

func (s *GormStore) LatestPayment(ctx context.Context, registrationID uint) (*model.RylsPayment, error) {
	var pay model.RylsPayment
	err := s.DB.WithContext(ctx).
		Where("ryls_payment_registration_id = ?", registrationID).
		Order("ryls_payment_created_at DESC, ryls_payment_id DESC").
		Preload("GatewayRecord").
		First(&pay).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &pay, nil
}

func isDuplicateKey(err error) bool {
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "gateway_record_order_id")
}
