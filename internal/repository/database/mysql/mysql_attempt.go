package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fleetmgmt/billplz-payment-service/internal/entities"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/database"
)

func (m *mysqlConnector) CreateAttempt(ctx context.Context, pa entities.PaymentAttempt) error {
	if !pa.Status.IsValid() {
		return fmt.Errorf("invalid payment attempt status '%s'", pa.Status)
	}

	tCtx, cancel := context.WithTimeout(ctx, time.Second*20)
	defer cancel()

	result := m.db.WithContext(tCtx).Create(&pa)

	return result.Error
}

func (m *mysqlConnector) GetAttemptByBillID(ctx context.Context, billID string) (*entities.PaymentAttempt, error) {
	tCtx, cancel := context.WithTimeout(ctx, time.Second*20)
	defer cancel()

	var pa entities.PaymentAttempt
	res := m.db.WithContext(tCtx).Where(&entities.PaymentAttempt{
		BillID: billID,
	}).First(&pa)

	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, database.ErrAttemptNotFound
		}
		return nil, res.Error
	}

	return &pa, nil
}

func (m *mysqlConnector) GetAttemptsByFilter(ctx context.Context, query entities.AttemptQuery) ([]entities.PaymentAttempt, error) {
	var attempts []entities.PaymentAttempt

	tCtx, cancel := context.WithTimeout(ctx, time.Second*20)
	defer cancel()

	res := m.db.WithContext(tCtx).
		Where(&entities.PaymentAttempt{
			OrderCode: query.OrderCode,
			BillID:    query.BillID,
		}).
		Find(&attempts)
	if res.Error != nil {
		return nil, res.Error
	}

	return attempts, nil
}

func (m *mysqlConnector) TransitionAttempt(ctx context.Context, billID string, from entities.AttemptStatus, to entities.AttemptStatus) (bool, error) {
	tCtx, cancel := context.WithTimeout(ctx, time.Second*20)
	defer cancel()

	// single conditional update - with two concurrent callbacks for the same
	// bill only one of them gets a row count of 1
	res := m.db.WithContext(tCtx).
		Model(&entities.PaymentAttempt{}).
		Where("bill_id = ? AND status = ?", billID, from).
		Update("status", to)

	if res.Error != nil {
		return false, res.Error
	}

	if res.RowsAffected > 0 {
		return true, nil
	}

	// distinguish "already transitioned" from "no such bill"
	var count int64
	if err := m.db.WithContext(tCtx).
		Model(&entities.PaymentAttempt{}).
		Where("bill_id = ?", billID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, database.ErrAttemptNotFound
	}

	return false, nil
}
