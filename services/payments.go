// payments.go - Local payment rows mirrored from Creem.io checkouts

package services

import (
	"context"
	"strings"

	"healthtrack-backend/database"
	"healthtrack-backend/models"
)

// PaymentUpdate is the subset of a webhook callback the service stores.
type PaymentUpdate struct {
	CheckoutID string `json:"checkout_id"`
	OrderID    string `json:"order_id"`
	Status     string `json:"status"`
}

func RecordPayment(ctx context.Context, p *models.Payment) error {
	if p.Status == "" {
		p.Status = models.PaymentPending
	}
	return database.DB.WithContext(ctx).Create(p).Error
}

// ApplyPaymentUpdate stores the webhook's order id and status on the payment
// identified by checkout id.
func ApplyPaymentUpdate(ctx context.Context, u PaymentUpdate) (*models.Payment, error) {
	if u.CheckoutID == "" {
		return nil, invalid("checkout_id is required")
	}
	status := strings.ToLower(strings.TrimSpace(u.Status))
	if status == "" {
		return nil, invalid("status is required")
	}
	var p models.Payment
	db := database.DB.WithContext(ctx)
	if err := db.First(&p, "checkout_id = ?", u.CheckoutID).Error; err != nil {
		return nil, notFound(err)
	}
	updates := map[string]interface{}{"status": status}
	if u.OrderID != "" {
		updates["order_id"] = u.OrderID
	}
	if err := db.Model(&p).Updates(updates).Error; err != nil {
		return nil, err
	}
	p.Status = status
	if u.OrderID != "" {
		p.OrderID = u.OrderID
	}
	return &p, nil
}

func ListPayments(ctx context.Context, userID string) ([]models.Payment, error) {
	payments := []models.Payment{}
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").Order("id desc").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func GetPayment(ctx context.Context, userID, checkoutID string) (*models.Payment, error) {
	var p models.Payment
	err := database.DB.WithContext(ctx).First(&p, "checkout_id = ? AND user_id = ?", checkoutID, userID).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}
