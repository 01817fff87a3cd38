// payments.go - Creem.io checkout and webhook handlers
//
// Checkout flow:
// 1. Ask Creem for a hosted checkout session
// 2. Record a local pending payment (best effort; failure only logs a warning)
// 3. Return the checkout URL to the frontend
//
// Webhook flow:
// 1. Verify the signature when a webhook secret is configured
// 2. Update the payment found by checkout id with order id and status
// 3. Push a payment.updated event to the owner's sockets

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"healthtrack-backend/creem"
	"healthtrack-backend/metrics"
	"healthtrack-backend/middleware"
	"healthtrack-backend/models"
	"healthtrack-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutInput struct {
	ProductID  string `json:"productId"`
	SuccessURL string `json:"successUrl" binding:"omitempty,url"`
}

func (a *API) CreateCheckout(c *gin.Context) {
	var input CheckoutInput
	if !bindOptionalJSON(c, &input) {
		return
	}
	if !a.Creem.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payment provider not configured"})
		return
	}
	productID := input.ProductID
	if productID == "" {
		productID = a.ProductID
	}
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
		return
	}
	successURL := input.SuccessURL
	if successURL == "" {
		successURL = a.SuccessURL
	}

	userID := middleware.CurrentUserID(c)     // Verified by AuthMiddleware
	email := c.GetString(middleware.EmailKey) // May be empty
	requestID := uuid.NewString()             // Echoed back by Creem

	req := creem.CheckoutRequest{
		ProductID:  productID,
		RequestID:  requestID,
		SuccessURL: successURL,
		Metadata:   map[string]string{"user_id": userID},
	}
	if email != "" {
		req.Customer = &creem.Customer{Email: email}
	}
	session, err := a.Creem.CreateCheckout(c.Request.Context(), req)
	if err != nil {
		metrics.RecordCheckout("error")
		a.Log.Error("create checkout", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create checkout session"})
		return
	}
	metrics.RecordCheckout("created")

	payment := &models.Payment{
		UserID:     userID,
		CheckoutID: session.ID,
		ProductID:  productID,
		RequestID:  requestID,
		Status:     models.PaymentPending,
	}
	if err := services.RecordPayment(c.Request.Context(), payment); err != nil {
		// The checkout is still usable; the webhook will 404 for this row.
		a.Log.Warn("record payment failed", zap.String("checkout_id", session.ID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"checkoutId":  session.ID,
		"checkoutUrl": session.CheckoutURL,
		"requestId":   requestID,
	})
}

func (a *API) PaymentWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	if a.WebhookSecret != "" && !creem.VerifySignature(a.WebhookSecret, body, c.GetHeader(creem.SignatureHeader)) {
		a.Log.Warn("webhook signature mismatch", zap.String("client_ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	var update services.PaymentUpdate                     // Webhook payload
	if err := json.Unmarshal(body, &update); err != nil { // Malformed body
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	payment, err := services.ApplyPaymentUpdate(c.Request.Context(), update)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			a.Log.Warn("webhook for unknown checkout", zap.String("checkout_id", update.CheckoutID))
		}
		a.respondError(c, err)
		return
	}
	metrics.RecordWebhook(payment.Status)
	a.publish(payment.UserID, "payment.updated", payment)
	c.JSON(http.StatusOK, gin.H{"received": true, "payment": payment})
}

func (a *API) ListPayments(c *gin.Context) {
	list, err := services.ListPayments(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) PaymentStatus(c *gin.Context) {
	checkoutID := c.Query("checkout_id")
	if checkoutID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkout_id is required"})
		return
	}
	p, err := services.GetPayment(c.Request.Context(), middleware.CurrentUserID(c), checkoutID)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
