// users.go - Local mirror of Supabase users

package services

import (
	"context"
	"errors"
	"strings"

	"healthtrack-backend/database"
	"healthtrack-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserInput carries optional profile fields; nil means "leave unchanged".
type UserInput struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

// EnsureUser creates the local row for a Supabase user if it does not exist
// and keeps the stored email in step with the token. An empty email is
// stored as NULL so several email-less users can coexist.
func EnsureUser(ctx context.Context, id, email string) (*models.User, error) {
	if id == "" {
		return nil, invalid("user id is required")
	}
	var user models.User
	err := database.DB.WithContext(ctx).First(&user, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return createUser(ctx, models.User{ID: id, Email: optionalEmail(email), Name: defaultName(email)})
	case err != nil:
		return nil, err
	}
	if email != "" && user.EmailAddress() != email {
		user.Email = optionalEmail(email)
		if err := database.DB.WithContext(ctx).Model(&user).Update("email", email).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// createUser inserts user unless a concurrent request already did, then
// returns whatever row now holds the id.
func createUser(ctx context.Context, user models.User) (*models.User, error) {
	db := database.DB.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&user).Error
	if err != nil {
		return nil, err
	}
	var stored models.User
	if err := db.First(&stored, "id = ?", user.ID).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func optionalEmail(email string) *string {
	if email == "" {
		return nil
	}
	return &email
}

// SyncUser upserts the user and applies the optional profile fields.
func SyncUser(ctx context.Context, id, email string, in UserInput) (*models.User, error) {
	if _, err := EnsureUser(ctx, id, email); err != nil {
		return nil, err
	}
	return UpdateUser(ctx, id, in)
}

func GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := database.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func UpdateUser(ctx context.Context, id string, in UserInput) (*models.User, error) {
	user, err := GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Avatar != nil {
		updates["avatar"] = strings.TrimSpace(*in.Avatar)
	}
	if len(updates) == 0 {
		return user, nil
	}
	if err := database.DB.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return GetUser(ctx, id)
}

// DeleteUser removes the user and every row they own in one transaction.
func DeleteUser(ctx context.Context, id string) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		diseases := tx.Model(&models.Disease{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("disease_id IN (?)", diseases).Delete(&models.Medication{}).Error; err != nil {
			return err
		}
		for _, model := range []interface{}{&models.Disease{}, &models.Measurement{}, &models.Payment{}} {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
}

func defaultName(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return ""
}
