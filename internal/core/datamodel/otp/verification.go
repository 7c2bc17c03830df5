package otp

import "time"

// EmailVerification holds at most one outstanding code per email address.
// VerifiedAt survives consumption so signup can check that the address was
// verified without keeping the code around.
type EmailVerification struct {
	Email      string     `gorm:"column:email;primaryKey"`
	Code       string     `gorm:"column:code"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	VerifiedAt *time.Time `gorm:"column:verified_at"`
}

func (EmailVerification) TableName() string {
	return "email_verifications"
}
