package domain

import (
	"time"

	"github.com/google/uuid"
)

// User rows are provisioned by the identity service; this backend only reads
// them and auto-creates a stub on the first signal it sees for a subject.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;column:email" json:"email"`
	FirstName string    `gorm:"column:first_name" json:"first_name"`
	LastName  string    `gorm:"column:last_name" json:"last_name"`
	Timezone  string    `gorm:"column:timezone;default:'UTC'" json:"timezone"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "user" }
