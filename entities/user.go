package entities

// User is owned by the identity provider; this service only reads it.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email     string `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	FirstName string `gorm:"type:varchar(150)" json:"first_name"`
	LastName  string `gorm:"type:varchar(150)" json:"last_name"`
	Avatar    string `gorm:"type:varchar(512)" json:"avatar,omitempty"`

	Timestamp
}
