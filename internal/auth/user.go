package auth

// User is a registered account. Username and email are unique only by
// convention: Register checks them with a pre-query, the table does not.
type User struct {
	ID        uint64 `gorm:"primaryKey"`
	Email     string `gorm:"size:255;not null"`
	Username  string `gorm:"size:255;not null;index"`
	Firstname string `gorm:"size:255;not null"`
	Lastname  string `gorm:"size:255;not null"`
	Password  string `gorm:"size:255;not null" json:"-"`
}
