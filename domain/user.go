package domain

// User is the author of a comment.
type User struct {
	DisplayName string
	UserID      string
	EmojiStatus string // Country flag or custom emoji
	AvatarURL   string
	IsPro       bool
	IsStaff     bool
}
