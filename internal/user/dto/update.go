package dto

// UpdateProfileInput carries the optional profile mutations. Empty fields are
// left untouched; a non-empty Password triggers a rehash.
type UpdateProfileInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
