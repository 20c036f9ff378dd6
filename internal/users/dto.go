package users

// CreateUserDTO is the signup payload. Credentials and verification
// are handled upstream; this service only owns the profile record.
type CreateUserDTO struct {
	Username    string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
}

// UpdateProfileDTO carries the editable profile fields. Nil means
// "leave unchanged".
type UpdateProfileDTO struct {
	DisplayName *string  `json:"display_name,omitempty" validate:"omitempty,min=1,max=100"`
	Bio         *string  `json:"bio,omitempty" validate:"omitempty,max=500"`
	Interests   []string `json:"interests,omitempty" validate:"omitempty,max=10,dive,min=1,max=50"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

// QuestionnaireDTO carries the six preference axes. Every axis is
// optional; skipped axes simply never contribute to compatibility.
type QuestionnaireDTO struct {
	SocialStyle        string `json:"social_style,omitempty" validate:"omitempty,oneof=extroverted introverted ambivert balanced"`
	ActivityLevel      string `json:"activity_level,omitempty" validate:"omitempty,oneof=sedentary lightly_active moderately_active very_active"`
	BudgetLevel        string `json:"budget_level,omitempty" validate:"omitempty,oneof=low medium high flexible"`
	TimePreference     string `json:"time_preference,omitempty" validate:"omitempty,oneof=morning afternoon evening flexible"`
	DayPreference      string `json:"day_preference,omitempty" validate:"omitempty,oneof=weekday weekend both"`
	PreferredGroupSize string `json:"preferred_group_size,omitempty" validate:"omitempty,oneof=small medium large"`
}
