package domain

var (
	MessageSuccessSubmitVolunteer = "volunteer data saved successfully"
	MessageFailedSubmitVolunteer  = "failed to save volunteer data"

	VolunteerAvailabilities = []string{"weekends", "weekdays", "evenings", "flexible"}
)

type (
	VolunteerRequest struct {
		Name         string   `json:"name" form:"name" validate:"required,max=120"`
		Email        string   `json:"email" form:"email" validate:"required,max=254"`
		Phone        string   `json:"phone" form:"phone" validate:"required,max=32"`
		Availability string   `json:"availability" form:"availability" validate:"required,oneof=weekends weekdays evenings flexible"`
		Interests    []string `json:"interests" form:"interests" validate:"omitempty,dive,required,max=60"`
		Message      string   `json:"message" form:"message" validate:"max=2000"`
		Experience   string   `json:"experience" form:"experience" validate:"max=2000"`
	}
)
