package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type DecisionRequest struct {
	Decision string  `json:"decision"` // APPROVE / REJECT
	Comment  *string `json:"comment,omitempty"`
}
