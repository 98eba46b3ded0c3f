package dto

type SignupInput struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Name     string `json:"name" form:"name" binding:"required,max=100"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
}

type SigninInput struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type RequestResetInput struct {
	Email string `json:"email" form:"email" binding:"required,email"`
}

type ResetPasswordInput struct {
	ResetToken      string `json:"resetToken" form:"resetToken" binding:"required"`
	Password        string `json:"password" form:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" binding:"required"`
}

type UpdatePermissionsInput struct {
	Permissions []string `json:"permissions" form:"permissions" binding:"dive,permission"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
