package req

type CreateEmployeeRequest struct {
	Name        string `form:"name" binding:"required"`
	Email       string `form:"email" binding:"required,email"`
	Mobile      string `form:"mobile" binding:"required,numeric"`
	Designation string `form:"designation" binding:"omitempty,oneof=HR Manager Sales"`
	Gender      string `form:"gender" binding:"required,oneof=Male Female Other"`
	Course      string `form:"course" binding:"omitempty,oneof=MCA BCA BSC"`
}

// UpdateEmployeeRequest carries a partial edit. Nil pointers mean the
// field was not submitted and keeps its stored value.
type UpdateEmployeeRequest struct {
	Name        *string `form:"name" binding:"omitempty,min=1"`
	Email       *string `form:"email" binding:"omitempty,email"`
	Mobile      *string `form:"mobile" binding:"omitempty,numeric"`
	Designation *string `form:"designation" binding:"omitempty,oneof=HR Manager Sales"`
	Gender      *string `form:"gender" binding:"omitempty,oneof=Male Female Other"`
	Course      *string `form:"course" binding:"omitempty,oneof=MCA BCA BSC"`
}
