package request

// CustomerRequest represents a customer create/update request
type CustomerRequest struct {
	Name      string  `json:"name" binding:"required,min=2,max=255"`
	Mobile    string  `json:"mobile" binding:"required,min=10,max=15"`
	GSTNumber *string `json:"gst_number" binding:"omitempty,max=20"`
	State     string  `json:"state" binding:"required,max=100"`
}

// CompanyRequest represents a supplier company create/update request
type CompanyRequest struct {
	Name      string  `json:"name" binding:"required,min=2,max=255"`
	GSTNumber *string `json:"gst_number" binding:"omitempty,max=20"`
	State     string  `json:"state" binding:"required,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=20"`
	Address   *string `json:"address"`
}
