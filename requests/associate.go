package requests

type AssociateApplyRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	TaxID       string `json:"tax_id" binding:"required"`
	Phone       string `json:"phone"`
}

type AssociateStatusRequest struct {
	// approved | rejected
	Status    string  `json:"status" binding:"required,oneof=approved rejected"`
	AdminNote *string `json:"admin_note"`
}
