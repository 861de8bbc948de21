package requests

type VisibilityRequest struct {
	ProductID uint  `json:"productId" binding:"required"`
	Active    *bool `json:"active" binding:"required"`
}

type BulkStockRequest struct {
	Skus []string `json:"skus" binding:"required,min=1"`
}
