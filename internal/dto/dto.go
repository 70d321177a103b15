package dto

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Store     string `json:"store"`
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type AdminStatusResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

type SellerStatusResponse struct {
	IsSeller bool `json:"isSeller"`
}

// SellerVerifyRequest carries the seller's email and the verify value the
// admin is currently looking at; the stored value becomes its negation.
type SellerVerifyRequest struct {
	Email  string `json:"email"`
	Verify bool   `json:"verify"`
}

type PaymentIntentRequest struct {
	Price float64 `json:"price"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}
