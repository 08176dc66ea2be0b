package request

type AttributeReferralRequest struct {
	Code string `json:"code" binding:"required,max=32"`
}
