package response

type ReferralCodeResponse struct {
	Code string `json:"code"`
}

type AttributionResponse struct {
	ReferrerID string `json:"referrer_id"`
	Created    bool   `json:"created"`
}
