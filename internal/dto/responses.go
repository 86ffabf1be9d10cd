package dto

type DeliveryTimeResponse struct {
	Hour int `json:"hour"`
}

type SendReportResponse struct {
	Status  string `json:"status"`
	Subject string `json:"subject"`
}

type TagDescription struct {
	Tag         string `json:"tag"`
	Description string `json:"description"`
}
