package dto

// UpdateDeliveryTimeRequest changes the hour the daily report goes out.
// The store only offers whole hours between 1 PM and 11 PM, matching the
// delivery-time options in the admin settings.
type UpdateDeliveryTimeRequest struct {
	Hour int `json:"hour" binding:"required,min=13,max=23"`
}
