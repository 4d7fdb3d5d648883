package entities

type AttemptQuery struct {
	// filter by the public booking code of the order
	OrderCode string
	// filter by the provider assigned bill id
	BillID string
}
