package dto

// Response DTOs

// DayCountResponse is one day of a 7-day series; Label is dd.mm.
type DayCountResponse struct {
	Label string `json:"date"`
	Count int    `json:"count"`
}

type DayRevenueResponse struct {
	Label   string `json:"date"`
	Revenue string `json:"revenue"`
}

// HourCountResponse is the number of appointments completed today before Hour.
type HourCountResponse struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}
