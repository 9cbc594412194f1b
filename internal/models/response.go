package models

type StatusResponse struct {
	Mess string `json:"mess"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
