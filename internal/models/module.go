package models

type Module struct {
	Code string `json:"code"`
	Name string `json:"name"`
	MNC  bool   `json:"mnc"`
}
