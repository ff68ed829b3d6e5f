package models

import (
	"encoding/json"
	"time"
)

// Address represents a single postal-code record as returned by the ViaCEP
// lookup service, plus the instant it was materialized in-process.
type Address struct {
	Cep         string    `json:"cep"`
	Logradouro  string    `json:"logradouro"`
	Complemento string    `json:"complemento"`
	Bairro      string    `json:"bairro"`
	Localidade  string    `json:"localidade"`
	Uf          string    `json:"uf"`
	Ibge        string    `json:"ibge"`
	Gia         string    `json:"gia"`
	Ddd         string    `json:"ddd"`
	Siafi       string    `json:"siafi"`
	CreatedAt   time.Time `json:"created_at"`
}

// String returns the JSON serialization of the record, used for logging only.
func (a *Address) String() string {
	b, err := json.Marshal(a)
	if err != nil {
		return "{}"
	}
	return string(b)
}
