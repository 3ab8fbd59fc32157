package model

// FAQ is an admin-managed help entry shown in listing order.
type FAQ struct {
	Base
	Question string `json:"question" db:"question"`
	Answer   string `json:"answer" db:"answer"`
	Position int    `json:"position" db:"position"`
}
