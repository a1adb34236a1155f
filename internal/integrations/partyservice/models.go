package partyservice

// Doctor модель врача из PartyService
type Doctor struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"user_id"`
	Name          string  `json:"name"`
	SpecialtyIDs  []int64 `json:"specialty_ids"`
	InstitutionID int64   `json:"institution_id"`
}

// Patient модель пациента из PartyService
type Patient struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

// Specialty модель специальности из PartyService
type Specialty struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ErrorResponse модель ошибки от PartyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
