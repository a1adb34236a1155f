package domain

// Role роль аутентифицированного пользователя
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// Caller identity of the authenticated user performing an operation.
// Identity is established by the external authentication gate; the engine
// only compares it against ownership attributes.
type Caller struct {
	UserID   int64
	Role     Role
	DoctorID *int64 // Заполняется, если пользователь - врач (healthprof id)
}

// IsDoctor returns true if the caller acts as the given doctor
func (c Caller) IsDoctor(doctorID int64) bool {
	return c.DoctorID != nil && *c.DoctorID == doctorID
}

// CanReadAppointment allows the owning user and the assigned doctor
func CanReadAppointment(c Caller, a *Appointment) bool {
	return a.CreatedBy == c.UserID || c.IsDoctor(a.DoctorID)
}

// CanUpdateAppointment allows the owning user and the assigned doctor
func CanUpdateAppointment(c Caller, a *Appointment) bool {
	return a.CreatedBy == c.UserID || c.IsDoctor(a.DoctorID)
}

// CanDeleteAppointment allows only the owning user
func CanDeleteAppointment(c Caller, a *Appointment) bool {
	return a.CreatedBy == c.UserID
}
