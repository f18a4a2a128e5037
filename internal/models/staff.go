package models

import "time"

// Staff represents a farm worker enrolled for biometric attendance.
type Staff struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	FullName    string    `db:"full_name" json:"full_name"`
	Role        *string   `db:"role" json:"role,omitempty"`
	BiometricID *string   `db:"biometric_id" json:"biometric_id,omitempty"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// AttendanceRecord is a presence interval. An open interval is
// represented by a NULL check_out, not a separate state field.
type AttendanceRecord struct {
	ID            string     `db:"id" json:"id"`
	StaffID       string     `db:"staff_id" json:"staff_id"`
	UserID        string     `db:"user_id" json:"user_id"`
	BiometricID   string     `db:"biometric_id" json:"biometric_id"`
	BiometricType string     `db:"biometric_type" json:"biometric_type"`
	CheckIn       time.Time  `db:"check_in" json:"check_in"`
	CheckOut      *time.Time `db:"check_out" json:"check_out,omitempty"`
	Location      *string    `db:"location" json:"location,omitempty"`
	Status        string     `db:"status" json:"status"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// AttendanceFilter scopes attendance listing queries.
type AttendanceFilter struct {
	StaffID  string
	UserID   string
	OpenOnly bool
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}

// StaffAttendanceSummary aggregates presence per staff member.
type StaffAttendanceSummary struct {
	StaffID    string  `db:"staff_id" json:"staff_id"`
	StaffName  string  `db:"staff_name" json:"staff_name"`
	Days       int     `db:"days" json:"days"`
	TotalHours float64 `db:"total_hours" json:"total_hours"`
	OpenShifts int     `db:"open_shifts" json:"open_shifts"`
}
