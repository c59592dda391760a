package domain

// ScheduleEntry is an employee's working hours for one day of the week.
// There is at most one entry per (EmployeeID, DayOfWeek).
type ScheduleEntry struct {
	ID           int64  `json:"id"`
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	DayOfWeek    int    `json:"day_of_week"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	IsActive     bool   `json:"is_active"`
}
