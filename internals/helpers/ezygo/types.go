package ezygo

/* ==========================
   Portal payload shapes
========================== */

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Stay     bool   `json:"stay_logged_in"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Course is one enrolled course as the portal reports it.
type Course struct {
	ID               int    `json:"id"`
	Code             string `json:"code"`
	Name             string `json:"name"`
	AcademicYear     string `json:"academic_year"`
	AcademicSemester string `json:"academic_semester"`
}

// AttendanceReport is the detailed per-session report. Courses are keyed by
// their stringified id; the report maps date -> session name -> slot.
type AttendanceReport struct {
	Courses map[string]Course                    `json:"courses"`
	Report  map[string]map[string]AttendanceSlot `json:"attendance_report"`
}

// AttendanceSlot is one (date, session) cell: the course it belongs to and the
// portal's raw attendance code.
type AttendanceSlot struct {
	Course     int `json:"course"`
	Attendance int `json:"attendance"`
}

type academicPeriodRequest struct {
	AcademicYear string `json:"default_academic_year"`
	Semester     string `json:"default_semester"`
}

type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
