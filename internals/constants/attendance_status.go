package constants

/*
Ezygo attendance codes (fixed external contract).

The numeric codes come straight from the institution portal and must never
be re-derived:

	110 = Absent
	111 = Present
	112 = Late       (counts toward total and present)
	220 = Other Leave (counts toward total, NOT present)
	225 = Duty Leave  (counts toward total and present)

Unknown codes still occupy a session slot: they count toward total only.
*/
const (
	AttendanceCodeAbsent     = 110
	AttendanceCodePresent    = 111
	AttendanceCodeLate       = 112
	AttendanceCodeOtherLeave = 220
	AttendanceCodeDutyLeave  = 225
)

type attendanceStatusInfo struct {
	Label    string
	Positive bool
	Absent   bool
}

var attendanceStatusTable = map[int]attendanceStatusInfo{
	AttendanceCodeAbsent:     {Label: "Absent", Positive: false, Absent: true},
	AttendanceCodePresent:    {Label: "Present", Positive: true, Absent: false},
	AttendanceCodeLate:       {Label: "Late", Positive: true, Absent: false},
	AttendanceCodeOtherLeave: {Label: "Other Leave", Positive: false, Absent: true},
	AttendanceCodeDutyLeave:  {Label: "Duty Leave", Positive: true, Absent: false},
}

// IsPositiveAttendance reports whether the code counts as present.
func IsPositiveAttendance(code int) bool {
	return attendanceStatusTable[code].Positive
}

// IsAbsentAttendance reports whether the code counts as absent.
func IsAbsentAttendance(code int) bool {
	return attendanceStatusTable[code].Absent
}

// IsKnownAttendanceCode reports whether the code appears in the portal table.
func IsKnownAttendanceCode(code int) bool {
	_, ok := attendanceStatusTable[code]
	return ok
}

// AttendanceStatusLabel returns the portal label for a code ("Unknown" otherwise).
func AttendanceStatusLabel(code int) string {
	if info, ok := attendanceStatusTable[code]; ok {
		return info.Label
	}
	return "Unknown"
}
