package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTL values.
// Pattern: gradely:{module}:{operation}:{identifier}

const (
	TTL_STATIC_LONG   = 24 * time.Hour // reference data (classes, sections, subjects)
	TTL_STATIC_SHORT  = 6 * time.Hour  // profiles
	TTL_DYNAMIC_SHORT = 10 * time.Minute
	TTL_DYNAMIC_QUICK = 5 * time.Minute
)

// Attendance cache keys
func AttendanceSummaryKey(studentID string) string {
	return fmt.Sprintf("gradely:attendance:summary:%s", studentID)
}

func AttendanceClassKey(classID, sectionID, date string) string {
	return fmt.Sprintf("gradely:attendance:class:%s:%s:%s", classID, sectionID, date)
}

// Exam cache keys
func StudentResultsKey(studentID string) string {
	return fmt.Sprintf("gradely:exams:results:student:%s", studentID)
}

// AttendanceSummaryPattern matches every cached summary; used for bulk
// invalidation after backfills.
const AttendanceSummaryPattern = "gradely:attendance:summary:*"
