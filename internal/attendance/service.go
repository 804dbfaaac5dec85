package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gradely/internal/auth"
	"gradely/internal/shared/constants"
	"gradely/internal/students"
	"gradely/internal/teachers"
	"gradely/internal/users"
	"gradely/pkg/cache"
	"gradely/pkg/logger"
)

// recentTail caps how many individual day records a summary carries.
const recentTail = 30

type Service interface {
	Mark(ctx context.Context, identity *auth.Identity, req *MarkRequest) (int, error)
	StudentSummary(ctx context.Context, identity *auth.Identity, requestedStudentID string) (*Summary, error)
	ClassDay(ctx context.Context, classID, sectionID, date string) ([]ClassDayEntry, error)
}

type service struct {
	repo        Repository
	studentRepo students.Repository
	teacherRepo teachers.Repository
	cache       cache.Service
	summaryTTL  time.Duration
	log         *logger.Logger
}

func NewService(repo Repository, studentRepo students.Repository, teacherRepo teachers.Repository, cacheService cache.Service, summaryTTL time.Duration) Service {
	return &service{
		repo:        repo,
		studentRepo: studentRepo,
		teacherRepo: teacherRepo,
		cache:       cacheService,
		summaryTTL:  summaryTTL,
		log:         logger.GetDefault(),
	}
}

// Mark records attendance for a class section on one day. The caller must
// hold the TEACHER role (enforced at the controller); here we resolve their
// teacher profile and validate that every marked student actually belongs
// to the given class and section.
func (s *service) Mark(ctx context.Context, identity *auth.Identity, req *MarkRequest) (int, error) {
	teacher, err := s.teacherRepo.GetByUserID(ctx, identity.UserID)
	if err != nil {
		if err == teachers.ErrTeacherNotFound {
			return 0, auth.NotFound("Teacher profile not found")
		}
		return 0, err
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return 0, auth.BadRequest("date must be formatted YYYY-MM-DD")
	}

	enrolled, err := s.studentRepo.ListByClassSection(ctx, req.ClassID, req.SectionID)
	if err != nil {
		return 0, err
	}
	enrolledIDs := make(map[string]uuid.UUID, len(enrolled))
	for _, st := range enrolled {
		enrolledIDs[st.ID.String()] = st.ID
	}

	records := make([]Record, 0, len(req.Records))
	for _, entry := range req.Records {
		studentID, ok := enrolledIDs[entry.StudentID]
		if !ok {
			return 0, auth.BadRequest(fmt.Sprintf("student %s does not belong to the specified class/section", entry.StudentID))
		}
		records = append(records, Record{
			StudentID:  studentID,
			Date:       date,
			Status:     Status(entry.Status),
			MarkedByID: teacher.ID,
		})
	}

	if err := s.repo.Upsert(ctx, records); err != nil {
		return 0, err
	}

	// Marked students' cached summaries are now stale.
	for _, record := range records {
		if err := s.cache.Delete(ctx, constants.AttendanceSummaryKey(record.StudentID.String())); err != nil {
			s.log.WithError(err).Warn("attendance summary invalidation failed")
		}
	}

	s.log.LogAttendanceMarked(ctx, teacher.ID.String(), req.ClassID, req.SectionID, len(records))
	return len(records), nil
}

// StudentSummary applies the self-or-privileged rule: a STUDENT always gets
// their own record and any caller-supplied target id is ignored; ADMIN and
// TEACHER must name a target explicitly.
func (s *service) StudentSummary(ctx context.Context, identity *auth.Identity, requestedStudentID string) (*Summary, error) {
	var studentID string

	if identity.Role == users.RoleStudent {
		own, err := s.studentRepo.GetByUserID(ctx, identity.UserID)
		if err != nil {
			if err == students.ErrStudentNotFound {
				return nil, auth.NotFound("Student profile not found")
			}
			return nil, err
		}
		studentID = own.ID.String()
	} else {
		if requestedStudentID == "" {
			return nil, auth.BadRequest("studentId query parameter required for admin/teacher")
		}
		studentID = requestedStudentID
	}

	var summary Summary
	err := s.cache.GetOrSet(ctx, constants.AttendanceSummaryKey(studentID), s.summaryTTL,
		func() (interface{}, error) {
			return s.buildSummary(ctx, studentID)
		}, &summary)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *service) buildSummary(ctx context.Context, studentID string) (*Summary, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		if err == students.ErrStudentNotFound {
			return nil, auth.NotFound("Student not found")
		}
		return nil, err
	}

	records, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	totals := SummaryTotals{TotalDays: len(records)}
	months := make(map[string]*MonthBreakdown)
	monthOrder := []string{}

	for _, record := range records {
		monthKey := record.Date.Format("2006-01")
		month, ok := months[monthKey]
		if !ok {
			month = &MonthBreakdown{Month: monthKey}
			months[monthKey] = month
			monthOrder = append(monthOrder, monthKey)
		}
		month.Total++

		switch record.Status {
		case StatusPresent:
			totals.Present++
			month.Present++
		case StatusAbsent:
			totals.Absent++
			month.Absent++
		case StatusLate:
			totals.Late++
			month.Late++
		case StatusExcused:
			totals.Excused++
			month.Excused++
		}
	}

	// Present and late both count toward the attendance percentage.
	if totals.TotalDays > 0 {
		ratio := float64(totals.Present+totals.Late) / float64(totals.TotalDays) * 100
		totals.Percentage = float64(int(ratio*100+0.5)) / 100
	}

	// records arrive newest-first, so months appear newest-first too.
	breakdown := make([]MonthBreakdown, 0, len(monthOrder))
	for _, key := range monthOrder {
		breakdown = append(breakdown, *months[key])
	}

	tail := records
	if len(tail) > recentTail {
		tail = tail[:recentTail]
	}
	recent := make([]DayRecord, 0, len(tail))
	for _, record := range tail {
		recent = append(recent, DayRecord{
			Date:   record.Date.Format("2006-01-02"),
			Status: record.Status,
		})
	}

	info := StudentInfo{
		ID:          student.ID.String(),
		Name:        student.FullName(),
		AdmissionNo: student.AdmissionNo,
		Class:       "Not assigned",
		Section:     "Not assigned",
	}
	if student.Class != nil {
		info.Class = student.Class.Name
	}
	if student.Section != nil {
		info.Section = student.Section.Name
	}

	return &Summary{
		Student:          info,
		Totals:           totals,
		MonthlyBreakdown: breakdown,
		RecentRecords:    recent,
	}, nil
}

// ClassDay lists every enrolled student with their status for one day;
// unmarked students appear with an empty status.
func (s *service) ClassDay(ctx context.Context, classID, sectionID, dateStr string) ([]ClassDayEntry, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		return nil, auth.BadRequest("date must be formatted YYYY-MM-DD")
	}

	enrolled, err := s.studentRepo.ListByClassSection(ctx, classID, sectionID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(enrolled))
	for _, st := range enrolled {
		ids = append(ids, st.ID.String())
	}

	var marked []Record
	if len(ids) > 0 {
		marked, err = s.repo.ListByStudentsOnDate(ctx, ids, date)
		if err != nil {
			return nil, err
		}
	}
	byStudent := make(map[string]Status, len(marked))
	for _, record := range marked {
		byStudent[record.StudentID.String()] = record.Status
	}

	entries := make([]ClassDayEntry, 0, len(enrolled))
	for _, st := range enrolled {
		entries = append(entries, ClassDayEntry{
			StudentID:   st.ID.String(),
			Name:        st.FullName(),
			AdmissionNo: st.AdmissionNo,
			Status:      byStudent[st.ID.String()],
		})
	}
	return entries, nil
}
