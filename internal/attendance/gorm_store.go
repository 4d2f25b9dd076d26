package attendance

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/attendance_bot/internal/models"
)

// GormStore backs Store and Directory with the relational database. Conflict
// resolution happens in the database itself so concurrent triggers and
// duplicate callbacks cannot race an in-memory copy.
type GormStore struct {
	DB  *gorm.DB
	Loc *time.Location
}

func NewGormStore(db *gorm.DB, loc *time.Location) *GormStore {
	return &GormStore{DB: db, Loc: loc}
}

func (s *GormStore) EnsureProvisional(studentID, subjectID uint, classTime time.Time) error {
	rec := models.ProvisionalAttendance{
		StudentID: studentID,
		SubjectID: subjectID,
		ClassTime: classTime,
		Status:    models.StatusUnset,
	}
	return s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&rec).Error
}

func (s *GormStore) SetLatestStatus(studentID, subjectID uint, status string) (time.Time, error) {
	latest := s.DB.Model(&models.ProvisionalAttendance{}).
		Select("MAX(class_time)").
		Where("student_id = ? AND subject_id = ?", studentID, subjectID)
	var rec models.ProvisionalAttendance
	res := s.DB.Model(&rec).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "class_time"}}}).
		Where("student_id = ? AND subject_id = ? AND class_time = (?)", studentID, subjectID, latest).
		Update("status", status)
	if res.Error != nil {
		return time.Time{}, res.Error
	}
	if res.RowsAffected == 0 {
		return time.Time{}, ErrNoProvisional
	}
	return rec.ClassTime, nil
}

func (s *GormStore) SetStatus(studentID, subjectID uint, classTime time.Time, status string) error {
	res := s.DB.Model(&models.ProvisionalAttendance{}).
		Where("student_id = ? AND subject_id = ? AND class_time = ?", studentID, subjectID, classTime).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoProvisional
	}
	return nil
}

func (s *GormStore) Roster(groupID, subjectID uint, classTime time.Time) ([]RosterEntry, error) {
	var rows []struct {
		StudentID uint
		FirstName string
		LastName  string
		ChatID    int64
		Status    string
	}
	err := s.DB.Table("provisional_attendances AS pa").
		Select("pa.student_id, st.first_name, st.last_name, st.chat_id, pa.status").
		Joins("JOIN students st ON st.id = pa.student_id").
		Where("pa.subject_id = ? AND pa.class_time = ? AND st.group_id = ?", subjectID, classTime, groupID).
		Order("st.last_name, st.first_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	entries := make([]RosterEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, RosterEntry{
			Member: Member{
				StudentID: r.StudentID,
				FirstName: r.FirstName,
				LastName:  r.LastName,
				ChatID:    r.ChatID,
			},
			Status: r.Status,
		})
	}
	return entries, nil
}

func (s *GormStore) CommitJournal(subjectID uint, classTime time.Time) error {
	date := s.calendarDate(classTime)
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var recs []models.ProvisionalAttendance
		err := tx.
			Where("subject_id = ? AND class_time = ? AND status <> ?", subjectID, classTime, models.StatusUnset).
			Find(&recs).Error
		if err != nil {
			return err
		}
		for _, rec := range recs {
			entry := models.JournalEntry{
				StudentID: rec.StudentID,
				SubjectID: rec.SubjectID,
				Date:      date,
				Status:    rec.Status,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "student_id"}, {Name: "subject_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
			}).Create(&entry).Error
			if err != nil {
				return err
			}
		}
		// The occurrence is settled; its provisional rows are consumed.
		return tx.
			Where("subject_id = ? AND class_time = ?", subjectID, classTime).
			Delete(&models.ProvisionalAttendance{}).Error
	})
}

func (s *GormStore) PurgeStale(cutoff time.Time) (int64, error) {
	res := s.DB.
		Where("class_time < ?", cutoff).
		Delete(&models.ProvisionalAttendance{})
	return res.RowsAffected, res.Error
}

func (s *GormStore) SaveExplanation(studentID, subjectID uint, date time.Time, text string) error {
	return s.DB.Create(&models.Explanation{
		StudentID: studentID,
		SubjectID: subjectID,
		Date:      s.calendarDate(date),
		Text:      text,
	}).Error
}

func (s *GormStore) ListMembers(groupID uint) ([]Member, error) {
	var students []models.Student
	err := s.DB.
		Where("group_id = ?", groupID).
		Order("last_name, first_name").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	members := make([]Member, 0, len(students))
	for _, st := range students {
		members = append(members, Member{
			StudentID: st.ID,
			FirstName: st.FirstName,
			LastName:  st.LastName,
			ChatID:    st.ChatID,
		})
	}
	return members, nil
}

func (s *GormStore) StudentGroup(studentID uint) (uint, error) {
	var st models.Student
	if err := s.DB.First(&st, studentID).Error; err != nil {
		return 0, err
	}
	return st.GroupID, nil
}

func (s *GormStore) Reviewers(groupID uint) ([]int64, error) {
	var reps []models.Representative
	if err := s.DB.Where("group_id = ?", groupID).Find(&reps).Error; err != nil {
		return nil, err
	}
	chats := make([]int64, 0, len(reps))
	for _, role := range []string{models.RepRolePrimary, models.RepRoleDeputy} {
		for _, rep := range reps {
			if rep.Role == role {
				chats = append(chats, rep.ChatID)
			}
		}
	}
	return chats, nil
}

func (s *GormStore) ReviewerGroup(chatID int64) (uint, bool, error) {
	var rep models.Representative
	err := s.DB.Where("chat_id = ?", chatID).First(&rep).Error
	if err == gorm.ErrRecordNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return rep.GroupID, true, nil
}

func (s *GormStore) SubjectName(subjectID uint) (string, error) {
	var subject models.Subject
	if err := s.DB.First(&subject, subjectID).Error; err != nil {
		return "", err
	}
	return subject.Name, nil
}

func (s *GormStore) calendarDate(t time.Time) time.Time {
	d := t.In(s.Loc)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
