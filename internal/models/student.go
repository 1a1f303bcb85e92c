package models

// ExamSession is the half-day slot of an examination.
type ExamSession string

const (
	SessionForenoon  ExamSession = "FN"
	SessionAfternoon ExamSession = "AN"
)

// Student is one examination entry: a register number sitting one subject in one session.
// The same register number appears once per exam it sits.
type Student struct {
	RegisterNumber         string      `db:"register_number" json:"registerNumber" validate:"required,len=12,numeric"`
	SubjectCode            string      `db:"subject_code" json:"subjectCode" validate:"required,max=32"`
	Department             string      `db:"department" json:"department" validate:"required,max=64"`
	ExamDate               string      `db:"exam_date" json:"examDate" validate:"required,max=32"`
	Session                ExamSession `db:"session" json:"session" validate:"required,oneof=FN AN"`
	IsPhysicallyChallenged bool        `db:"is_physically_challenged" json:"isPhysicallyChallenged"`
	Position               int         `db:"position" json:"-"`
}

// SessionKey returns the key that identifies the student's allocation sub-problem.
func (s Student) SessionKey() string {
	return SessionKeyOf(s.ExamDate, s.Session)
}

// SessionKeyOf builds a session key from its parts.
func SessionKeyOf(examDate string, session ExamSession) string {
	return examDate + "_" + string(session)
}

// StudentFilter narrows student batch listings.
type StudentFilter struct {
	SessionKey     string
	RegisterNumber string
	Page           int
	PageSize       int
}
