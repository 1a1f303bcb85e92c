package allocator

import (
	"sort"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

// SessionGroup is the set of students sitting one (exam date, session) pairing.
type SessionGroup struct {
	Key      string
	ExamDate string
	Session  models.ExamSession
	Students []models.Student
}

// GroupSessions partitions students by session key. Groups are ordered by exam
// date, forenoon before afternoon on the same date.
func GroupSessions(students []models.Student) []SessionGroup {
	index := make(map[string]int)
	groups := make([]SessionGroup, 0)
	for _, student := range students {
		key := student.SessionKey()
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, SessionGroup{Key: key, ExamDate: student.ExamDate, Session: student.Session})
		}
		groups[pos].Students = append(groups[pos].Students, student)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].ExamDate != groups[j].ExamDate {
			return groups[i].ExamDate < groups[j].ExamDate
		}
		return sessionRank(groups[i].Session) < sessionRank(groups[j].Session)
	})
	return groups
}

// SortSessionKeys orders keys the same way GroupSessions orders groups.
func SortSessionKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		di, si := splitSessionKey(keys[i])
		dj, sj := splitSessionKey(keys[j])
		if di != dj {
			return di < dj
		}
		return sessionRank(si) < sessionRank(sj)
	})
}

func splitSessionKey(key string) (string, models.ExamSession) {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '_' {
			return key[:i], models.ExamSession(key[i+1:])
		}
	}
	return key, ""
}

func sessionRank(session models.ExamSession) int {
	switch session {
	case models.SessionForenoon:
		return 0
	case models.SessionAfternoon:
		return 1
	default:
		return 2
	}
}
