package allocator

import (
	"sort"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

// subjectQueue is the FIFO of one subject's students within a session.
type subjectQueue struct {
	code     string
	kind     models.SubjectKind
	students []models.Student
	head     int
}

func (q *subjectQueue) remaining() int { return len(q.students) - q.head }

func (q *subjectQueue) peek() *models.Student {
	if q.head >= len(q.students) {
		return nil
	}
	return &q.students[q.head]
}

func (q *subjectQueue) pop() models.Student {
	student := q.students[q.head]
	q.head++
	return student
}

// QueueSet holds one queue per subject code, ordered by code.
type QueueSet struct {
	queues []*subjectQueue
	byCode map[string]*subjectQueue
}

// BuildQueues groups a session's students by subject. Within each queue
// physically-challenged students come first in input order, followed by the rest
// by ascending register number. The input slice is left untouched.
func BuildQueues(students []models.Student, classifier *Classifier) *QueueSet {
	set := &QueueSet{byCode: make(map[string]*subjectQueue)}
	for _, student := range students {
		code := NormalizeSubjectCode(student.SubjectCode)
		q, ok := set.byCode[code]
		if !ok {
			q = &subjectQueue{code: code, kind: classifier.Classify(code)}
			set.byCode[code] = q
			set.queues = append(set.queues, q)
		}
		q.students = append(q.students, student)
	}

	for _, q := range set.queues {
		sort.SliceStable(q.students, func(i, j int) bool {
			a, b := q.students[i], q.students[j]
			if a.IsPhysicallyChallenged != b.IsPhysicallyChallenged {
				return a.IsPhysicallyChallenged
			}
			if a.IsPhysicallyChallenged {
				return false
			}
			return a.RegisterNumber < b.RegisterNumber
		})
	}
	sort.Slice(set.queues, func(i, j int) bool { return set.queues[i].code < set.queues[j].code })
	return set
}

// Codes lists the subject codes in queue order.
func (s *QueueSet) Codes() []string {
	codes := make([]string, len(s.queues))
	for i, q := range s.queues {
		codes[i] = q.code
	}
	return codes
}

// Kind returns the classification of a subject queue.
func (s *QueueSet) Kind(code string) models.SubjectKind {
	if q, ok := s.byCode[NormalizeSubjectCode(code)]; ok {
		return q.kind
	}
	return models.SubjectKindNormal
}

// Pending returns a copy of the students still waiting in a subject queue.
func (s *QueueSet) Pending(code string) []models.Student {
	q, ok := s.byCode[NormalizeSubjectCode(code)]
	if !ok {
		return nil
	}
	out := make([]models.Student, q.remaining())
	copy(out, q.students[q.head:])
	return out
}

// Remaining counts students not yet seated.
func (s *QueueSet) Remaining() int {
	total := 0
	for _, q := range s.queues {
		total += q.remaining()
	}
	return total
}

// RemainingOfKind counts unseated students of one kind.
func (s *QueueSet) RemainingOfKind(kind models.SubjectKind) int {
	total := 0
	for _, q := range s.queues {
		if q.kind == kind {
			total += q.remaining()
		}
	}
	return total
}
