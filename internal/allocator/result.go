package allocator

import "github.com/noah-isme/exam-seating-api/internal/models"

// buildResult turns filled grids into a session result. Halls without students
// are left out; allocations follow hall fill order, then row-major seat order.
func buildResult(group SessionGroup, grids []*hallGrid) *models.SeatingResult {
	result := &models.SeatingResult{
		SessionKey:        group.Key,
		ExamDate:          group.ExamDate,
		Session:           group.Session,
		Halls:             make([]models.HallSeating, 0),
		StudentAllocation: make([]models.StudentAllocation, 0, len(group.Students)),
	}

	for _, g := range grids {
		count := 0
		for _, row := range g.seats {
			for _, seat := range row {
				if seat.Student == nil {
					continue
				}
				count++
				result.StudentAllocation = append(result.StudentAllocation, models.StudentAllocation{
					RegisterNumber: seat.Student.RegisterNumber,
					Department:     seat.Student.Department,
					Subject:        seat.Student.SubjectCode,
					HallName:       g.hall.Name,
					Row:            seat.Row,
					Col:            seat.Col,
					SeatNumber:     seat.SeatNumber,
				})
			}
		}
		if count == 0 {
			continue
		}
		result.Halls = append(result.Halls, models.HallSeating{
			Hall:           g.hall,
			Grid:           g.seats,
			StudentsCount:  count,
			SoftViolations: g.flagged,
		})
		result.TotalStudents += count
		result.SoftViolations += g.flagged
	}
	result.HallsUsed = len(result.Halls)
	return result
}
