package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/packtrack/stock-api/internal/domain"
)

type WorkerReportQuery struct {
	StartDate string `form:"start_date" format:"YYYY-MM-DD"`
	EndDate   string `form:"end_date" format:"YYYY-MM-DD"`
	WorkerID  uint   `form:"worker_id"`
}

func (q *WorkerReportQuery) Validate() error {
	return validation.ValidateStruct(
		q,
		validation.Field(&q.StartDate, validation.Required, validation.Date(domain.DateLayout)),
		validation.Field(&q.EndDate, validation.Date(domain.DateLayout), validation.By(notBefore(q.StartDate))),
	)
}

// Range expects a query that passed Validate.
func (q *WorkerReportQuery) Range() (time.Time, *time.Time) {
	start, _ := time.Parse(domain.DateLayout, q.StartDate)

	return start, optionalDate(q.EndDate)
}
