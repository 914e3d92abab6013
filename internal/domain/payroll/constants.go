package payroll

type Status string

const (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
	StatusPaid      Status = "paid"
)

func ParseStatus(raw string) (Status, bool) {
	switch s := Status(raw); s {
	case StatusPending, StatusProcessed, StatusPaid:
		return s, true
	}
	return "", false
}

const (
	MinYear = 2000
	MaxYear = 2100
)
