package pagination

const (
	DefaultTake = 10
	MaxTake     = 100
)

// Query is bound from ?take=&skip=. Zero take means DefaultTake.
type Query struct {
	Take int `form:"take" binding:"omitempty,min=0"`
	Skip int `form:"skip" binding:"omitempty,min=0"`
}

func (q Query) Normalize() Query {
	if q.Take <= 0 {
		q.Take = DefaultTake
	}
	if q.Take > MaxTake {
		q.Take = MaxTake
	}
	if q.Skip < 0 {
		q.Skip = 0
	}
	return q
}
