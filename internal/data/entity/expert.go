package entity

type Expert struct {
	Base
	Name       string  `db:"name"`
	Category   string  `db:"category"`
	Experience int     `db:"experience"`
	Rating     float64 `db:"rating"`
	Bio        *string `db:"bio"`
}
