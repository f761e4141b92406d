// model/book.go
package model

type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Genre string

const (
	GenreRomance  Genre = "Romance"
	GenreComic    Genre = "Comic"
	GenreHorror   Genre = "Horror"
	GenreResearch Genre = "Research"
)

func ValidGenre(g string) bool {
	switch Genre(g) {
	case GenreRomance, GenreComic, GenreHorror, GenreResearch:
		return true
	}
	return false
}

type BookStatus string

const (
	StatusAvailable   BookStatus = "Available"
	StatusUnavailable BookStatus = "Unavailable"
)

// Rent prices are a fixed tier set, not free-form amounts.
func ValidRentPrice(p int64) bool {
	return p == 100 || p == 200 || p == 300
}

type Book struct {
	ID         int64      `json:"id"`
	BookCode   string     `json:"book_code"`
	Name       string     `json:"name"`
	AuthorID   int64      `json:"author_id"`
	AuthorName string     `json:"author_name,omitempty"`
	Genre      Genre      `json:"genre"`
	RentPrice  int64      `json:"rent_price"`
	Status     BookStatus `json:"status"`
	Copies     int64      `json:"copies"`
	RentalDays int        `json:"rental_days"`
	CoverPath  *string    `json:"cover_path,omitempty"`
	PDFPath    *string    `json:"pdf_path,omitempty"`
}

// StatusForCopies derives the status that keeps the
// status == Unavailable <=> copies == 0 invariant.
func StatusForCopies(copies int64) BookStatus {
	if copies == 0 {
		return StatusUnavailable
	}
	return StatusAvailable
}
