package book

// AddBookReq arrives as multipart form data together with the optional
// cover image and PDF files.
type AddBookReq struct {
	BookCode   string `form:"book_id" validate:"required"`
	Name       string `form:"name" validate:"required"`
	AuthorID   int64  `form:"author" validate:"required,gt=0"`
	Genre      string `form:"genre" validate:"required"`
	RentPrice  int64  `form:"rent" validate:"required"`
	Copies     int64  `form:"copies" validate:"gte=0"`
	RentalDays int    `form:"rental_days" validate:"required,gt=0"`
}

// EditBookReq is the tagged single-field update: the field name must
// be one of the permitted columns.
type EditBookReq struct {
	Field string `json:"field" form:"field" validate:"required"`
	Value string `json:"value" form:"value" validate:"required"`
}

type AddAuthorReq struct {
	Name string `json:"name" validate:"required"`
}
