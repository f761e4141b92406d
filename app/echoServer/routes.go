package echoServer

import (
	"net/http"

	"librental/app/echoServer/controller/auth"
	"librental/app/echoServer/controller/book"
	"librental/app/echoServer/controller/membership"
	"librental/app/echoServer/controller/rental"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth       *auth.Controller
	Book       *book.Controller
	Rental     *rental.Controller
	Membership *membership.Controller
	JWTSecret  string
}

func Register(e *echo.Echo, c C) {
	// Public
	e.GET("/", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, echo.Map{"message": "library rental service"})
	})
	e.POST("/register", c.Auth.Register)
	e.POST("/login", c.Auth.Login)
	e.POST("/admin_login", c.Auth.AdminLogin)
	e.GET("/genre/:genre", c.Book.ByGenre)
	e.GET("/book/:id", c.Book.Detail)
	e.GET("/search-authors", c.Book.SearchAuthors)

	jwtGate := echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return jwt.MapClaims{}
		},
	})

	// Customer routes
	user := e.Group("", jwtGate, ExtractIdentity())
	user.GET("/rent", c.Rental.Rentable)
	user.POST("/rent/:bookId", c.Rental.Rent)
	user.POST("/activate_plan/:planDuration", c.Membership.ActivatePlan)
	user.POST("/payment", c.Membership.Pay)
	user.GET("/profile", c.Auth.Profile)

	// Admin routes
	admin := e.Group("", jwtGate, ExtractIdentity(), RequireAdmin())
	admin.GET("/books-catalog", c.Book.Catalog)
	admin.POST("/add-to-collections", c.Book.Add)
	admin.POST("/edit/:id", c.Book.Edit)
	admin.POST("/delete/:id", c.Book.Delete)
	admin.GET("/users", c.Membership.Users)
	admin.GET("/overdue-books", c.Rental.Overdue)
	admin.GET("/borrowed_books", c.Rental.Borrowed)
	admin.GET("/authors", c.Book.Authors)
	admin.POST("/authors", c.Book.AddAuthor)
}
