package config

type App struct {
	Port              string `env:"APP_PORT" default:"8080"`
	DatabaseURL       string `env:"DATABASE_URL,required"`
	JWTSecret         string `env:"JWT_SECRET,required"`
	Env               string `env:"APP_ENV" default:"dev"`
	AdminUsername     string `env:"ADMIN_USERNAME" default:"admin"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH,required"`
	MediaDir          string `env:"MEDIA_DIR" default:"./media"`

	// Window used to decide whether a payment still counts as an
	// active membership. Applied regardless of which plan was bought;
	// see DESIGN.md before changing the default.
	MembershipLookbackDays int `env:"MEMBERSHIP_LOOKBACK_DAYS" default:"365"`
}
