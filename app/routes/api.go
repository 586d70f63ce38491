package routes

import (
	"net/http"
	"time"

	"github.com/upahaar/upahaar/app/controllers"
	gql "github.com/upahaar/upahaar/app/graphql"
	"github.com/upahaar/upahaar/app/repositories"
	"github.com/upahaar/upahaar/pkg/ctx"
	"github.com/upahaar/upahaar/pkg/logger"
	"github.com/upahaar/upahaar/pkg/metrics"
	"github.com/upahaar/upahaar/pkg/middleware"
	"github.com/upahaar/upahaar/pkg/rbac"
	"github.com/upahaar/upahaar/pkg/reqid"
	"github.com/upahaar/upahaar/pkg/router"
)

// Build assembles the full HTTP surface: public catalogue routes, the auth
// flow, the authenticated cart, and the admin import endpoints.
func Build() *router.Router {
	r := router.New()

	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(120, time.Minute),
	)

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})

	repo := repositories.NewProductRepository()
	products := controllers.NewProductControllerWith(repo, repo)
	liveSearch := controllers.NewSearchLiveController(repo)
	auth := controllers.NewAuthController()
	users := controllers.NewUserController()
	cart := controllers.NewCartController()
	upload := controllers.NewUploadController()

	api := r.Group("/api/v1")

	if schema, err := gql.NewSchema(repo); err != nil {
		logger.Error("graphql schema", "error", err)
	} else {
		api.Post("/graphql", "graphql", gql.Handler(schema))
	}

	api.Get("/products", "products.index", ctx.Wrap(products.List))
	api.Get("/products/search", "products.search", ctx.Wrap(products.SearchAhead))
	api.Get("/products/search/live", "products.search.live", liveSearch.Connect)
	api.Get("/products/{slug}", "products.show", ctx.Wrap(products.Show))

	api.Post("/auth/signup", "auth.signup", ctx.Wrap(auth.Signup), rbac.Guest)
	api.Post("/auth/verify-otp", "auth.verify", ctx.Wrap(auth.VerifyOTP), rbac.Guest)
	api.Post("/auth/resend-otp", "auth.resend", ctx.Wrap(auth.ResendOTP), rbac.Guest)
	api.Post("/auth/login", "auth.login", ctx.Wrap(auth.Login), rbac.Guest)

	authed := api.Group("", middleware.Auth)
	authed.Get("/users/profile", "users.profile", ctx.Wrap(users.Show))
	authed.Put("/users/profile", "users.profile.update", ctx.Wrap(users.Update))
	authed.Get("/cart", "cart.show", ctx.Wrap(cart.Show))
	authed.Post("/cart/items", "cart.add", ctx.Wrap(cart.AddItem))
	authed.Put("/cart/items", "cart.update", ctx.Wrap(cart.UpdateItem))
	authed.Delete("/cart/items/{productId}", "cart.remove", ctx.Wrap(cart.RemoveItem))
	authed.Delete("/cart", "cart.clear", ctx.Wrap(cart.Clear))

	admin := api.Group("", middleware.Auth, rbac.HasRole("admin"))
	admin.Post("/products/import", "products.import", ctx.Wrap(upload.ImportCSV))
	admin.Post("/products/upload-images", "products.upload-images", ctx.Wrap(upload.UploadImages))

	return r
}
