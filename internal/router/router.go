package router

import (
	"github.com/dmkabwe/zubasolar/internal/catalog"
	"github.com/dmkabwe/zubasolar/internal/job"
	"github.com/dmkabwe/zubasolar/internal/logger"
	"github.com/dmkabwe/zubasolar/internal/metrics"
	"github.com/dmkabwe/zubasolar/internal/middleware"
	"github.com/dmkabwe/zubasolar/internal/order"
	"github.com/dmkabwe/zubasolar/internal/profile"
	"github.com/dmkabwe/zubasolar/internal/rating"
	"github.com/dmkabwe/zubasolar/internal/user"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	userH *user.Handler,
	orderH *order.Handler,
	jobH *job.Handler,
	ratingH *rating.Handler,
	profileH *profile.Handler,
	catalogH *catalog.Handler,
	jwtSecret []byte,
	userRepo user.UserRepository,
) chi.Router {
	r := chi.NewRouter()

	r.Use(logger.WithLogging)
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Use(middleware.GzipHandler)

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/packages", func(r chi.Router) {
		r.Get("/", catalogH.ListPackages)
		r.Get("/{id}", catalogH.GetPackage)
	})
	r.Post("/api/calculator/savings", catalogH.ComputeSavingsHandler)
	r.Get("/api/financing", catalogH.ListFinancing)

	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", orderH.CreateOrder)
		r.Post("/{id}/payment", orderH.ConfirmPayment)
		r.Get("/track", orderH.TrackOrder)
	})

	r.Post("/api/ratings", ratingH.SubmitRating)

	r.Route("/api/installer", func(r chi.Router) {
		r.Post("/register", userH.Register)
		r.Post("/login", userH.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTMiddleware(jwtSecret, userRepo))

			r.Get("/jobs", jobH.ListJobs)
			r.Post("/jobs", jobH.ScheduleJob)
			r.Post("/jobs/{id}/status", jobH.UpdateStatus)
			r.Get("/ratings", ratingH.ListInstallerRatings)
			r.Get("/profile", profileH.GetProfile)
			r.Put("/profile", profileH.UpdateProfile)
		})
	})

	return r
}
