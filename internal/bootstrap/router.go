package bootstrap

import (
	"time"

	"cloud.google.com/go/firestore"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	adminhttp "github.com/onemeal-app/onemeal-backend/internal/admin/http"
	"github.com/onemeal-app/onemeal-backend/internal/ai"
	aihttp "github.com/onemeal-app/onemeal-backend/internal/ai/http"
	annhttp "github.com/onemeal-app/onemeal-backend/internal/announcements/http"
	annrepo "github.com/onemeal-app/onemeal-backend/internal/announcements/repository"
	httpapi "github.com/onemeal-app/onemeal-backend/internal/api/http"
	"github.com/onemeal-app/onemeal-backend/internal/api/http/middleware"
	"github.com/onemeal-app/onemeal-backend/internal/auth"
	authhttp "github.com/onemeal-app/onemeal-backend/internal/auth/http"
	authmw "github.com/onemeal-app/onemeal-backend/internal/auth/middleware"
	authrepo "github.com/onemeal-app/onemeal-backend/internal/auth/repository"
	authservice "github.com/onemeal-app/onemeal-backend/internal/auth/service"
	donhttp "github.com/onemeal-app/onemeal-backend/internal/donations/http"
	donrepo "github.com/onemeal-app/onemeal-backend/internal/donations/repository"
	donservice "github.com/onemeal-app/onemeal-backend/internal/donations/service"
	listhttp "github.com/onemeal-app/onemeal-backend/internal/listings/http"
	listservice "github.com/onemeal-app/onemeal-backend/internal/listings/service"
	scorehttp "github.com/onemeal-app/onemeal-backend/internal/scoring/http"
	scorerepo "github.com/onemeal-app/onemeal-backend/internal/scoring/repository"
	scoreservice "github.com/onemeal-app/onemeal-backend/internal/scoring/service"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AuthClient     *fbauth.Client
	Store          *firestore.Client
	Cache          *redis.Client
	AI             *ai.Client
	Photos         donservice.PhotoStore
	AdminEmails    []string
	LeaderboardTTL time.Duration
}

// BuildRouter wires repositories, services and handlers onto a gin engine.
// It also returns the scoring service so main can hand it to the cron
// scheduler.
func BuildRouter(dep RouterDeps) (*gin.Engine, *scoreservice.ScoringService) {
	r := gin.Default()
	r.Use(cors.Default())
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store, dep.Cache)
	healthHandler.RegisterRoutes(r)

	userRepo := authrepo.NewUserRepository(dep.Store)
	donationRepo := donrepo.NewDonationRepository(dep.Store)
	announcementRepo := annrepo.NewAnnouncementRepository(dep.Store)
	var leaderboardCache scoreservice.LeaderboardCache
	if dep.Cache != nil {
		leaderboardCache = scorerepo.NewLeaderboardRepository(dep.Cache, dep.LeaderboardTTL)
	}

	authService := authservice.NewAuthService(userRepo, dep.AdminEmails)
	lifecycle := donservice.NewLifecycleService(donationRepo, dep.AI, dep.Photos)
	listings := listservice.NewListingService(donationRepo)
	scoring := scoreservice.NewScoringService(donationRepo, leaderboardCache)

	api := r.Group("/api/v1")

	// Public surface: landing-page reads and the recipe/chat assistant.
	scorehttp.NewHandler(scoring).RegisterPublic(api)
	annhttp.NewHandler(announcementRepo).Register(api)
	aihttp.NewHandler(dep.AI).Register(api)

	// Identity-only routes: sync runs before a user document exists.
	authGroup := api.Group("/auth")
	authGroup.Use(authmw.FirebaseAuthMiddleware(dep.AuthClient))
	authhttp.NewHandler(authService).Register(authGroup)

	// Everything below requires a verified token plus a synced profile.
	protected := api.Group("")
	protected.Use(authmw.FirebaseAuthMiddleware(dep.AuthClient))
	protected.Use(auth.WithUser(userRepo))

	donhttp.NewHandler(lifecycle).Register(protected.Group("/donations"))
	listhttp.NewHandler(listings).Register(protected.Group("/listings"))
	scorehttp.NewHandler(scoring).RegisterProtected(protected)
	adminhttp.NewHandler(userRepo, donationRepo, announcementRepo).Register(protected.Group("/admin"))

	return r, scoring
}
