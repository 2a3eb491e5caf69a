// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authfeature "github.com/ponsectors/ponsectors/internal/app/features/auth"
	authgooglefeature "github.com/ponsectors/ponsectors/internal/app/features/authgoogle"
	fundingfeature "github.com/ponsectors/ponsectors/internal/app/features/funding"
	healthfeature "github.com/ponsectors/ponsectors/internal/app/features/health"
	insightsfeature "github.com/ponsectors/ponsectors/internal/app/features/insights"
	moderationfeature "github.com/ponsectors/ponsectors/internal/app/features/moderation"
	notificationsfeature "github.com/ponsectors/ponsectors/internal/app/features/notifications"
	profilefeature "github.com/ponsectors/ponsectors/internal/app/features/profile"
	projectsfeature "github.com/ponsectors/ponsectors/internal/app/features/projects"
	"github.com/ponsectors/ponsectors/internal/app/system/auth"
	"github.com/ponsectors/ponsectors/internal/app/system/authz"
	"github.com/ponsectors/ponsectors/internal/app/system/collab"
	"github.com/ponsectors/ponsectors/internal/app/system/moderation"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. The JSON API is mounted under
// /api; /health stays at the root for load balancers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr := auth.NewSessionManager([]byte(appCfg.SessionKey), appCfg.SessionName, appCfg.SessionDomain, secure, logger)

	policy := authz.NewPolicy(appCfg.AdminEmails)

	// Refresh session users from the store on every restore so role
	// changes and the admin allow-list take effect without re-login.
	sessionMgr.SetUserFetcher(userFetcher(deps, policy))

	collabSvc := collab.New(deps.Stores, logger)
	moderationSvc := moderation.New(deps.Stores, logger)

	r := chi.NewRouter()

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(api chi.Router) {
		authHandler := authfeature.NewHandler(deps.Stores.Users, sessionMgr, policy, logger)
		api.Mount("/auth", authfeature.Routes(authHandler, sessionMgr))

		googleHandler := authgooglefeature.NewHandler(
			deps.Stores.Users, deps.States, sessionMgr, policy,
			appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
		if googleHandler.IsConfigured() {
			api.Mount("/auth/google", authgooglefeature.Routes(googleHandler))
		} else {
			logger.Info("google sign-in disabled (no client credentials)")
		}

		projectsHandler := projectsfeature.NewHandler(deps.Stores, collabSvc, logger)
		api.Mount("/projects", projectsfeature.Routes(projectsHandler, sessionMgr))

		insightsHandler := insightsfeature.NewHandler(deps.Stores.Insights, logger)
		api.Mount("/insights", insightsfeature.Routes(insightsHandler, sessionMgr))

		fundingHandler := fundingfeature.NewHandler(deps.Stores.Funding, logger)
		api.Mount("/funding", fundingfeature.Routes(fundingHandler, sessionMgr))

		notificationsHandler := notificationsfeature.NewHandler(deps.Stores.Notifications, logger)
		api.Mount("/notifications", notificationsfeature.Routes(notificationsHandler, sessionMgr))

		moderationHandler := moderationfeature.NewHandler(deps.Stores.Users, moderationSvc, logger)
		api.Mount("/admin", moderationfeature.Routes(moderationHandler, sessionMgr))

		profileHandler := profilefeature.NewHandler(deps.Stores.Users, deps.Stores.Projects, logger)
		profilefeature.Routes(api, profileHandler, sessionMgr)
	})

	return r, nil
}

// userFetcher resolves a session user against the store and applies the
// allow-list override to the role.
func userFetcher(deps DBDeps, policy *authz.Policy) auth.UserFetcher {
	return func(ctx context.Context, id string) (auth.SessionUser, bool) {
		u, err := deps.Stores.Users.GetByID(ctx, id)
		if err != nil {
			return auth.SessionUser{}, false
		}
		return auth.SessionUser{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Role:  policy.EffectiveRole(u.Email, u.Role),
		}, true
	}
}
