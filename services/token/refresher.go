package token

import (
	"context"
	"encoding/json"
	"time"

	"leadpilot/config"
	integrationRepo "leadpilot/database/repository/integration"
	"leadpilot/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

const cacheKeyPrefix = "calToken:"

// Refresher hands out oauth2 token sources for connected calendar
// integrations. Refreshed tokens are written back to the integration store
// and mirrored in an explicit Redis cache owned by this object; the cache is
// invalidated here and nowhere else.
type Refresher struct {
	Integrations integrationRepo.IntegrationRepository
	Cache        *redis.Client
	Logger       *zap.Logger
	oauthCfg     *oauth2.Config
}

// NewRefresher builds a Refresher from the configured OAuth app credentials.
func NewRefresher(integrations integrationRepo.IntegrationRepository, cache *redis.Client, logger *zap.Logger) *Refresher {
	return &Refresher{
		Integrations: integrations,
		Cache:        cache,
		Logger:       logger,
		oauthCfg: &oauth2.Config{
			ClientID:     config.AppConfig.GoogleClientID,
			ClientSecret: config.AppConfig.GoogleClientSecret,
			Scopes:       []string{calendar.CalendarEventsScope},
			Endpoint:     google.Endpoint,
		},
	}
}

// TokenSource returns a source that serves the integration's current token,
// refreshing through the provider when it nears expiry and persisting the
// result.
func (r *Refresher) TokenSource(ctx context.Context, integration *models.CalendarIntegration) oauth2.TokenSource {
	base := &oauth2.Token{
		AccessToken:  integration.AccessToken,
		RefreshToken: integration.RefreshToken,
		Expiry:       integration.TokenExpiry,
	}
	if cached := r.cachedToken(ctx, integration.UserID); cached != nil && cached.Expiry.After(base.Expiry) {
		cached.RefreshToken = integration.RefreshToken
		base = cached
	}

	return &persistingTokenSource{
		refresher: r,
		userID:    integration.UserID,
		inner:     r.oauthCfg.TokenSource(ctx, base),
		last:      base.AccessToken,
		ctx:       ctx,
	}
}

// Invalidate drops the cached access token for a user, forcing the next call
// to go through a full refresh.
func (r *Refresher) Invalidate(ctx context.Context, userID string) {
	if err := r.Cache.Del(ctx, cacheKeyPrefix+userID).Err(); err != nil && err != redis.Nil {
		r.Logger.Warn("failed to invalidate token cache", zap.String("userID", userID), zap.Error(err))
	}
}

func (r *Refresher) cachedToken(ctx context.Context, userID string) *oauth2.Token {
	raw, err := r.Cache.Get(ctx, cacheKeyPrefix+userID).Result()
	if err != nil {
		if err != redis.Nil {
			r.Logger.Warn("token cache read failed", zap.String("userID", userID), zap.Error(err))
		}
		return nil
	}
	var tok oauth2.Token
	if err := json.Unmarshal([]byte(raw), &tok); err != nil {
		return nil
	}
	return &tok
}

func (r *Refresher) storeToken(ctx context.Context, userID string, tok *oauth2.Token) {
	if err := r.Integrations.UpdateTokens(ctx, userID, tok.AccessToken, tok.RefreshToken, tok.Expiry); err != nil {
		r.Logger.Error("failed to persist refreshed token", zap.String("userID", userID), zap.Error(err))
	}

	ttl := time.Until(tok.Expiry)
	if ttl <= 0 {
		return
	}
	payload, err := json.Marshal(oauth2.Token{AccessToken: tok.AccessToken, Expiry: tok.Expiry})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, cacheKeyPrefix+userID, payload, ttl).Err(); err != nil {
		r.Logger.Warn("failed to cache refreshed token", zap.String("userID", userID), zap.Error(err))
	}
}

// persistingTokenSource wraps the oauth2 source and writes back any token
// the provider mints.
type persistingTokenSource struct {
	refresher *Refresher
	userID    string
	inner     oauth2.TokenSource
	last      string
	ctx       context.Context
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.inner.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		s.refresher.storeToken(s.ctx, s.userID, tok)
	}
	return tok, nil
}
