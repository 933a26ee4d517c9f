package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"poker_school_backend/internal/config"
	"poker_school_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// IdentityService resolves bearer tokens against the external identity
// service. The service owns no credentials; it only forwards tokens and
// caches the answers.
type IdentityService struct {
	Client *resty.Client
	Redis  *redis.Client
	Config *config.IdentityConfig
	Logger *zap.Logger
}

func NewIdentityService(cfg *config.IdentityConfig, rdb *redis.Client, logger *zap.Logger) *IdentityService {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond)

	return &IdentityService{
		Client: client,
		Redis:  rdb,
		Config: cfg,
		Logger: logger,
	}
}

type tokenResponse struct {
	Data struct {
		CstUID string `json:"cst_uid"`
	} `json:"data"`
}

// LoginInfo carries the signup and last-login instants the identity service
// keeps for a user, in epoch milliseconds.
type LoginInfo struct {
	SignUp    int64 `json:"sign_up"`
	LoginDate int64 `json:"login_date"`
}

type userdataResponse struct {
	Data struct {
		LoginInfo LoginInfo `json:"login_info"`
	} `json:"data"`
}

func cacheKey(prefix, token string) string {
	sum := sha256.Sum256([]byte(token))
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// Resolve maps a bearer token to the external user id. Results are memoized
// in redis under a hash of the token so the raw token never lands in the
// cache.
func (s *IdentityService) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", util.ErrUnauthorized
	}

	key := cacheKey("identity:uid", token)
	if s.Redis != nil {
		if uid, err := s.Redis.Get(ctx, key).Result(); err == nil && uid != "" {
			return uid, nil
		}
	}

	var body tokenResponse
	resp, err := s.Client.R().
		SetContext(ctx).
		SetBody(map[string]string{"firebase_token": token}).
		SetResult(&body).
		Post(s.Config.TokenEndpoint)
	if err != nil {
		s.Logger.Warn("identity service unreachable", zap.Error(err))
		return "", util.ErrUpstreamUnavailable
	}
	if resp.IsError() || body.Data.CstUID == "" {
		return "", util.ErrUnauthorized
	}

	if s.Redis != nil {
		s.Redis.Set(ctx, key, body.Data.CstUID, s.Config.CacheTTL)
	}
	return body.Data.CstUID, nil
}

// SignupInfo fetches the user's signup and last-login instants. Cached under
// the token hash like Resolve; the window math that consumes it tolerates the
// TTL of staleness.
func (s *IdentityService) SignupInfo(ctx context.Context, token string) (*LoginInfo, error) {
	key := cacheKey("identity:login_info", token)
	if s.Redis != nil {
		if raw, err := s.Redis.Get(ctx, key).Result(); err == nil && raw != "" {
			var info LoginInfo
			if json.Unmarshal([]byte(raw), &info) == nil {
				return &info, nil
			}
		}
	}

	var body userdataResponse
	resp, err := s.Client.R().
		SetContext(ctx).
		SetQueryParam("info_params", "['login_info']").
		SetHeader("Authorization", "Bearer "+token).
		SetResult(&body).
		Get(s.Config.UserdataEndpoint)
	if err != nil {
		s.Logger.Warn("identity userdata unreachable", zap.Error(err))
		return nil, util.ErrUpstreamUnavailable
	}
	if resp.IsError() || body.Data.LoginInfo.SignUp == 0 {
		return nil, fmt.Errorf("userdata lookup failed: status %d", resp.StatusCode())
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(body.Data.LoginInfo); err == nil {
			s.Redis.Set(ctx, key, raw, s.Config.CacheTTL)
		}
	}
	return &body.Data.LoginInfo, nil
}

// SignupTime converts the epoch-millis signup instant to time.Time.
func (l *LoginInfo) SignupTime() time.Time {
	return time.UnixMilli(l.SignUp)
}
