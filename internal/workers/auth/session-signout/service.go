// Package sessionsignout ends portal sessions when an employee signs out.
package sessionsignout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"onboarding-workers/internal/common/errors"
	"onboarding-workers/internal/common/logger"
	"onboarding-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

type Service struct {
	config      *Config
	logger      logger.Logger
	redisClient *redis.Client
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	var redisClient *redis.Client
	if config.RedisAddress != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     config.RedisAddress,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})
	}

	return &Service{
		config:      config,
		logger:      deps.Logger,
		redisClient: redisClient,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	s.logger.Info("Executing session signout", map[string]interface{}{
		"employeeEmail": input.EmployeeEmail,
		"sessionId":     input.SessionID,
		"signoutAll":    input.SignoutAll,
		"deviceId":      input.DeviceID,
		"reason":        input.Reason,
	})

	if s.redisClient == nil {
		return nil, &errors.StandardError{
			Code:      "REDIS_NOT_CONFIGURED",
			Message:   "Redis client not configured",
			Details:   "Session management requires Redis",
			Retryable: false,
			Timestamp: time.Now(),
		}
	}

	if err := s.validateEmployeeEmail(input.EmployeeEmail); err != nil {
		return nil, &errors.StandardError{
			Code:      "VALIDATION_FAILED",
			Message:   "Invalid employee email",
			Details:   err.Error(),
			Retryable: false,
			Timestamp: time.Now(),
		}
	}

	var sessionsInvalidated int
	var tokenRevoked bool

	if input.SignoutAll {
		count, err := s.invalidateAllSessions(ctx, input.EmployeeEmail)
		if err != nil {
			return nil, &errors.StandardError{
				Code:      "SESSION_INVALIDATION_ERROR",
				Message:   "Failed to invalidate all sessions",
				Details:   err.Error(),
				Retryable: true,
				Timestamp: time.Now(),
			}
		}
		sessionsInvalidated = count
	} else if input.SessionID != "" {
		err := s.invalidateSession(ctx, input.EmployeeEmail, input.SessionID)
		if err != nil {
			return nil, &errors.StandardError{
				Code:      "SESSION_INVALIDATION_ERROR",
				Message:   "Failed to invalidate session",
				Details:   err.Error(),
				Retryable: true,
				Timestamp: time.Now(),
			}
		}
		sessionsInvalidated = 1
	}

	if input.Token != "" {
		err := s.revokeToken(ctx, input.Token)
		if err != nil {
			s.logger.Warn("Failed to revoke token", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			tokenRevoked = true
		}
	}

	s.logSignoutEvent(ctx, input)

	s.logger.Info("Session signout completed successfully", map[string]interface{}{
		"employeeEmail":       input.EmployeeEmail,
		"sessionsInvalidated": sessionsInvalidated,
		"tokenRevoked":        tokenRevoked,
	})

	return &Output{
		Success:             true,
		Message:             "Signout successful",
		SessionsInvalidated: sessionsInvalidated,
		TokenRevoked:        tokenRevoked,
		SignedOutAt:         time.Now(),
	}, nil
}

func (s *Service) validateEmployeeEmail(email string) error {
	if email == "" {
		return fmt.Errorf("employee email is required")
	}
	if len(email) < 3 {
		return fmt.Errorf("employee email too short")
	}
	return nil
}

func (s *Service) invalidateSession(ctx context.Context, employeeEmail, sessionID string) error {
	sessionKey := fmt.Sprintf("session:%s:%s", employeeEmail, sessionID)

	// Log the device that held the session before dropping it
	if raw, err := s.redisClient.Get(ctx, sessionKey).Result(); err == nil {
		var session models.Session
		if json.Unmarshal([]byte(raw), &session) == nil {
			s.logger.Debug("Dropping session", map[string]interface{}{
				"deviceInfo": session.DeviceInfo,
				"createdAt":  session.CreatedAt,
			})
		}
	}

	err := s.redisClient.Del(ctx, sessionKey).Err()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.logger.Info("Session invalidated", map[string]interface{}{
		"employeeEmail": employeeEmail,
		"sessionId":     sessionID,
	})

	return nil
}

func (s *Service) invalidateAllSessions(ctx context.Context, employeeEmail string) (int, error) {
	pattern := fmt.Sprintf("session:%s:*", employeeEmail)
	keys, err := s.redisClient.Keys(ctx, pattern).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to find sessions: %w", err)
	}

	if len(keys) == 0 {
		return 0, nil
	}

	err = s.redisClient.Del(ctx, keys...).Err()
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions: %w", err)
	}

	s.logger.Info("All sessions invalidated", map[string]interface{}{
		"employeeEmail": employeeEmail,
		"count":         len(keys),
	})

	return len(keys), nil
}

func (s *Service) revokeToken(ctx context.Context, token string) error {
	revokedKey := fmt.Sprintf("token:revoked:%s", token)

	// Store for 24 hours (typical token expiration)
	err := s.redisClient.Set(ctx, revokedKey, "1", 24*time.Hour).Err()
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.logger.Info("Token revoked", map[string]interface{}{
		"token": token[:10] + "...", // Log only first 10 chars for security
	})

	return nil
}

func (s *Service) logSignoutEvent(ctx context.Context, input *Input) {
	eventKey := fmt.Sprintf("signout:event:%s:%d", input.EmployeeEmail, time.Now().Unix())
	eventData := map[string]interface{}{
		"employeeEmail": input.EmployeeEmail,
		"sessionId":     input.SessionID,
		"deviceId":      input.DeviceID,
		"signoutAll":    input.SignoutAll,
		"reason":        input.Reason,
		"timestamp":     time.Now().Unix(),
	}

	// Store signout event for audit trail
	data, _ := json.Marshal(eventData)
	s.redisClient.Set(ctx, eventKey, string(data), 30*24*time.Hour) // Keep for 30 days
}

func (s *Service) TestConnection(ctx context.Context) error {
	if s.redisClient == nil {
		return fmt.Errorf("redis client not configured")
	}

	_, err := s.redisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}

	return nil
}
