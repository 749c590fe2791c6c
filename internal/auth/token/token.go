package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	autherrors "github.com/elec-connect/smart-attendance-system-sub001/internal/auth/errors"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (m *Manager) AccessTTL() time.Duration { return m.accessTTL }

// Issue signs a token of the given type carrying the actor's identity.
func (m *Manager) Issue(actor domain.Actor, tokenType string) (string, error) {
	ttl := m.accessTTL
	if tokenType == TypeRefresh {
		ttl = m.refreshTTL
	}
	now := m.now()

	claims := jwt.MapClaims{
		"sub":           strconv.FormatInt(actor.ID, 10),
		"user_id":       actor.ID,
		"employee_code": actor.EmployeeCode,
		"role":          actor.Role,
		"department":    actor.Department,
		"token_type":    tokenType,
		"iat":           now.Unix(),
		"exp":           now.Add(ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates signature, expiry and type and returns the embedded actor.
func (m *Manager) Parse(tokenString, tokenType string) (domain.Actor, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Actor{}, autherrors.ErrTokenExpired
		}
		return domain.Actor{}, autherrors.ErrInvalidToken
	}
	if !parsed.Valid {
		return domain.Actor{}, autherrors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Actor{}, autherrors.ErrInvalidToken
	}
	if typ, _ := claims["token_type"].(string); typ != tokenType {
		return domain.Actor{}, autherrors.ErrInvalidToken
	}

	// numbers decode from JSON as float64
	rawID, ok := claims["user_id"].(float64)
	if !ok || rawID <= 0 {
		return domain.Actor{}, autherrors.ErrInvalidToken
	}

	actor := domain.Actor{ID: int64(rawID)}
	actor.EmployeeCode, _ = claims["employee_code"].(string)
	actor.Role, _ = claims["role"].(string)
	actor.Department, _ = claims["department"].(string)
	return actor, nil
}
