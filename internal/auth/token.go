package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Hack4Impact-Boston-University/Ocean-Blue-Backend/internal/users"
)

type Claims struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	Admin      bool   `json:"admin"`
	CrewLeader bool   `json:"crew_leader"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the signed bearer tokens. The secret and
// TTL are injected once at startup; any process holding the secret can verify
// a token without a session store.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) Generate(u *users.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:     u.ID,
		Username:   u.Username,
		Admin:      u.Admin,
		CrewLeader: u.CrewLeader,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifies the signature and expiry and returns the decoded claims.
func (s *TokenService) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}
