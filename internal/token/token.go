package token

import (
	"strconv"
	"time"

	"github.com/pascaldekloe/jwt"
)

// Claims is what the API needs from a verified bearer token.
type Claims struct {
	UserID    int64
	Email     string
	Roles     []string
	ExpiresAt time.Time
}

type Manager struct {
	secret []byte
	issuer string
	expiry time.Duration
	now    func() time.Time
}

// New creates a token manager. issuer is used for both the iss and aud claims.
func New(secret, issuer string, expiry time.Duration) *Manager {
	if expiry <= 0 {
		expiry = time.Hour
	}

	return &Manager{
		secret: []byte(secret),
		issuer: issuer,
		expiry: expiry,
		now:    time.Now,
	}
}

func (m *Manager) Issue(userID int64, email string, roles []string) (string, time.Time, error) {
	now := m.now()
	expiry := now.Add(m.expiry)

	var claims jwt.Claims
	claims.Subject = strconv.FormatInt(userID, 10)
	claims.Issued = jwt.NewNumericTime(now)
	claims.NotBefore = jwt.NewNumericTime(now)
	claims.Expires = jwt.NewNumericTime(expiry)
	claims.Issuer = m.issuer
	claims.Audiences = []string{m.issuer}

	roleValues := make([]interface{}, len(roles))
	for i, role := range roles {
		roleValues[i] = role
	}
	claims.Set = map[string]interface{}{
		"email": email,
		"roles": roleValues,
	}

	token, err := claims.HMACSign(jwt.HS256, m.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return string(token), expiry, nil
}

// Verify returns nil for any token that is malformed, badly signed, expired,
// or issued for someone else. Callers answer all of those the same way.
func (m *Manager) Verify(token string) *Claims {
	claims, err := jwt.HMACCheck([]byte(token), m.secret)
	if err != nil {
		return nil
	}

	if !claims.Valid(m.now()) {
		return nil
	}

	if claims.Issuer != m.issuer || !claims.AcceptAudience(m.issuer) {
		return nil
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil
	}

	verified := &Claims{UserID: userID}

	if email, ok := claims.Set["email"].(string); ok {
		verified.Email = email
	}

	if roles, ok := claims.Set["roles"].([]interface{}); ok {
		for _, role := range roles {
			if s, ok := role.(string); ok {
				verified.Roles = append(verified.Roles, s)
			}
		}
	}

	if claims.Expires != nil {
		verified.ExpiresAt = claims.Expires.Time()
	}

	return verified
}
