package middleware

import (
	"errors"
	"fmt"

	"github.com/anjiri1684/studio_tracker/models"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// ErrUnauthenticated is returned by an Authenticator that cannot identify the caller.
var ErrUnauthenticated = errors.New("unauthenticated")

// Principal is the identity of the instructor making the request.
type Principal struct {
	ID        uuid.UUID
	Email     *string
	FirstName *string
	LastName  *string
}

// User is the row created for a principal seen for the first time.
func (p Principal) User() models.User {
	return models.User{
		ID:        p.ID,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
}

// Authenticator resolves the current principal of a request.
type Authenticator interface {
	Resolve(c *fiber.Ctx) (*Principal, error)
}

// MockAuthenticator treats every request as coming from the same instructor.
type MockAuthenticator struct {
	Principal Principal
}

func NewMockAuthenticator(id, email, firstName, lastName string) (*MockAuthenticator, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("mock instructor id: %w", err)
	}
	p := Principal{ID: parsed}
	if email != "" {
		p.Email = &email
	}
	if firstName != "" {
		p.FirstName = &firstName
	}
	if lastName != "" {
		p.LastName = &lastName
	}
	return &MockAuthenticator{Principal: p}, nil
}

func (m *MockAuthenticator) Resolve(c *fiber.Ctx) (*Principal, error) {
	p := m.Principal
	return &p, nil
}

// JWTAuthenticator reads the claims of a token already verified by Protected.
type JWTAuthenticator struct{}

func (JWTAuthenticator) Resolve(c *fiber.Ctx) (*Principal, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrUnauthenticated
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnauthenticated
	}

	subject := stringClaim(claims, "sub")
	if subject == nil {
		subject = stringClaim(claims, "user_id")
	}
	if subject == nil {
		return nil, ErrUnauthenticated
	}
	id, err := uuid.Parse(*subject)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	return &Principal{
		ID:        id,
		Email:     stringClaim(claims, "email"),
		FirstName: stringClaim(claims, "first_name"),
		LastName:  stringClaim(claims, "last_name"),
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) *string {
	v, ok := claims[key].(string)
	if !ok || v == "" {
		return nil
	}
	return &v
}

// Protected verifies the bearer token signed with secret.
func Protected(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT"})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT"})
}
