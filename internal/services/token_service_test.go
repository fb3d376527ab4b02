package services

import (
	"testing"
	"time"

	"expense-tracker-api/internal/config"
	"expense-tracker-api/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// TokenServiceTestSuite defines the test suite for TokenService
type TokenServiceTestSuite struct {
	suite.Suite
	jwtConfig *config.JWTConfig
	service   TokenServiceInterface
	user      *models.User
}

// SetupSuite generates a keypair once for the whole suite
func (s *TokenServiceTestSuite) SetupSuite() {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	s.jwtConfig = &config.JWTConfig{
		AccessTokenDuration: 15 * time.Minute,
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "expense-tracker-api",
	}
}

// SetupTest runs before each test
func (s *TokenServiceTestSuite) SetupTest() {
	s.service = NewTokenService(s.jwtConfig)
	s.user = &models.User{
		ID:        uuid.New(),
		Email:     "user@example.com",
		FirstName: "Jamie",
		LastName:  "Doe",
		Role:      models.RoleUser,
	}
}

// TestTokenServiceSuite runs the test suite
func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

// Test GenerateAccessToken
func (s *TokenServiceTestSuite) TestGenerateAccessToken_Success() {
	token, expiresAt, err := s.service.GenerateAccessToken(s.user)
	s.NoError(err)
	s.NotEmpty(token)
	s.WithinDuration(time.Now().Add(s.jwtConfig.AccessTokenDuration), expiresAt, 5*time.Second)
}

func (s *TokenServiceTestSuite) TestGenerateAccessToken_NilUser() {
	token, _, err := s.service.GenerateAccessToken(nil)
	s.Error(err)
	s.Empty(token)
}

// Test ValidateAccessToken
func (s *TokenServiceTestSuite) TestValidateAccessToken_Success() {
	token, _, err := s.service.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	claims, err := s.service.ValidateAccessToken(token)
	s.NoError(err)
	s.Equal(s.user.ID.String(), claims.UserID)
	s.Equal(s.user.Email, claims.Email)
	s.Equal(models.RoleUser, claims.Role)
	s.Equal(TokenTypeAccess, claims.TokenType)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Empty() {
	claims, err := s.service.ValidateAccessToken("")
	s.ErrorIs(err, ErrEmptyToken)
	s.Nil(claims)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Malformed() {
	claims, err := s.service.ValidateAccessToken("not.a.token")
	s.ErrorIs(err, ErrInvalidToken)
	s.Nil(claims)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Expired() {
	expiredConfig := &config.JWTConfig{
		AccessTokenDuration: -time.Minute,
		PrivateKey:          s.jwtConfig.PrivateKey,
		PublicKey:           s.jwtConfig.PublicKey,
		Issuer:              s.jwtConfig.Issuer,
	}
	expiredService := NewTokenService(expiredConfig)

	token, _, err := expiredService.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	claims, err := s.service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrExpiredToken)
	s.Nil(claims)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_WrongIssuer() {
	otherConfig := &config.JWTConfig{
		AccessTokenDuration: 15 * time.Minute,
		PrivateKey:          s.jwtConfig.PrivateKey,
		PublicKey:           s.jwtConfig.PublicKey,
		Issuer:              "someone-else",
	}
	otherService := NewTokenService(otherConfig)

	token, _, err := otherService.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	claims, err := s.service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrInvalidIssuer)
	s.Nil(claims)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_WrongTokenType() {
	now := time.Now()
	claims := models.CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.jwtConfig.Issuer,
			Subject:   s.user.Email,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID:    s.user.ID.String(),
		Email:     s.user.Email,
		Role:      s.user.Role,
		TokenType: "refresh",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tokenString, err := token.SignedString(s.jwtConfig.PrivateKey)
	s.Require().NoError(err)

	parsed, err := s.service.ValidateAccessToken(tokenString)
	s.ErrorIs(err, ErrInvalidTokenType)
	s.Nil(parsed)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_WrongSigningKey() {
	otherPrivate, _, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	forgedConfig := &config.JWTConfig{
		AccessTokenDuration: 15 * time.Minute,
		PrivateKey:          otherPrivate,
		PublicKey:           &otherPrivate.PublicKey,
		Issuer:              s.jwtConfig.Issuer,
	}
	forgedService := NewTokenService(forgedConfig)

	token, _, err := forgedService.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	claims, err := s.service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrInvalidToken)
	s.Nil(claims)
}

// Test ExtractTokenFromHeader
func (s *TokenServiceTestSuite) TestExtractTokenFromHeader_Success() {
	token, err := s.service.ExtractTokenFromHeader("Bearer abc.def.ghi")
	s.NoError(err)
	s.Equal("abc.def.ghi", token)
}

func (s *TokenServiceTestSuite) TestExtractTokenFromHeader_LowercaseBearer() {
	token, err := s.service.ExtractTokenFromHeader("bearer abc.def.ghi")
	s.NoError(err)
	s.Equal("abc.def.ghi", token)
}

func (s *TokenServiceTestSuite) TestExtractTokenFromHeader_Empty() {
	token, err := s.service.ExtractTokenFromHeader("")
	s.ErrorIs(err, ErrInvalidAuthHeader)
	s.Empty(token)
}

func (s *TokenServiceTestSuite) TestExtractTokenFromHeader_MissingPrefix() {
	token, err := s.service.ExtractTokenFromHeader("abc.def.ghi")
	s.ErrorIs(err, ErrInvalidAuthHeader)
	s.Empty(token)
}

func (s *TokenServiceTestSuite) TestExtractTokenFromHeader_PrefixOnly() {
	token, err := s.service.ExtractTokenFromHeader("Bearer ")
	s.ErrorIs(err, ErrInvalidAuthHeader)
	s.Empty(token)
}
