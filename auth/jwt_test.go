package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GOPIKA-3007/Stroke-Prediction-System/auth"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/models"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := auth.NewTokenService("test-secret", time.Hour)

	token, err := svc.Generate("dr-jones", models.RoleDoctor)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "dr-jones", claims.Username)
	assert.Equal(t, models.RoleDoctor, claims.Role)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewTokenService("secret-a", time.Hour)
	validator := auth.NewTokenService("secret-b", time.Hour)

	token, err := issuer.Generate("alice", models.RolePatient)
	require.NoError(t, err)

	_, err = validator.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := auth.NewTokenService("test-secret", -time.Minute)

	token, err := svc.Generate("alice", models.RolePatient)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := auth.NewTokenService("test-secret", time.Hour)

	_, err := svc.Validate("not.a.token")
	assert.Error(t, err)
}
