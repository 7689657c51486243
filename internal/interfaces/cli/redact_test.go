package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact_OcultaContrasenas(t *testing.T) {
	got := redact([]string{"--username", "ana", "--password", "secreta", "--confirm=secreta", "--rol", "ADMIN"})
	assert.Equal(t, []string{"--username", "ana", "--password", "***", "--confirm=***", "--rol", "ADMIN"}, got)
}

func TestRedact_PasswordAlFinal(t *testing.T) {
	assert.Equal(t, []string{"--password"}, redact([]string{"--password"}))
}
