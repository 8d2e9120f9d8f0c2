package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRejectsDefaultSecretInProduction(t *testing.T) {
	c := &Config{
		Environment: "production",
		JWTSecret:   "your-secret-key",
		LedgerPath:  "./data/ledger.txt",
		BackupDir:   "./data/backups",
	}
	assert.Error(t, c.Validate())
}

func TestValidateRequiresLedgerPath(t *testing.T) {
	c := &Config{
		Environment: "development",
		JWTSecret:   "dev-secret",
		BackupDir:   "./data/backups",
	}
	assert.Error(t, c.Validate())
}

func TestValidateRequiresBackupDestination(t *testing.T) {
	c := &Config{
		Environment: "development",
		JWTSecret:   "dev-secret",
		LedgerPath:  "./data/ledger.txt",
	}
	assert.Error(t, c.Validate())
}

func TestValidatePassesWithSaneDevelopmentDefaults(t *testing.T) {
	c := &Config{
		Environment: "development",
		JWTSecret:   "your-secret-key",
		LedgerPath:  "./data/ledger.txt",
		BackupDir:   "./data/backups",
	}
	assert.NoError(t, c.Validate())
}

func TestParseCORSOriginsTrimsWhitespace(t *testing.T) {
	origins := parseCORSOrigins(" http://a.example , http://b.example ")
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, origins)
}

func TestParseCORSOriginsDefaultsWhenEmpty(t *testing.T) {
	assert.Equal(t, []string{"http://localhost:3000"}, parseCORSOrigins(""))
}
