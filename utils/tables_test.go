package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailtrust/utils"
)

func TestDefaultLookupTables(t *testing.T) {
	tables := utils.DefaultLookupTables()
	require.NotNil(t, tables)

	assert.True(t, tables.IsDisposable("mailinator.com"))
	assert.True(t, tables.IsDisposable("sharklasers.com"))
	assert.False(t, tables.IsDisposable("gmail.com"))

	assert.True(t, tables.IsFreeProvider("gmail.com"))
	assert.False(t, tables.IsFreeProvider("example.com"))

	assert.True(t, tables.IsRoleAccount("admin"))
	assert.True(t, tables.IsRoleAccount("no-reply"))
	assert.False(t, tables.IsRoleAccount("alice"))

	assert.Equal(t, "gmail.com", tables.TypoCorrection("gmai.com"))
	assert.Equal(t, "", tables.TypoCorrection("gmail.com"))
}

func TestNewLookupTablesLowercasesKeys(t *testing.T) {
	tables := utils.NewLookupTables(
		[]string{"Mailinator.COM"},
		[]string{"GMail.com"},
		[]string{"Admin"},
		map[string]string{"GMAI.com": "GMAIL.com"},
	)

	assert.True(t, tables.IsDisposable("mailinator.com"))
	assert.True(t, tables.IsFreeProvider("gmail.com"))
	assert.True(t, tables.IsRoleAccount("admin"))
	assert.Equal(t, "gmail.com", tables.TypoCorrection("gmai.com"))
}

func TestClassifier(t *testing.T) {
	classifier := utils.NewClassifier(utils.DefaultLookupTables())

	tests := []struct {
		name   string
		user   string
		domain string
		want   utils.DomainClassification
	}{
		{
			name:   "plain corporate address",
			user:   "alice",
			domain: "example.com",
			want:   utils.DomainClassification{},
		},
		{
			name:   "disposable domain",
			user:   "test",
			domain: "mailinator.com",
			want:   utils.DomainClassification{Disposable: true},
		},
		{
			name:   "role account on free provider",
			user:   "admin",
			domain: "gmail.com",
			want:   utils.DomainClassification{RoleAccount: true, FreeProvider: true},
		},
		{
			name:   "typo domain",
			user:   "foo",
			domain: "gmai.com",
			want:   utils.DomainClassification{TypoTarget: "gmail.com"},
		},
		{
			name:   "no fuzzy typo matching",
			user:   "foo",
			domain: "gmaiil.com",
			want:   utils.DomainClassification{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.user, tt.domain))
		})
	}
}
