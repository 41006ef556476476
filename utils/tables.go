package utils

import (
	_ "embed"
	"strings"
)

//go:embed data/disposable_domains.txt
var rawDisposableDomains string

//go:embed data/free_providers.txt
var rawFreeProviders string

//go:embed data/role_accounts.txt
var rawRoleAccounts string

//go:embed data/domain_typos.txt
var rawDomainTypos string

// LookupTables holds the static classification data: disposable provider
// domains, free mail providers, role-account local parts and common domain
// typo corrections. Loaded once at startup and read-only afterwards, so it
// is safe to share across concurrent verifications.
type LookupTables struct {
	disposable map[string]struct{}
	free       map[string]struct{}
	roles      map[string]struct{}
	typos      map[string]string
}

// NewLookupTables builds tables from caller-supplied lists. All keys are
// lower-cased on insert.
func NewLookupTables(disposable, free, roles []string, typos map[string]string) *LookupTables {
	t := &LookupTables{
		disposable: make(map[string]struct{}, len(disposable)),
		free:       make(map[string]struct{}, len(free)),
		roles:      make(map[string]struct{}, len(roles)),
		typos:      make(map[string]string, len(typos)),
	}
	for _, d := range disposable {
		t.disposable[strings.ToLower(d)] = struct{}{}
	}
	for _, d := range free {
		t.free[strings.ToLower(d)] = struct{}{}
	}
	for _, r := range roles {
		t.roles[strings.ToLower(r)] = struct{}{}
	}
	for wrong, right := range typos {
		t.typos[strings.ToLower(wrong)] = strings.ToLower(right)
	}
	return t
}

// DefaultLookupTables loads the embedded data files.
func DefaultLookupTables() *LookupTables {
	typos := make(map[string]string)
	for _, line := range splitLines(rawDomainTypos) {
		parts := strings.Fields(line)
		if len(parts) == 2 {
			typos[parts[0]] = parts[1]
		}
	}
	return NewLookupTables(
		splitLines(rawDisposableDomains),
		splitLines(rawFreeProviders),
		splitLines(rawRoleAccounts),
		typos,
	)
}

// IsDisposable reports whether domain is a known disposable provider.
func (t *LookupTables) IsDisposable(domain string) bool {
	_, ok := t.disposable[domain]
	return ok
}

// IsFreeProvider reports whether domain is a known free mail provider.
func (t *LookupTables) IsFreeProvider(domain string) bool {
	_, ok := t.free[domain]
	return ok
}

// IsRoleAccount reports whether the local part names a function mailbox.
func (t *LookupTables) IsRoleAccount(user string) bool {
	_, ok := t.roles[user]
	return ok
}

// TypoCorrection returns the corrected domain for a known misspelling, or
// "" when the domain is not in the typo map. Matching is exact; callers
// pass lower-cased domains.
func (t *LookupTables) TypoCorrection(domain string) string {
	return t.typos[domain]
}

func splitLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			out = append(out, line)
		}
	}
	return out
}
