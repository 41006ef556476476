package utils

// DomainClassification is the outcome of the static heuristic checks for a
// parsed (user, domain) pair. FreeProvider is recorded for future use and
// does not influence scoring.
type DomainClassification struct {
	Disposable   bool
	RoleAccount  bool
	TypoTarget   string // corrected domain, "" when none
	FreeProvider bool
}

// Classifier runs the lookup-table heuristics. It performs no network or
// AI calls and cannot fail.
type Classifier struct {
	tables *LookupTables
}

func NewClassifier(tables *LookupTables) *Classifier {
	return &Classifier{tables: tables}
}

// Classify expects user and domain already lower-cased (the pipeline splits
// the address after lower-casing it).
func (c *Classifier) Classify(user, domain string) DomainClassification {
	return DomainClassification{
		Disposable:   c.tables.IsDisposable(domain),
		RoleAccount:  c.tables.IsRoleAccount(user),
		TypoTarget:   c.tables.TypoCorrection(domain),
		FreeProvider: c.tables.IsFreeProvider(domain),
	}
}
