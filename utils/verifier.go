package utils

import (
	"context"
	"math"
	"strings"

	log "github.com/sirupsen/logrus"

	"mailtrust/models"
)

// Verifier runs the email verification pipeline: syntax gate, heuristic
// classification, MX resolution and reputation scoring, in that order,
// with early exits for invalid format and disposable domains. It holds no
// per-request state; one instance serves all requests concurrently.
type Verifier struct {
	classifier *Classifier
	resolver   MXResolver
	scorer     ReputationScorer
}

func NewVerifier(tables *LookupTables, resolver MXResolver, scorer ReputationScorer) *Verifier {
	return &Verifier{
		classifier: NewClassifier(tables),
		resolver:   resolver,
		scorer:     scorer,
	}
}

const (
	roleAccountPenalty = 20
	typoPenalty        = 30

	localScoreWeight = 0.6
	aiScoreWeight    = 0.4
)

// Verify runs the full pipeline for one address. It always returns a
// fully populated result with a terminal status and never an error: every
// failure mode of the two external collaborators degrades into the result
// itself.
func (v *Verifier) Verify(ctx context.Context, email string) *models.VerificationResult {
	result := &models.VerificationResult{
		Email:     email,
		MxRecords: []string{},
		Status:    models.StatusValidating,
	}

	// 1. Syntax gate. Hard exit, no network calls.
	if !ValidEmailFormat(email) {
		result.Status = models.StatusInvalid
		result.AiAnalysis = "Invalid email format."
		return result
	}
	result.FormatValid = true

	user, domain, _ := strings.Cut(strings.ToLower(email), "@")
	result.User = user
	result.Domain = domain

	// 2. Local heuristics.
	class := v.classifier.Classify(user, domain)
	if class.TypoTarget != "" {
		result.DidYouMean = user + "@" + class.TypoTarget
	}
	if class.Disposable {
		// No DNS or AI spend on known trash domains.
		result.Disposable = true
		result.Score = 0
		result.Status = models.StatusInvalid
		result.AiAnalysis = "Blocked: Known disposable domain provider."
		return result
	}
	result.RoleAccount = class.RoleAccount

	// 3. MX resolution. Empty means absent or failed, treated the same.
	records := v.resolver.LookupMX(ctx, domain)
	if len(records) > 0 {
		result.MxRecords = records
	}
	result.MxFound = len(records) > 0
	if !result.MxFound {
		result.Score = 10
		result.Status = models.StatusInvalid
		result.AiAnalysis = "Domain has no valid Mail Exchange (MX) records."
		return result
	}

	// 4. Local base score.
	score := 100
	if result.RoleAccount {
		score -= roleAccountPenalty
	}
	if result.DidYouMean != "" {
		score -= typoPenalty
	}
	result.Score = score

	// 5. Reputation blend. A degraded scorer leaves the local score final.
	if assessment, ok := v.scorer.Score(ctx, email, result); ok {
		result.Score = clampScore(int(math.Round(
			float64(score)*localScoreWeight + float64(assessment.Score)*aiScoreWeight)))
		result.AiAnalysis = assessment.Summary
		if assessment.DidYouMean != "" {
			result.DidYouMean = assessment.DidYouMean
		}
	} else {
		log.WithField("email", email).Debug("reputation scorer degraded, keeping local score")
	}

	// 6. Verdict.
	result.Status = models.StatusForScore(result.Score)
	return result
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
