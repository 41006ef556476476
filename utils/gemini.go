package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"mailtrust/models"
)

// ReputationAssessment is a successful reputation-scoring outcome: a 0-100
// trust score (already converted from the service's risk scale), a
// one-sentence summary and an optional corrected address suggestion.
type ReputationAssessment struct {
	Score      int
	Summary    string
	DidYouMean string
}

// ReputationScorer asks an external service to assess an email address
// given the locally computed partial result. The boolean return is false
// when the call degraded (unreachable service, misconfiguration, schema
// mismatch); scorers never return an error.
type ReputationScorer interface {
	Score(ctx context.Context, email string, partial *models.VerificationResult) (ReputationAssessment, bool)
}

// GeminiScorer implements ReputationScorer against the Gemini
// generateContent API with a schema-constrained JSON response.
type GeminiScorer struct {
	apiKey  string
	model   string
	baseURL string
	timeout time.Duration
	client  *fasthttp.Client
}

func NewGeminiScorer(apiKey, model, baseURL string, timeout time.Duration) *GeminiScorer {
	return &GeminiScorer{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		timeout: timeout,
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
	}
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// assessmentSchema is the fixed shape the service must answer with.
var assessmentSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"is_likely_valid": {"type": "BOOLEAN"},
		"risk_score": {"type": "NUMBER"},
		"analysis_summary": {"type": "STRING"},
		"correction_suggestion": {"type": "STRING", "nullable": true}
	},
	"required": ["is_likely_valid", "risk_score", "analysis_summary"]
}`)

// geminiAssessment is the inner JSON payload. Pointer fields distinguish
// absent from zero; absence of a required field fails the whole call.
type geminiAssessment struct {
	IsLikelyValid        *bool    `json:"is_likely_valid"`
	RiskScore            *float64 `json:"risk_score"`
	AnalysisSummary      *string  `json:"analysis_summary"`
	CorrectionSuggestion *string  `json:"correction_suggestion"`
}

// Score asks Gemini to assess the email. Any failure degrades to
// (zero value, false); the pipeline then keeps its local score.
func (g *GeminiScorer) Score(ctx context.Context, email string, partial *models.VerificationResult) (ReputationAssessment, bool) {
	if g.apiKey == "" {
		log.Debug("reputation scorer disabled: no API key configured")
		return ReputationAssessment{}, false
	}

	prompt := fmt.Sprintf(`Analyze the email address %q.
Context provided by local validator:
- Format Valid: %t
- MX Records Found: %t
- Disposable Detected: %t

Your task:
1. Verify if this looks like a legitimate corporate or personal email.
2. Check for subtle typos in the domain that basic regex might miss (e.g. gmai.com instead of gmail.com).
3. Assess the reputation risk (low, medium, high).
4. Provide a very short, one-sentence explanation of your finding.

Answer with JSON: is_likely_valid (boolean), risk_score (number 0-100, where 0 is safe and 100 is high risk), analysis_summary (string), correction_suggestion (string or null).`,
		email, partial.FormatValid, partial.MxFound, partial.Disposable)

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   assessmentSchema,
		},
	})
	if err != nil {
		log.WithError(err).Warn("reputation request marshal failed")
		return ReputationAssessment{}, false
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey))
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(payload)

	if err := g.client.DoTimeout(req, resp, boundedTimeout(ctx, g.timeout)); err != nil {
		log.WithFields(log.Fields{"email": email, "error": err}).Warn("reputation scorer unreachable")
		return ReputationAssessment{}, false
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		log.WithFields(log.Fields{"email": email, "status": resp.StatusCode()}).Warn("reputation scorer non-OK response")
		return ReputationAssessment{}, false
	}

	var body geminiResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		log.WithError(err).Warn("reputation scorer unparseable envelope")
		return ReputationAssessment{}, false
	}
	if len(body.Candidates) == 0 || len(body.Candidates[0].Content.Parts) == 0 {
		log.Warn("reputation scorer returned no candidates")
		return ReputationAssessment{}, false
	}

	var assessment geminiAssessment
	if err := json.Unmarshal([]byte(body.Candidates[0].Content.Parts[0].Text), &assessment); err != nil {
		log.WithError(err).Warn("reputation scorer unparseable assessment")
		return ReputationAssessment{}, false
	}
	// Schema check: required fields present and risk within range.
	if assessment.IsLikelyValid == nil || assessment.RiskScore == nil || assessment.AnalysisSummary == nil {
		log.Warn("reputation scorer assessment missing required fields")
		return ReputationAssessment{}, false
	}
	risk := *assessment.RiskScore
	if risk < 0 || risk > 100 {
		log.WithField("risk_score", risk).Warn("reputation scorer risk out of range")
		return ReputationAssessment{}, false
	}

	out := ReputationAssessment{
		Score:   int(math.Max(0, 100-math.Round(risk))),
		Summary: *assessment.AnalysisSummary,
	}
	if assessment.CorrectionSuggestion != nil {
		out.DidYouMean = *assessment.CorrectionSuggestion
	}
	return out, true
}
