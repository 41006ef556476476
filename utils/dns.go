package utils

import (
	"context"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

// MXResolver returns the mail-exchange records for a domain, ordered by
// ascending DNS preference. A nil or empty slice means "no usable records",
// covering both genuine absence and lookup failure; implementations never
// return an error.
type MXResolver interface {
	LookupMX(ctx context.Context, domain string) []string
}

// dnsResponse mirrors the DNS-over-HTTPS JSON body. Status 0 is success;
// each answer's data field is "<priority> <exchange-host>.".
type dnsResponse struct {
	Status int `json:"Status"`
	Answer []struct {
		Name string `json:"name"`
		Type int    `json:"type"`
		TTL  int    `json:"TTL"`
		Data string `json:"data"`
	} `json:"Answer"`
}

// DoHResolver queries a DNS-over-HTTPS endpoint (Google resolver format)
// for MX records. Every failure mode degrades to an empty result.
type DoHResolver struct {
	endpoint string
	timeout  time.Duration
	client   *fasthttp.Client
}

func NewDoHResolver(endpoint string, timeout time.Duration) *DoHResolver {
	return &DoHResolver{
		endpoint: endpoint,
		timeout:  timeout,
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
	}
}

// LookupMX resolves the domain's MX records, sorted ascending by priority
// with original response order preserved for equal priorities.
func (r *DoHResolver) LookupMX(ctx context.Context, domain string) []string {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.endpoint + "?name=" + url.QueryEscape(domain) + "&type=MX")
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := r.client.DoTimeout(req, resp, boundedTimeout(ctx, r.timeout)); err != nil {
		log.WithFields(log.Fields{"domain": domain, "error": err}).Warn("MX lookup request failed")
		return nil
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		log.WithFields(log.Fields{"domain": domain, "status": resp.StatusCode()}).Warn("MX lookup non-OK response")
		return nil
	}

	var body dnsResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		log.WithFields(log.Fields{"domain": domain, "error": err}).Warn("MX lookup unparseable response")
		return nil
	}
	if body.Status != 0 || len(body.Answer) == 0 {
		return nil
	}

	records := make([]string, 0, len(body.Answer))
	for _, ans := range body.Answer {
		records = append(records, ans.Data)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return mxPriority(records[i]) < mxPriority(records[j])
	})
	return records
}

// mxPriority extracts the leading preference number from an MX data string
// such as "5 gmail-smtp-in.l.google.com.". Unparseable entries sort last.
func mxPriority(data string) int {
	fields := strings.Fields(data)
	if len(fields) == 0 {
		return int(^uint(0) >> 1)
	}
	prio, err := strconv.Atoi(fields[0])
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return prio
}

// boundedTimeout caps the configured timeout by the context deadline when
// the deadline is nearer.
func boundedTimeout(ctx context.Context, timeout time.Duration) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			return remaining
		}
	}
	return timeout
}
