package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/relomatcher/internal/advisory"
	"github.com/jonathan/relomatcher/internal/matching"
	"github.com/jonathan/relomatcher/internal/schemas"
	"github.com/jonathan/relomatcher/internal/server/middleware"
	"github.com/jonathan/relomatcher/internal/types"
)

// maxRequestBody caps request body size at 1 MB.
const maxRequestBody = 1 << 20

const noMatchMessage = "We couldn't confidently match you to any country with the current data."

// tokenUnavailableWarning tells the client why resultToken is missing and that
// the explain endpoint cannot be used for this result.
const tokenUnavailableWarning = "A result token could not be issued for this response; detailed insights are unavailable for this result."

// MatchResponse is the response body for /match.
type MatchResponse struct {
	OK              bool                          `json:"ok"`
	Message         string                        `json:"message"`
	SimpleScore     float64                       `json:"simpleScore"`
	BestMatch       *types.RankedCandidate        `json:"bestMatch"`
	TopMatches      []types.RankedCandidate       `json:"topMatches"`
	DisqualifiedTop []types.DisqualifiedCandidate `json:"disqualifiedTop"`
	AdvisorySource  string                        `json:"advisorySource"`
	ResultToken     string                        `json:"resultToken,omitempty"`
	Warning         string                        `json:"warning,omitempty"`
	ReceivedData    *types.Profile                `json:"receivedData"`
}

// ExplainRequest is the request body for /explain.
type ExplainRequest struct {
	Profile         types.Profile                 `json:"profile"`
	TopMatches      []types.RankedCandidate       `json:"topMatches"`
	DisqualifiedTop []types.DisqualifiedCandidate `json:"disqualifiedTop"`
}

// CatalogEntry is one row of the /catalog listing.
type CatalogEntry struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	ShortNote string `json:"shortNote"`
}

// handleMatch ranks the catalog for the submitted profile and applies the
// advisory re-ranking pass when a model client is configured.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := schemas.ValidateProfile(string(body)); err != nil {
		if _, ok := err.(*schemas.ValidationError); ok {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
		} else {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body.")
		}
		return
	}

	var profile types.Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := profile.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := matching.Match(s.catalog, &profile)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Unexpected error while ranking countries for your profile.")
		return
	}

	if len(result.Winners) == 0 {
		s.jsonResponse(w, http.StatusOK, MatchResponse{
			OK:              false,
			Message:         noMatchMessage,
			TopMatches:      []types.RankedCandidate{},
			DisqualifiedTop: result.DisqualifiedTop,
			AdvisorySource:  string(advisory.SourceNumeric),
			ReceivedData:    &profile,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.advisoryTimeout)
	defer cancel()

	outcome, err := advisory.Rerank(ctx, s.llmClient, &profile, result)
	if err != nil {
		log.Printf("[advisory] rerank fell back to numeric order: %v", err)
	}

	token, requestID, err := s.tokens.Issue()
	var warning string
	if err != nil {
		// Usually a JWT_SECRET misconfiguration; the match result is still
		// good, but the explain endpoint will reject this response.
		log.Printf("[tokens] ERROR: failed to issue result token, explain gate unavailable for this response: %v", err)
		token = ""
		warning = tokenUnavailableWarning
	} else {
		log.Printf("[match] request %s ranked %d winners (source=%s)", requestID, len(outcome.Winners), outcome.Source)
	}

	best := outcome.Winners[0]
	s.jsonResponse(w, http.StatusOK, MatchResponse{
		OK:              true,
		Message:         "Matches calculated successfully.",
		SimpleScore:     best.TotalScore,
		BestMatch:       &best,
		TopMatches:      outcome.Winners,
		DisqualifiedTop: result.DisqualifiedTop,
		AdvisorySource:  string(outcome.Source),
		ResultToken:     token,
		Warning:         warning,
		ReceivedData:    &profile,
	})
}

// handleExplain produces the narrative commentary for a match result. The
// route is gated by the result token issued by the match endpoint; the
// response is always 200 once the token is valid, with fallback commentary
// when the model path fails.
func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	var req ExplainRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	requestID, err := middleware.GetRequestID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result := &types.MatchResult{
		Winners:         req.TopMatches,
		DisqualifiedTop: req.DisqualifiedTop,
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.advisoryTimeout)
	defer cancel()

	explanation, err := advisory.Explain(ctx, s.llmClient, &req.Profile, result)
	if err != nil {
		log.Printf("[advisory] explain for request %s fell back: %v", requestID, err)
	}

	s.jsonResponse(w, http.StatusOK, explanation)
}

// handleCatalog lists the candidate countries.
func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	records := s.catalog.Records()
	entries := make([]CatalogEntry, 0, len(records))
	for i := range records {
		entries = append(entries, CatalogEntry{
			Code:      records[i].Code,
			Name:      records[i].Name,
			ShortNote: records[i].ShortNote,
		})
	}
	s.jsonResponse(w, http.StatusOK, entries)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
