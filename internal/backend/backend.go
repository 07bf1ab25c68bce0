// Package backend is a thin client for the resume processing and ranking API.
package backend

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultURL is the address of a locally started backend.
	DefaultURL = "http://localhost:8000"
	userAgent  = "spigell/candidate-board"

	rankingsPath = "/process-and-match-resumes"
	processPath  = "/enhanced-resume-processing"
	healthPath   = "/health"
)

type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New returns a client for apiURL. An empty token disables the
// Authorization header.
func New(logger *zap.Logger, apiURL, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	apiURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	if apiURL == "" {
		apiURL = DefaultURL
	}

	return &Client{
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			// Resume extraction runs an LLM on the server side.
			Timeout: 2 * time.Minute,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}
