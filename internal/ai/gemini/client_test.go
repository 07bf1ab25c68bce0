package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const testModel = "gemini-test"

type scriptedReply struct {
	resp *genai.GenerateContentResponse
	err  error
}

// scriptedChats hands out one chat per Create call, each answering with the
// next scripted reply.
type scriptedChats struct {
	mu      sync.Mutex
	replies []scriptedReply
	configs []*genai.GenerateContentConfig
	sent    [][]string
}

func (s *scriptedChats) Create(_ context.Context, model string, config *genai.GenerateContentConfig, _ []*genai.Content) (chatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if model != testModel {
		return nil, errors.New("unexpected model " + model)
	}
	if len(s.replies) == 0 {
		return nil, errors.New("no scripted reply left")
	}

	reply := s.replies[0]
	s.replies = s.replies[1:]
	s.configs = append(s.configs, config)
	s.sent = append(s.sent, nil)

	return &scriptedChat{owner: s, index: len(s.sent) - 1, reply: reply}, nil
}

func (s *scriptedChats) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.configs)
}

type scriptedChat struct {
	owner *scriptedChats
	index int
	reply scriptedReply
}

func (c *scriptedChat) SendMessage(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	c.owner.mu.Lock()
	defer c.owner.mu.Unlock()
	for _, part := range parts {
		c.owner.sent[c.index] = append(c.owner.sent[c.index], part.Text)
	}
	return c.reply.resp, c.reply.err
}

func textReply(texts ...string) scriptedReply {
	parts := make([]*genai.Part, 0, len(texts))
	for _, text := range texts {
		parts = append(parts, &genai.Part{Text: text})
	}
	return scriptedReply{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}}
}

func errorReply(code int, message string) scriptedReply {
	return scriptedReply{err: genai.APIError{Code: code, Message: message}}
}

func noSleep(t *testing.T) *[]time.Duration {
	t.Helper()

	var slept []time.Duration
	original := sleep
	sleep = func(d time.Duration) { slept = append(slept, d) }
	t.Cleanup(func() { sleep = original })

	return &slept
}

func TestGeneratorGenerateContent(t *testing.T) {
	verdict := `{"preferred":"Alice","confidence":0.7}`

	tests := []struct {
		name       string
		maxRetries int
		replies    []scriptedReply
		expect     string
		wantErr    bool
		calls      int
		slept      []time.Duration
	}{
		{
			name:       "first attempt succeeds",
			maxRetries: 3,
			replies:    []scriptedReply{textReply(verdict)},
			expect:     verdict,
			calls:      1,
		},
		{
			name:       "server error is retried with linear backoff",
			maxRetries: 3,
			replies:    []scriptedReply{errorReply(http.StatusInternalServerError, ""), errorReply(http.StatusBadGateway, ""), textReply(verdict)},
			expect:     verdict,
			calls:      3,
			slept:      []time.Duration{retryBaseDelay, 2 * retryBaseDelay},
		},
		{
			name:       "short quota hint is honoured",
			maxRetries: 2,
			replies:    []scriptedReply{errorReply(http.StatusTooManyRequests, "Please retry in 3s."), textReply(verdict)},
			expect:     verdict,
			calls:      2,
			slept:      []time.Duration{3 * time.Second},
		},
		{
			name:       "retries exhausted",
			maxRetries: 2,
			replies:    []scriptedReply{errorReply(http.StatusServiceUnavailable, ""), errorReply(http.StatusServiceUnavailable, "")},
			wantErr:    true,
			calls:      2,
			slept:      []time.Duration{retryBaseDelay},
		},
		{
			name:       "long quota delay gives up",
			maxRetries: 3,
			replies:    []scriptedReply{errorReply(http.StatusTooManyRequests, "quota exhausted, retry after 60 seconds")},
			wantErr:    true,
			calls:      1,
		},
		{
			name:       "client error is not retried",
			maxRetries: 3,
			replies:    []scriptedReply{errorReply(http.StatusBadRequest, "bad schema")},
			wantErr:    true,
			calls:      1,
		},
		{
			name:       "empty response",
			maxRetries: 1,
			replies:    []scriptedReply{{resp: &genai.GenerateContentResponse{}}},
			wantErr:    true,
			calls:      1,
		},
		{
			name:       "parts are joined",
			maxRetries: 1,
			replies:    []scriptedReply{textReply(`{"preferred":`, "  ", `"Bob"}`)},
			expect:     "{\"preferred\":\n\"Bob\"}",
			calls:      1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slept := noSleep(t)
			chats := &scriptedChats{replies: tt.replies}
			g := &Generator{chats: chats, model: testModel, maxRetries: tt.maxRetries, logger: zap.NewNop()}

			output, err := g.GenerateContent(context.Background(), "compare two candidates", `{"candidates":[]}`)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got output %q", output)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if output != tt.expect {
					t.Fatalf("expected %q, got %q", tt.expect, output)
				}
			}

			if got := chats.calls(); got != tt.calls {
				t.Fatalf("expected %d calls, got %d", tt.calls, got)
			}
			if len(*slept) != len(tt.slept) {
				t.Fatalf("expected sleeps %v, got %v", tt.slept, *slept)
			}
			for i := range tt.slept {
				if (*slept)[i] != tt.slept[i] {
					t.Fatalf("expected sleeps %v, got %v", tt.slept, *slept)
				}
			}
		})
	}
}

func TestGeneratorRequestShape(t *testing.T) {
	noSleep(t)
	chats := &scriptedChats{replies: []scriptedReply{textReply("{}"), textReply("{}")}}
	g := &Generator{chats: chats, model: testModel, maxRetries: 1, logger: zap.NewNop()}

	if _, err := g.GenerateContent(context.Background(), "  system prompt  ", "  payload  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := g.GenerateContent(context.Background(), "", "payload"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := chats.configs[0]
	if first.ResponseMIMEType != "application/json" {
		t.Fatalf("expected json response type, got %q", first.ResponseMIMEType)
	}
	if first.SystemInstruction == nil || first.SystemInstruction.Parts[0].Text != "system prompt" {
		t.Fatalf("unexpected system instruction: %+v", first.SystemInstruction)
	}
	if len(chats.sent[0]) != 1 || chats.sent[0][0] != "payload" {
		t.Fatalf("unexpected message: %v", chats.sent[0])
	}

	if chats.configs[1].SystemInstruction != nil {
		t.Fatalf("expected no system instruction for an empty prompt")
	}
}

func TestGeneratorRejectsBadInput(t *testing.T) {
	if _, err := (*Generator)(nil).GenerateContent(context.Background(), "sys", "msg"); err == nil {
		t.Fatal("expected error for nil generator")
	}

	g := &Generator{chats: &scriptedChats{}, model: testModel, maxRetries: 1, logger: zap.NewNop()}
	if _, err := g.GenerateContent(context.Background(), "sys", "   "); err == nil {
		t.Fatal("expected error for empty message")
	}
}

func TestRetryDelay(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		delay time.Duration
		retry bool
	}{
		{name: "plain error", err: errors.New("boom"), retry: false},
		{name: "wrapped server error", err: errors.Join(errors.New("generate content"), genai.APIError{Code: http.StatusGatewayTimeout}), delay: 2 * retryBaseDelay, retry: true},
		{name: "unavailable", err: genai.APIError{Code: http.StatusServiceUnavailable}, delay: 2 * retryBaseDelay, retry: true},
		{name: "quota without hint", err: genai.APIError{Code: http.StatusTooManyRequests}, delay: 2 * retryBaseDelay, retry: true},
		{name: "short quota delay", err: genai.APIError{Code: http.StatusTooManyRequests, Message: "Please retry in 1.5s."}, delay: 1500 * time.Millisecond, retry: true},
		{name: "long quota delay", err: genai.APIError{Code: http.StatusTooManyRequests, Message: "retry after 60 seconds"}, retry: false},
		{name: "forbidden", err: genai.APIError{Code: http.StatusForbidden}, retry: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			delay, retry := retryDelay(tc.err, 2)
			if retry != tc.retry {
				t.Fatalf("expected retry %v, got %v", tc.retry, retry)
			}
			if retry && delay != tc.delay {
				t.Fatalf("expected delay %s, got %s", tc.delay, delay)
			}
		})
	}
}
