package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/candidate-board/internal/ai"
	"github.com/spigell/candidate-board/internal/compare"
	"github.com/spigell/candidate-board/internal/logger"
	"github.com/spigell/candidate-board/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

type Advisor struct {
	generator    contentGenerator
	logger       *zap.Logger
	maxLogLen    int
	instructions string
}

var _ ai.Advisor = (*Advisor)(nil)

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength     = 200
	maxUserInstructionRunes = 500
	instructionsPlaceholder = "{{USER_INSTRUCTIONS}}"
)

func NewAdvisor(generator contentGenerator, log *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Advisor{
		generator: generator,
		logger:    logger.WithAI(log, "gemini", generator.Model()),
		maxLogLen: maxLogLength,
	}
}

// SetInstructions sets free-form reviewer notes appended to the system prompt.
func (a *Advisor) SetInstructions(instructions string) {
	a.instructions = instructions
}

func (a *Advisor) Advise(ctx context.Context, result *compare.Result) (*ai.Verdict, error) {
	if result == nil {
		return nil, errors.New("comparison result is required")
	}

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal comparison: %w", err)
	}

	system := buildPrompt(a.instructions)
	names := [2]string{result.Candidates[0].Name, result.Candidates[1].Name}

	a.logger.Debug("gemini generate content request",
		zap.Strings("candidates", names[:]),
		zap.Int("payload_length", utf8.RuneCount(payload)),
		zap.String("payload_preview", utils.TruncateForLog(string(payload), a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, system, string(payload))
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	verdict, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	verdict.Preferred = resolvePreferred(verdict.Preferred, names)
	verdict.Raw = raw

	return verdict, nil
}

func buildPrompt(instructions string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Compare the two candidates in the JSON document.\nNotes:\n" + instructionsPlaceholder + "\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, instructionsPlaceholder, sanitizeInstructions(instructions))
}

// sanitizeInstructions renders user notes as an indented list. Brackets are
// neutralised so notes cannot pose as role markers.
func sanitizeInstructions(raw string) string {
	raw = strings.NewReplacer("[", "(", "]", ")", "\r\n", "\n", "\r", "\n").Replace(raw)

	runes := []rune(strings.TrimSpace(raw))
	if len(runes) > maxUserInstructionRunes {
		runes = runes[:maxUserInstructionRunes]
	}

	var lines []string
	for _, line := range strings.Split(string(runes), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, "  - "+line)
		}
	}

	if len(lines) == 0 {
		return "  - none"
	}
	return strings.Join(lines, "\n")
}

func resolvePreferred(preferred string, names [2]string) string {
	preferred = strings.TrimSpace(preferred)
	for _, name := range names {
		if strings.EqualFold(preferred, name) {
			return name
		}
	}
	return ""
}

func parseResponse(raw string) (*ai.Verdict, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	confidence := coerceFloat(data["confidence"])
	if math.IsNaN(confidence) {
		confidence = 0
	}
	// Some models answer in percent.
	if confidence > 1 && confidence <= 100 {
		confidence /= 100
	}

	return &ai.Verdict{
		Preferred:  coerceString(data["preferred"]),
		Confidence: min(max(confidence, 0), 1),
		Reason:     coerceString(data["reason"]),
		Highlights: coerceStrings(data["highlights"]),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSuffix(strings.TrimSpace(val), "%")
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

func coerceStrings(v any) []string {
	var items []any
	switch val := v.(type) {
	case []any:
		items = val
	case string:
		items = []any{val}
	default:
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := coerceString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
