package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ideaforge/backend/models"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// InferenceService wraps the language model behind typed operations.
type InferenceService interface {
	// ValidateIdea never fails: unusable model output yields FallbackValidation.
	ValidateIdea(ctx context.Context, title, description, category, content string) models.AIValidationResult
	AnalyzeContent(ctx context.Context, content, contentType string) (*models.ContentAnalysis, error)
	GenerateMetadata(ctx context.Context, title, description, category string, aiScore float64) (string, error)
}

var _ InferenceService = (*AIServiceImpl)(nil)

const (
	validationSystemPrompt = "You are an expert AI validator for intellectual property. Analyze ideas for originality, quality, market potential, and provide detailed scoring with reasoning."
	metadataSystemPrompt   = "You are an expert at generating NFT metadata. Create detailed, accurate, and valuable metadata for intellectual property NFTs."
	analysisSystemPrompt   = "You are an expert content analyst. Provide accurate analysis of text content including summary, keywords, sentiment, and topics."
)

type AIModels struct {
	Validation string
	Analysis   string
}

type AIServiceImpl struct {
	llm    Completer
	models AIModels
	log    *logrus.Entry
}

func NewAIService(llm Completer, m AIModels, log *logrus.Entry) *AIServiceImpl {
	if m.Validation == "" {
		m.Validation = "gpt-4"
	}
	if m.Analysis == "" {
		m.Analysis = "gpt-3.5-turbo"
	}
	return &AIServiceImpl{llm: llm, models: m, log: log}
}

// FallbackValidation is returned whenever the model cannot be used.
func FallbackValidation() models.AIValidationResult {
	return models.AIValidationResult{
		Score:           50,
		Originality:     50,
		Quality:         50,
		MarketPotential: 50,
		Category:        "Unknown",
		Suggestions:     []string{"Unable to analyze - manual review required"},
		Risks:           []string{"Analysis failed - requires human validation"},
		Confidence:      0.1,
		Reasoning:       "AI analysis failed, manual review required",
	}
}

func (s *AIServiceImpl) ValidateIdea(ctx context.Context, title, description, category, content string) models.AIValidationResult {
	reply, err := s.llm.Complete(ctx, ChatRequest{
		Model:       s.models.Validation,
		System:      validationSystemPrompt,
		User:        buildValidationPrompt(title, description, category, content),
		Temperature: 0.3,
		MaxTokens:   1000,
	})
	if err != nil {
		s.log.WithError(err).WithField("title", title).Error("AI validation request failed")
		return FallbackValidation()
	}

	result, err := ParseValidation(reply)
	if err != nil {
		s.log.WithError(err).Warn("Failed to parse AI response")
		return FallbackValidation()
	}

	s.log.WithFields(logrus.Fields{
		"title":      title,
		"category":   category,
		"score":      result.Score,
		"confidence": result.Confidence,
	}).Info("AI validation completed")
	return result
}

func buildValidationPrompt(title, description, category, content string) string {
	contentLine := ""
	if content != "" {
		contentLine = "Content: " + content
	}
	categoryJSON, _ := json.Marshal(category)

	return fmt.Sprintf(`Please analyze this intellectual property submission and provide a comprehensive evaluation:

Title: %s
Description: %s
Category: %s
%s

Please evaluate on the following criteria (0-100 scale):
1. Originality: How unique and novel is this idea?
2. Quality: How well-developed and thought-out is the concept?
3. Market Potential: How viable and commercially valuable is this idea?
4. Overall Score: Weighted average of the above factors

Provide your analysis in the following JSON format:
{
  "score": 85,
  "originality": 90,
  "quality": 80,
  "marketPotential": 85,
  "category": %s,
  "suggestions": ["suggestion1", "suggestion2"],
  "risks": ["risk1", "risk2"],
  "confidence": 0.9,
  "reasoning": "Detailed explanation of the scoring and analysis"
}`, title, description, category, contentLine, categoryJSON)
}

// extractJSONObject returns the first substring of text that decodes as a JSON object.
func extractJSONObject(text string) (string, bool) {
	for i := strings.IndexByte(text, '{'); i >= 0; {
		dec := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err == nil && bytes.HasPrefix(raw, []byte("{")) {
			return string(raw), true
		}
		next := strings.IndexByte(text[i+1:], '{')
		if next < 0 {
			break
		}
		i += next + 1
	}
	return "", false
}

// ParseValidation reads a model reply into a validation result. Missing or zero numbers read as 0
// (confidence as 0.5), empty strings take their defaults, and every number is clamped.
func ParseValidation(reply string) (models.AIValidationResult, error) {
	obj, ok := extractJSONObject(reply)
	if !ok {
		return models.AIValidationResult{}, fmt.Errorf("no JSON object in AI response")
	}

	number := func(path string, def float64) float64 {
		v := gjson.Get(obj, path).Float()
		if v == 0 || math.IsNaN(v) {
			return def
		}
		return v
	}
	text := func(path, def string) string {
		if v := gjson.Get(obj, path).String(); v != "" {
			return v
		}
		return def
	}
	list := func(path string) []string {
		r := gjson.Get(obj, path)
		out := []string{}
		if !r.IsArray() {
			return out
		}
		for _, item := range r.Array() {
			out = append(out, item.String())
		}
		return out
	}

	return models.AIValidationResult{
		Score:           clamp(number("score", 0), 0, 100),
		Originality:     clamp(number("originality", 0), 0, 100),
		Quality:         clamp(number("quality", 0), 0, 100),
		MarketPotential: clamp(number("marketPotential", 0), 0, 100),
		Category:        text("category", "Unknown"),
		Suggestions:     list("suggestions"),
		Risks:           list("risks"),
		Confidence:      clamp(number("confidence", 0.5), 0, 1),
		Reasoning:       text("reasoning", "No reasoning provided"),
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func (s *AIServiceImpl) AnalyzeContent(ctx context.Context, content, contentType string) (*models.ContentAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze the following %s content and provide:
1. A brief summary
2. Key keywords and phrases
3. Sentiment analysis (positive/neutral/negative)
4. Main topics and themes

Content: %s`, contentType, content)

	reply, err := s.llm.Complete(ctx, ChatRequest{
		Model:       s.models.Analysis,
		System:      analysisSystemPrompt,
		User:        prompt,
		Temperature: 0.3,
		MaxTokens:   500,
	})
	if err != nil {
		s.log.WithError(err).WithField("contentType", contentType).Error("Content analysis failed")
		return nil, models.UpstreamError("Failed to analyze content", err)
	}

	analysis := ParseContentAnalysis(reply)
	return &analysis, nil
}

// ParseContentAnalysis applies the line rule: for each keyword, the first non-blank line whose
// lower-cased text contains it supplies the value, which is the text between its first and second
// colon, trimmed. A line without a colon supplies nothing.
func ParseContentAnalysis(reply string) models.ContentAnalysis {
	var lines []string
	for _, line := range strings.Split(reply, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	field := func(keyword string) (string, bool) {
		for _, line := range lines {
			if !strings.Contains(strings.ToLower(line), keyword) {
				continue
			}
			parts := strings.Split(line, ":")
			if len(parts) < 2 {
				return "", false
			}
			return strings.TrimSpace(parts[1]), true
		}
		return "", false
	}
	list := func(keyword string) []string {
		out := []string{}
		v, ok := field(keyword)
		if !ok {
			return out
		}
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out
	}

	result := models.ContentAnalysis{
		Summary:   "No summary available",
		Keywords:  list("keyword"),
		Sentiment: "neutral",
		Topics:    list("topic"),
	}
	if v, ok := field("summary"); ok && v != "" {
		result.Summary = v
	}
	if v, ok := field("sentiment"); ok {
		switch v = strings.ToLower(v); v {
		case "positive", "neutral", "negative":
			result.Sentiment = v
		}
	}
	return result
}

func (s *AIServiceImpl) GenerateMetadata(ctx context.Context, title, description, category string, aiScore float64) (string, error) {
	prompt := fmt.Sprintf(`Generate comprehensive metadata for an IP-NFT with the following details:
Title: %s
Description: %s
Category: %s
AI Score: %s

Include relevant attributes, properties, and traits that would be valuable for an NFT marketplace.`,
		title, description, category, strconv.FormatFloat(aiScore, 'f', -1, 64))

	reply, err := s.llm.Complete(ctx, ChatRequest{
		Model:       s.models.Validation,
		System:      metadataSystemPrompt,
		User:        prompt,
		Temperature: 0.5,
		MaxTokens:   800,
	})
	if err != nil {
		s.log.WithError(err).WithField("title", title).Error("Metadata generation failed")
		return "", models.UpstreamError("Failed to generate metadata", err)
	}
	return reply, nil
}
