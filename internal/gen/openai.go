package gen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kczek/brewpost/internal/config"
	. "github.com/kczek/brewpost/internal/logging"
	"github.com/kczek/brewpost/internal/post"
)

// RequestTimeout bounds a single generation call so one slow request
// cannot stall the identity's session indefinitely.
const RequestTimeout = 90 * time.Second

const systemPrompt = `Jesteś specjalistą social media dla kawiarni.
Twoje zadanie:
1. Zidentyfikuj co jest na zdjęciu (np. cappuccino, latte, ciasto).
2. Napisz apetyczny opis produktu (55-80 słów), ton: ciepły, sensoryczny, zachęcający.
3. Dodaj krótkie CTA na końcu (np. "Wpadaj dziś do 18:00!").
4. Dodaj 5-8 hashtagów (PL/EN, bez znaków diakrytycznych). Najpierw lokalne, potem produktowe.
5. Dodaj ALT-text (max 120 znaków, prosty opis zdjęcia).

Wynik zwróć w czystym JSON, bez komentarzy:
{"post_text": "...", "hashtags": ["...", "..."], "alt": "..."}`

// OpenAIGenerator implements Generator on the OpenAI chat completions API
// with vision input.
type OpenAIGenerator struct {
	client  *openai.Client
	model   string
	cityTag string
}

// NewOpenAIGenerator creates a generator from config.
func NewOpenAIGenerator(cfg config.OpenAIConfig, postCfg config.PostConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key not configured")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4.1"
	}

	L_info("gen: openai generator initialized", "model", model)

	return &OpenAIGenerator{
		client:  openai.NewClient(cfg.APIKey),
		model:   model,
		cityTag: postCfg.CityTag,
	}, nil
}

// Generate sends the media URL plus instructions and parses the structured
// reply. A reply that cannot be parsed yields ErrMalformed.
func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (*post.Content, error) {
	if req.MediaURL == "" {
		return nil, fmt.Errorf("generate: media URL is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	instructions := g.buildInstructions(req)

	parts := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: instructions},
		{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    req.MediaURL,
				Detail: openai.ImageURLDetailAuto,
			},
		},
	}

	start := time.Now()
	L_debug("gen: request started",
		"model", g.model,
		"hasNote", req.Note != "",
		"isCorrection", req.Correction != "",
	)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			L_error("gen: request failed",
				"statusCode", apiErr.HTTPStatusCode,
				"code", apiErr.Code,
				"message", apiErr.Message,
			)
		} else {
			L_error("gen: request failed", "error", err)
		}
		return nil, fmt.Errorf("generation request: %w", err)
	}

	if len(resp.Choices) == 0 {
		L_warn("gen: response has no choices")
		return nil, ErrMalformed
	}

	content, err := parseContent(resp.Choices[0].Message.Content)
	if err != nil {
		L_warn("gen: unparsable response", "error", err, "length", len(resp.Choices[0].Message.Content))
		return nil, err
	}

	L_info("gen: content generated",
		"duration", time.Since(start).Round(time.Millisecond),
		"bodyLen", len(content.Body),
		"hashtags", len(content.Hashtags),
	)
	return content, nil
}

// buildInstructions assembles the user turn: the note, the city tag, and
// for corrections the prior content plus the instruction to revise only
// the indicated part.
func (g *OpenAIGenerator) buildInstructions(req Request) string {
	var b strings.Builder

	b.WriteString("Przygotuj treść posta dla zdjęcia poniżej.")
	if g.cityTag != "" {
		fmt.Fprintf(&b, " Lokalny hashtag: %s.", g.cityTag)
	}

	if req.Note != "" {
		fmt.Fprintf(&b, "\nUwaga od użytkownika (zawsze miej ją na uwadze): %s", req.Note)
	}

	if req.Prior != nil && req.Correction != "" {
		b.WriteString("\n\nPoprzednia wersja posta:")
		fmt.Fprintf(&b, "\npost_text: %s", req.Prior.Body)
		fmt.Fprintf(&b, "\nhashtags: %s", strings.Join(req.Prior.Hashtags, " "))
		fmt.Fprintf(&b, "\nalt: %s", req.Prior.Alt)
		fmt.Fprintf(&b, "\n\nPoprawka: %s", req.Correction)
		b.WriteString("\nZmień wyłącznie to, czego dotyczy poprawka. Resztę treści zachowaj bez zmian.")
	}

	return b.String()
}
