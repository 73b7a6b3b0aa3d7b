// Package reply generates in-character chat replies for simulated
// social accounts.
package reply

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/louisbranch/encore/internal/platform/random"
)

// ErrNoReply is returned when the backing model produced no usable text.
var ErrNoReply = errors.New("reply: no reply generated")

// Persona describes the simulated account a reply is written as.
type Persona struct {
	Username string
	Kind     string
}

// Message is one line of an existing conversation, oldest first.
type Message struct {
	From string
	Body string
}

// Generator produces a reply from a persona to an ongoing thread.
// Failures are expected and callers should treat them as "no reply".
type Generator interface {
	Reply(ctx context.Context, persona Persona, thread []Message) (string, error)
}

const geminiModel = "gemini-2.5-flash"

// Gemini generates replies with the Gemini API.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini dials the Gemini API with the given key.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("reply: api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create generative client: %w", err)
	}
	model := client.GenerativeModel(geminiModel)
	return &Gemini{client: client, model: model}, nil
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	if g == nil || g.client == nil {
		return nil
	}
	return g.client.Close()
}

func (g *Gemini) Reply(ctx context.Context, persona Persona, thread []Message) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(persona, thread)))
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return "", ErrNoReply
	}
	return text, nil
}

func buildPrompt(persona Persona, thread []Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %q, a %s account on a music social network.\n", persona.Username, personaTone(persona.Kind))
	b.WriteString("Write the next direct message in this conversation. ")
	b.WriteString("Answer with the message text only, one or two casual sentences, no quotes.\n\n")
	for _, msg := range thread {
		fmt.Fprintf(&b, "%s: %s\n", msg.From, msg.Body)
	}
	fmt.Fprintf(&b, "%s:", persona.Username)
	return b.String()
}

func personaTone(kind string) string {
	switch kind {
	case "hater":
		return "dismissive, sarcastic"
	case "rival_fan":
		return "combative fan of a rival artist"
	case "stats":
		return "dry chart-tracking"
	default:
		return "supportive fan"
	}
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text += string(txt)
		}
	}
	return text
}

// Canned is an offline Generator used when no API key is configured.
type Canned struct {
	Rng random.Source
}

var cannedLines = map[string][]string{
	"hater": {
		"lol ok",
		"who asked",
		"this is embarrassing for you",
	},
	"rival_fan": {
		"you wish you had those numbers",
		"stream count says otherwise",
	},
	"stats": {
		"noted. watching the midweeks.",
		"numbers update friday.",
	},
	"fan": {
		"omg no way, hi!!",
		"we love you so much",
		"when is the next drop??",
	},
}

func (c *Canned) Reply(_ context.Context, persona Persona, _ []Message) (string, error) {
	lines, ok := cannedLines[persona.Kind]
	if !ok {
		lines = cannedLines["fan"]
	}
	return lines[c.Rng.Intn(len(lines))], nil
}
