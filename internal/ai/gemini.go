package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-2.0-flash"

// GeminiDrafter asks Gemini to write the quote message and falls back to the
// template when the model fails or returns nothing usable.
type GeminiDrafter struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	fallback *TemplateDrafter
	log      *zap.Logger
}

// NewGeminiDrafter initializes a Gemini client.
func NewGeminiDrafter(ctx context.Context, apiKey string, log *zap.Logger) (*GeminiDrafter, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	model := client.GenerativeModel(geminiModel)
	model.SetTemperature(0.6)
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))

	return &GeminiDrafter{
		client:   client,
		model:    model,
		fallback: NewTemplateDrafter(),
		log:      log,
	}, nil
}

// Close cleans up the Gemini client resources.
func (d *GeminiDrafter) Close() {
	d.client.Close()
}

func (d *GeminiDrafter) DraftQuoteMessage(ctx context.Context, in DraftInput) (string, error) {
	resp, err := d.model.GenerateContent(ctx, genai.Text(buildPrompt(in)))
	if err != nil {
		d.log.Warn("gemini draft failed, using template", zap.Error(err))
		return d.fallback.DraftQuoteMessage(ctx, in)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		d.log.Warn("gemini returned no candidates, using template")
		return d.fallback.DraftQuoteMessage(ctx, in)
	}

	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		txt, ok := part.(genai.Text)
		if !ok || strings.TrimSpace(string(txt)) == "" {
			continue
		}
		parts = append(parts, string(txt))
	}
	if len(parts) == 0 {
		d.log.Warn("gemini returned empty text, using template")
		return d.fallback.DraftQuoteMessage(ctx, in)
	}
	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

const systemPrompt = `You write short replies for a mobile hibachi catering company.
Use only the amounts you are given; never invent prices, discounts or dates.
Mention the deposit and the balance due. Plain text, no markdown, under 180 words.`

// buildPrompt lays out the breakdown as facts for the model.
func buildPrompt(in DraftInput) string {
	var b strings.Builder
	tone := in.Tone
	if tone == "" {
		tone = "friendly"
	}
	fmt.Fprintf(&b, "Write a %s message presenting this quote.\n\n", tone)
	if in.CustomerName != "" {
		fmt.Fprintf(&b, "Customer: %s\n", in.CustomerName)
	}
	if in.VenueAddress != "" {
		fmt.Fprintf(&b, "Venue: %s\n", in.VenueAddress)
	}
	fmt.Fprintf(&b, "Guests: %d adults, %d children, %d toddlers (toddlers eat free)\n",
		in.Request.Adults, in.Request.Children, in.Request.Toddlers)
	fmt.Fprintf(&b, "Food subtotal: %s", usd(in.Result.Subtotal))
	if in.Result.AppliedMinimum {
		b.WriteString(" (raised to the party minimum)")
	}
	b.WriteString("\n")
	for _, l := range in.Result.Upgrades {
		fmt.Fprintf(&b, "Upgrade %s x%d: %s\n", label(l.Key), l.Quantity, usd(l.Total))
	}
	fmt.Fprintf(&b, "Travel fee: %s\n", usd(in.Result.TravelFee))
	fmt.Fprintf(&b, "Total: %s\n", usd(in.Result.GrandTotal))
	fmt.Fprintf(&b, "Deposit: %s\n", usd(in.Result.Deposit))
	fmt.Fprintf(&b, "Balance due on event day: %s\n", usd(in.Result.BalanceDue))
	return b.String()
}
