package service

import (
	"strings"
)

// Voice intent actions.
const (
	VoiceActionAddToCart = "add-to-cart"
	VoiceActionSearch    = "search"
	VoiceActionViewCart  = "view-cart"
	VoiceActionCheckout  = "checkout"
	VoiceActionUnknown   = "unknown"
)

// VoiceIntent is the interpreted meaning of a voice transcript.
type VoiceIntent struct {
	Action string `json:"action"`
	Query  string `json:"query,omitempty"`
}

// VoiceService interprets voice-shopping transcripts with keyword
// heuristics. It mirrors the client-side mock; there is no speech backend.
type VoiceService struct{}

// Interpret maps a transcript to a shopping intent.
func (s *VoiceService) Interpret(transcript string) *VoiceIntent {
	text := strings.ToLower(strings.TrimSpace(transcript))
	if text == "" {
		return &VoiceIntent{Action: VoiceActionUnknown}
	}

	if strings.Contains(text, "checkout") || strings.Contains(text, "check out") {
		return &VoiceIntent{Action: VoiceActionCheckout}
	}

	if strings.HasPrefix(text, "add ") {
		query := strings.TrimPrefix(text, "add ")
		for _, suffix := range []string{" to my cart", " to the cart", " to cart"} {
			if strings.HasSuffix(query, suffix) {
				query = strings.TrimSuffix(query, suffix)
				break
			}
		}
		return &VoiceIntent{Action: VoiceActionAddToCart, Query: strings.TrimSpace(query)}
	}

	for _, prefix := range []string{"search for ", "look for ", "find ", "show me "} {
		if strings.HasPrefix(text, prefix) {
			return &VoiceIntent{Action: VoiceActionSearch, Query: strings.TrimSpace(strings.TrimPrefix(text, prefix))}
		}
	}

	if strings.Contains(text, "my cart") || text == "cart" || strings.Contains(text, "open cart") {
		return &VoiceIntent{Action: VoiceActionViewCart}
	}

	return &VoiceIntent{Action: VoiceActionSearch, Query: text}
}
