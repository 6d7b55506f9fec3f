package providers

import (
	"net/http"
	"os"
	"strings"

	"github.com/c360studio/semreview/llm"
)

// GroqProvider implements the OpenAI-compatible Groq API. Groq enforces
// aggressive rate limits, which the client absorbs via Retry-After hints.
type GroqProvider struct {
	OllamaProvider // Embed for shared request/response format
}

func init() {
	llm.RegisterProvider(&GroqProvider{})
}

// Name returns the provider identifier.
func (g *GroqProvider) Name() string {
	return "groq"
}

// BuildURL constructs the Groq chat completions endpoint.
func (g *GroqProvider) BuildURL(baseURL string) string {
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	if strings.HasSuffix(baseURL, "/chat/completions") {
		return baseURL
	}

	return baseURL + "/chat/completions"
}

// SetHeaders adds Groq authentication headers.
func (g *GroqProvider) SetHeaders(req *http.Request) {
	if apiKey := os.Getenv("GROQ_API_KEY"); apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
}
