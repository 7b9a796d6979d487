package services

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"

	"hungerscrm/internal/models"
)

// Fixed fallbacks: the advisory call must never surface an error to
// the caller, only one of these strings.
const (
	adviceEmptyResponse = "No se pudo generar el análisis en este momento."
	adviceUnavailable   = "Error al conectar con la inteligencia artificial de Hungers."
)

// AdvisorService asks Gemini for closing recommendations on a single
// deal. One best-effort attempt per call, nothing persisted.
type AdvisorService struct {
	apiKey string
	model  string
}

func NewAdvisorService(apiKey, model string) *AdvisorService {
	if model == "" {
		model = "gemini-3-flash-preview"
	}
	return &AdvisorService{apiKey: apiKey, model: model}
}

func buildPrompt(deal *models.Deal) string {
	return fmt.Sprintf(`Eres un experto consultor de ventas senior para "Hungers", un CRM de alimentos y logística.
Analiza el siguiente trato y proporciona 3 recomendaciones rápidas para cerrarlo.
Título: %s
Valor: $%.0f
Estado actual: %s
Contacto: %s de %s
Prioridad: %s

Formato de respuesta: Markdown breve con viñetas.`,
		deal.Title, deal.Value, deal.Status, deal.ContactName, deal.Organization, deal.Priority)
}

// Analyze returns advisory text for the deal. Any failure degrades to
// a fixed human-readable string; no error propagates.
func (s *AdvisorService) Analyze(ctx context.Context, deal *models.Deal) string {
	if s.apiKey == "" {
		log.Printf("[advisor] no API key configured")
		return adviceUnavailable
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: s.apiKey})
	if err != nil {
		log.Printf("[advisor] client init failed: %v", err)
		return adviceUnavailable
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, genai.Text(buildPrompt(deal)), nil)
	if err != nil {
		log.Printf("[advisor] generate failed for deal=%s: %v", deal.ID, err)
		return adviceUnavailable
	}

	text := resp.Text()
	if text == "" {
		return adviceEmptyResponse
	}
	return text
}
